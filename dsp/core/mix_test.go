package core

import "testing"

func TestGainBlock(t *testing.T) {
	block := [][]float64{{1, -2, 3}, {0.5, 0, -0.5}}
	GainBlock(block, 0.5)

	want := [][]float64{{0.5, -1, 1.5}, {0.25, 0, -0.25}}
	for c := range want {
		for i := range want[c] {
			if block[c][i] != want[c][i] {
				t.Fatalf("block[%d][%d] = %v, want %v", c, i, block[c][i], want[c][i])
			}
		}
	}
}
