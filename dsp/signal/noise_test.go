package signal

import "testing"

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoise(42)
	b := NewNoise(42)

	for i := range 64 {
		x, y := a.Process(), b.Process()
		if x != y {
			t.Fatalf("sample %d: %v != %v", i, x, y)
		}

		if x < -1 || x > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, x)
		}
	}
}

func TestNoiseReset(t *testing.T) {
	n := NewNoise(7)
	first := make([]float64, 8)
	n.ProcessBlock(first)
	n.Reset()

	again := make([]float64, 8)
	n.ProcessBlock(again)

	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("sample %d after Reset: %v != %v", i, again[i], first[i])
		}
	}
}
