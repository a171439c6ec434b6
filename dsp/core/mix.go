package core

import vecmath "github.com/cwbudde/algo-vecmath"

// GainBlock scales every channel of block in place.
func GainBlock(block [][]float64, gain float64) {
	if gain == 1 {
		return
	}

	for _, ch := range block {
		vecmath.ScaleBlock(ch, ch, gain)
	}
}
