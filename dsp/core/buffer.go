package core

// ZeroBlock clears every channel of a deinterleaved block.
func ZeroBlock(block [][]float64) {
	for _, ch := range block {
		clear(ch)
	}
}

// Interleave writes the deinterleaved channels of block into dst as
// float32 frames. It returns the number of frames written.
func Interleave(dst []float32, block [][]float64) int {
	channels := len(block)
	if channels == 0 {
		return 0
	}

	frames := len(dst) / channels
	for _, ch := range block {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	for i := range frames {
		base := i * channels
		for c, ch := range block {
			dst[base+c] = float32(ch[i])
		}
	}

	return frames
}

// Deinterleave splits interleaved float32 frames in src into block.
// Missing source channels are filled from the last available channel so that
// mono material feeds both sides of a stereo block.
func Deinterleave(block [][]float64, src []float32, srcChannels int) int {
	if srcChannels <= 0 || len(block) == 0 {
		return 0
	}

	frames := len(src) / srcChannels
	for _, ch := range block {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	for i := range frames {
		base := i * srcChannels
		for c, ch := range block {
			sc := c
			if sc >= srcChannels {
				sc = srcChannels - 1
			}

			ch[i] = float64(src[base+sc])
		}
	}

	return frames
}
