package delay

import "fmt"

// SampleBuffer is a fixed-capacity record/playback buffer for loopers.
// Recording fills the buffer up to its current length; playback loops over
// whatever was recorded.
type SampleBuffer struct {
	data     []float64
	length   int
	recorded int
	pos      int
}

// NewSampleBuffer allocates a buffer holding capacity samples.
func NewSampleBuffer(capacity int) (*SampleBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("sample buffer capacity must be > 0: %d", capacity)
	}

	return &SampleBuffer{data: make([]float64, capacity), length: capacity}, nil
}

// Cap returns the allocated capacity in samples.
func (b *SampleBuffer) Cap() int { return len(b.data) }

// Len returns the target recording length in samples.
func (b *SampleBuffer) Len() int { return b.length }

// Recorded returns the number of samples captured by the last recording.
func (b *SampleBuffer) Recorded() int { return b.recorded }

// Position returns the current record or playback position.
func (b *SampleBuffer) Position() int { return b.pos }

// StartRecording rewinds the buffer and sets the target length, clamped to
// [1, Cap].
func (b *SampleBuffer) StartRecording(length int) {
	b.length = min(max(length, 1), len(b.data))
	b.recorded = 0
	b.pos = 0
}

// Record stores one sample and reports whether the target length is reached.
func (b *SampleBuffer) Record(x float64) bool {
	if b.recorded >= b.length {
		return true
	}

	b.data[b.recorded] = x
	b.recorded++
	b.pos = b.recorded

	return b.recorded >= b.length
}

// Rewind moves the playback position to the start.
func (b *SampleBuffer) Rewind() {
	b.pos = 0
}

// Play returns the next recorded sample, looping at the end of the
// recording. An empty buffer plays silence.
func (b *SampleBuffer) Play() float64 {
	if b.recorded == 0 {
		return 0
	}

	if b.pos >= b.recorded {
		b.pos = 0
	}

	x := b.data[b.pos]
	b.pos++

	return x
}

// At returns recorded sample i, or 0 outside the recording.
func (b *SampleBuffer) At(i int) float64 {
	if i < 0 || i >= b.recorded {
		return 0
	}

	return b.data[i]
}

// Clear erases the recording.
func (b *SampleBuffer) Clear() {
	clear(b.data)
	b.recorded = 0
	b.pos = 0
}
