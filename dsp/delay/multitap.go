package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// MultiTap is a delay line written once per sample and read through a
// fixed number of independent fractional taps.
type MultiTap struct {
	line   *Line
	delays []float64
}

// NewMultiTap allocates a line of size samples with taps read positions.
func NewMultiTap(size, taps int, opts ...LineOption) (*MultiTap, error) {
	if taps <= 0 {
		return nil, fmt.Errorf("multitap tap count must be > 0: %d", taps)
	}

	line, err := New(size, opts...)
	if err != nil {
		return nil, err
	}

	m := &MultiTap{line: line, delays: make([]float64, taps)}
	for i := range m.delays {
		m.delays[i] = 1
	}

	return m, nil
}

// Taps returns the number of read taps.
func (m *MultiTap) Taps() int { return len(m.delays) }

// MaxDelay returns the largest tap delay in samples.
func (m *MultiTap) MaxDelay() float64 { return m.line.MaxFractionalDelay() }

// SetTapDelay sets tap i to delay samples, clamped to the line capacity.
// Out-of-range taps are ignored.
func (m *MultiTap) SetTapDelay(i int, samples float64) {
	if i < 0 || i >= len(m.delays) || math.IsNaN(samples) {
		return
	}

	m.delays[i] = core.Clamp(samples, 1, m.line.MaxFractionalDelay())
}

// TapDelay returns the delay of tap i in samples.
func (m *MultiTap) TapDelay(i int) float64 {
	if i < 0 || i >= len(m.delays) {
		return 0
	}

	return m.delays[i]
}

// Write pushes one sample into the shared line.
func (m *MultiTap) Write(x float64) {
	m.line.Write(x)
}

// Read returns the current output of tap i.
func (m *MultiTap) Read(i int) float64 {
	if i < 0 || i >= len(m.delays) {
		return 0
	}

	return m.line.ReadFractional(m.delays[i])
}

// Reset clears the delay memory. Tap delays are kept.
func (m *MultiTap) Reset() {
	m.line.Reset()
}
