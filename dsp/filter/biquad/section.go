package biquad

import "github.com/cwbudde/algo-synth/dsp/core"

// Coefficients of one second-order section, normalised so that a0 = 1.
// Processing uses Direct Form II Transposed:
//
//	y  = B0*x + s1
//	s1 = B1*x - A1*y + s2
//	s2 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section runs one set of Coefficients over a signal.
type Section struct {
	Coefficients

	s1, s2 float64
}

// NewSection returns a Section with cleared state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters x.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.s1
	s.s1 = s.B1*x - s.A1*y + s.s2
	s.s2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place and flushes denormal state at the end
// of the block.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	s1, s2 := s.s1, s.s2

	for i, x := range buf {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.s1 = core.FlushDenormals(s1)
	s.s2 = core.FlushDenormals(s2)
}

// Reset clears the filter memory.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}

// Idle reports whether the filter memory is cleared.
func (s *Section) Idle() bool {
	return s.s1 == 0 && s.s2 == 0
}
