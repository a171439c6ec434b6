package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

// Line is a fixed-size circular buffer of past samples. Delays are counted
// back from the write head: Read(1) is the newest sample.
type Line struct {
	buf  []float64
	head int
	mode interp.Mode
}

// LineOption configures a Line.
type LineOption func(*Line)

// WithMode selects the interpolation used by ReadFractional. Unknown modes
// are ignored.
func WithMode(mode interp.Mode) LineOption {
	return func(d *Line) {
		if mode == interp.Linear || mode == interp.Hermite {
			d.mode = mode
		}
	}
}

// New returns a line holding size samples, reading with Hermite
// interpolation unless WithMode says otherwise.
func New(size int, opts ...LineOption) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay: line size must be > 0: %d", size)
	}

	d := &Line{buf: make([]float64, size), mode: interp.Hermite}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// Len returns the capacity in samples.
func (d *Line) Len() int { return len(d.buf) }

// Mode returns the fractional read interpolation.
func (d *Line) Mode() interp.Mode { return d.mode }

// Write pushes sample and advances the head.
func (d *Line) Write(sample float64) {
	d.buf[d.head] = sample

	if d.head++; d.head == len(d.buf) {
		d.head = 0
	}
}

// Read returns the sample written delay writes ago. Delays wrap modulo Len.
func (d *Line) Read(delay int) float64 {
	n := len(d.buf)
	i := (d.head - delay) % n
	if i < 0 {
		i += n
	}

	return d.buf[i]
}

// MaxFractionalDelay returns the longest delay ReadFractional honours.
// Hermite reads need two samples beyond the integer part.
func (d *Line) MaxFractionalDelay() float64 {
	return float64(len(d.buf) - 3)
}

// ReadFractional reads between samples. delay is clamped to
// [1, MaxFractionalDelay]; NaN reads the newest sample.
func (d *Line) ReadFractional(delay float64) float64 {
	if len(d.buf) < 4 {
		return d.Read(1)
	}

	if math.IsNaN(delay) {
		delay = 1
	}

	delay = math.Max(1, math.Min(delay, d.MaxFractionalDelay()))
	whole := int(delay)
	frac := delay - float64(whole)

	newer, older := d.Read(whole), d.Read(whole+1)
	if d.mode == interp.Linear {
		return interp.Linear2(frac, newer, older)
	}

	// The sample after the newest does not exist yet; reuse the newest.
	ahead := newer
	if whole > 1 {
		ahead = d.Read(whole - 1)
	}

	return interp.Hermite4(frac, ahead, newer, older, d.Read(whole+2))
}

// Reset zeroes the buffer and rewinds the head.
func (d *Line) Reset() {
	clear(d.buf)
	d.head = 0
}
