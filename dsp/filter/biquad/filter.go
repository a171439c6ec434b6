package biquad

import (
	"fmt"
	"math"
)

// Kind selects the response of a tunable Filter.
type Kind int

const (
	// KindLowpass passes content below the cutoff.
	KindLowpass Kind = iota
	// KindHighpass passes content above the cutoff.
	KindHighpass
	// KindBandpass passes content around the centre frequency.
	KindBandpass
)

// String returns the filter kind name.
func (k Kind) String() string {
	switch k {
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	case KindBandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Filter is a Section whose coefficients are redesigned when its frequency
// or Q changes. Redesign keeps the filter state so parameter sweeps stay
// continuous.
type Filter struct {
	Section

	sampleRate float64
	kind       Kind
	freq       float64
	q          float64
	maxFreq    float64
}

// NewFilter creates a tunable filter.
func NewFilter(sampleRate float64, kind Kind, freq, q float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("biquad: sample rate must be > 0: %f", sampleRate)
	}

	if kind < KindLowpass || kind > KindBandpass {
		return nil, fmt.Errorf("biquad: unsupported filter kind: %v", kind)
	}

	f := &Filter{
		sampleRate: sampleRate,
		kind:       kind,
		q:          normalizedQ(q),
		maxFreq:    0.45 * sampleRate,
	}
	f.SetFrequency(freq)

	return f, nil
}

// SetFrequency sets the cutoff or centre frequency, clamped to
// [1 Hz, 0.45*sampleRate].
func (f *Filter) SetFrequency(freq float64) {
	if math.IsNaN(freq) {
		return
	}

	freq = min(max(freq, 1), f.maxFreq)
	if freq == f.freq {
		return
	}

	f.freq = freq
	f.redesign()
}

// SetQ sets the quality factor. Non-positive values select DefaultQ.
func (f *Filter) SetQ(q float64) {
	q = normalizedQ(q)
	if q == f.q {
		return
	}

	f.q = q
	f.redesign()
}

// SetKind switches the filter response.
func (f *Filter) SetKind(kind Kind) {
	if kind < KindLowpass || kind > KindBandpass || kind == f.kind {
		return
	}

	f.kind = kind
	f.redesign()
}

// Frequency returns the cutoff or centre frequency in Hz.
func (f *Filter) Frequency() float64 { return f.freq }

// Q returns the quality factor.
func (f *Filter) Q() float64 { return f.q }

// Kind returns the filter response.
func (f *Filter) Kind() Kind { return f.kind }

func (f *Filter) redesign() {
	switch f.kind {
	case KindHighpass:
		f.Coefficients = Highpass(f.freq, f.q, f.sampleRate)
	case KindBandpass:
		f.Coefficients = Bandpass(f.freq, f.q, f.sampleRate)
	default:
		f.Coefficients = Lowpass(f.freq, f.q, f.sampleRate)
	}
}
