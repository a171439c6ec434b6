package svf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	defaultFrequency = 1000.0
	defaultQ         = 1 / math.Sqrt2

	// MaxResonance bounds the resonance control so the filter never
	// reaches self-oscillation.
	MaxResonance = 0.99

	minQ          = 0.05
	maxCutoffFrac = 0.499
)

// Outputs holds the simultaneous responses of one filter step.
type Outputs struct {
	Low  float64
	Band float64
	High float64
}

// Option mutates filter construction.
type Option func(*config) error

type config struct {
	freq float64
	q    float64
}

// WithFrequency sets the initial cutoff or centre frequency in Hz.
func WithFrequency(freq float64) Option {
	return func(cfg *config) error {
		if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
			return fmt.Errorf("svf: frequency must be > 0: %f", freq)
		}

		cfg.freq = freq

		return nil
	}
}

// WithQ sets the initial quality factor.
func WithQ(q float64) Option {
	return func(cfg *config) error {
		if q < minQ || math.IsNaN(q) || math.IsInf(q, 0) {
			return fmt.Errorf("svf: q must be >= %g: %f", minQ, q)
		}

		cfg.q = q

		return nil
	}
}

// Filter is a topology-preserving-transform state-variable filter
// (Simper/Zavalishin trapezoidal integrators). Low-pass, band-pass and
// high-pass outputs are produced by the same step.
type Filter struct {
	sampleRate float64
	freq       float64
	q          float64

	g, k       float64
	a1, a2, a3 float64

	ic1, ic2 float64
}

// New creates a state-variable filter.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("svf: sample rate must be > 0: %f", sampleRate)
	}

	cfg := config{freq: defaultFrequency, q: defaultQ}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{sampleRate: sampleRate, freq: cfg.freq, q: cfg.q}
	f.update()

	return f, nil
}

// SetFrequency sets the cutoff or centre frequency. Values are limited to
// just below Nyquist.
func (f *Filter) SetFrequency(freq float64) {
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return
	}

	f.freq = freq
	f.update()
}

// SetQ sets the quality factor.
func (f *Filter) SetQ(q float64) {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return
	}

	f.q = math.Max(q, minQ)
	f.update()
}

// SetResonance maps r in [0, MaxResonance] onto the damping k = 2(1-r),
// so 0 gives Q=0.5 and values near MaxResonance give a sharp peak.
func (f *Filter) SetResonance(r float64) {
	if math.IsNaN(r) {
		return
	}

	r = core.Clamp(r, 0, MaxResonance)
	f.SetQ(1 / (2 * (1 - r)))
}

// Process runs one step and returns all responses.
func (f *Filter) Process(x float64) Outputs {
	v3 := x - f.ic2
	v1 := f.a1*f.ic1 + f.a2*v3
	v2 := f.ic2 + f.a2*f.ic1 + f.a3*v3

	f.ic1 = core.FlushDenormals(2*v1 - f.ic1)
	f.ic2 = core.FlushDenormals(2*v2 - f.ic2)

	return Outputs{Low: v2, Band: v1, High: x - f.k*v1 - v2}
}

// ProcessBandpass returns the band-pass response normalized to unity gain
// at the centre frequency.
func (f *Filter) ProcessBandpass(x float64) float64 {
	return f.k * f.Process(x).Band
}

// ProcessLowpass returns the low-pass response.
func (f *Filter) ProcessLowpass(x float64) float64 {
	return f.Process(x).Low
}

// ProcessHighpass returns the high-pass response.
func (f *Filter) ProcessHighpass(x float64) float64 {
	return f.Process(x).High
}

// Reset clears the integrator state.
func (f *Filter) Reset() {
	f.ic1 = 0
	f.ic2 = 0
}

// Frequency returns the configured frequency in Hz.
func (f *Filter) Frequency() float64 { return f.freq }

// Q returns the quality factor.
func (f *Filter) Q() float64 { return f.q }

// SampleRate returns sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

func (f *Filter) update() {
	ratio := core.Clamp(f.freq/f.sampleRate, 0, maxCutoffFrac)
	f.g = math.Tan(math.Pi * ratio)
	f.k = 1 / f.q
	f.a1 = 1 / (1 + f.g*(f.g+f.k))
	f.a2 = f.g * f.a1
	f.a3 = f.g * f.a2
}
