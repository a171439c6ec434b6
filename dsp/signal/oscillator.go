package signal

import (
	"fmt"
	"math"
)

const (
	twoPi = 2 * math.Pi

	defaultOscFrequency = 100.0
	defaultOscAmplitude = 0.5

	// DefaultSquareScale is the output scale of the band-limited square.
	// It matches the RMS level of the band-limited square to a sine of the
	// same amplitude.
	DefaultSquareScale = 0.707
)

// Waveform selects the shape produced by an Oscillator.
type Waveform int

// Waveforms. The PolyBLEP variants are band-limited; the others are naive.
const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSaw
	WaveRamp
	WaveSquare
	WavePolyBLEPTriangle
	WavePolyBLEPSaw
	WavePolyBLEPSquare

	waveCount
)

var waveformNames = [...]string{
	WaveSine:             "sine",
	WaveTriangle:         "triangle",
	WaveSaw:              "saw",
	WaveRamp:             "ramp",
	WaveSquare:           "square",
	WavePolyBLEPTriangle: "polyblep-triangle",
	WavePolyBLEPSaw:      "polyblep-saw",
	WavePolyBLEPSquare:   "polyblep-square",
}

// Waveforms returns every supported waveform in selector order.
func Waveforms() []Waveform {
	out := make([]Waveform, waveCount)
	for i := range out {
		out[i] = Waveform(i)
	}

	return out
}

// String returns the waveform name.
func (w Waveform) String() string {
	if w < 0 || w >= waveCount {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}

	return waveformNames[w]
}

// Next returns the following waveform, wrapping after the last one.
func (w Waveform) Next() Waveform {
	return (w + 1) % waveCount
}

// Prev returns the preceding waveform, wrapping before the first one.
func (w Waveform) Prev() Waveform {
	return (w + waveCount - 1) % waveCount
}

// OscillatorOption mutates oscillator construction.
type OscillatorOption func(*oscillatorConfig) error

type oscillatorConfig struct {
	freq        float64
	amp         float64
	wave        Waveform
	squareScale float64
}

// WithFrequency sets the initial frequency in Hz.
func WithFrequency(freq float64) OscillatorOption {
	return func(cfg *oscillatorConfig) error {
		if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
			return fmt.Errorf("oscillator: frequency must be >= 0: %f", freq)
		}

		cfg.freq = freq

		return nil
	}
}

// WithAmplitude sets the initial peak amplitude.
func WithAmplitude(amp float64) OscillatorOption {
	return func(cfg *oscillatorConfig) error {
		if math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("oscillator: amplitude must be finite: %f", amp)
		}

		cfg.amp = amp

		return nil
	}
}

// WithWaveform sets the initial waveform.
func WithWaveform(w Waveform) OscillatorOption {
	return func(cfg *oscillatorConfig) error {
		if w < 0 || w >= waveCount {
			return fmt.Errorf("oscillator: unknown waveform: %d", int(w))
		}

		cfg.wave = w

		return nil
	}
}

// WithSquareScale sets the output scale of WavePolyBLEPSquare.
func WithSquareScale(scale float64) OscillatorOption {
	return func(cfg *oscillatorConfig) error {
		if scale <= 0 || scale > 1 || math.IsNaN(scale) {
			return fmt.Errorf("oscillator: square scale must be in (0, 1]: %f", scale)
		}

		cfg.squareScale = scale

		return nil
	}
}

// Oscillator is a phase-accumulator waveform generator with naive and
// polyBLEP band-limited shapes.
type Oscillator struct {
	sampleRate  float64
	freq        float64
	amp         float64
	wave        Waveform
	squareScale float64

	phase    float64
	phaseInc float64
	lastOut  float64
}

// NewOscillator creates an oscillator. Defaults: 100 Hz, amplitude 0.5, sine.
func NewOscillator(sampleRate float64, opts ...OscillatorOption) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator: sample rate must be > 0: %f", sampleRate)
	}

	cfg := oscillatorConfig{
		freq:        defaultOscFrequency,
		amp:         defaultOscAmplitude,
		wave:        WaveSine,
		squareScale: DefaultSquareScale,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Oscillator{
		sampleRate:  sampleRate,
		amp:         cfg.amp,
		wave:        cfg.wave,
		squareScale: cfg.squareScale,
	}
	o.SetFrequency(cfg.freq)

	return o, nil
}

// PolyBLEP returns the band-limited step correction for normalized phase t
// in [0,1) given the per-sample phase increment in radians.
func PolyBLEP(phaseInc, t float64) float64 {
	dt := phaseInc / twoPi

	switch {
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	default:
		return 0
	}
}

// Process returns one sample and advances the phase. It returns 0 when the
// amplitude is zero or the frequency is at or above Nyquist.
func (o *Oscillator) Process() float64 {
	if o.amp == 0 || o.freq >= o.sampleRate*0.5 {
		return 0
	}

	var out float64

	switch o.wave {
	case WaveTriangle:
		t := -1 + 2*o.phase/twoPi
		out = 2 * (math.Abs(t) - 0.5)
	case WaveSaw:
		out = -(2*o.phase/twoPi - 1)
	case WaveRamp:
		out = 2*o.phase/twoPi - 1
	case WaveSquare:
		out = o.square()
	case WavePolyBLEPTriangle:
		// Leaky integration of the band-limited square. The coefficient is
		// capped at 1 so the recursion stays a convex blend at high pitch.
		a := math.Min(o.phaseInc, 1)
		out = a*o.blepSquare() + (1-a)*o.lastOut
		o.lastOut = out
	case WavePolyBLEPSaw:
		t := o.phase / twoPi
		out = 2*t - 1
		out -= PolyBLEP(o.phaseInc, t)
		out = -out
	case WavePolyBLEPSquare:
		out = o.blepSquare() * o.squareScale
	default:
		out = math.Sin(o.phase)
	}

	o.phase += o.phaseInc
	if o.phase >= twoPi {
		o.phase -= twoPi
	}

	return out * o.amp
}

// ProcessBlock fills buf with consecutive samples.
func (o *Oscillator) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = o.Process()
	}
}

// PhaseAdd offsets the phase by cycles (1.0 = one full period) without
// touching the frequency-derived increment.
func (o *Oscillator) PhaseAdd(cycles float64) {
	o.phase = wrapPhase(o.phase + cycles*twoPi)
}

// SetPhase sets the phase in radians, wrapped into [0, 2π).
func (o *Oscillator) SetPhase(radians float64) {
	o.phase = wrapPhase(radians)
}

// SetFrequency sets the frequency in Hz and recomputes the phase increment.
// Negative or non-finite values are treated as 0.
func (o *Oscillator) SetFrequency(freq float64) {
	if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		freq = 0
	}

	o.freq = freq
	o.phaseInc = twoPi * freq / o.sampleRate
}

// SetAmplitude sets the peak amplitude.
func (o *Oscillator) SetAmplitude(amp float64) {
	if math.IsNaN(amp) || math.IsInf(amp, 0) {
		return
	}

	o.amp = amp
}

// SetWaveform selects the waveform. Unknown selectors fall back to sine.
func (o *Oscillator) SetWaveform(w Waveform) {
	if w < 0 || w >= waveCount {
		w = WaveSine
	}

	if w != o.wave {
		o.lastOut = 0
	}

	o.wave = w
}

// Reset rewinds the phase and clears the integrator history.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.lastOut = 0
}

// Getters.

// SampleRate returns sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Frequency returns the frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Amplitude returns the peak amplitude.
func (o *Oscillator) Amplitude() float64 { return o.amp }

// Waveform returns the selected waveform.
func (o *Oscillator) Waveform() Waveform { return o.wave }

// Phase returns the phase in radians, in [0, 2π).
func (o *Oscillator) Phase() float64 { return o.phase }

// PhaseIncrement returns the per-sample phase increment in radians.
func (o *Oscillator) PhaseIncrement() float64 { return o.phaseInc }

// SquareScale returns the band-limited square output scale.
func (o *Oscillator) SquareScale() float64 { return o.squareScale }

func (o *Oscillator) square() float64 {
	if o.phase < math.Pi {
		return 1
	}

	return -1
}

// blepSquare derives the level and both edge corrections from the same
// normalised phase so they agree when t rounds onto an edge.
func (o *Oscillator) blepSquare() float64 {
	t := o.phase / twoPi
	if t >= 1 {
		t = 0
	}

	out := -1.0
	if t < 0.5 {
		out = 1
	}

	out += PolyBLEP(o.phaseInc, t)
	out -= PolyBLEP(o.phaseInc, math.Mod(t+0.5, 1))

	return out
}

func wrapPhase(p float64) float64 {
	if p >= 0 && p < twoPi {
		return p
	}

	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}

	if p >= twoPi {
		p = 0
	}

	return p
}
