package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/filter/svf"
	"github.com/cwbudde/algo-synth/dsp/signal"
)

// MaxVocoderBands is the fixed band capacity of a Vocoder.
const MaxVocoderBands = 16

const (
	defaultVocoderAttackMs     = 0.5
	defaultVocoderReleaseMs    = 20.0
	defaultVocoderResonance    = 0.5
	defaultVocoderInputLevel   = 0.0
	defaultVocoderSynthLevel   = 0.0
	defaultVocoderVocoderLevel = 1.0
	defaultVocoderCentre       = 1000.0
	defaultVocoderInterval     = 0.5

	minVocoderAttackMs  = 0.01
	maxVocoderAttackMs  = 100.0
	minVocoderReleaseMs = 0.01
	maxVocoderReleaseMs = 1000.0
	minVocoderLevel     = 0.0
	maxVocoderLevel     = 10.0
)

// VocoderOption configures a Vocoder at construction time.
type VocoderOption func(*vocoderConfig) error

type vocoderConfig struct {
	attackMs     float64
	releaseMs    float64
	resonance    float64
	inputLevel   float64
	synthLevel   float64
	vocoderLevel float64
}

func defaultVocoderConfig() vocoderConfig {
	return vocoderConfig{
		attackMs:     defaultVocoderAttackMs,
		releaseMs:    defaultVocoderReleaseMs,
		resonance:    defaultVocoderResonance,
		inputLevel:   defaultVocoderInputLevel,
		synthLevel:   defaultVocoderSynthLevel,
		vocoderLevel: defaultVocoderVocoderLevel,
	}
}

// WithVocoderAttack sets the envelope follower attack time in milliseconds.
func WithVocoderAttack(ms float64) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if ms < minVocoderAttackMs || ms > maxVocoderAttackMs || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("vocoder: attack must be in [%g, %g] ms: %g",
				minVocoderAttackMs, maxVocoderAttackMs, ms)
		}

		cfg.attackMs = ms

		return nil
	}
}

// WithVocoderRelease sets the envelope follower release time in milliseconds.
func WithVocoderRelease(ms float64) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if ms < minVocoderReleaseMs || ms > maxVocoderReleaseMs || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("vocoder: release must be in [%g, %g] ms: %g",
				minVocoderReleaseMs, maxVocoderReleaseMs, ms)
		}

		cfg.releaseMs = ms

		return nil
	}
}

// WithVocoderResonance sets the initial band resonance in [0, svf.MaxResonance].
func WithVocoderResonance(r float64) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if r < 0 || r > svf.MaxResonance || math.IsNaN(r) {
			return fmt.Errorf("vocoder: resonance must be in [0, %g]: %g", svf.MaxResonance, r)
		}

		cfg.resonance = r

		return nil
	}
}

// WithVocoderInputLevel sets the dry modulator level (linear gain).
func WithVocoderInputLevel(level float64) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if err := validateVocoderLevel("input", level); err != nil {
			return err
		}

		cfg.inputLevel = level

		return nil
	}
}

// WithVocoderSynthLevel sets the dry carrier level (linear gain).
func WithVocoderSynthLevel(level float64) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if err := validateVocoderLevel("synth", level); err != nil {
			return err
		}

		cfg.synthLevel = level

		return nil
	}
}

// WithVocoderLevel sets the vocoded output level (linear gain).
func WithVocoderLevel(level float64) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if err := validateVocoderLevel("vocoder", level); err != nil {
			return err
		}

		cfg.vocoderLevel = level

		return nil
	}
}

func validateVocoderLevel(name string, level float64) error {
	if level < minVocoderLevel || level > maxVocoderLevel || math.IsNaN(level) || math.IsInf(level, 0) {
		return fmt.Errorf("vocoder: %s level must be in [%g, %g]: %g",
			name, minVocoderLevel, maxVocoderLevel, level)
	}

	return nil
}

// VocoderBand is one analysis/resynthesis channel: a modulator band-pass
// feeding an envelope follower whose output gates a matching carrier
// band-pass, or an internal carrier tone at the band frequency.
type VocoderBand struct {
	freq float64

	modulatorFilter *svf.Filter
	carrierFilter   *svf.Filter
	follower        *envelope.Follower
	oscillator      *signal.Oscillator

	useCarrierOscillator bool
}

// NewVocoderBand creates a band with the given follower times in milliseconds.
func NewVocoderBand(sampleRate, attackMs, releaseMs float64) (*VocoderBand, error) {
	b := &VocoderBand{}
	if err := b.init(sampleRate, attackMs, releaseMs); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *VocoderBand) init(sampleRate, attackMs, releaseMs float64) error {
	var err error

	if b.modulatorFilter, err = svf.New(sampleRate); err != nil {
		return fmt.Errorf("vocoder: %w", err)
	}

	if b.carrierFilter, err = svf.New(sampleRate); err != nil {
		return fmt.Errorf("vocoder: %w", err)
	}

	b.follower, err = envelope.NewFollower(sampleRate,
		envelope.WithAttack(attackMs), envelope.WithRelease(releaseMs))
	if err != nil {
		return fmt.Errorf("vocoder: %w", err)
	}

	b.oscillator, err = signal.NewOscillator(sampleRate,
		signal.WithWaveform(signal.WavePolyBLEPSaw), signal.WithAmplitude(1))
	if err != nil {
		return fmt.Errorf("vocoder: %w", err)
	}

	b.SetFrequency(b.modulatorFilter.Frequency())

	return nil
}

// Process returns the band output for one modulator and carrier sample.
func (b *VocoderBand) Process(modulator, carrier float64) float64 {
	env := b.follower.Process(b.modulatorFilter.ProcessBandpass(modulator))

	source := carrier
	if b.useCarrierOscillator {
		source = b.oscillator.Process()
	}

	return env * b.carrierFilter.ProcessBandpass(source)
}

// SetFrequency retunes both filters and the carrier oscillator.
func (b *VocoderBand) SetFrequency(freq float64) {
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return
	}

	b.freq = freq
	b.modulatorFilter.SetFrequency(freq)
	b.carrierFilter.SetFrequency(freq)
	b.oscillator.SetFrequency(freq)
}

// SetResonance sets the resonance of both band filters.
func (b *VocoderBand) SetResonance(r float64) {
	b.modulatorFilter.SetResonance(r)
	b.carrierFilter.SetResonance(r)
}

// SetUseCarrierOscillator selects the internal carrier tone instead of the
// external carrier input.
func (b *VocoderBand) SetUseCarrierOscillator(use bool) {
	b.useCarrierOscillator = use
}

// Frequency returns the band centre frequency in Hz.
func (b *VocoderBand) Frequency() float64 { return b.freq }

// Envelope returns the current modulator envelope.
func (b *VocoderBand) Envelope() float64 { return b.follower.Value() }

// UseCarrierOscillator reports whether the internal carrier is selected.
func (b *VocoderBand) UseCarrierOscillator() bool { return b.useCarrierOscillator }

// Reset clears filter, envelope and oscillator state.
func (b *VocoderBand) Reset() {
	b.modulatorFilter.Reset()
	b.carrierFilter.Reset()
	b.follower.Reset()
	b.oscillator.Reset()
}

// Vocoder implements a channel vocoder that applies the spectral envelope
// of a modulator signal to a carrier signal. Bands are spaced geometrically
// and all MaxVocoderBands are allocated up front; only the first BandCount
// contribute to the output.
type Vocoder struct {
	sampleRate float64

	bands     [MaxVocoderBands]VocoderBand
	bandCount int

	baseFrequency  float64
	interval       float64
	frequencyRatio float64
	resonance      float64
	useCarrierOsc  bool

	attackMs     float64
	releaseMs    float64
	inputLevel   float64
	synthLevel   float64
	vocoderLevel float64
}

// NewVocoder creates a vocoder with MaxVocoderBands half-octave bands
// centred on 1 kHz.
func NewVocoder(sampleRate float64, opts ...VocoderOption) (*Vocoder, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("vocoder: sample rate must be positive and finite: %g", sampleRate)
	}

	cfg := defaultVocoderConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	v := &Vocoder{
		sampleRate:   sampleRate,
		resonance:    cfg.resonance,
		attackMs:     cfg.attackMs,
		releaseMs:    cfg.releaseMs,
		inputLevel:   cfg.inputLevel,
		synthLevel:   cfg.synthLevel,
		vocoderLevel: cfg.vocoderLevel,
	}

	for i := range v.bands {
		if err := v.bands[i].init(sampleRate, cfg.attackMs, cfg.releaseMs); err != nil {
			return nil, err
		}
	}

	v.SetResonance(cfg.resonance)
	v.InitBandsByCentreFrequency(defaultVocoderCentre, defaultVocoderInterval, MaxVocoderBands)

	return v, nil
}

// InitBandsByBaseFrequency places bandCount bands at base*2^(i*interval).
// bandCount is clamped to [1, MaxVocoderBands].
func (v *Vocoder) InitBandsByBaseFrequency(baseFrequency, intervalOctaves float64, bandCount int) {
	if baseFrequency <= 0 || math.IsNaN(baseFrequency) || math.IsInf(baseFrequency, 0) ||
		math.IsNaN(intervalOctaves) || math.IsInf(intervalOctaves, 0) {
		return
	}

	v.baseFrequency = baseFrequency
	v.interval = intervalOctaves
	v.frequencyRatio = math.Exp2(intervalOctaves)
	v.bandCount = core.ClampInt(bandCount, 1, MaxVocoderBands)

	freq := baseFrequency
	for i := range v.bandCount {
		v.bands[i].SetFrequency(freq)
		freq *= v.frequencyRatio
	}
}

// InitBandsByCentreFrequency places bandCount bands symmetrically around
// centre, spaced by intervalOctaves.
func (v *Vocoder) InitBandsByCentreFrequency(centre, intervalOctaves float64, bandCount int) {
	count := core.ClampInt(bandCount, 1, MaxVocoderBands)
	halfSpan := intervalOctaves * float64(count-1) * 0.5
	v.InitBandsByBaseFrequency(centre*math.Exp2(-halfSpan), intervalOctaves, count)
}

// SetResonance sets the resonance of every band filter.
func (v *Vocoder) SetResonance(r float64) {
	if math.IsNaN(r) {
		return
	}

	v.resonance = core.Clamp(r, 0, svf.MaxResonance)
	for i := range v.bands {
		v.bands[i].SetResonance(v.resonance)
	}
}

// SetUseCarrierOscillator switches every band between the external carrier
// and its internal carrier tone.
func (v *Vocoder) SetUseCarrierOscillator(use bool) {
	v.useCarrierOsc = use
	for i := range v.bands {
		v.bands[i].SetUseCarrierOscillator(use)
	}
}

// ProcessSample processes one modulator and carrier sample.
func (v *Vocoder) ProcessSample(modulator, carrier float64) float64 {
	vocoded := 0.0
	for i := range v.bandCount {
		vocoded += v.bands[i].Process(modulator, carrier)
	}

	return v.vocoderLevel*vocoded + v.inputLevel*modulator + v.synthLevel*carrier
}

// ProcessBlock processes equal-length modulator and carrier blocks into output.
func (v *Vocoder) ProcessBlock(modulator, carrier, output []float64) error {
	if len(modulator) != len(carrier) || len(modulator) != len(output) {
		return fmt.Errorf("vocoder: buffer length mismatch: modulator=%d carrier=%d output=%d",
			len(modulator), len(carrier), len(output))
	}

	for i := range modulator {
		output[i] = v.ProcessSample(modulator[i], carrier[i])
	}

	return nil
}

// Reset clears all band state.
func (v *Vocoder) Reset() {
	for i := range v.bands {
		v.bands[i].Reset()
	}
}

// Frequencies copies the active band frequencies into dst and returns the
// number copied.
func (v *Vocoder) Frequencies(dst []float64) int {
	n := min(len(dst), v.bandCount)
	for i := range n {
		dst[i] = v.bands[i].Frequency()
	}

	return n
}

// Band returns band i, or nil outside the active range.
func (v *Vocoder) Band(i int) *VocoderBand {
	if i < 0 || i >= v.bandCount {
		return nil
	}

	return &v.bands[i]
}

// Setters.

// SetVocoderLevel sets the vocoded output level.
func (v *Vocoder) SetVocoderLevel(level float64) error {
	if err := validateVocoderLevel("vocoder", level); err != nil {
		return err
	}

	v.vocoderLevel = level

	return nil
}

// SetInputLevel sets the dry modulator level.
func (v *Vocoder) SetInputLevel(level float64) error {
	if err := validateVocoderLevel("input", level); err != nil {
		return err
	}

	v.inputLevel = level

	return nil
}

// SetSynthLevel sets the dry carrier level.
func (v *Vocoder) SetSynthLevel(level float64) error {
	if err := validateVocoderLevel("synth", level); err != nil {
		return err
	}

	v.synthLevel = level

	return nil
}

// Getters.

// SampleRate returns the sample rate in Hz.
func (v *Vocoder) SampleRate() float64 { return v.sampleRate }

// BandCount returns the number of active bands.
func (v *Vocoder) BandCount() int { return v.bandCount }

// BaseFrequency returns the lowest band frequency in Hz.
func (v *Vocoder) BaseFrequency() float64 { return v.baseFrequency }

// Interval returns the band spacing in octaves.
func (v *Vocoder) Interval() float64 { return v.interval }

// Resonance returns the band resonance.
func (v *Vocoder) Resonance() float64 { return v.resonance }

// UseCarrierOscillator reports whether the internal carriers are selected.
func (v *Vocoder) UseCarrierOscillator() bool { return v.useCarrierOsc }

// Attack returns the envelope attack time in milliseconds.
func (v *Vocoder) Attack() float64 { return v.attackMs }

// Release returns the envelope release time in milliseconds.
func (v *Vocoder) Release() float64 { return v.releaseMs }

// VocoderLevel returns the vocoded output level.
func (v *Vocoder) VocoderLevel() float64 { return v.vocoderLevel }

// InputLevel returns the dry modulator level.
func (v *Vocoder) InputLevel() float64 { return v.inputLevel }

// SynthLevel returns the dry carrier level.
func (v *Vocoder) SynthLevel() float64 { return v.synthLevel }
