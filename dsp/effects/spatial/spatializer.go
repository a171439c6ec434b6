package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
	"github.com/cwbudde/algo-synth/dsp/interp"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultNear         = 1.0
	defaultFar          = 20.0
	defaultSpeedOfSound = 343.0

	// AbsorptionCutoff is the tap low-pass cutoff at unity gain.
	AbsorptionCutoff = 22000.0

	// gain reached at the far distance
	farGain = 0.25
)

// SpatializerOption mutates spatializer construction parameters.
type SpatializerOption func(*spatializerConfig) error

type spatializerConfig struct {
	near         float64
	far          float64
	speedOfSound float64
}

func defaultSpatializerConfig() spatializerConfig {
	return spatializerConfig{
		near:         defaultNear,
		far:          defaultFar,
		speedOfSound: defaultSpeedOfSound,
	}
}

// WithNear sets the distance in metres inside which the gain stays at 1.
func WithNear(metres float64) SpatializerOption {
	return func(cfg *spatializerConfig) error {
		if metres <= 0 || math.IsNaN(metres) || math.IsInf(metres, 0) {
			return fmt.Errorf("spatializer near distance must be > 0: %f", metres)
		}

		cfg.near = metres

		return nil
	}
}

// WithFar sets the distance in metres at which the gain falls to 0.25.
func WithFar(metres float64) SpatializerOption {
	return func(cfg *spatializerConfig) error {
		if metres <= 0 || math.IsNaN(metres) || math.IsInf(metres, 0) {
			return fmt.Errorf("spatializer far distance must be > 0: %f", metres)
		}

		cfg.far = metres

		return nil
	}
}

// WithSpeedOfSound sets the propagation speed in metres per second.
func WithSpeedOfSound(mps float64) SpatializerOption {
	return func(cfg *spatializerConfig) error {
		if mps <= 0 || math.IsNaN(mps) || math.IsInf(mps, 0) {
			return fmt.Errorf("spatializer speed of sound must be > 0: %f", mps)
		}

		cfg.speedOfSound = mps

		return nil
	}
}

// Spatializer renders a mono source at a movable position to one output per
// destination. All destinations share a single delay line.
type Spatializer struct {
	sampleRate   float64
	near         float64
	far          float64
	rollOff      float64
	speedOfSound float64

	source       mgl64.Vec3
	destinations []mgl64.Vec3
	gains        []float64

	taps    *delay.MultiTap
	filters []*biquad.Filter
}

// NewSpatializer creates a spatializer with destinationCount taps and a
// delay line long enough for maxDelaySeconds of travel time.
func NewSpatializer(sampleRate, maxDelaySeconds float64, destinationCount int, opts ...SpatializerOption) (*Spatializer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spatializer sample rate must be > 0: %f", sampleRate)
	}

	if maxDelaySeconds <= 0 || math.IsNaN(maxDelaySeconds) || math.IsInf(maxDelaySeconds, 0) {
		return nil, fmt.Errorf("spatializer max delay must be > 0: %f", maxDelaySeconds)
	}

	if destinationCount <= 0 {
		return nil, fmt.Errorf("spatializer destination count must be > 0: %d", destinationCount)
	}

	cfg := defaultSpatializerConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.far <= cfg.near {
		return nil, fmt.Errorf("spatializer far distance must exceed near distance: %f <= %f",
			cfg.far, cfg.near)
	}

	size := int(math.Ceil(maxDelaySeconds*sampleRate)) + 4

	taps, err := delay.NewMultiTap(size, destinationCount, delay.WithMode(interp.Linear))
	if err != nil {
		return nil, err
	}

	s := &Spatializer{
		sampleRate:   sampleRate,
		near:         cfg.near,
		far:          cfg.far,
		rollOff:      (cfg.near/farGain - cfg.near) / (cfg.far - cfg.near),
		speedOfSound: cfg.speedOfSound,
		destinations: make([]mgl64.Vec3, destinationCount),
		gains:        make([]float64, destinationCount),
		taps:         taps,
		filters:      make([]*biquad.Filter, destinationCount),
	}

	for i := range s.filters {
		f, err := biquad.NewFilter(sampleRate, biquad.KindLowpass, AbsorptionCutoff, biquad.DefaultQ)
		if err != nil {
			return nil, err
		}

		s.filters[i] = f
	}

	for i := range s.destinations {
		s.updateTap(i)
	}

	return s, nil
}

// Gain returns the roll-off gain for a source at distance metres.
func (s *Spatializer) Gain(distance float64) float64 {
	if distance <= s.near {
		return 1
	}

	return s.near / (s.near + s.rollOff*(distance-s.near))
}

// SetSourcePosition moves the source and recomputes every tap.
func (s *Spatializer) SetSourcePosition(pos mgl64.Vec3) {
	s.source = pos
	for i := range s.destinations {
		s.updateTap(i)
	}
}

// SetDestinationPosition moves destination i and recomputes its tap.
// Out-of-range indices are ignored.
func (s *Spatializer) SetDestinationPosition(i int, pos mgl64.Vec3) {
	if i < 0 || i >= len(s.destinations) {
		return
	}

	s.destinations[i] = pos
	s.updateTap(i)
}

// Process writes one input sample into the shared delay line.
func (s *Spatializer) Process(in float64) {
	s.taps.Write(in)
}

// Output returns the current sample heard at destination i.
func (s *Spatializer) Output(i int) float64 {
	if i < 0 || i >= len(s.destinations) {
		return 0
	}

	return s.filters[i].ProcessSample(s.gains[i] * s.taps.Read(i))
}

// ProcessStereo writes in and returns the outputs of destinations 0 and 1.
// With a single destination both channels carry tap 0.
func (s *Spatializer) ProcessStereo(in float64) (float64, float64) {
	s.Process(in)

	left := s.Output(0)
	if len(s.destinations) < 2 {
		return left, left
	}

	return left, s.Output(1)
}

// Reset clears delay and filter memory. Positions are kept.
func (s *Spatializer) Reset() {
	s.taps.Reset()

	for _, f := range s.filters {
		f.Reset()
	}
}

// Getters.

// SampleRate returns the sample rate in Hz.
func (s *Spatializer) SampleRate() float64 { return s.sampleRate }

// Near returns the near distance in metres.
func (s *Spatializer) Near() float64 { return s.near }

// Far returns the far distance in metres.
func (s *Spatializer) Far() float64 { return s.far }

// RollOff returns the precomputed roll-off factor.
func (s *Spatializer) RollOff() float64 { return s.rollOff }

// SpeedOfSound returns the propagation speed in metres per second.
func (s *Spatializer) SpeedOfSound() float64 { return s.speedOfSound }

// Destinations returns the number of destinations.
func (s *Spatializer) Destinations() int { return len(s.destinations) }

// SourcePosition returns the source position.
func (s *Spatializer) SourcePosition() mgl64.Vec3 { return s.source }

// DestinationPosition returns the position of destination i.
func (s *Spatializer) DestinationPosition(i int) mgl64.Vec3 {
	if i < 0 || i >= len(s.destinations) {
		return mgl64.Vec3{}
	}

	return s.destinations[i]
}

// Distance returns the source distance to destination i in metres.
func (s *Spatializer) Distance(i int) float64 {
	if i < 0 || i >= len(s.destinations) {
		return 0
	}

	d := s.source.Sub(s.destinations[i])

	return mathSqrt(d.Dot(d))
}

// TapDelay returns the delay of tap i in samples.
func (s *Spatializer) TapDelay(i int) float64 { return s.taps.TapDelay(i) }

// TapGain returns the gain of tap i.
func (s *Spatializer) TapGain(i int) float64 {
	if i < 0 || i >= len(s.gains) {
		return 0
	}

	return s.gains[i]
}

// TapCutoff returns the absorption cutoff of tap i in Hz.
func (s *Spatializer) TapCutoff(i int) float64 {
	if i < 0 || i >= len(s.filters) {
		return 0
	}

	return s.filters[i].Frequency()
}

// MaxDelay returns the largest representable tap delay in samples.
func (s *Spatializer) MaxDelay() float64 { return s.taps.MaxDelay() }

func (s *Spatializer) updateTap(i int) {
	dist := s.Distance(i)
	gain := s.Gain(dist)

	s.gains[i] = gain
	s.taps.SetTapDelay(i, dist/s.speedOfSound*s.sampleRate)
	s.filters[i].SetFrequency(AbsorptionCutoff * gain)
}
