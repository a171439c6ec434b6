package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	defaultAttackMs  = 0.5
	defaultReleaseMs = 20.0

	minTimeMs = 0.01
	maxTimeMs = 5000.0
)

// Follower tracks the amplitude envelope of a signal with separate attack
// and release time constants.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	attackCoeff  float64
	releaseCoeff float64

	env float64
}

// Option mutates a Follower during construction.
type Option func(*Follower) error

// WithAttack sets the attack time in milliseconds.
func WithAttack(ms float64) Option {
	return func(f *Follower) error {
		if err := validateTime("attack", ms); err != nil {
			return err
		}

		f.attackMs = ms

		return nil
	}
}

// WithRelease sets the release time in milliseconds.
func WithRelease(ms float64) Option {
	return func(f *Follower) error {
		if err := validateTime("release", ms); err != nil {
			return err
		}

		f.releaseMs = ms

		return nil
	}
}

// NewFollower creates an envelope follower.
func NewFollower(sampleRate float64, opts ...Option) (*Follower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope: sample rate must be > 0: %f", sampleRate)
	}

	f := &Follower{
		sampleRate: sampleRate,
		attackMs:   defaultAttackMs,
		releaseMs:  defaultReleaseMs,
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	f.updateCoefficients()

	return f, nil
}

// SetAttack sets the attack time in milliseconds.
func (f *Follower) SetAttack(ms float64) error {
	if err := validateTime("attack", ms); err != nil {
		return err
	}

	f.attackMs = ms
	f.updateCoefficients()

	return nil
}

// SetRelease sets the release time in milliseconds.
func (f *Follower) SetRelease(ms float64) error {
	if err := validateTime("release", ms); err != nil {
		return err
	}

	f.releaseMs = ms
	f.updateCoefficients()

	return nil
}

// Process feeds one sample and returns the updated envelope.
func (f *Follower) Process(x float64) float64 {
	abs := math.Abs(x)
	if abs > f.env {
		f.env += (abs - f.env) * f.attackCoeff
	} else {
		f.env = abs + (f.env-abs)*f.releaseCoeff
	}

	f.env = core.FlushDenormals(f.env)

	return f.env
}

// Value returns the current envelope without advancing it.
func (f *Follower) Value() float64 { return f.env }

// Attack returns the attack time in milliseconds.
func (f *Follower) Attack() float64 { return f.attackMs }

// Release returns the release time in milliseconds.
func (f *Follower) Release() float64 { return f.releaseMs }

// Reset clears the envelope.
func (f *Follower) Reset() { f.env = 0 }

func (f *Follower) updateCoefficients() {
	f.attackCoeff = 1 - math.Exp(-1/(f.attackMs*0.001*f.sampleRate))
	f.releaseCoeff = math.Exp(-1 / (f.releaseMs * 0.001 * f.sampleRate))
}

func validateTime(name string, ms float64) error {
	if ms < minTimeMs || ms > maxTimeMs || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("envelope: %s must be in [%g, %g] ms: %g", name, minTimeMs, maxTimeMs, ms)
	}

	return nil
}
