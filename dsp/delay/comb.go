package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// MaxCombFeedback bounds the feedback magnitude of a Comb.
	MaxCombFeedback = 0.99

	defaultCombDelaySeconds = 0.01
	defaultCombDry          = 1.0
	defaultCombWet          = 0.5
)

// Comb is a feedback comb filter with independent dry and wet levels.
// The delay time is read with fractional interpolation so it can be swept
// for flanging without zipper noise.
type Comb struct {
	sampleRate float64
	line       *Line

	delaySamples float64
	feedback     float64
	dry          float64
	wet          float64
}

// NewComb allocates a comb filter able to delay up to maxDelaySeconds.
func NewComb(sampleRate, maxDelaySeconds float64) (*Comb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("comb sample rate must be > 0: %f", sampleRate)
	}

	if maxDelaySeconds <= 0 || math.IsNaN(maxDelaySeconds) || math.IsInf(maxDelaySeconds, 0) {
		return nil, fmt.Errorf("comb max delay must be > 0: %f", maxDelaySeconds)
	}

	size := int(math.Ceil(maxDelaySeconds*sampleRate)) + 4

	line, err := New(size)
	if err != nil {
		return nil, err
	}

	c := &Comb{
		sampleRate: sampleRate,
		line:       line,
		dry:        defaultCombDry,
		wet:        defaultCombWet,
	}
	c.SetDelay(defaultCombDelaySeconds)

	return c, nil
}

// SetDelay sets the delay time in seconds, clamped to the allocated capacity.
func (c *Comb) SetDelay(seconds float64) {
	c.SetDelaySamples(seconds * c.sampleRate)
}

// SetDelaySamples sets the delay time in samples, clamped to the allocated capacity.
func (c *Comb) SetDelaySamples(samples float64) {
	if math.IsNaN(samples) {
		return
	}

	c.delaySamples = core.Clamp(samples, 1, c.line.MaxFractionalDelay())
}

// SetFeedback sets the feedback gain, clamped to ±MaxCombFeedback.
func (c *Comb) SetFeedback(feedback float64) {
	if math.IsNaN(feedback) {
		return
	}

	c.feedback = core.Clamp(feedback, -MaxCombFeedback, MaxCombFeedback)
}

// SetDryLevel sets the gain of the direct signal.
func (c *Comb) SetDryLevel(level float64) {
	if core.IsFinite(level) {
		c.dry = level
	}
}

// SetWetLevel sets the gain of the delayed signal.
func (c *Comb) SetWetLevel(level float64) {
	if core.IsFinite(level) {
		c.wet = level
	}
}

// Process filters one sample.
func (c *Comb) Process(x float64) float64 {
	d := c.line.ReadFractional(c.delaySamples)
	c.line.Write(core.FlushDenormals(x + c.feedback*d))

	return c.dry*x + c.wet*d
}

// ProcessInPlace filters buf in place.
func (c *Comb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.Process(buf[i])
	}
}

// Reset clears the delay memory.
func (c *Comb) Reset() {
	c.line.Reset()
}

// Getters.

// SampleRate returns sample rate in Hz.
func (c *Comb) SampleRate() float64 { return c.sampleRate }

// Delay returns the delay time in seconds.
func (c *Comb) Delay() float64 { return c.delaySamples / c.sampleRate }

// DelaySamples returns the delay time in samples.
func (c *Comb) DelaySamples() float64 { return c.delaySamples }

// MaxDelay returns the longest delay in seconds the comb can produce.
func (c *Comb) MaxDelay() float64 { return c.line.MaxFractionalDelay() / c.sampleRate }

// Feedback returns the feedback gain.
func (c *Comb) Feedback() float64 { return c.feedback }

// DryLevel returns the dry gain.
func (c *Comb) DryLevel() float64 { return c.dry }

// WetLevel returns the wet gain.
func (c *Comb) WetLevel() float64 { return c.wet }
