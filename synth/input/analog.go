package input

import (
	"fmt"
	"math"
)

// AnalogInput maps one channel from [realMin, realMax] onto
// [outMin, outMax] and smooths the result. Either range may be inverted.
type AnalogInput struct {
	channel Channel

	realMin, realMax float64
	outMin, outMax   float64

	weight    float64
	threshold float64

	raw      float64
	smoothed float64
	reported float64
	seeded   bool
	changed  bool
}

// NewAnalogInput creates an input reading ch.
func NewAnalogInput(ch Channel, realMin, realMax, outMin, outMax float64, opts ...Option) (*AnalogInput, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	a := &AnalogInput{}
	if err := a.init(ch, realMin, realMax, outMin, outMax, cfg); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *AnalogInput) init(ch Channel, realMin, realMax, outMin, outMax float64, cfg config) error {
	if !ch.Valid() {
		return fmt.Errorf("input: unknown channel: %v", ch)
	}

	if err := validateRange("calibration", realMin, realMax); err != nil {
		return err
	}

	if err := validateRange("output", outMin, outMax); err != nil {
		return err
	}

	threshold := cfg.threshold
	if threshold < 0 {
		threshold = defaultThresholdRatio * math.Abs(outMax-outMin)
	}

	*a = AnalogInput{
		channel:   ch,
		realMin:   realMin,
		realMax:   realMax,
		outMin:    outMin,
		outMax:    outMax,
		weight:    cfg.weight,
		threshold: threshold,
		smoothed:  outMin,
		reported:  outMin,
	}

	return nil
}

// Update reads the channel once and reports whether the smoothed value moved
// by more than the threshold since the last reported change. The first call
// seeds the smoother and always reports a change. NaN readings are ignored.
func (a *AnalogInput) Update(r Reader) bool {
	raw := r.Read(a.channel)
	if math.IsNaN(raw) {
		a.changed = false
		return false
	}

	a.raw = raw
	mapped := a.mapRaw(raw)

	if !a.seeded {
		a.seeded = true
		a.smoothed = mapped
		a.reported = mapped
		a.changed = true

		return true
	}

	a.smoothed += a.weight * (mapped - a.smoothed)

	a.changed = math.Abs(a.smoothed-a.reported) > a.threshold
	if a.changed {
		a.reported = a.smoothed
	}

	return a.changed
}

func (a *AnalogInput) mapRaw(raw float64) float64 {
	t := (raw - a.realMin) / (a.realMax - a.realMin)
	t = min(max(t, 0), 1)

	return a.outMin + t*(a.outMax-a.outMin)
}

// SetSmoothingWeight changes the smoothing weight at runtime.
func (a *AnalogInput) SetSmoothingWeight(weight float64) error {
	if err := validateWeight(weight); err != nil {
		return err
	}

	a.weight = weight

	return nil
}

// Value returns the smoothed output value.
func (a *AnalogInput) Value() float64 { return a.smoothed }

// Position returns the smoothed value as a fraction of the output range,
// 0 at outMin and 1 at outMax.
func (a *AnalogInput) Position() float64 {
	return (a.smoothed - a.outMin) / (a.outMax - a.outMin)
}

// Raw returns the last raw reading.
func (a *AnalogInput) Raw() float64 { return a.raw }

// Changed reports the result of the last Update.
func (a *AnalogInput) Changed() bool { return a.changed }

// Channel returns the bound channel.
func (a *AnalogInput) Channel() Channel { return a.channel }

// SmoothingWeight returns the smoothing weight.
func (a *AnalogInput) SmoothingWeight() float64 { return a.weight }

// Threshold returns the change threshold in output units.
func (a *AnalogInput) Threshold() float64 { return a.threshold }

// OutputRange returns outMin and outMax.
func (a *AnalogInput) OutputRange() (float64, float64) { return a.outMin, a.outMax }
