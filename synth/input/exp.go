package input

import (
	"fmt"
	"math"
)

// ExpInput maps the smoothed linear position of a channel onto an
// exponential curve between outMin and outMax, both > 0.
type ExpInput struct {
	AnalogInput

	expMin float64
	expMax float64
	curve  float64
	value  float64
}

// NewExpInput creates an exponential input reading ch. The default change
// threshold is 0.1% of the linear travel.
func NewExpInput(ch Channel, realMin, realMax, outMin, outMax float64, opts ...Option) (*ExpInput, error) {
	if outMin <= 0 || outMax <= 0 || math.IsNaN(outMin) || math.IsNaN(outMax) {
		return nil, fmt.Errorf("input: exponential range must be > 0: [%f, %f]", outMin, outMax)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	e := &ExpInput{
		expMin: outMin,
		expMax: outMax,
		curve:  math.Log(outMax / outMin),
		value:  outMin,
	}

	if err := e.AnalogInput.init(ch, realMin, realMax, 0, 1, cfg); err != nil {
		return nil, err
	}

	return e, nil
}

// Update reads the channel and recomputes the curve when the position
// changed.
func (e *ExpInput) Update(r Reader) bool {
	if e.AnalogInput.Update(r) {
		e.value = e.expMin * mathExp(e.Position()*e.curve)
	}

	return e.Changed()
}

// Value returns the curved output value.
func (e *ExpInput) Value() float64 { return e.value }

// Curve returns ln(outMax/outMin).
func (e *ExpInput) Curve() float64 { return e.curve }

// OutputRange returns outMin and outMax of the curve.
func (e *ExpInput) OutputRange() (float64, float64) { return e.expMin, e.expMax }
