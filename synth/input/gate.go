package input

import (
	"fmt"
	"math"
)

// GateInput is an unsmoothed comparator on one channel with hysteresis and
// edge detection.
type GateInput struct {
	channel    Channel
	threshold  float64
	hysteresis float64

	raw  float64
	gate bool
	rose bool
	fell bool
}

// NewGateInput creates a gate that opens when ch reaches threshold.
func NewGateInput(ch Channel, threshold float64, opts ...Option) (*GateInput, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("input: unknown channel: %v", ch)
	}

	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, fmt.Errorf("input: gate threshold must be finite: %f", threshold)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &GateInput{
		channel:    ch,
		threshold:  threshold,
		hysteresis: cfg.hysteresis,
	}, nil
}

// Update reads the channel and reports whether the gate changed state.
// Edge flags stay valid until the next Update.
func (g *GateInput) Update(r Reader) bool {
	g.rose, g.fell = false, false

	raw := r.Read(g.channel)
	if math.IsNaN(raw) {
		return false
	}

	g.raw = raw

	switch {
	case !g.gate && raw >= g.threshold:
		g.gate = true
		g.rose = true
	case g.gate && raw < g.threshold-g.hysteresis:
		g.gate = false
		g.fell = true
	}

	return g.rose || g.fell
}

// Gate reports whether the gate is open.
func (g *GateInput) Gate() bool { return g.gate }

// Rose reports a rising edge in the last Update.
func (g *GateInput) Rose() bool { return g.rose }

// Fell reports a falling edge in the last Update.
func (g *GateInput) Fell() bool { return g.fell }

// Raw returns the last raw reading.
func (g *GateInput) Raw() float64 { return g.raw }

// Channel returns the bound channel.
func (g *GateInput) Channel() Channel { return g.channel }

// Threshold returns the opening threshold.
func (g *GateInput) Threshold() float64 { return g.threshold }

// Hysteresis returns the closing hysteresis.
func (g *GateInput) Hysteresis() float64 { return g.hysteresis }
