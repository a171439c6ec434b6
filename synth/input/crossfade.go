package input

import "math"

// CrossfadeInput turns a channel position in [0, 1] into equal-power dry and
// wet levels, dry = cos(p*pi/2) and wet = sin(p*pi/2).
type CrossfadeInput struct {
	AnalogInput

	dry float64
	wet float64
}

// NewCrossfadeInput creates a crossfade reading ch. Before the first Update
// the mix is fully dry.
func NewCrossfadeInput(ch Channel, realMin, realMax float64, opts ...Option) (*CrossfadeInput, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	c := &CrossfadeInput{dry: 1}
	if err := c.AnalogInput.init(ch, realMin, realMax, 0, 1, cfg); err != nil {
		return nil, err
	}

	return c, nil
}

// Update reads the channel and recomputes both levels on change.
func (c *CrossfadeInput) Update(r Reader) bool {
	if c.AnalogInput.Update(r) {
		c.dry, c.wet = CrossfadeLevels(c.Value())
	}

	return c.Changed()
}

// DryLevel returns the dry gain.
func (c *CrossfadeInput) DryLevel() float64 { return c.dry }

// WetLevel returns the wet gain.
func (c *CrossfadeInput) WetLevel() float64 { return c.wet }

// CrossfadeLevels returns the equal-power dry and wet gains for position p,
// clamped to [0, 1].
func CrossfadeLevels(p float64) (dry, wet float64) {
	p = min(max(p, 0), 1)
	wet, dry = math.Sincos(p * math.Pi / 2)

	return dry, wet
}
