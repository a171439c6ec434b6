package controller

import (
	"github.com/cwbudde/algo-synth/dsp/effects/spatial"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
	"github.com/go-gl/mathgl/mgl64"
)

// Spatializer controller geometry in metres.
const (
	SpatialRange     = 10.0
	SpatialEarOffset = 0.1

	// enough travel time for the far corner of the source cube
	spatialMaxDelay = 0.1
)

// SpatializerController places the mono sum of the input at a point
// controlled by A0 (x), A1 (y) and A2 (z), heard by two ears on the x axis.
type SpatializerController struct {
	page *ui.Page

	axes [3]*input.AnalogInput
	pos  [3]Param

	spatializer *spatial.Spatializer
	applied     mgl64.Vec3
}

// NewSpatializerController creates the spatializer with the source one
// metre in front of the listener.
func NewSpatializerController() (*SpatializerController, error) {
	c := &SpatializerController{page: ui.NewPage("Spatializer", "SPAT")}

	for i, ch := range [...]input.Channel{input.A0, input.A1, input.A2} {
		in, err := input.NewAnalogInput(ch, -5, 5, -SpatialRange, SpatialRange)
		if err != nil {
			return nil, err
		}

		c.axes[i] = in
	}

	c.pos[1].Store(1)
	c.refreshPage()

	return c, nil
}

// Init allocates the spatializer and places the ears.
func (c *SpatializerController) Init(sampleRate float64) error {
	s, err := spatial.NewSpatializer(sampleRate, spatialMaxDelay, 2)
	if err != nil {
		return err
	}

	s.SetDestinationPosition(0, mgl64.Vec3{-SpatialEarOffset, 0, 0})
	s.SetDestinationPosition(1, mgl64.Vec3{SpatialEarOffset, 0, 0})

	c.spatializer = s
	c.applied = c.Source()
	c.spatializer.SetSourcePosition(c.applied)

	return nil
}

// Update reads the three position inputs.
func (c *SpatializerController) Update(ctx UpdateContext) {
	for i, in := range c.axes {
		if in.Update(ctx.CV) {
			c.pos[i].Store(in.Value())
		}
	}

	c.refreshPage()
}

// Process renders the mono input sum at the source position.
func (c *SpatializerController) Process(in, out [][]float64) {
	if c.spatializer == nil {
		silence(out)
		return
	}

	if src := c.Source(); src != c.applied {
		c.applied = src
		c.spatializer.SetSourcePosition(src)
	}

	inL, inR := stereo(in)

	for i := range frames(out) {
		l, r := c.spatializer.ProcessStereo(0.5 * (at(inL, i) + at(inR, i)))
		putFrame(out, i, l, r)
	}
}

// Page returns the display page.
func (c *SpatializerController) Page() *ui.Page { return c.page }

// Source returns the published source position.
func (c *SpatializerController) Source() mgl64.Vec3 {
	return mgl64.Vec3{c.pos[0].Load(), c.pos[1].Load(), c.pos[2].Load()}
}

func (c *SpatializerController) refreshPage() {
	src := c.Source()
	c.page.SetLine(0, "x %+.1f m", src.X())
	c.page.SetLine(1, "y %+.1f m", src.Y())
	c.page.SetLine(2, "z %+.1f m", src.Z())
}
