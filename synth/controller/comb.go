package controller

import (
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

// Comb controller ranges in seconds.
const (
	CombMinDelay = 0.0001
	CombMaxDelay = 0.5
)

// CombFilterController is a stereo feedback comb (flanger). One delay time
// drives both channels.
type CombFilterController struct {
	page *ui.Page

	delayTime *input.AnalogInput
	feedback  *input.AnalogInput
	mix       *input.CrossfadeInput

	delay    Param
	fb       Param
	dryLevel Param
	wetLevel Param

	left, right *delay.Comb
	current     float64
}

// NewCombFilterController creates the comb filter with delay time on A0,
// feedback on A1 and dry/wet mix on A2.
func NewCombFilterController() (*CombFilterController, error) {
	delayTime, err := input.NewAnalogInput(input.A0, -5, 5, CombMinDelay, CombMaxDelay,
		input.WithSmoothing(input.SmoothingFast))
	if err != nil {
		return nil, err
	}

	feedback, err := input.NewAnalogInput(input.A1, -5, 5, 0, delay.MaxCombFeedback)
	if err != nil {
		return nil, err
	}

	mix, err := input.NewCrossfadeInput(input.A2, -5, 5)
	if err != nil {
		return nil, err
	}

	c := &CombFilterController{
		page:      ui.NewPage("Comb Filter (Flanger)", "COMB"),
		delayTime: delayTime,
		feedback:  feedback,
		mix:       mix,
	}
	c.delay.Store(0.01)
	c.dryLevel.Store(1)
	c.refreshPage()

	return c, nil
}

// Init allocates both comb lines for CombMaxDelay.
func (c *CombFilterController) Init(sampleRate float64) error {
	left, err := delay.NewComb(sampleRate, CombMaxDelay)
	if err != nil {
		return err
	}

	right, err := delay.NewComb(sampleRate, CombMaxDelay)
	if err != nil {
		return err
	}

	c.left, c.right = left, right
	c.current = c.delay.Load()
	c.left.SetDelay(c.current)
	c.right.SetDelay(c.current)

	return nil
}

// Update reads the inputs and publishes the comb parameters.
func (c *CombFilterController) Update(ctx UpdateContext) {
	if c.delayTime.Update(ctx.CV) {
		c.delay.Store(c.delayTime.Value())
	}

	if c.feedback.Update(ctx.CV) {
		c.fb.Store(c.feedback.Value())
	}

	if c.mix.Update(ctx.CV) {
		c.dryLevel.Store(c.mix.DryLevel())
		c.wetLevel.Store(c.mix.WetLevel())
	}

	c.refreshPage()
}

// Process filters both channels, ramping the delay linearly toward the
// published value over the block.
func (c *CombFilterController) Process(in, out [][]float64) {
	if c.left == nil {
		silence(out)
		return
	}

	n := frames(out)
	if n == 0 {
		return
	}

	fb, dry, wet := c.fb.Load(), c.dryLevel.Load(), c.wetLevel.Load()
	for _, comb := range [...]*delay.Comb{c.left, c.right} {
		comb.SetFeedback(fb)
		comb.SetDryLevel(dry)
		comb.SetWetLevel(wet)
	}

	step := (c.delay.Load() - c.current) / float64(n)
	inL, inR := stereo(in)

	for i := range n {
		c.current += step
		c.left.SetDelay(c.current)
		c.right.SetDelay(c.current)

		l := c.left.Process(at(inL, i))
		r := c.right.Process(at(inR, i))
		putFrame(out, i, l, r)
	}
}

// Page returns the display page.
func (c *CombFilterController) Page() *ui.Page { return c.page }

// Delay returns the published delay time in seconds.
func (c *CombFilterController) Delay() float64 { return c.delay.Load() }

// Feedback returns the published feedback.
func (c *CombFilterController) Feedback() float64 { return c.fb.Load() }

func (c *CombFilterController) refreshPage() {
	c.page.SetLine(0, "delay %.1f ms", 1000*c.delay.Load())
	c.page.SetLine(1, "feedback %.2f", c.fb.Load())
	c.page.SetLine(2, "dry %.2f wet %.2f", c.dryLevel.Load(), c.wetLevel.Load())
}
