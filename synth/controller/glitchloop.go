package controller

import (
	"sync/atomic"

	"github.com/cwbudde/algo-synth/dsp/effects"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

// Glitch loop ranges in seconds.
const (
	GlitchMinLoop  = 0.01
	GlitchMaxLoop  = 1.0
	GlitchMaxDelay = 0.5

	glitchGateThreshold = 3.0
)

// GlitchLoopController is a punch-in looper fired by a gate on A5.
// Encoder turns switch loop cycling on (clockwise) or off.
type GlitchLoopController struct {
	page *ui.Page

	loopTime   *input.ExpInput
	writeDelay *input.AnalogInput
	readDelay  *input.AnalogInput
	dryGain    *input.AnalogInput
	gate       *input.GateInput

	loop    Param
	wDelay  Param
	rDelay  Param
	dry     Param
	cycling atomic.Bool
	trigger Trigger
	state   atomic.Int32

	looper            *effects.GlitchLooper
	frameIn, frameOut [2]float64
}

// NewGlitchLoopController creates the looper with loop time on A0, write
// and read delays on A1 and A2, dry gain on A3 and the gate on A5.
func NewGlitchLoopController() (*GlitchLoopController, error) {
	loopTime, err := input.NewExpInput(input.A0, -5, 5, GlitchMinLoop, GlitchMaxLoop)
	if err != nil {
		return nil, err
	}

	writeDelay, err := input.NewAnalogInput(input.A1, -5, 5, 0, GlitchMaxDelay)
	if err != nil {
		return nil, err
	}

	readDelay, err := input.NewAnalogInput(input.A2, -5, 5, 0, GlitchMaxDelay)
	if err != nil {
		return nil, err
	}

	dryGain, err := input.NewAnalogInput(input.A3, -5, 5, 0, 1)
	if err != nil {
		return nil, err
	}

	gate, err := input.NewGateInput(input.A5, glitchGateThreshold)
	if err != nil {
		return nil, err
	}

	c := &GlitchLoopController{
		page:       ui.NewPage("Glitch Loop", "GLCH"),
		loopTime:   loopTime,
		writeDelay: writeDelay,
		readDelay:  readDelay,
		dryGain:    dryGain,
		gate:       gate,
	}
	c.loop.Store(0.25)
	c.dry.Store(1)
	c.refreshPage()

	return c, nil
}

// Init allocates stereo loop buffers of GlitchMaxLoop seconds.
func (c *GlitchLoopController) Init(sampleRate float64) error {
	looper, err := effects.NewGlitchLooper(sampleRate, GlitchMaxLoop, effects.WithLoopChannels(2))
	if err != nil {
		return err
	}

	c.looper = looper

	return nil
}

// Update reads the inputs. A rising gate edge queues one trigger.
func (c *GlitchLoopController) Update(ctx UpdateContext) {
	if c.loopTime.Update(ctx.CV) {
		c.loop.Store(c.loopTime.Value())
	}

	if c.writeDelay.Update(ctx.CV) {
		c.wDelay.Store(c.writeDelay.Value())
	}

	if c.readDelay.Update(ctx.CV) {
		c.rDelay.Store(c.readDelay.Value())
	}

	if c.dryGain.Update(ctx.CV) {
		c.dry.Store(c.dryGain.Value())
	}

	if c.gate.Update(ctx.CV) && c.gate.Rose() {
		c.trigger.Fire()
	}

	switch ctx.Turn {
	case ui.Clockwise:
		c.cycling.Store(true)
	case ui.CounterClockwise:
		c.cycling.Store(false)
	}

	c.refreshPage()
}

// Trigger queues a gate event as if A5 had risen.
func (c *GlitchLoopController) Trigger() {
	c.trigger.Fire()
}

// Process applies pending triggers and runs the looper over the block.
func (c *GlitchLoopController) Process(in, out [][]float64) {
	if c.looper == nil {
		silence(out)
		return
	}

	c.looper.SetLoopTime(c.loop.Load())
	c.looper.SetWriteDelay(c.wDelay.Load())
	c.looper.SetReadDelay(c.rDelay.Load())
	c.looper.SetDryGain(c.dry.Load())
	c.looper.SetCycling(c.cycling.Load())

	for n := c.trigger.Take(); n > 0; n-- {
		c.looper.Trigger()
	}

	inL, inR := stereo(in)

	for i := range frames(out) {
		c.frameIn[0] = at(inL, i)
		c.frameIn[1] = at(inR, i)
		c.looper.ProcessFrame(c.frameIn[:], c.frameOut[:])
		putFrame(out, i, c.frameOut[0], c.frameOut[1])
	}

	c.state.Store(int32(c.looper.State()))
}

// Page returns the display page.
func (c *GlitchLoopController) Page() *ui.Page { return c.page }

// State returns the looper state at the end of the last block.
func (c *GlitchLoopController) State() effects.LoopState {
	return effects.LoopState(c.state.Load())
}

// Cycling reports whether loop cycling is enabled.
func (c *GlitchLoopController) Cycling() bool { return c.cycling.Load() }

func (c *GlitchLoopController) refreshPage() {
	c.page.SetLine(0, "%v", c.State())
	c.page.SetLine(1, "loop %.0f ms", 1000*c.loop.Load())
	c.page.SetLine(2, "delay w %.0f r %.0f ms", 1000*c.wDelay.Load(), 1000*c.rDelay.Load())
	c.page.SetLine(3, "dry %.2f cycle %t", c.dry.Load(), c.cycling.Load())
}
