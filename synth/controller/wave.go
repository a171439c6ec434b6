package controller

import (
	"sync/atomic"

	"github.com/cwbudde/algo-synth/dsp/signal"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

// Wave controller ranges.
const (
	WaveMinFrequency = 20.0
	WaveMaxFrequency = 8000.0
)

// WaveController is a single oscillator voice. The left input phase
// modulates the oscillator and encoder turns step through the waveforms.
type WaveController struct {
	page *ui.Page

	pitch *input.ExpInput
	level *input.AnalogInput
	depth *input.AnalogInput

	frequency Param
	amplitude Param
	pmDepth   Param
	waveform  atomic.Int32

	osc *signal.Oscillator
}

// NewWaveController creates the oscillator voice: pitch on A0, level on A1
// and phase-modulation depth in cycles per unit input on A2.
func NewWaveController() (*WaveController, error) {
	pitch, err := input.NewExpInput(input.A0, -5, 5, WaveMinFrequency, WaveMaxFrequency)
	if err != nil {
		return nil, err
	}

	level, err := input.NewAnalogInput(input.A1, -5, 5, 0, 1)
	if err != nil {
		return nil, err
	}

	depth, err := input.NewAnalogInput(input.A2, -5, 5, 0, 1)
	if err != nil {
		return nil, err
	}

	c := &WaveController{
		page:  ui.NewPage("Wave", "WAVE"),
		pitch: pitch,
		level: level,
		depth: depth,
	}
	c.frequency.Store(110)
	c.amplitude.Store(0.5)
	c.waveform.Store(int32(signal.WavePolyBLEPSaw))
	c.refreshPage()

	return c, nil
}

// Init allocates the oscillator.
func (c *WaveController) Init(sampleRate float64) error {
	osc, err := signal.NewOscillator(sampleRate,
		signal.WithWaveform(c.Waveform()),
		signal.WithFrequency(c.frequency.Load()),
		signal.WithAmplitude(c.amplitude.Load()),
	)
	if err != nil {
		return err
	}

	c.osc = osc

	return nil
}

// Update reads the inputs and steps the waveform on encoder turns.
func (c *WaveController) Update(ctx UpdateContext) {
	if c.pitch.Update(ctx.CV) {
		c.frequency.Store(c.pitch.Value())
	}

	if c.level.Update(ctx.CV) {
		c.amplitude.Store(c.level.Value())
	}

	if c.depth.Update(ctx.CV) {
		c.pmDepth.Store(c.depth.Value())
	}

	switch ctx.Turn {
	case ui.Clockwise:
		c.waveform.Store(int32(c.Waveform().Next()))
	case ui.CounterClockwise:
		c.waveform.Store(int32(c.Waveform().Prev()))
	}

	c.refreshPage()
}

// Process renders the oscillator to both output channels.
func (c *WaveController) Process(in, out [][]float64) {
	if c.osc == nil {
		silence(out)
		return
	}

	if w := c.Waveform(); w != c.osc.Waveform() {
		c.osc.SetWaveform(w)
	}

	c.osc.SetFrequency(c.frequency.Load())
	c.osc.SetAmplitude(c.amplitude.Load())

	depth := c.pmDepth.Load()
	inL, _ := stereo(in)
	outL, outR := stereo(out)

	for i := range frames(out) {
		if depth != 0 {
			c.osc.PhaseAdd(depth * at(inL, i))
		}

		s := c.osc.Process()
		outL[i] = s
		outR[i] = s
	}
}

// Page returns the display page.
func (c *WaveController) Page() *ui.Page { return c.page }

// Waveform returns the selected waveform.
func (c *WaveController) Waveform() signal.Waveform {
	return signal.Waveform(c.waveform.Load())
}

// Frequency returns the published oscillator frequency in Hz.
func (c *WaveController) Frequency() float64 { return c.frequency.Load() }

func (c *WaveController) refreshPage() {
	c.page.SetLine(0, "%s", c.Waveform())
	c.page.SetLine(1, "%.1f Hz", c.frequency.Load())
	c.page.SetLine(2, "level %.2f", c.amplitude.Load())
	c.page.SetLine(3, "pm %.2f", c.pmDepth.Load())
}
