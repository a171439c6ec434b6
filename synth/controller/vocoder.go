package controller

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-synth/dsp/effects"
	"github.com/cwbudde/algo-synth/dsp/filter/svf"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

// Vocoder controller ranges.
const (
	VocoderMinCentre   = 100.0
	VocoderMaxCentre   = 4000.0
	VocoderMinInterval = 0.1
	VocoderMaxInterval = 1.5

	defaultVocoderBandCount = 8
	vocoderGateThreshold    = 3.0
	vocoderWetLevel         = 2.0
)

// VocoderController runs a channel vocoder with the left input as
// modulator and the right input as carrier. A rising gate on A5 toggles the
// internal carrier oscillators, and encoder turns change the band count.
// The vocoded level is compensated for the band count.
type VocoderController struct {
	page *ui.Page

	centre    *input.ExpInput
	interval  *input.AnalogInput
	resonance *input.AnalogInput
	dryMod    *input.AnalogInput
	dryCar    *input.AnalogInput
	gate      *input.GateInput

	centreHz   Param
	octaves    Param
	res        Param
	modLevel   Param
	carLevel   Param
	bandCount  atomic.Int32
	oscillator atomic.Bool

	vocoder *effects.Vocoder

	appliedCentre   float64
	appliedInterval float64
	appliedBands    int
}

// NewVocoderController creates the vocoder with centre frequency on A0,
// band interval on A1, resonance on A2 and the dry modulator and carrier
// levels on A3 and A4 (0 to 5 V).
func NewVocoderController() (*VocoderController, error) {
	centre, err := input.NewExpInput(input.A0, -5, 5, VocoderMinCentre, VocoderMaxCentre)
	if err != nil {
		return nil, err
	}

	interval, err := input.NewAnalogInput(input.A1, -5, 5, VocoderMinInterval, VocoderMaxInterval)
	if err != nil {
		return nil, err
	}

	resonance, err := input.NewAnalogInput(input.A2, -5, 5, 0, svf.MaxResonance)
	if err != nil {
		return nil, err
	}

	dryMod, err := input.NewAnalogInput(input.A3, 0, 5, 0, 1)
	if err != nil {
		return nil, err
	}

	dryCar, err := input.NewAnalogInput(input.A4, 0, 5, 0, 1)
	if err != nil {
		return nil, err
	}

	gate, err := input.NewGateInput(input.A5, vocoderGateThreshold)
	if err != nil {
		return nil, err
	}

	c := &VocoderController{
		page:      ui.NewPage("Vocoder", "VOC"),
		centre:    centre,
		interval:  interval,
		resonance: resonance,
		dryMod:    dryMod,
		dryCar:    dryCar,
		gate:      gate,
	}
	c.centreHz.Store(1000)
	c.octaves.Store(0.5)
	c.res.Store(0.5)
	c.bandCount.Store(defaultVocoderBandCount)
	c.refreshPage()

	return c, nil
}

// Init allocates the vocoder with every band.
func (c *VocoderController) Init(sampleRate float64) error {
	v, err := effects.NewVocoder(sampleRate,
		effects.WithVocoderLevel(vocoderWetLevel),
		effects.WithVocoderInputLevel(c.modLevel.Load()),
		effects.WithVocoderSynthLevel(c.carLevel.Load()),
	)
	if err != nil {
		return err
	}

	c.vocoder = v
	c.applyBands()
	c.vocoder.SetResonance(c.res.Load())

	return nil
}

// Update reads the inputs and steps the band count on encoder turns.
func (c *VocoderController) Update(ctx UpdateContext) {
	if c.centre.Update(ctx.CV) {
		c.centreHz.Store(c.centre.Value())
	}

	if c.interval.Update(ctx.CV) {
		c.octaves.Store(c.interval.Value())
	}

	if c.resonance.Update(ctx.CV) {
		c.res.Store(c.resonance.Value())
	}

	if c.dryMod.Update(ctx.CV) {
		c.modLevel.Store(c.dryMod.Value())
	}

	if c.dryCar.Update(ctx.CV) {
		c.carLevel.Store(c.dryCar.Value())
	}

	if c.gate.Update(ctx.CV) && c.gate.Rose() {
		c.oscillator.Store(!c.oscillator.Load())
	}

	bands := c.BandCount()

	switch ctx.Turn {
	case ui.Clockwise:
		bands = min(bands+1, effects.MaxVocoderBands)
	case ui.CounterClockwise:
		bands = max(bands-1, 1)
	}

	c.bandCount.Store(int32(bands))
	c.refreshPage()
}

// Process vocodes the block and writes the result to both channels.
func (c *VocoderController) Process(in, out [][]float64) {
	if c.vocoder == nil {
		silence(out)
		return
	}

	if c.centreHz.Load() != c.appliedCentre || c.octaves.Load() != c.appliedInterval ||
		c.BandCount() != c.appliedBands {
		c.applyBands()
	}

	if r := c.res.Load(); r != c.vocoder.Resonance() {
		c.vocoder.SetResonance(r)
	}

	if osc := c.oscillator.Load(); osc != c.vocoder.UseCarrierOscillator() {
		c.vocoder.SetUseCarrierOscillator(osc)
	}

	// Levels are published from [0, 1] inputs, inside the vocoder's range.
	if l := c.modLevel.Load(); l != c.vocoder.InputLevel() {
		_ = c.vocoder.SetInputLevel(l)
	}

	if l := c.carLevel.Load(); l != c.vocoder.SynthLevel() {
		_ = c.vocoder.SetSynthLevel(l)
	}

	inL, inR := stereo(in)
	outL, outR := stereo(out)

	for i := range frames(out) {
		s := c.vocoder.ProcessSample(at(inL, i), at(inR, i))
		outL[i] = s
		outR[i] = s
	}
}

func (c *VocoderController) applyBands() {
	c.appliedCentre = c.centreHz.Load()
	c.appliedInterval = c.octaves.Load()
	c.appliedBands = c.BandCount()
	c.vocoder.InitBandsByCentreFrequency(c.appliedCentre, c.appliedInterval, c.appliedBands)
	_ = c.vocoder.SetVocoderLevel(bandLevel(c.appliedBands))
}

// bandLevel scales the vocoded sum so fewer bands stay as loud as the
// default layout.
func bandLevel(bands int) float64 {
	return vocoderWetLevel * math.Sqrt(defaultVocoderBandCount/float64(max(bands, 1)))
}

// Page returns the display page.
func (c *VocoderController) Page() *ui.Page { return c.page }

// BandCount returns the published band count.
func (c *VocoderController) BandCount() int { return int(c.bandCount.Load()) }

// CarrierOscillator reports whether the internal carrier is selected.
func (c *VocoderController) CarrierOscillator() bool { return c.oscillator.Load() }

func (c *VocoderController) refreshPage() {
	carrier := "input"
	if c.oscillator.Load() {
		carrier = "osc"
	}

	c.page.SetLine(0, "centre %.0f Hz", c.centreHz.Load())
	c.page.SetLine(1, "%d bands %.2f oct", c.BandCount(), c.octaves.Load())
	c.page.SetLine(2, "resonance %.2f", c.res.Load())
	c.page.SetLine(3, "carrier %s dry %.2f/%.2f", carrier, c.modLevel.Load(), c.carLevel.Load())
}
