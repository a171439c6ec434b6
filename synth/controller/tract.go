package controller

import (
	"errors"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
	"github.com/cwbudde/algo-synth/dsp/signal"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

// VoiceUnit is an acoustic voice model driven by an excitation signal.
// lambda is the position inside the current block in [0, 1).
type VoiceUnit interface {
	Init(sampleRate float64) error
	Process(lambda, excitation float64) float64
}

// Articulator is implemented by voice units with tongue and constriction
// controls. Indices run from 0 (glottis) to 1 (lips).
type Articulator interface {
	SetTongue(index, diameter float64)
	SetConstriction(index, diameter float64)
}

// BlockFinisher is implemented by voice units that smooth parameters
// across a block and need to know where it ends.
type BlockFinisher interface {
	FinishBlock()
}

// Tract controller ranges.
const (
	TractMinPitch = 50.0
	TractMaxPitch = 800.0

	fricativeFrequency = 1000.0
	fricativeQ         = 0.5
	glottalLevel       = 0.5
	noiseSeed          = 0x7ac7
)

const (
	tongueIndex = iota
	tongueDiameter
	constrictionIndex
	constrictionDiameter
)

// TractController drives a VoiceUnit with a band-limited glottal pulse and
// band-passed fricative noise. Tongue position is read from A0 and A1,
// constriction from A2 and A3, pitch from A4 and fricative level from A6.
type TractController struct {
	page  *ui.Page
	voice VoiceUnit

	articulationIn [4]*input.AnalogInput
	pitch          *input.ExpInput
	fricative      *input.AnalogInput

	articulation [4]Param
	frequency    Param
	noiseLevel   Param

	glottis     *signal.Oscillator
	noise       *signal.Noise
	noiseFilter *biquad.Filter
	applied     [4]float64
	articulated bool
}

// NewTractController creates a controller around voice.
func NewTractController(voice VoiceUnit) (*TractController, error) {
	if voice == nil {
		return nil, errors.New("controller: tract voice is nil")
	}

	c := &TractController{
		page:  ui.NewPage("Vocal Tract", "TRCT"),
		voice: voice,
	}

	ranges := [4]struct {
		ch     input.Channel
		lo, hi float64
	}{
		tongueIndex:          {ch: input.A0, lo: 0, hi: 1},
		tongueDiameter:       {ch: input.A1, lo: 0, hi: 1},
		constrictionIndex:    {ch: input.A2, lo: 0, hi: 1},
		constrictionDiameter: {ch: input.A3, lo: 0.3, hi: 2},
	}

	for i, r := range ranges {
		in, err := input.NewAnalogInput(r.ch, -5, 5, r.lo, r.hi)
		if err != nil {
			return nil, err
		}

		c.articulationIn[i] = in
	}

	pitch, err := input.NewExpInput(input.A4, -5, 5, TractMinPitch, TractMaxPitch)
	if err != nil {
		return nil, err
	}

	fricative, err := input.NewAnalogInput(input.A6, -5, 5, 0, 1)
	if err != nil {
		return nil, err
	}

	c.pitch = pitch
	c.fricative = fricative

	c.articulation[tongueIndex].Store(0.5)
	c.articulation[tongueDiameter].Store(0.5)
	c.articulation[constrictionIndex].Store(0.8)
	c.articulation[constrictionDiameter].Store(2)
	c.frequency.Store(140)
	c.refreshPage()

	return c, nil
}

// Init initializes the voice and the excitation sources.
func (c *TractController) Init(sampleRate float64) error {
	if err := c.voice.Init(sampleRate); err != nil {
		return err
	}

	glottis, err := signal.NewOscillator(sampleRate,
		signal.WithWaveform(signal.WavePolyBLEPSaw),
		signal.WithFrequency(c.frequency.Load()),
		signal.WithAmplitude(glottalLevel),
	)
	if err != nil {
		return err
	}

	filter, err := biquad.NewFilter(sampleRate, biquad.KindBandpass, fricativeFrequency, fricativeQ)
	if err != nil {
		return err
	}

	c.glottis = glottis
	c.noise = signal.NewNoise(noiseSeed)
	c.noiseFilter = filter
	c.articulated = false

	return nil
}

// Update reads the articulation, pitch and fricative inputs.
func (c *TractController) Update(ctx UpdateContext) {
	for i, in := range c.articulationIn {
		if in.Update(ctx.CV) {
			c.articulation[i].Store(in.Value())
		}
	}

	if c.pitch.Update(ctx.CV) {
		c.frequency.Store(c.pitch.Value())
	}

	if c.fricative.Update(ctx.CV) {
		c.noiseLevel.Store(c.fricative.Value())
	}

	c.refreshPage()
}

// Process renders the voice to both output channels. The audio input is
// not used.
func (c *TractController) Process(_, out [][]float64) {
	if c.glottis == nil {
		silence(out)
		return
	}

	c.articulate()
	c.glottis.SetFrequency(c.frequency.Load())

	level := c.noiseLevel.Load()
	n := frames(out)
	outL, outR := stereo(out)

	for i := range n {
		excitation := c.glottis.Process()
		if level > 0 {
			excitation += level * c.noiseFilter.ProcessSample(c.noise.Process())
		}

		s := c.voice.Process(float64(i)/float64(n), excitation)
		outL[i] = s
		outR[i] = s
	}

	if f, ok := c.voice.(BlockFinisher); ok {
		f.FinishBlock()
	}
}

func (c *TractController) articulate() {
	a, ok := c.voice.(Articulator)
	if !ok {
		return
	}

	var next [4]float64
	for i := range next {
		next[i] = c.articulation[i].Load()
	}

	if c.articulated && next == c.applied {
		return
	}

	a.SetTongue(next[tongueIndex], next[tongueDiameter])
	a.SetConstriction(next[constrictionIndex], next[constrictionDiameter])
	c.applied = next
	c.articulated = true
}

// Page returns the display page.
func (c *TractController) Page() *ui.Page { return c.page }

// Voice returns the hosted voice unit.
func (c *TractController) Voice() VoiceUnit { return c.voice }

// Frequency returns the published glottal frequency in Hz.
func (c *TractController) Frequency() float64 { return c.frequency.Load() }

func (c *TractController) refreshPage() {
	c.page.SetLine(0, "pitch %.1f Hz", c.frequency.Load())
	c.page.SetLine(1, "tongue %.2f/%.2f",
		c.articulation[tongueIndex].Load(), c.articulation[tongueDiameter].Load())
	c.page.SetLine(2, "constr %.2f/%.2f",
		c.articulation[constrictionIndex].Load(), c.articulation[constrictionDiameter].Load())
	c.page.SetLine(3, "fricative %.2f", c.noiseLevel.Load())
}
