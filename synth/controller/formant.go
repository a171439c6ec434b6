package controller

import (
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

const (
	formantCount = 3
	formantQ     = 8.0
)

var formantWeights = [formantCount]float64{1, 0.6, 0.3}

// FormantVoice is a small parallel formant voice. Tongue position sets the
// first two formants, the constriction index the third, and the
// constriction diameter the output level, interpolated across each block.
// It implements VoiceUnit, Articulator and BlockFinisher.
type FormantVoice struct {
	filters [formantCount]*biquad.Filter
	freqs   [formantCount]float64

	startGain  float64
	targetGain float64
	lastGain   float64
}

// NewFormantVoice returns a voice set to a neutral vowel.
func NewFormantVoice() *FormantVoice {
	return &FormantVoice{
		freqs:      [formantCount]float64{500, 1500, 2500},
		startGain:  1,
		targetGain: 1,
		lastGain:   1,
	}
}

// Init designs the formant filters for sampleRate.
func (v *FormantVoice) Init(sampleRate float64) error {
	for i := range v.filters {
		f, err := biquad.NewFilter(sampleRate, biquad.KindBandpass, v.freqs[i], formantQ)
		if err != nil {
			return err
		}

		v.filters[i] = f
	}

	return nil
}

// SetTongue moves the tongue body. A higher index lowers the second formant
// and a larger diameter raises the first.
func (v *FormantVoice) SetTongue(index, diameter float64) {
	index = core.Clamp(index, 0, 1)
	diameter = core.Clamp(diameter, 0, 1)

	v.setFormant(0, 250+600*diameter)
	v.setFormant(1, 2300-1500*index)
}

// SetConstriction places the narrowest point of the tract. Diameters below
// 1 attenuate the output.
func (v *FormantVoice) SetConstriction(index, diameter float64) {
	v.setFormant(2, 2400+600*core.Clamp(index, 0, 1))

	v.startGain = v.lastGain
	v.targetGain = core.Clamp(diameter, 0, 1)
}

// Process filters one excitation sample.
func (v *FormantVoice) Process(lambda, excitation float64) float64 {
	if v.filters[0] == nil {
		return 0
	}

	gain := v.startGain + core.Clamp(lambda, 0, 1)*(v.targetGain-v.startGain)
	v.lastGain = gain

	var sum float64
	for i, f := range v.filters {
		sum += formantWeights[i] * f.ProcessSample(excitation)
	}

	return gain * sum
}

// Formant returns the centre frequency of formant i in Hz.
func (v *FormantVoice) Formant(i int) float64 {
	if i < 0 || i >= formantCount {
		return 0
	}

	return v.freqs[i]
}

// FinishBlock completes the gain ramp of the current block.
func (v *FormantVoice) FinishBlock() {
	v.startGain = v.targetGain
	v.lastGain = v.targetGain
}

// Gain returns the current output gain.
func (v *FormantVoice) Gain() float64 { return v.lastGain }

func (v *FormantVoice) setFormant(i int, freq float64) {
	v.freqs[i] = freq
	if v.filters[i] != nil {
		v.filters[i].SetFrequency(freq)
	}
}
