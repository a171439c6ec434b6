package controller

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

// Controller is one selectable voice or effect.
type Controller interface {
	// Init sizes every buffer for sampleRate. It is called once before
	// any Update or Process.
	Init(sampleRate float64) error
	// Update reads control inputs on the UI goroutine.
	Update(ctx UpdateContext)
	// Process renders one deinterleaved block on the audio goroutine.
	// Channel 0 is left and channel 1 is right.
	Process(in, out [][]float64)
	// Page returns the display page of the controller.
	Page() *ui.Page
}

// UpdateContext carries the inputs of one UI tick.
type UpdateContext struct {
	CV   input.Reader
	Turn ui.Direction
}

// Hardware bundles the collaborators MainController polls.
type Hardware struct {
	Encoder ui.Encoder
	Button  ui.Button
	Display ui.Display
	CV      input.Reader
}

func (hw Hardware) validate() error {
	switch {
	case hw.Encoder == nil:
		return errors.New("controller: hardware encoder is nil")
	case hw.Button == nil:
		return errors.New("controller: hardware button is nil")
	case hw.Display == nil:
		return errors.New("controller: hardware display is nil")
	case hw.CV == nil:
		return errors.New("controller: hardware CV reader is nil")
	}

	return nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("controller: sample rate must be > 0: %f", sampleRate)
	}

	return nil
}

// stereo returns the left and right channel of a block. A mono block
// yields the same slice twice.
func stereo(block [][]float64) ([]float64, []float64) {
	switch len(block) {
	case 0:
		return nil, nil
	case 1:
		return block[0], block[0]
	default:
		return block[0], block[1]
	}
}

// putFrame writes frame i of a stereo result. A mono block receives the
// average of both sides.
func putFrame(out [][]float64, i int, l, r float64) {
	if len(out) == 1 {
		out[0][i] = 0.5 * (l + r)
		return
	}

	out[0][i] = l
	out[1][i] = r
}

// at returns buf[i], or 0 when buf is shorter than the block.
func at(buf []float64, i int) float64 {
	if i < len(buf) {
		return buf[i]
	}

	return 0
}

// silence clears every output channel.
func silence(out [][]float64) {
	core.ZeroBlock(out)
}

// frames returns the block length.
func frames(out [][]float64) int {
	if len(out) == 0 {
		return 0
	}

	return len(out[0])
}
