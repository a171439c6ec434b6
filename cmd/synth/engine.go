package main

import (
	"fmt"

	"github.com/cwbudde/algo-synth/synth/controller"
)

// controllerNames lists the controllers in selection order.
var controllerNames = []string{"wave", "comb", "glitch", "vocoder", "spatial", "tract"}

func buildControllers() ([]controller.Controller, error) {
	wave, err := controller.NewWaveController()
	if err != nil {
		return nil, err
	}

	comb, err := controller.NewCombFilterController()
	if err != nil {
		return nil, err
	}

	glitch, err := controller.NewGlitchLoopController()
	if err != nil {
		return nil, err
	}

	vocoder, err := controller.NewVocoderController()
	if err != nil {
		return nil, err
	}

	spatial, err := controller.NewSpatializerController()
	if err != nil {
		return nil, err
	}

	tract, err := controller.NewTractController(controller.NewFormantVoice())
	if err != nil {
		return nil, err
	}

	return []controller.Controller{wave, comb, glitch, vocoder, spatial, tract}, nil
}

func controllerIndex(name string) (int, error) {
	for i, n := range controllerNames {
		if n == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown controller %q (one of %v)", name, controllerNames)
}
