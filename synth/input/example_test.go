package input_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/synth/input"
)

func ExampleExpInput() {
	pitch, err := input.NewExpInput(input.A0, -5, 5, 20, 8000, input.WithSmoothing(1))
	if err != nil {
		panic(err)
	}

	var cv input.Values

	for _, volts := range []float64{-5, 0, 5} {
		cv[input.A0] = volts
		pitch.Update(&cv)
		fmt.Printf("%+.0f V -> %.1f Hz\n", volts, pitch.Value())
	}
	// Output:
	// -5 V -> 20.0 Hz
	// +0 V -> 400.0 Hz
	// +5 V -> 8000.0 Hz
}
