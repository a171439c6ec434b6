package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

func ExampleFilter_SetFrequency() {
	f, err := biquad.NewFilter(48000, biquad.KindBandpass, 500, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, hz := range []float64{500, 2000} {
		f.SetFrequency(hz)
		fmt.Printf("centre %4.0f Hz: %.2f dB at centre, %.1f dB at 8 kHz\n",
			f.Frequency(), f.MagnitudeDB(hz, 48000), f.MagnitudeDB(8000, 48000))
	}
}

func ExampleNewFilter() {
	f, err := biquad.NewFilter(48000, biquad.KindLowpass, 1000, biquad.DefaultQ)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s at %.0f Hz: %.2f dB\n", f.Kind(), f.Frequency(), f.MagnitudeDB(1000, 48000))
	// Output:
	// lowpass at 1000 Hz: -3.01 dB
}
