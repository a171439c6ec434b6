package alias_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/measure/alias"
)

func ExampleAnalyze() {
	sampleRate := 48000.0
	fftSize := 4096
	fundamental := 32 * sampleRate / float64(fftSize)

	signal := make([]float64, fftSize)
	for i := range signal {
		t := float64(i) / sampleRate
		signal[i] = math.Sin(2*math.Pi*fundamental*t) + 0.25*math.Sin(2*math.Pi*3*fundamental*t)
	}

	res, err := alias.Analyze(signal, alias.Config{SampleRate: sampleRate, Fundamental: fundamental})
	if err != nil {
		panic(err)
	}

	fmt.Printf("H3: %.2f\n", res.Harmonics[1])
	fmt.Printf("aliases below -100 dB: %t\n", res.AliasDB < -100)
	// Output:
	// H3: 0.25
	// aliases below -100 dB: true
}
