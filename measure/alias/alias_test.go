package alias

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/signal"
	"github.com/cwbudde/algo-synth/internal/testutil"
)

const (
	testSampleRate = 48000.0
	testFFTSize    = 8192
)

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		cfg    Config
	}{
		{name: "empty", signal: nil, cfg: Config{SampleRate: 48000, Fundamental: 100}},
		{name: "zero rate", signal: []float64{1}, cfg: Config{Fundamental: 100}},
		{name: "zero fundamental", signal: []float64{1}, cfg: Config{SampleRate: 48000}},
		{name: "fundamental at nyquist", signal: []float64{1}, cfg: Config{SampleRate: 48000, Fundamental: 24000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(tt.signal, tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAnalyzePureSine(t *testing.T) {
	f0 := 64 * testSampleRate / testFFTSize
	x := testutil.Sine(f0, testSampleRate, 0.5, testFFTSize)

	res, err := Analyze(x, Config{SampleRate: testSampleRate, Fundamental: f0})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.AliasDB > -120 {
		t.Fatalf("AliasDB = %g, want < -120", res.AliasDB)
	}

	for i, h := range res.Harmonics {
		if h > 1e-6 {
			t.Fatalf("harmonic %d level = %g, want ~0", i+2, h)
		}
	}

	if math.Abs(res.RMS-0.5/math.Sqrt2) > 1e-3 || math.Abs(res.Peak-0.5) > 1e-3 {
		t.Fatalf("RMS = %g Peak = %g", res.RMS, res.Peak)
	}
}

func TestAnalyzeDetectsHarmonicsAndAliases(t *testing.T) {
	f0 := 64 * testSampleRate / testFFTSize
	x := testutil.Sine(f0, testSampleRate, 1, testFFTSize)
	second := testutil.Sine(2*f0, testSampleRate, 0.1, testFFTSize)
	stray := testutil.Sine(f0*2.5, testSampleRate, 0.01, testFFTSize)

	for i := range x {
		x[i] += second[i] + stray[i]
	}

	res, err := Analyze(x, Config{SampleRate: testSampleRate, Fundamental: f0})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if math.Abs(res.Harmonics[0]-0.1) > 1e-3 {
		t.Fatalf("second harmonic = %g, want 0.1", res.Harmonics[0])
	}

	// stray power relative to 1 + 0.01 harmonic power
	want := 10 * math.Log10(0.0001/1.01)
	if math.Abs(res.AliasDB-want) > 0.5 {
		t.Fatalf("AliasDB = %g, want %g", res.AliasDB, want)
	}
}

func TestPolyBLEPSawAliasesLessThanNaiveSaw(t *testing.T) {
	f0 := testSampleRate / 97.3

	render := func(w signal.Waveform) []float64 {
		osc, err := signal.NewOscillator(testSampleRate, signal.WithFrequency(f0), signal.WithWaveform(w))
		if err != nil {
			t.Fatalf("NewOscillator() error = %v", err)
		}

		buf := make([]float64, testFFTSize)
		osc.ProcessBlock(buf)

		return buf
	}

	naive, err := Analyze(render(signal.WaveSaw), Config{SampleRate: testSampleRate, Fundamental: f0})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	blep, err := Analyze(render(signal.WavePolyBLEPSaw), Config{SampleRate: testSampleRate, Fundamental: f0})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if blep.AliasDB >= naive.AliasDB-6 {
		t.Fatalf("polyBLEP alias %g dB should be well below naive %g dB", blep.AliasDB, naive.AliasDB)
	}
}
