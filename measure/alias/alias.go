package alias

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-synth/dsp/window"
)

const defaultMaxHarmonics = 16

// Config holds analysis parameters.
type Config struct {
	SampleRate   float64
	Fundamental  float64
	FFTSize      int         // 0 selects the next power of two of the signal length
	Window       window.Type // zero selects Blackman-Harris 4-term
	MaxHarmonics int         // harmonic levels reported in Result.Harmonics
}

// Result holds the measured spectrum split.
type Result struct {
	Fundamental      float64
	FundamentalLevel float64
	HarmonicPower    float64
	AliasPower       float64
	AliasRatio       float64
	AliasDB          float64
	Harmonics        []float64
	RMS              float64
	Peak             float64
}

var errEmptySignal = errors.New("alias: signal is empty")

// Analyze measures signal against the harmonic series of cfg.Fundamental.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, errEmptySignal
	}

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return Result{}, fmt.Errorf("alias: sample rate must be > 0: %f", cfg.SampleRate)
	}

	if cfg.Fundamental <= 0 || cfg.Fundamental >= cfg.SampleRate/2 || math.IsNaN(cfg.Fundamental) {
		return Result{}, fmt.Errorf("alias: fundamental must be in (0, %g): %f", cfg.SampleRate/2, cfg.Fundamental)
	}

	if cfg.Window == 0 {
		cfg.Window = window.TypeBlackmanHarris4Term
	}

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	n := min(len(signal), fftSize)

	res := Result{Fundamental: cfg.Fundamental}
	res.RMS, res.Peak = levels(signal[:n])

	spectrum, err := powerSpectrum(signal[:n], fftSize, cfg.Window)
	if err != nil {
		return Result{}, err
	}

	binHz := cfg.SampleRate / float64(fftSize)
	capture := float64(max(window.FirstMinimumBins(cfg.Window), 1))
	harmonicLevels := make([]float64, cfg.MaxHarmonics)

	for k := 1; k < len(spectrum); k++ {
		h := math.Round(float64(k) * binHz / cfg.Fundamental)
		centre := h * cfg.Fundamental / binHz

		if h >= 1 && h*cfg.Fundamental < cfg.SampleRate/2 && math.Abs(float64(k)-centre) <= capture {
			res.HarmonicPower += spectrum[k]

			if idx := int(h) - 1; idx < len(harmonicLevels) {
				harmonicLevels[idx] += spectrum[k]
			}

			continue
		}

		res.AliasPower += spectrum[k]
	}

	res.FundamentalLevel = math.Sqrt(harmonicLevels[0])
	if res.FundamentalLevel > 0 {
		for _, p := range harmonicLevels[1:] {
			res.Harmonics = append(res.Harmonics, math.Sqrt(p)/res.FundamentalLevel)
		}
	}

	if res.HarmonicPower > 0 {
		res.AliasRatio = res.AliasPower / res.HarmonicPower
		res.AliasDB = powerToDB(res.AliasRatio)
	} else {
		res.AliasDB = math.Inf(1)
	}

	return res, nil
}

// powerSpectrum windows x, zero-pads it to fftSize and returns the squared
// magnitudes of bins [0..fftSize/2].
func powerSpectrum(x []float64, fftSize int, typ window.Type) ([]float64, error) {
	coeffs, err := window.Generate(typ, len(x), window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("alias: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("alias: fft: %w", err)
	}

	power := make([]float64, fftSize/2+1)
	for i := range power {
		re, im := real(out[i]), imag(out[i])
		power[i] = re*re + im*im
	}

	return power, nil
}

func levels(x []float64) (rms, peak float64) {
	var sum float64
	for _, v := range x {
		sum += v * v
		peak = max(peak, math.Abs(v))
	}

	return math.Sqrt(sum / float64(len(x))), peak
}

func powerToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(v)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
