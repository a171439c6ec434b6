package input

import (
	"fmt"
	"math"
)

// Smoothing weight presets.
const (
	SmoothingSlow = 0.05
	SmoothingFast = 0.5
)

const (
	defaultThresholdRatio = 0.001
	defaultHysteresis     = 0.1
)

// Option mutates input construction parameters.
type Option func(*config) error

type config struct {
	weight     float64
	threshold  float64 // <0 selects the default ratio of the output span
	hysteresis float64
}

func defaultConfig() config {
	return config{
		weight:     SmoothingSlow,
		threshold:  -1,
		hysteresis: defaultHysteresis,
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// WithSmoothing sets the one-pole smoothing weight in (0, 1]. A weight of 1
// disables smoothing.
func WithSmoothing(weight float64) Option {
	return func(cfg *config) error {
		if err := validateWeight(weight); err != nil {
			return err
		}

		cfg.weight = weight

		return nil
	}
}

// WithThreshold sets the minimum smoothed movement, in output units, that
// counts as a change.
func WithThreshold(threshold float64) Option {
	return func(cfg *config) error {
		if threshold < 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return fmt.Errorf("input: threshold must be >= 0: %f", threshold)
		}

		cfg.threshold = threshold

		return nil
	}
}

// WithHysteresis sets the gate hysteresis in raw units. The gate opens at
// the threshold and closes once the reading drops below threshold minus
// hysteresis.
func WithHysteresis(hysteresis float64) Option {
	return func(cfg *config) error {
		if hysteresis < 0 || math.IsNaN(hysteresis) || math.IsInf(hysteresis, 0) {
			return fmt.Errorf("input: hysteresis must be >= 0: %f", hysteresis)
		}

		cfg.hysteresis = hysteresis

		return nil
	}
}

func validateWeight(weight float64) error {
	if weight <= 0 || weight > 1 || math.IsNaN(weight) {
		return fmt.Errorf("input: smoothing weight must be in (0, 1]: %f", weight)
	}

	return nil
}

func validateRange(name string, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("input: %s range must be finite: [%f, %f]", name, lo, hi)
	}

	if lo == hi {
		return fmt.Errorf("input: %s range must not be empty: [%f, %f]", name, lo, hi)
	}

	return nil
}
