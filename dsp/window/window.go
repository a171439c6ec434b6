package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
)

var errZeroCoherentGain = errors.New("window: coherent gain is zero")

// cosine-sum coefficients a0 - a1 cos + a2 cos2 - ...
var cosineTerms = map[Type][]float64{
	TypeRectangular:         {1},
	TypeHann:                {0.5, 0.5},
	TypeBlackman:            {0.42, 0.5, 0.08},
	TypeBlackmanHarris4Term: {0.35875, 0.48829, 0.14128, 0.01168},
	TypeFlatTop:             {0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368},
}

// mainlobe half-width in bins, from the centre to the first null
var firstMinimumBins = map[Type]int{
	TypeRectangular:         1,
	TypeHann:                2,
	TypeBlackman:            3,
	TypeBlackmanHarris4Term: 4,
	TypeFlatTop:             5,
}

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeBlackman:
		return "Blackman"
	case TypeBlackmanHarris4Term:
		return "Blackman-Harris"
	case TypeFlatTop:
		return "Flat Top"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing instead of
// the symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window: size must be > 0: %d", length)
	}

	terms, ok := cosineTerms[t]
	if !ok {
		return nil, fmt.Errorf("window: unknown type: %v", t)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out, nil
	}

	denom := float64(length - 1)
	if cfg.periodic {
		denom = float64(length)
	}

	for i := range out {
		x := 2 * math.Pi * float64(i) / denom

		sign := 1.0
		for k, a := range terms {
			out[i] += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}
	}

	return out, nil
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) error {
	if len(buf) == 0 {
		return nil
	}

	coeffs, err := Generate(t, len(buf), opts...)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// CoherentGain returns the mean of the coefficients.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	var sum float64
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

// EquivalentNoiseBandwidth returns the ENBW in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errors.New("window: coefficients must not be empty")
	}

	var sum, sumSquares float64
	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// FirstMinimumBins returns the distance in bins from the mainlobe centre to
// its first null, or 0 for unknown types.
func FirstMinimumBins(t Type) int {
	return firstMinimumBins[t]
}
