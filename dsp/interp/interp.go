package interp

import "fmt"

// Mode selects an interpolation algorithm.
type Mode int

const (
	// Linear is 2-point linear interpolation.
	Linear Mode = iota
	// Hermite is 4-point cubic Hermite interpolation.
	Hermite
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}

// Interpolator reads fractional positions from a sample slice.
type Interpolator struct {
	mode Mode
}

// NewInterpolator creates an interpolator for the given mode.
func NewInterpolator(mode Mode) (*Interpolator, error) {
	if mode != Linear && mode != Hermite {
		return nil, fmt.Errorf("interp: unsupported mode: %v", mode)
	}

	return &Interpolator{mode: mode}, nil
}

// Mode returns the configured mode.
func (i *Interpolator) Mode() Mode { return i.mode }

// At reads samples at the fractional index pos. Neighbours outside the
// slice are clamped to the edge samples.
func (i *Interpolator) At(samples []float64, pos float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}

	if pos <= 0 {
		return samples[0]
	}

	if pos >= float64(n-1) {
		return samples[n-1]
	}

	idx := int(pos)
	frac := pos - float64(idx)

	at := func(k int) float64 {
		if k < 0 {
			k = 0
		}

		if k >= n {
			k = n - 1
		}

		return samples[k]
	}

	if i.mode == Linear {
		return Linear2(frac, at(idx), at(idx+1))
	}

	return Hermite4(frac, at(idx-1), at(idx), at(idx+1), at(idx+2))
}
