package core

import "math"

// denormalFloor is the magnitude below which feedback state is zeroed.
const denormalFloor = 1e-30

// Clamp limits value to [lo, hi]. Swapped bounds are accepted so that
// inverted calibration ranges clamp correctly.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Max(lo, math.Min(hi, value))
}

// ClampInt limits value to [lo, hi]. Swapped bounds are accepted.
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	return max(lo, min(hi, value))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals returns 0 for values too small to matter in a feedback
// path (comb lines, filter state, envelopes) and x otherwise.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}

	return x
}
