//go:build !fastmath

package spatial

import "math"

func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
