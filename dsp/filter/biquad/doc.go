// Package biquad provides second-order IIR filter primitives.
//
// A [Section] implements Direct Form II Transposed processing for
// [Coefficients]. [Lowpass], [Highpass] and [Bandpass] design coefficients
// with the RBJ cookbook formulas, and [Filter] wraps a Section that can be
// retuned while running, as needed for distance-dependent air absorption.
package biquad
