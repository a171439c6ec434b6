// Package svf implements a trapezoidal state-variable filter with
// simultaneous low-pass, band-pass and high-pass outputs. Its coefficients
// are cheap to recompute, so it is used wherever a filter is retuned at
// control rate (vocoder bands, fricative noise shaping).
package svf
