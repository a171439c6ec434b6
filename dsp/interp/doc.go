// Package interp provides interpolation primitives used by delay lines,
// loop buffers and sample-rate conversion.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (good default)
//
// The [Mode] enum selects the algorithm for buffer readers such as
// [Interpolator].
package interp
