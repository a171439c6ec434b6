// Package delay provides circular delay primitives: a fractional [Line],
// a write-once [MultiTap], a feedback [Comb] and the [SampleBuffer] used by
// loopers.
//
// All storage is allocated by the constructors. Read and write paths never
// allocate and clamp out-of-range delays to the allocated capacity.
package delay
