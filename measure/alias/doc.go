// Package alias measures how much of a periodic signal's energy lies off
// its harmonic series.
//
// A band-limited oscillator at f0 only produces energy at integer multiples
// of f0 below Nyquist. Any partial above Nyquist in a naive waveform folds
// back to a non-harmonic frequency. Analyze windows and transforms a
// captured signal, assigns every bin to the nearest harmonic mainlobe or to
// the alias floor, and reports the power ratio between the two.
package alias
