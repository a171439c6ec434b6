// Package audio connects the synth engine to the host: a block renderer
// that feeds an oto output stream, looping file clips for the stereo input
// and WAV capture of the rendered output.
package audio
