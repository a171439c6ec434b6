// Package signal provides audio-rate sources: the [Oscillator] with naive and
// polyBLEP band-limited waveforms, and a deterministic [Noise] generator
// used as excitation for physical-model voices.
package signal
