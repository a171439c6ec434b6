// Package effects provides the block and frame effect kernels the synth
// controllers build on.
//
//   - Vocoder: channel vocoder over up to MaxVocoderBands VocoderBand
//     stages, each a modulator band-pass, envelope follower and a carrier
//     band-pass with an optional sine carrier.
//   - GlitchLooper: gate-driven punch-in/punch-out looper over two swapping
//     sample buffers.
//
// Spatial processing lives in github.com/cwbudde/algo-synth/dsp/effects/spatial.
//
// All kernels are allocation-free after construction.
package effects
