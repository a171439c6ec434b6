// Package panel emulates the synth front panel on a terminal: arrow keys
// turn the encoder, the space bar and the hold key drive the push button
// and the number keys pick a CV knob to adjust.
package panel
