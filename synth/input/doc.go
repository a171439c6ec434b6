// Package input conditions raw control-voltage readings into smoothed,
// rate-limited parameters.
//
// Every input reads one channel of a Reader per Update call. AnalogInput
// maps a calibration range linearly onto an output range and smooths the
// result with a one-pole filter. ExpInput spreads the same position over an
// exponential curve for controls that span decades, such as pitch or loop
// time. GateInput turns a channel into a boolean gate with edge detection.
// CrossfadeInput derives equal-power dry and wet levels from a position.
//
// Inputs are not safe for concurrent use; they belong to the UI goroutine.
package input
