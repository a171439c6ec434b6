// Package ui defines the encoder, button and display contracts the
// controllers are driven by, and the Page a controller publishes to the
// display.
package ui
