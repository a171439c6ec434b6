package ui

import "time"

// Direction is the result of one encoder tick.
type Direction int

// Encoder directions.
const (
	None Direction = iota
	Clockwise
	CounterClockwise
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "none"
	}
}

// Encoder is a rotary encoder polled once per UI tick.
type Encoder interface {
	// Tick samples the encoder.
	Tick()
	// Direction returns the movement seen by the last Tick.
	Direction() Direction
}

// Button is a push button polled once per UI tick.
type Button interface {
	// Update samples the button.
	Update()
	// Held reports whether the button is currently down.
	Held() bool
	// Duration returns how long the button has been held.
	Duration() time.Duration
	// Pressed reports a press edge seen by the last Update.
	Pressed() bool
}

// Display shows one page at a time.
type Display interface {
	SetDisplayedPage(p *Page)
	Render()
}
