package input

import "fmt"

// Channel identifies one analog control input.
type Channel int

// Analog channels.
const (
	A0 Channel = iota
	A1
	A2
	A3
	A4
	A5
	A6
	A7

	ChannelCount = 8
)

// String returns the channel label, e.g. "A3".
func (c Channel) String() string {
	if c < 0 || c >= ChannelCount {
		return fmt.Sprintf("Channel(%d)", int(c))
	}

	return fmt.Sprintf("A%d", int(c))
}

// Valid reports whether c names an existing channel.
func (c Channel) Valid() bool {
	return c >= 0 && c < ChannelCount
}

// Reader supplies raw channel readings in the calibration domain, for
// example volts.
type Reader interface {
	Read(ch Channel) float64
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ch Channel) float64

// Read calls f(ch).
func (f ReaderFunc) Read(ch Channel) float64 { return f(ch) }

// Values is a fixed set of channel readings. It implements Reader.
type Values [ChannelCount]float64

// Read returns the stored value for ch, or 0 for unknown channels.
func (v *Values) Read(ch Channel) float64 {
	if !ch.Valid() {
		return 0
	}

	return v[ch]
}
