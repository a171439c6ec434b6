package panel

// Key is one decoded panel key.
type Key int

// Panel keys. KeyChannel0 through KeyChannel0+7 select CV knobs.
const (
	KeyNone Key = iota
	KeyClockwise
	KeyCounterClockwise
	KeyPress
	KeyHold
	KeyUp
	KeyDown
	KeyCoarseUp
	KeyCoarseDown
	KeyCentre
	KeyQuit
	KeyChannel0
)

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// String returns a short key label.
func (k Key) String() string {
	if k >= KeyChannel0 && k < KeyChannel0+8 {
		return "channel " + string(rune('1'+int(k-KeyChannel0)))
	}

	switch k {
	case KeyClockwise:
		return "clockwise"
	case KeyCounterClockwise:
		return "counter-clockwise"
	case KeyPress:
		return "press"
	case KeyHold:
		return "hold"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyCoarseUp:
		return "coarse up"
	case KeyCoarseDown:
		return "coarse down"
	case KeyCentre:
		return "centre"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseKeys decodes raw terminal bytes. ANSI arrow sequences map to the
// encoder and the fine CV adjustment; unknown bytes are skipped.
func ParseKeys(b []byte) []Key {
	var keys []Key

	for i := 0; i < len(b); i++ {
		c := b[i]

		if c == keyEscape && i+2 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
			switch b[i+2] {
			case 'A':
				keys = append(keys, KeyUp)
			case 'B':
				keys = append(keys, KeyDown)
			case 'C':
				keys = append(keys, KeyClockwise)
			case 'D':
				keys = append(keys, KeyCounterClockwise)
			}

			i += 2

			continue
		}

		if k := byteKey(c); k != KeyNone {
			keys = append(keys, k)
		}
	}

	return keys
}

func byteKey(c byte) Key {
	if c >= '1' && c <= '8' {
		return KeyChannel0 + Key(c-'1')
	}

	switch c {
	case 'd', '.':
		return KeyClockwise
	case 'a', ',':
		return KeyCounterClockwise
	case ' ', '\r', '\n':
		return KeyPress
	case 'h':
		return KeyHold
	case 'w', '+', '=':
		return KeyUp
	case 's', '-':
		return KeyDown
	case ']':
		return KeyCoarseUp
	case '[':
		return KeyCoarseDown
	case '0':
		return KeyCentre
	case 'q', keyCtrlC:
		return KeyQuit
	default:
		return KeyNone
	}
}
