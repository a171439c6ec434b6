package panel

import "testing"

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{name: "arrows", in: "\x1b[C\x1b[D\x1b[A\x1b[B", want: []Key{KeyClockwise, KeyCounterClockwise, KeyUp, KeyDown}},
		{name: "application arrows", in: "\x1bOC", want: []Key{KeyClockwise}},
		{name: "letters", in: "adhws", want: []Key{KeyCounterClockwise, KeyClockwise, KeyHold, KeyUp, KeyDown}},
		{name: "channels", in: "18", want: []Key{KeyChannel0, KeyChannel0 + 7}},
		{name: "press and quit", in: " \rq", want: []Key{KeyPress, KeyPress, KeyQuit}},
		{name: "coarse and centre", in: "[]0", want: []Key{KeyCoarseDown, KeyCoarseUp, KeyCentre}},
		{name: "ctrl-c", in: "\x03", want: []Key{KeyQuit}},
		{name: "unknown skipped", in: "xyz9", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeys([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("ParseKeys(%q) = %v, want %v", tt.in, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ParseKeys(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	if got := (KeyChannel0 + 2).String(); got != "channel 3" {
		t.Fatalf("String() = %q, want %q", got, "channel 3")
	}

	if got := KeyHold.String(); got != "hold" {
		t.Fatalf("String() = %q, want %q", got, "hold")
	}
}
