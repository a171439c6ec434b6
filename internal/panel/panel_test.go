package panel

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestPanel(t *testing.T) (*Panel, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: time.Unix(0, 0)}

	p, err := New(WithClock(clock.now))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return p, clock
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "inverted range", opt: WithVoltageRange(5, -5)},
		{name: "infinite range", opt: WithVoltageRange(math.Inf(-1), 5)},
		{name: "zero step", opt: WithSteps(0, 1)},
		{name: "nil clock", opt: WithClock(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Fatal("New() error = nil, want error")
			}
		})
	}
}

func TestPanelEncoderConsumesOneDetentPerTick(t *testing.T) {
	p, _ := newTestPanel(t)

	p.HandleKey(KeyClockwise)
	p.HandleKey(KeyClockwise)
	p.HandleKey(KeyCounterClockwise)
	p.HandleKey(KeyCounterClockwise)
	p.HandleKey(KeyCounterClockwise)

	// Net rotation is one counter-clockwise detent.
	want := []ui.Direction{ui.CounterClockwise, ui.None}
	for i, w := range want {
		p.Tick()

		if got := p.Direction(); got != w {
			t.Fatalf("tick %d Direction() = %v, want %v", i, got, w)
		}
	}
}

func TestPanelButtonHoldAndPress(t *testing.T) {
	p, clock := newTestPanel(t)

	p.HandleKey(KeyHold)
	clock.t = clock.t.Add(1500 * time.Millisecond)

	if !p.Held() || p.Duration() != 1500*time.Millisecond {
		t.Fatalf("Held()/Duration() = %v/%v, want true/1.5s", p.Held(), p.Duration())
	}

	p.HandleKey(KeyPress)
	p.Update()

	if !p.Pressed() || p.Held() || p.Duration() != 0 {
		t.Fatalf("after press Pressed()/Held()/Duration() = %v/%v/%v, want true/false/0",
			p.Pressed(), p.Held(), p.Duration())
	}

	p.Update()

	if p.Pressed() {
		t.Fatal("Pressed() = true on the second Update, want a single edge")
	}
}

func TestPanelKnobs(t *testing.T) {
	p, _ := newTestPanel(t)

	if got := p.Read(input.A0); got != 0 {
		t.Fatalf("Read(A0) = %v, want centre 0", got)
	}

	p.HandleKey(KeyChannel0 + 3)
	p.HandleKey(KeyCoarseUp)
	p.HandleKey(KeyCoarseUp)
	p.HandleKey(KeyUp)

	if got := p.Read(input.A3); math.Abs(got-2.1) > 1e-12 {
		t.Fatalf("Read(A3) = %v, want 2.1", got)
	}

	for range 10 {
		p.HandleKey(KeyCoarseUp)
	}

	if got := p.Read(input.A3); got != DefaultMaxVoltage {
		t.Fatalf("Read(A3) = %v, want clamp at %v", got, DefaultMaxVoltage)
	}

	p.HandleKey(KeyCentre)

	if got := p.Read(input.A3); got != 0 {
		t.Fatalf("Read(A3) after centre = %v, want 0", got)
	}

	p.Set(input.A5, -9)

	if got := p.Read(input.A5); got != DefaultMinVoltage {
		t.Fatalf("Read(A5) = %v, want %v", got, DefaultMinVoltage)
	}

	if got := p.Read(input.Channel(42)); got != 0 {
		t.Fatalf("Read(invalid) = %v, want 0", got)
	}

	if p.Selected() != input.A3 {
		t.Fatalf("Selected() = %v, want A3", p.Selected())
	}

	if status := p.Status(); !strings.Contains(status, "*A3+0.0") || !strings.Contains(status, " A5-5.0") {
		t.Fatalf("Status() = %q", status)
	}
}

func TestFeedStopsAtQuit(t *testing.T) {
	p, _ := newTestPanel(t)

	if err := Feed(p, strings.NewReader("d2]q]")); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if !p.Quit() {
		t.Fatal("Quit() = false, want true")
	}

	// The trailing key after quit is not applied.
	if got := p.Read(input.A1); got != 1 {
		t.Fatalf("Read(A1) = %v, want 1", got)
	}

	p.Tick()

	if p.Direction() != ui.Clockwise {
		t.Fatalf("Direction() = %v, want clockwise", p.Direction())
	}
}
