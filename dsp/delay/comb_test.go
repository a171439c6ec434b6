package delay

import (
	"math"
	"testing"
)

func TestNewCombValidation(t *testing.T) {
	if _, err := NewComb(0, 0.5); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewComb(48000, 0); err == nil {
		t.Fatal("expected error for zero max delay")
	}

	if _, err := NewComb(48000, math.NaN()); err == nil {
		t.Fatal("expected error for NaN max delay")
	}
}

func TestCombImpulseResponse(t *testing.T) {
	const sampleRate = 1000.0

	c, err := NewComb(sampleRate, 0.05)
	if err != nil {
		t.Fatalf("NewComb() error = %v", err)
	}

	c.SetDelay(0.004)
	c.SetFeedback(0.5)
	c.SetDryLevel(1)
	c.SetWetLevel(1)

	buf := make([]float64, 13)
	buf[0] = 1
	c.ProcessInPlace(buf)

	want := map[int]float64{0: 1, 4: 1, 8: 0.5, 12: 0.25}
	for i, got := range buf {
		if diff := math.Abs(got - want[i]); diff > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestCombClampsParameters(t *testing.T) {
	c, err := NewComb(1000, 0.1)
	if err != nil {
		t.Fatalf("NewComb() error = %v", err)
	}

	c.SetFeedback(4)

	if got := c.Feedback(); got != MaxCombFeedback {
		t.Fatalf("Feedback() = %v, want %v", got, MaxCombFeedback)
	}

	c.SetFeedback(-4)

	if got := c.Feedback(); got != -MaxCombFeedback {
		t.Fatalf("Feedback() = %v, want %v", got, -MaxCombFeedback)
	}

	c.SetDelay(10)

	if got := c.Delay(); got != c.MaxDelay() {
		t.Fatalf("Delay() = %v, want clamp to %v", got, c.MaxDelay())
	}

	c.SetDelay(-1)

	if got := c.DelaySamples(); got != 1 {
		t.Fatalf("DelaySamples() = %v, want 1", got)
	}
}

func TestCombStableAtMaxFeedback(t *testing.T) {
	c, err := NewComb(48000, 0.01)
	if err != nil {
		t.Fatalf("NewComb() error = %v", err)
	}

	c.SetDelay(0.001)
	c.SetFeedback(1)

	peak := 0.0

	for i := range 48000 {
		x := 0.0
		if i == 0 {
			x = 1
		}

		y := c.Process(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("sample %d not finite: %v", i, y)
		}

		peak = math.Max(peak, math.Abs(y))
	}

	if peak > 1.5 {
		t.Fatalf("peak = %v, expected decaying response", peak)
	}
}

func TestCombResetClearsTail(t *testing.T) {
	c, err := NewComb(1000, 0.05)
	if err != nil {
		t.Fatalf("NewComb() error = %v", err)
	}

	c.SetDelay(0.002)
	c.Process(1)
	c.Reset()

	for i := range 10 {
		if got := c.Process(0); got != 0 {
			t.Fatalf("sample %d after reset = %v, want 0", i, got)
		}
	}
}

func BenchmarkCombProcess(b *testing.B) {
	c, _ := NewComb(48000, 0.5)
	c.SetDelay(0.0123)
	c.SetFeedback(0.7)

	buf := make([]float64, 256)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c.ProcessInPlace(buf)
	}
}
