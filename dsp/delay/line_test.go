package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

var lineModes = []interp.Mode{interp.Linear, interp.Hermite}

// newRamp returns a line of size holding 0, 1, ..., size-1, so that
// Read(k) == size-k.
func newRamp(t testing.TB, size int, mode interp.Mode) *Line {
	t.Helper()

	d, err := New(size, WithMode(mode))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range size {
		d.Write(float64(i))
	}

	return d
}

func TestNewLine(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Fatalf("New(%d) error = nil, want error", size)
		}
	}

	d, err := New(16, WithMode(interp.Mode(7)), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Len() != 16 || d.Mode() != interp.Hermite {
		t.Fatalf("Len()/Mode() = %d/%v, want 16/hermite", d.Len(), d.Mode())
	}

	if got := d.MaxFractionalDelay(); got != 13 {
		t.Fatalf("MaxFractionalDelay() = %v, want 13", got)
	}
}

func TestLineIntegerReads(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Ten writes wrap the four-slot buffer twice.
	for i := range 10 {
		d.Write(float64(i))
	}

	tests := []struct {
		delay int
		want  float64
	}{
		{delay: 1, want: 9},
		{delay: 2, want: 8},
		{delay: 4, want: 6},
		{delay: 5, want: 9},
		{delay: 0, want: 6},
	}

	for _, tt := range tests {
		if got := d.Read(tt.delay); got != tt.want {
			t.Fatalf("Read(%d) = %v, want %v", tt.delay, got, tt.want)
		}
	}

	d.Reset()

	for k := range 4 {
		if got := d.Read(k); got != 0 {
			t.Fatalf("Read(%d) after Reset = %v, want 0", k, got)
		}
	}
}

func TestLineFractionalReads(t *testing.T) {
	tests := []struct {
		name  string
		delay float64
		want  float64
	}{
		{name: "half sample", delay: 3.5, want: 12.5},
		{name: "integer", delay: 7, want: 9},
		{name: "below one clamps", delay: -1, want: 15},
		{name: "NaN clamps", delay: math.NaN(), want: 15},
		{name: "too long clamps", delay: 100, want: 3},
	}

	for _, mode := range lineModes {
		d := newRamp(t, 16, mode)

		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				if got := d.ReadFractional(tt.delay); math.Abs(got-tt.want) > 1e-10 {
					t.Fatalf("ReadFractional(%v) = %v, want %v", tt.delay, got, tt.want)
				}
			})
		}
	}
}

func TestLineFractionalSineAccuracy(t *testing.T) {
	const (
		size  = 256
		cycle = 0.02
		delay = 20.37
	)

	tolerance := map[interp.Mode]float64{interp.Linear: 0.01, interp.Hermite: 1e-4}

	for _, mode := range lineModes {
		d, err := New(size, WithMode(mode))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		for i := range size {
			d.Write(math.Sin(2 * math.Pi * cycle * float64(i)))
		}

		want := math.Sin(2 * math.Pi * cycle * (size - delay))
		if got := d.ReadFractional(delay); math.Abs(got-want) > tolerance[mode] {
			t.Fatalf("%v: ReadFractional(%v) = %v, want %v", mode, delay, got, want)
		}
	}
}

func BenchmarkLineReadFractional(b *testing.B) {
	for _, mode := range lineModes {
		b.Run(mode.String(), func(b *testing.B) {
			d := newRamp(b, 1024, mode)

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				d.ReadFractional(100.37)
			}
		})
	}
}
