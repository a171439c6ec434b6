package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		lo, hi float64
		want   float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, want: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, want: 0},
		{name: "above", value: 2, lo: 0, hi: 1, want: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, want: 1},
		{name: "inverted calibration", value: 0.1, lo: 2, hi: 0.3, want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(20, 1, 16); got != 16 {
		t.Fatalf("ClampInt(20, 1, 16) = %d, want 16", got)
	}

	if got := ClampInt(-3, 16, 1); got != 1 {
		t.Fatalf("ClampInt(-3, 16, 1) = %d, want 1", got)
	}
}

func TestFlushDenormals(t *testing.T) {
	for _, x := range []float64{1e-35, -1e-35, 0} {
		if got := FlushDenormals(x); got != 0 {
			t.Fatalf("FlushDenormals(%v) = %v, want 0", x, got)
		}
	}

	if got := FlushDenormals(-0.25); got != -0.25 {
		t.Fatalf("FlushDenormals(-0.25) = %v, want -0.25", got)
	}
}

func TestIsFinite(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(x) {
			t.Fatalf("IsFinite(%v) = true", x)
		}
	}

	if !IsFinite(0.5) {
		t.Fatal("IsFinite(0.5) = false")
	}
}
