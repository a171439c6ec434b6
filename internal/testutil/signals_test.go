package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 1, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	RequireBounded(t, s, 1)

	if math.Abs(RMS(s)-1/math.Sqrt2) > 1e-12 {
		t.Fatalf("RMS = %v, want 1/sqrt2", RMS(s))
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(42, 0.5, 64)
	b := Noise(42, 0.5, 64)
	c := Noise(43, 0.5, 64)

	RequireSliceNearlyEqual(t, a, b, 0)
	RequireBounded(t, a, 0.5)

	same := true

	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}

	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	if Peak(imp) != 1 || imp[3] != 1 || RMS(imp) != math.Sqrt(1.0/8) {
		t.Fatalf("Impulse(8, 3) = %v", imp)
	}

	if Peak(Impulse(4, 10)) != 0 {
		t.Fatal("out-of-range impulse should be silent")
	}
}

func TestBlocks(t *testing.T) {
	b := Block(2, 16)
	if len(b) != 2 || len(b[1]) != 16 {
		t.Fatalf("Block(2, 16) shape = %d x %d", len(b), len(b[1]))
	}

	x := Constant(0.25, 4)
	s := Stereo(x)
	s[0][0] = 9

	if x[0] != 0.25 || s[1][0] != 0.25 {
		t.Fatal("Stereo should copy its input into each channel")
	}

	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) should be 0")
	}
}
