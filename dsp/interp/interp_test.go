package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("Linear2() = %v, want 2.5", got)
	}
}

func TestInterpolatorAt(t *testing.T) {
	ramp := []float64{0, 1, 2, 3, 4}

	for _, mode := range []Mode{Linear, Hermite} {
		ip, err := NewInterpolator(mode)
		if err != nil {
			t.Fatalf("NewInterpolator(%v) error = %v", mode, err)
		}

		got := ip.At(ramp, 1.5)
		if diff := got - 1.5; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("%v: At(1.5) = %v, want 1.5", mode, got)
		}

		if got := ip.At(ramp, -3); got != 0 {
			t.Fatalf("%v: At(-3) = %v, want 0", mode, got)
		}

		if got := ip.At(ramp, 10); got != 4 {
			t.Fatalf("%v: At(10) = %v, want 4", mode, got)
		}
	}
}

func TestNewInterpolatorRejectsUnknownMode(t *testing.T) {
	if _, err := NewInterpolator(Mode(42)); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestModeString(t *testing.T) {
	if Hermite.String() != "hermite" || Linear.String() != "linear" {
		t.Fatal("unexpected mode names")
	}
}
