package delay

import "testing"

func TestMultiTapIndependentTaps(t *testing.T) {
	m, err := NewMultiTap(64, 2)
	if err != nil {
		t.Fatalf("NewMultiTap() error = %v", err)
	}

	m.SetTapDelay(0, 3)
	m.SetTapDelay(1, 10)

	for i := range 32 {
		m.Write(float64(i))
	}

	if got := m.Read(0); got != 29 {
		t.Fatalf("Read(0) = %v, want 29", got)
	}

	if got := m.Read(1); got != 22 {
		t.Fatalf("Read(1) = %v, want 22", got)
	}
}

func TestMultiTapClampsDelay(t *testing.T) {
	m, err := NewMultiTap(16, 1)
	if err != nil {
		t.Fatalf("NewMultiTap() error = %v", err)
	}

	m.SetTapDelay(0, 1000)

	if got := m.TapDelay(0); got != m.MaxDelay() {
		t.Fatalf("TapDelay(0) = %v, want %v", got, m.MaxDelay())
	}

	m.SetTapDelay(5, 3)

	if got := m.Read(5); got != 0 {
		t.Fatalf("Read(5) = %v, want 0 for missing tap", got)
	}
}

func TestNewMultiTapValidation(t *testing.T) {
	if _, err := NewMultiTap(16, 0); err == nil {
		t.Fatal("expected error for zero taps")
	}

	if _, err := NewMultiTap(0, 2); err == nil {
		t.Fatal("expected error for zero size")
	}
}
