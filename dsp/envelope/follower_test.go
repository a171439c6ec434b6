package envelope

import (
	"math"
	"testing"
)

func TestNewFollowerValidation(t *testing.T) {
	if _, err := NewFollower(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewFollower(48000, WithAttack(0)); err == nil {
		t.Fatal("expected error for zero attack")
	}

	if _, err := NewFollower(48000, WithRelease(math.Inf(1))); err == nil {
		t.Fatal("expected error for infinite release")
	}
}

func TestFollowerTracksStep(t *testing.T) {
	f, err := NewFollower(48000, WithAttack(1), WithRelease(10))
	if err != nil {
		t.Fatalf("NewFollower() error = %v", err)
	}

	prev := 0.0

	for i := range 480 {
		env := f.Process(1)
		if env < prev || env > 1 {
			t.Fatalf("sample %d: env = %v, prev = %v", i, env, prev)
		}

		prev = env
	}

	if prev < 0.99 {
		t.Fatalf("after 10 attack constants env = %v, want > 0.99", prev)
	}

	// One release time constant decays to 1/e.
	for range 480 {
		prev = f.Process(0)
	}

	if math.Abs(prev-math.Exp(-1)) > 0.01 {
		t.Fatalf("after one release constant env = %v, want %v", prev, math.Exp(-1))
	}
}

func TestFollowerRectifies(t *testing.T) {
	f, err := NewFollower(48000)
	if err != nil {
		t.Fatalf("NewFollower() error = %v", err)
	}

	for range 4800 {
		f.Process(-0.5)
	}

	if got := f.Value(); math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("Value() = %v, want 0.5", got)
	}

	f.Reset()

	if f.Value() != 0 {
		t.Fatal("Reset() did not clear the envelope")
	}
}

func TestSetters(t *testing.T) {
	f, err := NewFollower(48000)
	if err != nil {
		t.Fatalf("NewFollower() error = %v", err)
	}

	if err := f.SetAttack(5); err != nil || f.Attack() != 5 {
		t.Fatalf("SetAttack() error = %v, Attack() = %v", err, f.Attack())
	}

	if err := f.SetRelease(-1); err == nil {
		t.Fatal("expected error for negative release")
	}
}
