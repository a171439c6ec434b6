package biquad

import (
	"math"
	"testing"
)

func TestLowpassShape(t *testing.T) {
	const sr = 48000.0

	c := Lowpass(1000, DefaultQ, sr)

	if got := c.MagnitudeDB(10, sr); !almostEqual(got, 0, 0.01) {
		t.Fatalf("passband = %v dB, want 0", got)
	}

	if got := c.MagnitudeDB(1000, sr); !almostEqual(got, -3.0103, 0.01) {
		t.Fatalf("cutoff = %v dB, want -3.01", got)
	}

	if got := c.MagnitudeDB(10000, sr); got > -35 {
		t.Fatalf("stopband = %v dB, want < -35", got)
	}
}

func TestHighpassShape(t *testing.T) {
	const sr = 48000.0

	c := Highpass(1000, DefaultQ, sr)

	if got := c.MagnitudeDB(1000, sr); !almostEqual(got, -3.0103, 0.01) {
		t.Fatalf("cutoff = %v dB, want -3.01", got)
	}

	if got := c.MagnitudeDB(20000, sr); !almostEqual(got, 0, 0.05) {
		t.Fatalf("passband = %v dB, want 0", got)
	}
}

func TestBandpassPeakAtCentre(t *testing.T) {
	const sr = 48000.0

	c := Bandpass(2000, 4, sr)

	if got := c.MagnitudeDB(2000, sr); !almostEqual(got, 0, 1e-6) {
		t.Fatalf("centre = %v dB, want 0", got)
	}

	if got := c.MagnitudeDB(500, sr); got > -10 {
		t.Fatalf("two octaves below = %v dB, want < -10", got)
	}
}

func TestDesignInvalidInputs(t *testing.T) {
	zero := Coefficients{}

	for _, c := range []Coefficients{
		Lowpass(0, DefaultQ, 48000),
		Lowpass(24000, DefaultQ, 48000),
		Bandpass(1000, DefaultQ, 0),
		Highpass(math.NaN(), DefaultQ, 48000),
	} {
		if c != zero {
			t.Fatalf("expected zero coefficients, got %+v", c)
		}
	}
}

func TestFilterRetune(t *testing.T) {
	f, err := NewFilter(48000, KindLowpass, 23000, DefaultQ)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}

	if got := f.Frequency(); got != 0.45*48000 {
		t.Fatalf("Frequency() = %v, want clamp to %v", got, 0.45*48000)
	}

	f.SetFrequency(20000)

	if got := f.Frequency(); got != 20000 {
		t.Fatalf("Frequency() = %v, want 20000 kept below the limit", got)
	}

	f.SetFrequency(0.25)

	if got := f.Frequency(); got != 1 {
		t.Fatalf("Frequency() = %v, want clamp to 1", got)
	}

	if !f.Stable() {
		t.Fatal("filter at the 1 Hz floor unstable")
	}

	f.SetFrequency(500)

	if !f.Stable() {
		t.Fatal("retuned filter unstable")
	}

	if got := f.MagnitudeDB(500, 48000); !almostEqual(got, -3.0103, 0.01) {
		t.Fatalf("cutoff = %v dB, want -3.01", got)
	}

	f.SetKind(KindBandpass)

	if got := f.MagnitudeDB(500, 48000); !almostEqual(got, 0, 1e-6) {
		t.Fatalf("bandpass centre = %v dB, want 0", got)
	}
}

func TestNewFilterValidation(t *testing.T) {
	if _, err := NewFilter(0, KindLowpass, 1000, DefaultQ); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewFilter(48000, Kind(9), 1000, DefaultQ); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
