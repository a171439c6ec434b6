package window

import (
	"math"
	"testing"
)

func TestGenerateRejectsBadInput(t *testing.T) {
	if _, err := Generate(TypeHann, 0); err == nil {
		t.Fatal("expected error for zero size")
	}

	if _, err := Generate(Type(99), 16); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestGenerateSymmetric(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackman, TypeBlackmanHarris4Term, TypeFlatTop} {
		t.Run(typ.String(), func(t *testing.T) {
			w, err := Generate(typ, 65)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("asymmetric at %d: %g vs %g", i, w[i], w[len(w)-1-i])
				}
			}

			if math.Abs(w[32]-1) > 1e-3 {
				t.Fatalf("peak = %g, want ~1", w[32])
			}
		})
	}
}

func TestGeneratePeriodic(t *testing.T) {
	w, err := Generate(TypeHann, 8, WithPeriodic())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if math.Abs(w[4]-1) > 1e-12 || w[0] != 0 {
		t.Fatalf("periodic Hann = %v", w)
	}
}

func TestCoherentGainAndENBW(t *testing.T) {
	tests := []struct {
		typ  Type
		gain float64
		enbw float64
	}{
		{typ: TypeRectangular, gain: 1, enbw: 1},
		{typ: TypeHann, gain: 0.5, enbw: 1.5},
		{typ: TypeBlackmanHarris4Term, gain: 0.35875, enbw: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			w, err := Generate(tt.typ, 4096, WithPeriodic())
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if got := CoherentGain(w); math.Abs(got-tt.gain) > 1e-6 {
				t.Fatalf("CoherentGain() = %g, want %g", got, tt.gain)
			}

			enbw, err := EquivalentNoiseBandwidth(w)
			if err != nil {
				t.Fatalf("EquivalentNoiseBandwidth() error = %v", err)
			}

			if math.Abs(enbw-tt.enbw) > 0.01 {
				t.Fatalf("ENBW = %g, want %g", enbw, tt.enbw)
			}
		})
	}
}

func TestFirstMinimumBins(t *testing.T) {
	if FirstMinimumBins(TypeBlackmanHarris4Term) != 4 || FirstMinimumBins(Type(42)) != 0 {
		t.Fatal("unexpected first minimum bins")
	}
}

func BenchmarkApply(b *testing.B) {
	buf := make([]float64, 4096)

	for range b.N {
		for i := range buf {
			buf[i] = 1
		}

		if err := Apply(TypeBlackmanHarris4Term, buf); err != nil {
			b.Fatal(err)
		}
	}
}
