package mcxgo

import (
	"errors"
	"math"
	"testing"
)

func sampledMu(n int) []float64 {
	mu := make([]float64, n)
	for k := range mu {
		mu[k] = 1 - 2*float64(k)/float64(n-1)
	}
	return mu
}

func TestMieRejectsNonPositiveX(t *testing.T) {
	mu := sampledMu(NANGLES)
	_, _, _, err := Mie(0, complex(1.33, 0), mu)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMieRejectsTooLargeX(t *testing.T) {
	mu := sampledMu(NANGLES)
	_, _, _, err := Mie(mieMaxX+1, complex(1.33, 0), mu)
	if !errors.Is(err, ErrUnvalidated) {
		t.Fatalf("expected ErrUnvalidated, got %v", err)
	}
}

func TestMieDispatchesToSmallMieBelowCutoff(t *testing.T) {
	mu := sampledMu(NANGLES)
	m := complex(1.33, 0)
	x := 0.05 // |m|*x = 0.0665 < 0.1

	table, qsca, g, err := Mie(x, m, mu)
	if err != nil {
		t.Fatalf("Mie error: %v", err)
	}
	wantTable, wantQsca, wantG, err := smallMie(x, m, mu)
	if err != nil {
		t.Fatalf("smallMie error: %v", err)
	}
	if math.Abs(qsca-wantQsca) > 1e-12 {
		t.Fatalf("qsca mismatch: got %g want %g", qsca, wantQsca)
	}
	if math.Abs(g-wantG) > 1e-12 {
		t.Fatalf("g mismatch: got %g want %g", g, wantG)
	}
	rows, _ := table.Dims()
	for k := 0; k < rows; k++ {
		if math.Abs(table.At(k, S11)-wantTable.At(k, S11)) > 1e-12 {
			t.Fatalf("S11[%d] mismatch: got %g want %g", k, table.At(k, S11), wantTable.At(k, S11))
		}
	}
}

func TestMieNoContrastGivesZeroScattering(t *testing.T) {
	mu := sampledMu(NANGLES)
	m := complex(1, 0) // scatterer matches the medium exactly
	_, qsca, _, err := Mie(2.0, m, mu)
	if err != nil {
		t.Fatalf("Mie error: %v", err)
	}
	if math.Abs(qsca) > 1e-9 {
		t.Fatalf("expected qsca ~ 0 for no index contrast, got %g", qsca)
	}
}

func TestMieMuellerInvariantsHold(t *testing.T) {
	mu := sampledMu(NANGLES)
	m := complex(1.59, -0.001)
	table, qsca, g, err := Mie(5.0, m, mu)
	if err != nil {
		t.Fatalf("Mie error: %v", err)
	}
	if !table.Valid(false) {
		t.Fatalf("Mueller table invariants violated")
	}
	if qsca < 0 {
		t.Fatalf("qsca must be non-negative, got %g", qsca)
	}
	if g < -1 || g > 1 {
		t.Fatalf("g out of [-1,1]: %g", g)
	}
}
