package mcxgo

import "testing"

func TestMiePolyProducesValidTable(t *testing.T) {
	mu := sampledMu(NANGLES)
	m := complex(1.4, -0.001)
	table, qsca, g, err := MiePoly(0.5, 0.1, 1.33, 0.6328, m, mu)
	if err != nil {
		t.Fatalf("MiePoly error: %v", err)
	}
	if qsca < 0 {
		t.Fatalf("qsca must be non-negative, got %g", qsca)
	}
	if g < -1 || g > 1 {
		t.Fatalf("g out of range: %g", g)
	}
	if !table.Valid(false) {
		t.Fatalf("Mueller table invariants violated")
	}
}

func TestMiePolyNarrowDistributionApproachesMonodisperse(t *testing.T) {
	mu := sampledMu(NANGLES)
	m := complex(1.4, -0.001)
	meanR := 0.5
	lambda := 0.6328
	nMed := 1.33

	_, qscaPoly, _, err := MiePoly(meanR, 1e-4, nMed, lambda, m, mu)
	if err != nil {
		t.Fatalf("MiePoly error: %v", err)
	}
	x := 2 * 3.141592653589793 * meanR * nMed / lambda
	_, qscaMono, _, err := Mie(x, m, mu)
	if err != nil {
		t.Fatalf("Mie error: %v", err)
	}
	if qscaPoly == 0 || qscaMono == 0 {
		t.Fatalf("expected nonzero qsca: poly=%g mono=%g", qscaPoly, qscaMono)
	}
	rel := (qscaPoly - qscaMono) / qscaMono
	if rel < -0.05 || rel > 0.05 {
		t.Fatalf("narrow polydisperse distribution should approach monodisperse qsca: poly=%g mono=%g", qscaPoly, qscaMono)
	}
}
