package mcxgo

import "testing"

func TestMuellerTableValidRejectsNegativeS11(t *testing.T) {
	table := NewMuellerTable(3)
	table.Set(0, S11, -1)
	if table.Valid(false) {
		t.Fatalf("expected Valid to reject negative S11")
	}
}

func TestMuellerTableValidRejectsS12ExceedingS11(t *testing.T) {
	table := NewMuellerTable(3)
	table.Set(0, S11, 1)
	table.Set(0, S12, 2)
	if table.Valid(false) {
		t.Fatalf("expected Valid to reject |S12| > S11")
	}
}

func TestMuellerTableValidAcceptsWellFormed(t *testing.T) {
	table := NewMuellerTable(3)
	for k := 0; k < 3; k++ {
		table.Set(k, S11, 1)
		table.Set(k, S12, 0.5)
	}
	if !table.Valid(false) {
		t.Fatalf("expected well-formed table to validate")
	}
}

func TestMuellerTableValidS43ZeroCheck(t *testing.T) {
	table := NewMuellerTable(2)
	table.Set(0, S11, 1)
	table.Set(1, S11, 1)
	table.Set(0, S43, 0.1)
	if table.Valid(true) {
		t.Fatalf("expected Valid(true) to reject nonzero S43[0]")
	}
	table.Set(0, S43, 0)
	if !table.Valid(true) {
		t.Fatalf("expected Valid(true) to accept S43[0]=0")
	}
}

func TestTrapezoidalGUniformS11StaysInRange(t *testing.T) {
	mu := []float64{1, 0.5, 0, -0.5, -1}
	s11 := []float64{1, 1, 1, 1, 1}
	g := trapezoidalG(mu, s11)
	if g < -1 || g > 1 {
		t.Fatalf("g out of range: %g", g)
	}
}
