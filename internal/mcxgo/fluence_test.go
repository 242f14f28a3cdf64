package mcxgo

import "testing"

func TestFluenceGridAddAccumulates(t *testing.T) {
	f := NewFluenceGrid(2, 2, 2)
	f.Add(0, 0, 0, 1.5)
	f.Add(0, 0, 0, 2.5)
	if got := f.At(0, 0, 0); got != 4 {
		t.Fatalf("expected accumulated 4, got %g", got)
	}
	if got := f.At(1, 1, 1); got != 0 {
		t.Fatalf("untouched voxel should stay zero, got %g", got)
	}
}

func TestShadowGridMergeMatchesDirectAdd(t *testing.T) {
	direct := NewFluenceGrid(3, 3, 3)
	direct.Add(1, 1, 1, 2)
	direct.Add(1, 1, 1, 3)
	direct.Add(2, 0, 1, 5)

	viaShadow := NewFluenceGrid(3, 3, 3)
	s := viaShadow.NewShadowGrid()
	viaShadow.AddShadow(s, 1, 1, 1, 2)
	viaShadow.AddShadow(s, 1, 1, 1, 3)
	viaShadow.AddShadow(s, 2, 0, 1, 5)
	viaShadow.Merge(s)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				if direct.At(i, j, k) != viaShadow.At(i, j, k) {
					t.Fatalf("sharded-lock and shadow-grid strategies disagree at (%d,%d,%d): %g != %g",
						i, j, k, direct.At(i, j, k), viaShadow.At(i, j, k))
				}
			}
		}
	}
}

func TestFluenceGridSumMatchesManualTotal(t *testing.T) {
	f := NewFluenceGrid(2, 2, 2)
	f.Add(0, 0, 0, 1)
	f.Add(1, 1, 1, 2)
	f.Add(0, 1, 0, 3)
	if got := f.Sum(); got != 6 {
		t.Fatalf("Sum mismatch: got %g want 6", got)
	}
}

func TestFluenceGridNonNegativeAndMonotone(t *testing.T) {
	f := NewFluenceGrid(2, 2, 2)
	if !f.NonNegativeAndMonotone() {
		t.Fatalf("freshly allocated grid should be non-negative")
	}
	f.Add(0, 0, 0, 1)
	if !f.NonNegativeAndMonotone() {
		t.Fatalf("grid with only positive deposits should stay non-negative")
	}
}
