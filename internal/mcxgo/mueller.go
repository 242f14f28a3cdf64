package mcxgo

import "gonum.org/v1/gonum/mat"

// MuellerTable holds the four independent Mueller-matrix entries
// (S11, S12, S33, S43) for unpolarized incidence on a spherically
// symmetric scatterer (§3), one row per sampled cosine mu[k]. Backed by a
// gonum *mat.Dense (NANGLES×4) instead of four parallel slices so the LUT
// writer (§6) can serialize it as a single row-major matrix.
type MuellerTable struct {
	*mat.Dense
}

// NewMuellerTable allocates a zeroed NANGLES×4 table.
func NewMuellerTable(nangles int) *MuellerTable {
	return &MuellerTable{mat.NewDense(nangles, 4, nil)}
}

// Valid checks the Mueller-matrix invariants from §8: S11 >= 0, |S12| <=
// S11 pointwise, and (when checkS43Zero is set, as after WhittleMattern)
// S43[0] == 0.
func (m *MuellerTable) Valid(checkS43Zero bool) bool {
	rows, _ := m.Dims()
	for k := 0; k < rows; k++ {
		s11, s12 := m.At(k, S11), m.At(k, S12)
		if s11 < 0 || abs64(s12) > s11+1e-9 {
			return false
		}
	}
	if checkS43Zero && rows > 0 && m.At(0, S43) != 0 {
		return false
	}
	return true
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// trapezoidalG recomputes the anisotropy g by trapezoidal integration of
// mu*S11 over the sampled phase function (§4.C), shared by MiePoly and
// WhittleMattern. The k=0 interval uses (mu[0]-1) as the substitute width,
// matching the reference's special case for the first sample.
func trapezoidalG(mu []float64, s11 []float64) float64 {
	var num, den float64
	for k := range mu {
		if k == 0 {
			width := abs64(mu[0] - 1)
			num += mu[0] * s11[0] * width
			den += s11[0] * width
			continue
		}
		width := abs64(mu[k] - mu[k-1])
		avg := (s11[k] + s11[k-1]) / 2
		num += mu[k] * avg * width
		den += avg * width
	}
	if den == 0 {
		return 0
	}
	return num / den
}
