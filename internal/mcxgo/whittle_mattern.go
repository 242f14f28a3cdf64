package mcxgo

import "math"

// WhittleMattern computes the closed-form spectral phase function for a
// continuous random medium (§4.C), characterized by correlation length lc
// and fractal dimension d. Ported from the reference WhittleMattern().
func WhittleMattern(lc, d float64, mu []float64, lambda float64) (*MuellerTable, float64) {
	nangles := len(mu)
	klc := 2 * math.Pi * lc / lambda

	s11 := make([]float64, nangles)
	table := NewMuellerTable(nangles)

	for k := 0; k < nangles; k++ {
		theta := float64(k) * math.Pi / float64(nangles)
		spectral := 1.0 / math.Pow(1+4*klc*klc*sinSquared(float64(k)*math.Pi/float64(nangles)/2), d/2)
		cosTheta := math.Cos(theta)
		s11[k] = (1 + cosTheta*cosTheta) * spectral
		s12 := (cosTheta*cosTheta - 1) * spectral
		s33 := 2 * cosTheta * spectral

		table.Set(k, S11, s11[k])
		table.Set(k, S12, s12)
		table.Set(k, S33, s33)
		table.Set(k, S43, 0)
	}

	g := trapezoidalG(mu, s11)
	return table, g
}

func sinSquared(x float64) float64 {
	s := math.Sin(x)
	return s * s
}
