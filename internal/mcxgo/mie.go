package mcxgo

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Mie computes the scattering efficiency, anisotropy, and discretized
// Mueller matrix for a single (size parameter, relative refractive index)
// pair (§4.B), ported from the reference Mie() in mcx_mie.cpp. x is the
// size parameter, m the complex relative index (m_r >= 0, m_i <= 0 by the
// time-dependence convention noted in §4.B), mu the precomputed sampled
// cosines.
func Mie(x float64, m complex128, mu []float64) (*MuellerTable, float64, float64, error) {
	if x <= 0 {
		return nil, 0, 0, fmt.Errorf("size parameter x=%g must be positive: %w", x, ErrInvalidInput)
	}
	if x > mieMaxX {
		return nil, 0, 0, fmt.Errorf("size parameter x=%g exceeds validated range: %w", x, ErrUnvalidated)
	}

	mr, mi := real(m), imag(m)
	if (mr == 0 && x < 0.1) || (mr > 0 && cmplx.Abs(m)*x < 0.1) {
		return smallMie(x, m, mu)
	}

	nstop := int(math.Floor(x + 4.05*math.Cbrt(x) + 2.0))
	nangles := len(mu)

	s1 := make([]complex128, nangles)
	s2 := make([]complex128, nangles)
	pi0 := make([]float64, nangles)
	pi1 := make([]float64, nangles)
	tau := make([]float64, nangles)
	for k := range pi1 {
		pi1[k] = 1.0
	}

	var d []complex128
	if mr > 0 {
		z := complex(x, 0) * m
		d = make([]complex128, nstop+1)
		if math.Abs(mi*x) < (13.78*mr-10.8)*mr+3.9 {
			DnUp(z, nstop, d)
		} else if err := DnDown(z, nstop, d); err != nil {
			return nil, 0, 0, err
		}
	}

	psi0 := math.Sin(x)
	psi1 := psi0/x - math.Cos(x)
	xi0 := complex(psi0, math.Cos(x))
	xi1 := complex(psi1, math.Cos(x)/x+math.Sin(x))

	var qsca, g float64
	var anm1, bnm1 complex128

	for n := 1; n <= nstop; n++ {
		var an, bn complex128
		switch {
		case mr == 0:
			an = complex(float64(n)*psi1/x-psi0, 0) / (complex(float64(n)/x, 0)*xi1 - xi0)
			bn = complex(psi1, 0) / xi1
		case mi == 0:
			z1 := complex(real(d[n])/mr+float64(n)/x, 0)
			an = complex(real(z1)*psi1-psi0, 0) / (z1*xi1 - xi0)
			z1 = complex(real(d[n])*mr+float64(n)/x, 0)
			bn = complex(real(z1)*psi1-psi0, 0) / (z1*xi1 - xi0)
		default:
			z1 := d[n]/m + complex(float64(n)/x, 0)
			an = complex(real(z1)*psi1-psi0, imag(z1)*psi1) / (z1*xi1 - xi0)
			z1 = d[n]*m + complex(float64(n)/x, 0)
			bn = complex(real(z1)*psi1-psi0, imag(z1)*psi1) / (z1*xi1 - xi0)
		}

		for k := 0; k < nangles; k++ {
			factor := (2.0*float64(n) + 1.0) / float64(n+1) / float64(n)
			tau[k] = float64(n)*mu[k]*pi1[k] - float64(n+1)*pi0[k]
			alpha := factor * pi1[k]
			beta := factor * tau[k]
			s1[k] += complex(alpha*real(an)+beta*real(bn), alpha*imag(an)+beta*imag(bn))
			s2[k] += complex(alpha*real(bn)+beta*real(an), alpha*imag(bn)+beta*imag(an))
		}

		for k := 0; k < nangles; k++ {
			prev := pi1[k]
			pi1[k] = ((2.0*float64(n)+1.0)*mu[k]*pi1[k] - float64(n+1)*pi0[k]) / float64(n)
			pi0[k] = prev
		}

		factor := 2.0*float64(n) + 1.0
		g += (float64(n) - 1.0/float64(n)) * (real(anm1)*real(an) + imag(anm1)*imag(an) + real(bnm1)*real(bn) + imag(bnm1)*imag(bn))
		g += factor / float64(n) / float64(n+1) * (real(an)*real(bn) + imag(an)*imag(bn))
		qsca += factor * (cmplx.Abs(an)*cmplx.Abs(an) + cmplx.Abs(bn)*cmplx.Abs(bn))

		factor = (2.0*float64(n) + 1.0) / x
		xi := complex(factor, 0)*xi1 - xi0
		xi0, xi1 = xi1, xi
		psi0, psi1 = psi1, real(xi1)
		anm1, bnm1 = an, bn
	}

	qsca *= 2.0 / (x * x)
	g *= 4.0 / qsca / (x * x)

	table := NewMuellerTable(nangles)
	for k := 0; k < nangles; k++ {
		a1, a2 := cmplx.Abs(s1[k]), cmplx.Abs(s2[k])
		cross := cmplx.Conj(s1[k]) * s2[k]
		table.Set(k, S11, 0.5*a2*a2+0.5*a1*a1)
		table.Set(k, S12, 0.5*a2*a2-0.5*a1*a1)
		table.Set(k, S33, real(cross))
		table.Set(k, S43, imag(cross))
	}

	return table, qsca, g, nil
}
