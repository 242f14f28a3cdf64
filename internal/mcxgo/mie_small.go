package mcxgo

import "math/cmplx"

// smallMie computes the Rayleigh-plus-correction closed forms for a, b
// when x or |m|*x falls below the small-particle cutoff (§4.B), ported
// from the reference small_Mie(). It is also reached by Mie when m_r = 0
// and x < 0.1, or m_r > 0 and |m|x < 0.1.
func smallMie(x float64, m complex128, mu []float64) (*MuellerTable, float64, float64, error) {
	mr := real(m)
	m2 := m * m
	m4 := m2 * m2
	x2, x3, x4 := x*x, x*x*x, x*x*x*x
	z0 := complex(-imag(m2), real(m2)-1.0)

	var ahat1 complex128
	{
		var z3, d complex128
		if mr == 0 {
			z3 = complex(0, 2.0/3.0*(1.0-0.2*x2))
			d = complex(1.0-0.5*x2, 2.0/3.0*x3)
		} else {
			z1 := 2.0 / 3.0 * z0
			z2 := complex(1.0-0.1*x2+(4.0*real(m2)+5.0)*x4/1400.0, 4.0*x4*imag(m2)/1400.0)
			z3 = z1 * z2
			z4 := complex(x3*(1.0-0.1*x2), 0) * z1
			d = complex(
				2.0+real(m2)+(1-0.7*real(m2))*x2+(8*real(m4)-385*real(m2)+350.0)/1400*x4+real(z4),
				(-0.7*imag(m2))*x2+(8*imag(m4)-385*imag(m2))/1400*x4+imag(z4),
			)
		}
		ahat1 = z3 / d
	}

	var bhat1 complex128
	if mr == 0 {
		bhat1 = complex(0, -(1.0-0.1*x2)/3.0) / complex(1+0.5*x2, -x3/3.0)
	} else {
		z2 := complex(x2/45.0, 0) * z0
		z6 := complex(1.0+(2.0*real(m2)-5.0)*x2/70.0, imag(m2)*x2/35.0)
		z7 := complex(1.0-(2.0*real(m2)-5.0)*x2/30.0, -imag(m2)*x2/15.0)
		bhat1 = z2 * (z6 / z7)
	}

	var ahat2 complex128
	if mr == 0 {
		ahat2 = complex(0, x2/30.0)
	} else {
		z3 := complex((1.0-x2/14)*x2/15.0, 0) * z0
		z8 := complex(2.0*real(m2)+3.0-(real(m2)/7.0-0.5)*x2, 2.0*imag(m2)-imag(m2)/7.0*x2)
		ahat2 = z3 / z8
	}

	t := cmplx.Abs(ahat1)*cmplx.Abs(ahat1) + cmplx.Abs(bhat1)*cmplx.Abs(bhat1) + 5.0/3.0*cmplx.Abs(ahat2)*cmplx.Abs(ahat2)
	qsca := 6.0 * x4 * t
	g := (real(ahat1)*(real(ahat2)+real(bhat1)) + imag(ahat1)*(imag(ahat2)+imag(bhat1))) / t

	scale := x3 * 1.5
	ahat1 *= complex(scale, 0)
	bhat1 *= complex(scale, 0)
	ahat2 *= complex(scale*5.0/3.0, 0)

	nangles := len(mu)
	table := NewMuellerTable(nangles)
	for j := 0; j < nangles; j++ {
		muj := mu[j]
		angle := 2*muj*muj - 1
		s1 := ahat1 + (bhat1+ahat2)*complex(muj, 0)
		s2 := bhat1 + (ahat1+ahat2)*complex(angle, 0)

		a1, a2 := cmplx.Abs(s1), cmplx.Abs(s2)
		cross := cmplx.Conj(s1) * s2
		table.Set(j, S11, 0.5*a2*a2+0.5*a1*a1)
		table.Set(j, S12, 0.5*a2*a2-0.5*a1*a1)
		table.Set(j, S33, real(cross))
		table.Set(j, S43, imag(cross))
	}

	return table, qsca, g, nil
}
