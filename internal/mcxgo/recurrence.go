package mcxgo

import (
	"fmt"
	"math/cmplx"
)

// LentzDn seeds the logarithmic derivative of the Riccati-Bessel psi_n at
// order n via a Lentz continued fraction (§4.A). Ported from the reference
// Lentz_Dn, with the iteration cap from §7's ConvergenceFailure taxonomy
// added (the reference loops unconditionally on the ratio test).
func LentzDn(z complex128, n int) (complex128, error) {
	zinv := 2 / z
	alpha := (complex(float64(n), 0) + 0.5) * zinv
	aj := (complex(float64(-n), 0) - 1.5) * zinv
	alphaJ1 := aj + 1/alpha
	alphaJ2 := aj
	ratio := alphaJ1 / alphaJ2
	runRatio := alpha * ratio

	for iter := 0; ; iter++ {
		aj = zinv - aj
		alphaJ1 = 1/alphaJ1 + aj
		alphaJ2 = 1/alphaJ2 + aj
		ratio = alphaJ1 / alphaJ2
		zinv = -zinv
		runRatio *= ratio

		if cmplx.Abs(ratio-1) <= lentzTol {
			break
		}
		if iter >= lentzMaxIter {
			return 0, fmt.Errorf("LentzDn(n=%d): %w", n, ErrConvergence)
		}
	}

	return complex(-float64(n), 0)/z + runRatio, nil
}

// DnUp fills D[0..nstop-1] via the forward (upward) logarithmic-derivative
// recurrence (§4.A). Stable only when |Im(m)|*x stays below the
// index-dependent threshold checked by the caller (Mie's dispatch, §4.B
// step 2); DnUp itself does not re-check that threshold.
func DnUp(z complex128, nstop int, d []complex128) {
	zinv := 1 / z
	d[0] = 1 / cmplx.Tan(z)
	for k := 1; k < nstop; k++ {
		kOverZ := complex(float64(k), 0) * zinv
		d[k] = 1/(kOverZ-d[k-1]) - kOverZ
	}
}

// DnDown fills D[0..nstop-1] via the backward (downward) recurrence, with
// D[nstop-1] seeded by LentzDn(z, nstop) (§4.A). Mandatory for strongly absorbing media
// where DnUp is unstable.
func DnDown(z complex128, nstop int, d []complex128) error {
	seed, err := LentzDn(z, nstop)
	if err != nil {
		return err
	}
	d[nstop-1] = seed

	zinv := 1 / z
	for k := nstop - 1; k >= 1; k-- {
		kOverZ := complex(float64(k), 0) * zinv
		d[k-1] = kOverZ - 1/(d[k]+kOverZ)
	}
	return nil
}
