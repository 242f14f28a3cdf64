package mcxgo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// sampleHGCosTheta draws a scattering-angle cosine from the
// Henyey-Greenstein phase function with anisotropy g (§4.G step 1). The
// g=0 case is special-cased to uniform sampling of cos(theta) in [-1,1]
// (§9 "g = 0 branch"), since the closed form is singular there.
func sampleHGCosTheta(g float64, u float64) float64 {
	if g == 0 {
		return 2*u - 1
	}
	sq := (1 - g*g) / (1 - g + 2*g*u)
	return (1 + g*g - sq*sq) / (2 * g)
}

// scatterDirection rotates d by polar angle theta (given by its cosine)
// and azimuthal angle phi, using the standard azimuthal/polar update from
// §4.G step 1. The |dz| < 1 branch decomposes the rotation around the
// frame built from d; the |dz| ~ 1 branch substitutes the degenerate
// closed form so the frame construction never divides by ~0.
func scatterDirection(d r3.Vec, cosTheta, phi float64) r3.Vec {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	if math.Abs(d.Z) < 1-1e-12 {
		denom := math.Sqrt(1 - d.Z*d.Z)
		return r3.Vec{
			X: sinTheta*(d.X*d.Z*cosPhi-d.Y*sinPhi)/denom + d.X*cosTheta,
			Y: sinTheta*(d.Y*d.Z*cosPhi+d.X*sinPhi)/denom + d.Y*cosTheta,
			Z: -sinTheta*denom*cosPhi + d.Z*cosTheta,
		}
	}

	sign := 1.0
	if d.Z < 0 {
		sign = -1.0
	}
	return r3.Vec{
		X: sinTheta * cosPhi,
		Y: sinTheta * sinPhi,
		Z: sign * cosTheta,
	}
}

// scatterHG draws a new direction for a photon that has scattered at
// least once (w < 1, §4.G step 1), sampling phi uniformly in [0, 2*pi).
func scatterHG(d r3.Vec, g float64, rng *PhotonRNG) r3.Vec {
	phi := 2 * math.Pi * rng.Uniform()
	cosTheta := sampleHGCosTheta(g, rng.Uniform())
	return r3.Unit(scatterDirection(d, cosTheta, phi))
}
