package mcxgo

import "gonum.org/v1/gonum/spatial/r3"

// Photon is the per-photon mutable state (§3): position and direction in
// voxel-index units, weight, residual free-flight budget (in mean-free
// paths), cumulative path length, scatter count, and relaunch count. Only
// the worker that owns a Photon ever mutates it (§5).
//
// Position and direction use gonum's r3.Vec; a 3-D voxel medium has no use
// for a fourth (homogeneous) axis.
type Photon struct {
	Pos r3.Vec
	Dir r3.Vec

	Weight       float64
	Residual     float64
	PathLength   float64
	ScatterCount int
	Relaunches   int

	rng *PhotonRNG
}

// Launch resets a photon to its source state (§4.G "Photon launch"):
// position p0, unit direction d0, weight 1, residual free-flight 0,
// pathlength 0, scatter count 0. Relaunches is left untouched so the
// caller can track it across the photon's lifetime.
func (p *Photon) Launch(p0, d0 r3.Vec) {
	p.Pos = p0
	p.Dir = r3.Unit(d0)
	p.Weight = 1
	p.Residual = 0
	p.PathLength = 0
	p.ScatterCount = 0
}

// NewPhoton constructs a photon at its launch state, owning rng for its
// entire lifetime (relaunches reuse the same stream rather than
// reseeding, so the full run consumes one continuous sequence per slot).
func NewPhoton(p0, d0 r3.Vec, rng *PhotonRNG) *Photon {
	ph := &Photon{rng: rng}
	ph.Launch(p0, d0)
	return ph
}

// IsUnit reports whether the direction vector satisfies the ||d||=1
// invariant (§3, §8) within tolerance.
func (p *Photon) IsUnit(tol float64) bool {
	n := r3.Norm(p.Dir)
	return n > 1-tol && n < 1+tol
}
