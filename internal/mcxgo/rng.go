package mcxgo

import "math/rand"

// PhotonRNG is the per-photon uniform(0,1) stream (§4.E). Each photon owns
// one, seeded independently so worker goroutines never share RNG state
// (§5's "RNG state: per-worker exclusive"). Backed by math/rand's default
// source, which satisfies the contract's only two hard requirements:
// determinism for a fixed seed and a period well above 2^32. Cross-
// implementation agreement with any particular generator family (Mersenne
// Twister / counter-based / xoshiro) is not required, so no third-party RNG
// package is introduced here.
type PhotonRNG struct {
	r *rand.Rand
}

// NewPhotonRNG seeds a stream from a 32-bit seed, as required by §4.E.
func NewPhotonRNG(seed uint32) *PhotonRNG {
	return &PhotonRNG{r: rand.New(rand.NewSource(int64(seed)))}
}

// Uniform draws the next value in (0, 1).
func (p *PhotonRNG) Uniform() float64 {
	// rand.Float64 returns [0,1); nudge away from the closed end so log(u)
	// and 1/u style transforms (§4.G step 1) never see u=0.
	u := p.r.Float64()
	if u <= 0 {
		u = 1e-300
	}
	return u
}

// Seed reseeds the stream, e.g. to derive a fresh stream per launched
// photon from a run-level master seed.
func (p *PhotonRNG) Seed(seed uint32) {
	p.r.Seed(int64(seed))
}
