package mcxgo

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Source describes a photon launch point and direction (§4.G "Photon
// launch"): p0 in voxel-index units, unit direction c0.
type Source struct {
	Pos r3.Vec
	Dir r3.Vec
}

// RunParams configures one transport run (§4.G, §6 CLI fields).
type RunParams struct {
	TotalMove  int     // micro-steps budget per photon
	NPhotons   int     // population size
	MinStep    float64 // voxel-unit step length for a full voxel traversal
	LMax       float64 // residual-free-flight cap that triggers relaunch
	Source     Source
	MasterSeed uint32 // derives each photon's independent RNG stream
}

// RunReport summarizes end-of-run bookkeeping (§7: persistent invariant
// violations are detected at end-of-run, not propagated per-photon).
type RunReport struct {
	Launched        int
	Relaunches      int64
	NaNDirections   int64
	NegativeWeights int64
}

// microStep advances ph by one of the state machine's micro-steps (§4.G).
// It returns true when the photon must be relaunched (domain exit or
// residual exceeding lmax).
func microStep(ph *Photon, grid *Grid, minstep, lmax float64, elog *eventLog) bool {
	i0, j0, k0 := int(math.Floor(ph.Pos.X)), int(math.Floor(ph.Pos.Y)), int(math.Floor(ph.Pos.Z))
	mat := grid.LookupMaterial(i0, j0, k0)

	// 1. Scatter decision.
	if ph.Residual <= 0 {
		u := ph.rng.Uniform()
		ph.Residual = -math.Log(u)
		if ph.Weight < 1 {
			ph.Dir = scatterHG(ph.Dir, float64(mat.G), ph.rng)
			ph.ScatterCount++
		}
	}

	// 2. Voxel step.
	delta := minstep * float64(mat.Mus)
	if delta > ph.Residual && mat.Mus > 0 {
		dist := ph.Residual / float64(mat.Mus)
		ph.Pos = r3.Add(ph.Pos, r3.Scale(dist, ph.Dir))
		ph.Weight *= math.Exp(-float64(mat.Mua) * dist)
		ph.PathLength += dist
		ph.Residual = sentinelR
	} else {
		ph.Pos = r3.Add(ph.Pos, r3.Scale(minstep, ph.Dir))
		ph.Weight *= math.Exp(-float64(mat.Mua) * minstep)
		ph.Residual -= delta
		ph.PathLength += minstep
	}

	// 3. Boundary / termination.
	i, j, k := int(math.Floor(ph.Pos.X)), int(math.Floor(ph.Pos.Y)), int(math.Floor(ph.Pos.Z))
	outOfBounds := !grid.InBounds(i, j, k)
	if ph.Residual > lmax || outOfBounds {
		if outOfBounds {
			elog.record(DomainExit)
		} else {
			elog.record(WeightExhausted)
		}
		return true
	}
	return false
}

// depositAt adds the current weight into the fluence grid, skipping
// deposit on a step that fully consumed the free flight (residual reset to
// sentinelR, §4.G step 2) rather than partially traversing a voxel (§4.G
// step 3, the deposition ambiguity documented in §9).
func depositAt(ph *Photon, grid *Grid, fluence *FluenceGrid, shadow *ShadowGrid) {
	i, j, k := int(math.Floor(ph.Pos.X)), int(math.Floor(ph.Pos.Y)), int(math.Floor(ph.Pos.Z))
	w := float32(0)
	if ph.Residual > 0 {
		w = float32(ph.Weight)
	}
	if shadow != nil {
		fluence.AddShadow(shadow, i, j, k, w)
	} else {
		fluence.Add(i, j, k, w)
	}
}

// runPhoton executes up to params.TotalMove micro-steps for one photon
// slot, relaunching from (p0, c0) on every terminal event (§4.G "Terminal
// state of the whole photon occurs only when totalmove is exhausted").
func runPhoton(ph *Photon, grid *Grid, fluence *FluenceGrid, shadow *ShadowGrid, params RunParams, elog *eventLog, report *RunReport) {
	for step := 0; step < params.TotalMove; step++ {
		terminated := microStep(ph, grid, params.MinStep, params.LMax, elog)
		if terminated {
			atomic.AddInt64(&report.Relaunches, 1)
			ph.Relaunches++
			elog.record(Relaunched)
			ph.Launch(params.Source.Pos, params.Source.Dir)
			continue
		}
		depositAt(ph, grid, fluence, shadow)
	}
	elog.record(Exhausted)

	if math.IsNaN(ph.Dir.X) || math.IsNaN(ph.Dir.Y) || math.IsNaN(ph.Dir.Z) {
		atomic.AddInt64(&report.NaNDirections, 1)
	}
	if ph.Weight < 0 {
		atomic.AddInt64(&report.NegativeWeights, 1)
	}
}

// Run advances params.NPhotons photons concurrently against grid,
// accumulating into fluence (§5). Photons are scheduled in blocks of up to
// MaxThread (errgroup.SetLimit caps concurrency the way a GPU block size
// would, with first-error propagation and ctx-based cancellation, §7
// "external shutdown kills the whole run"). Each worker owns one photon's
// mutable state and RNG stream exclusively; the fluence grid is the only
// shared mutable resource, written additively.
func Run(ctx context.Context, grid *Grid, fluence *FluenceGrid, params RunParams) (*RunReport, error) {
	report := &RunReport{Launched: params.NPhotons}
	elog := newEventLog()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxThread)

	var mergeMu sync.Mutex

	for slot := 0; slot < params.NPhotons; slot++ {
		slot := slot
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := splitSeed(params.MasterSeed, uint32(slot))
			rng := NewPhotonRNG(seed)
			ph := NewPhoton(params.Source.Pos, params.Source.Dir, rng)

			var shadow *ShadowGrid
			if ShadowGrids {
				shadow = fluence.NewShadowGrid()
			}

			runPhoton(ph, grid, fluence, shadow, params, elog, report)

			if shadow != nil {
				mergeMu.Lock()
				fluence.Merge(shadow)
				mergeMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	DebugLog("run complete: launched=%d relaunches=%d events=%v", report.Launched, report.Relaunches, elog.snapshot())
	return report, nil
}

// splitSeed derives a photon-slot seed from a run-level master seed, a
// SplitMix32-style mix so adjacent slots don't produce correlated streams.
func splitSeed(master, slot uint32) uint32 {
	x := master + slot*0x9e3779b9
	x = (x ^ (x >> 16)) * 0x85ebca6b
	x = (x ^ (x >> 13)) * 0xc2b2ae35
	return x ^ (x >> 16)
}
