package mcxgo

import "sync"

// numShards is the number of mutex shards guarding the fluence grid when
// ShadowGrids is false.
const numShards = 1024

// shardLocks guards a flat buffer with a fixed, power-of-two set of
// mutexes keyed by voxel index, so concurrent photons writing different
// voxels rarely contend.
type shardLocks struct{ mu [numShards]sync.Mutex }

func (sl *shardLocks) lock(idx int)   { sl.mu[idx&(numShards-1)].Lock() }
func (sl *shardLocks) unlock(idx int) { sl.mu[idx&(numShards-1)].Unlock() }

// FluenceGrid is the shared, append-only-additive energy deposition grid
// (§3, §4.H), one-to-one with a Grid's voxel layout. Two accumulation
// strategies are supported per §9's "expose this choice as a runtime
// setting": sharded-mutex addition directly into buf, or private
// per-worker shadow grids reduced into buf at the end of the run. Both are
// required by §4.H to sum to the same result.
type FluenceGrid struct {
	Nx, Ny, Nz int
	buf        []float32
	locks      *shardLocks
}

// NewFluenceGrid allocates a zeroed fluence grid matching a Grid's shape.
func NewFluenceGrid(nx, ny, nz int) *FluenceGrid {
	return &FluenceGrid{
		Nx: nx, Ny: ny, Nz: nz,
		buf:   make([]float32, nx*ny*nz),
		locks: &shardLocks{},
	}
}

func (f *FluenceGrid) index(i, j, k int) int { return (i*f.Ny+j)*f.Nz + k }

// Add deposits w at voxel (i,j,k) with a sharded mutex, safe for
// concurrent callers writing the same voxel (§5 "Shared resources").
func (f *FluenceGrid) Add(i, j, k int, w float32) {
	idx := f.index(i, j, k)
	f.locks.lock(idx)
	f.buf[idx] += w
	f.locks.unlock(idx)
}

// At returns the accumulated fluence at (i,j,k).
func (f *FluenceGrid) At(i, j, k int) float32 {
	return f.buf[f.index(i, j, k)]
}

// ShadowGrid is a private per-worker accumulation buffer (the
// ShadowGrids=true strategy), reduced into the shared FluenceGrid by
// Merge once the worker finishes.
type ShadowGrid struct {
	buf []float32
}

// NewShadowGrid allocates a private buffer matching f's shape.
func (f *FluenceGrid) NewShadowGrid() *ShadowGrid {
	return &ShadowGrid{buf: make([]float32, len(f.buf))}
}

// AddShadow deposits w at voxel (i,j,k) of s without any locking; safe because each
// ShadowGrid is owned by exactly one worker.
func (f *FluenceGrid) AddShadow(s *ShadowGrid, i, j, k int, w float32) {
	s.buf[f.index(i, j, k)] += w
}

// Merge adds a worker's private shadow grid into the shared grid. Merge
// takes no lock itself: callers serialize Merge calls (Run merges each
// worker's grid as that worker finishes, under its own mutex), and in the
// shadow-grid strategy nothing else writes buf concurrently.
func (f *FluenceGrid) Merge(s *ShadowGrid) {
	for i, v := range s.buf {
		f.buf[i] += v
	}
}

// Sum returns the total accumulated energy across the whole grid, used to
// cross-check the total-deposited-weight invariant (§8 scenario 1).
func (f *FluenceGrid) Sum() float64 {
	var total float64
	for _, v := range f.buf {
		total += float64(v)
	}
	return total
}

// NonNegativeAndMonotone is a best-effort post-run check of §3's fluence
// invariant (fluence[v] >= 0); true non-decreasing-over-time is an
// in-simulation property that can't be re-checked from the final buffer
// alone, so this only verifies the non-negativity half.
func (f *FluenceGrid) NonNegativeAndMonotone() bool {
	for _, v := range f.buf {
		if v < 0 {
			return false
		}
	}
	return true
}
