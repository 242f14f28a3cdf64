package mcxgo

// Channel indices into a Mueller-table row (columns of the NANGLES×4 matrix).
const (
	S11 = 0
	S12 = 1
	S33 = 2
	S43 = 3
)

const (
	// NANGLES is the number of uniformly sampled scattering-angle cosines
	// the Mie engine and the continuous-random-medium model are evaluated at.
	NANGLES = 181

	// MaxThread mirrors the reference GPU kernel's block size: photons are
	// partitioned into blocks of up to this many concurrently-owned workers.
	MaxThread = 128

	// sentinelR marks "residual free-flight consumed, draw a new one" (§4.G step 2).
	sentinelR = -1

	// lentzMaxIter bounds the Lentz continued fraction; exceeding it is a
	// ConvergenceFailure (§7).
	lentzMaxIter = 100000
	lentzTol     = 1e-12

	// mieMaxX is the upper validated size-parameter bound (§4.B dispatch).
	mieMaxX = 20000.0

	// vacuumMaterial is the reserved material id for exterior/empty voxels.
	vacuumMaterial = 0
)

// Default simulation parameters (§6 CLI), used when a config omits them.
const (
	defaultTotalMove = 10000
	defaultMinStep   = 1.0
	defaultLMax      = 1000.0
)
