package mcxgo

import "fmt"

// Material holds the immutable optical properties of one entry in the
// material table (§3): absorption mu_a, scattering mu_s, anisotropy g, and
// refractive index n. Entry 0 is reserved for vacuum (mu_a = mu_s = 0, §6).
type Material struct {
	Mua float32
	Mus float32
	G   float32
	N   float32
}

// MaterialTable is the ordered, immutable-for-the-run sequence of
// materials a Grid's voxel ids index into.
type MaterialTable []Material

// Validate checks the §3 material invariants and that entry 0 is vacuum.
func (t MaterialTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("material table is empty: %w", ErrInvalidInput)
	}
	if t[0].Mua != 0 || t[0].Mus != 0 {
		return fmt.Errorf("material 0 (vacuum) must have mua=mus=0: %w", ErrInvalidInput)
	}
	for i, m := range t {
		if m.Mua < 0 || m.Mus < 0 {
			return fmt.Errorf("material %d: mua/mus must be >= 0: %w", i, ErrInvalidInput)
		}
		if m.G <= -1 || m.G >= 1 {
			return fmt.Errorf("material %d: g must be in (-1,1): %w", i, ErrInvalidInput)
		}
		if m.N <= 0 {
			return fmt.Errorf("material %d: n must be > 0: %w", i, ErrInvalidInput)
		}
	}
	return nil
}

// Grid is the dense voxel array of material ids (§3): a single flat slice
// with precomputed strides, indexed (((i*Ny)+j)*Nz+k).
type Grid struct {
	Nx, Ny, Nz int
	ids        []uint8
	strideX    int
	strideY    int

	Materials MaterialTable
}

// NewGrid allocates an all-vacuum (id 0) grid of the given voxel
// resolution over the given material table.
func NewGrid(nx, ny, nz int, materials MaterialTable) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("voxel resolution must be positive, got (%d,%d,%d): %w", nx, ny, nz, ErrInvalidInput)
	}
	if err := materials.Validate(); err != nil {
		return nil, err
	}
	strideY := nz
	strideX := ny * strideY
	g := &Grid{
		Nx: nx, Ny: ny, Nz: nz,
		ids:       make([]uint8, nx*ny*nz),
		strideX:   strideX,
		strideY:   strideY,
		Materials: materials,
	}
	DebugLog("Created grid resolution=(%d,%d,%d), materials=%d", nx, ny, nz, len(materials))
	return g, nil
}

func (g *Grid) index(i, j, k int) int { return i*g.strideX + j*g.strideY + k }

// InBounds reports whether (i,j,k) lies within the grid's extent.
func (g *Grid) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.Nx && j >= 0 && j < g.Ny && k >= 0 && k < g.Nz
}

// SetMaterial assigns a voxel's material id. Panics on an out-of-bounds
// index, a caller bug rather than a runtime data condition.
func (g *Grid) SetMaterial(i, j, k int, id uint8) {
	if !g.InBounds(i, j, k) {
		panic(fmt.Sprintf("voxel (%d,%d,%d) out of bounds (%d,%d,%d)", i, j, k, g.Nx, g.Ny, g.Nz))
	}
	g.ids[g.index(i, j, k)] = id
}

// LookupMaterial returns the Material at (i,j,k); out-of-bounds voxels are
// treated as vacuum (§4.D).
func (g *Grid) LookupMaterial(i, j, k int) Material {
	if !g.InBounds(i, j, k) {
		return g.Materials[vacuumMaterial]
	}
	return g.Materials[g.ids[g.index(i, j, k)]]
}

// MaterialID returns the raw material id at (i,j,k), vacuum out of bounds.
func (g *Grid) MaterialID(i, j, k int) uint8 {
	if !g.InBounds(i, j, k) {
		return vacuumMaterial
	}
	return g.ids[g.index(i, j, k)]
}

// PackTwoBit encodes the grid's material ids into the §6 packed wire
// format: 2 bits per voxel, four voxels per byte, voxel n = i*Ny*Nz+j*Nz+k
// stored at byte n/4, bit offset (n%4)*2. This optimization is documented
// as a normative external interface (§6/§9) even though LookupMaterial
// itself always operates on the unpacked one-byte-per-voxel ids array.
func (g *Grid) PackTwoBit() ([]byte, error) {
	for _, id := range g.ids {
		if id > 3 {
			return nil, fmt.Errorf("material id %d does not fit in 2 bits: %w", id, ErrInvalidInput)
		}
	}
	n := len(g.ids)
	packed := make([]byte, (n+3)/4)
	for i, id := range g.ids {
		packed[i/4] |= id << uint((i%4)*2)
	}
	return packed, nil
}

// UnpackTwoBit decodes the §6 packed format into a fresh Grid sharing the
// given material table.
func UnpackTwoBit(packed []byte, nx, ny, nz int, materials MaterialTable) (*Grid, error) {
	g, err := NewGrid(nx, ny, nz, materials)
	if err != nil {
		return nil, err
	}
	n := nx * ny * nz
	if len(packed) < (n+3)/4 {
		return nil, fmt.Errorf("packed buffer too short: got %d bytes, need %d: %w", len(packed), (n+3)/4, ErrInvalidInput)
	}
	for i := 0; i < n; i++ {
		id := (packed[i/4] >> uint((i%4)*2)) & 0x3
		g.ids[i] = id
	}
	return g, nil
}
