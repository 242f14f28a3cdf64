package mcxgo

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveFluenceDump writes the §6 fluence dump format: raw little-endian
// float32, Nx*Ny*Nz elements, x-major then y then z
// (index = i*Ny*Nz + j*Nz + k). The wire format carries no header;
// dimensions are supplied out of band via the input deck.
func (f *FluenceGrid) SaveFluenceDump(path string) error {
	if f.Nx < 0 || f.Ny < 0 || f.Nz < 0 {
		return fmt.Errorf("negative dimensions: Nx=%d Ny=%d Nz=%d: %w", f.Nx, f.Ny, f.Nz, ErrInvalidInput)
	}
	if len(f.buf) != f.Nx*f.Ny*f.Nz {
		return fmt.Errorf("buf length mismatch: got %d, expected %d: %w", len(f.buf), f.Nx*f.Ny*f.Nz, ErrInvalidInput)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, f.buf); err != nil {
		return err
	}
	return w.Flush()
}

// LoadFluenceDump reads a §6 fluence dump back into a FluenceGrid of the
// given dimensions.
func LoadFluenceDump(path string, nx, ny, nz int) (*FluenceGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fluence dump %q: %w", path, err)
	}
	defer file.Close()

	f := NewFluenceGrid(nx, ny, nz)
	r := bufio.NewReader(file)
	if err := binary.Read(r, binary.LittleEndian, f.buf); err != nil {
		return nil, fmt.Errorf("read fluence dump %q: %w", path, err)
	}
	return f, nil
}

// SavePackedMedium writes a Grid's material ids in the §6 packed wire
// format (2 bits/voxel, 4 voxels/byte).
func (g *Grid) SavePackedMedium(path string) error {
	packed, err := g.PackTwoBit()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, packed, 0o644)
}

// SaveMaterialTable writes the §6 material table wire format: a sequence
// of (mua, mus, g, n) float32 records, entry 0 reserved for vacuum.
func SaveMaterialTable(path string, table MaterialTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, m := range table {
		if err := binary.Write(w, binary.LittleEndian, m.Mua); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, m.Mus); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, m.G); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, m.N); err != nil {
			return err
		}
	}
	return w.Flush()
}

// mieLUTRecord is one (S11, S12, S33, S43) row of the §6 Mie LUT output.
type mieLUTRecord struct {
	S11, S12, S33, S43 float32
}

// SaveMieLUT writes a MuellerTable as NANGLES records of four float32s
// each, per §6's "Mie LUT output".
func SaveMieLUT(path string, table *MuellerTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	rows, _ := table.Dims()
	for k := 0; k < rows; k++ {
		rec := mieLUTRecord{
			S11: float32(table.At(k, S11)),
			S12: float32(table.At(k, S12)),
			S33: float32(table.At(k, S33)),
			S43: float32(table.At(k, S43)),
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return err
		}
	}
	return w.Flush()
}
