package mcxgo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRunFromConfigEndToEnd(t *testing.T) {
	cfg := &Config{
		NPhotons:  100,
		TotalMove: 30,
		MinStep:   0.5,
		LMax:      50,
		Seed:      7,
		Source: SourceCfg{
			Pos: [3]float64{2, 2, 2},
			Dir: [3]float64{0, 0, 1},
		},
		Grid: GridCfg{Nx: 4, Ny: 4, Nz: 4},
		Materials: []MaterialCfg{
			{Mua: 0, Mus: 0, G: 0, N: 1},
			{Mua: 0.05, Mus: 5, G: 0.9, N: 1.37},
		},
	}

	result, err := RunFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunFromConfig error: %v", err)
	}
	if result.Report.Launched != cfg.NPhotons {
		t.Fatalf("expected Launched=%d, got %d", cfg.NPhotons, result.Report.Launched)
	}
	if !result.Fluence.NonNegativeAndMonotone() {
		t.Fatalf("fluence grid has negative entries")
	}
}

func TestRunFromConfigWritesFluenceDump(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fluence.bin")
	cfg := &Config{
		NPhotons:   50,
		TotalMove:  20,
		MinStep:    0.5,
		LMax:       50,
		Seed:       3,
		Source:     SourceCfg{Pos: [3]float64{1, 1, 1}, Dir: [3]float64{0, 0, 1}},
		Grid:       GridCfg{Nx: 3, Ny: 3, Nz: 3},
		Materials:  []MaterialCfg{{Mua: 0, Mus: 0, G: 0, N: 1}, {Mua: 0.1, Mus: 3, G: 0.8, N: 1.4}},
		FluenceOut: out,
	}

	if _, err := RunFromConfig(context.Background(), cfg); err != nil {
		t.Fatalf("RunFromConfig error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected fluence dump at %q: %v", out, err)
	}
}

func TestRunFromFileLoadsAndRuns(t *testing.T) {
	path := writeConfig(t, `{
		"nPhotons": 40,
		"totalMove": 20,
		"seed": 9,
		"source": {"pos": [1,1,1], "dir": [0,0,1]},
		"grid": {"nx": 3, "ny": 3, "nz": 3},
		"materials": [
			{"mua":0,"mus":0,"g":0,"n":1},
			{"mua":0.1,"mus":4,"g":0.85,"n":1.4}
		]
	}`)
	result, err := RunFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("RunFromFile error: %v", err)
	}
	if result.Report.Launched != 40 {
		t.Fatalf("expected Launched=40, got %d", result.Report.Launched)
	}
}

func TestRunFromConfigWithPackedMedium(t *testing.T) {
	materials := MaterialTable{
		{Mua: 0, Mus: 0, G: 0, N: 1},
		{Mua: 0.1, Mus: 5, G: 0.9, N: 1.37},
	}
	grid, err := NewGrid(3, 3, 3, materials)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				grid.SetMaterial(i, j, k, 1)
			}
		}
	}
	packedPath := filepath.Join(t.TempDir(), "medium.bin")
	if err := grid.SavePackedMedium(packedPath); err != nil {
		t.Fatalf("SavePackedMedium error: %v", err)
	}

	cfg := &Config{
		NPhotons:  30,
		TotalMove: 20,
		MinStep:   0.5,
		LMax:      50,
		Seed:      5,
		Source:    SourceCfg{Pos: [3]float64{1, 1, 1}, Dir: [3]float64{0, 0, 1}},
		Grid:      GridCfg{Nx: 3, Ny: 3, Nz: 3, PackedFile: packedPath},
		Materials: []MaterialCfg{
			{Mua: 0, Mus: 0, G: 0, N: 1},
			{Mua: 0.1, Mus: 5, G: 0.9, N: 1.37},
		},
	}

	result, err := RunFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunFromConfig with packed medium error: %v", err)
	}
	if result.Fluence.Sum() <= 0 {
		t.Fatalf("expected positive deposited fluence, got %g", result.Fluence.Sum())
	}
}
