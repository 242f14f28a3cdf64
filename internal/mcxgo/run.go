package mcxgo

import (
	"context"
	"fmt"
	"os"
)

// RunResult bundles everything a caller needs after one end-to-end
// simulation: the populated fluence grid and the bookkeeping report (§5,
// §8 "end-to-end scenarios").
type RunResult struct {
	Fluence *FluenceGrid
	Report  *RunReport
}

// RunFromConfig builds a Grid and RunParams from a loaded Config and
// executes the transport kernel, returning the populated fluence grid.
// When cfg.FluenceOut is set it also writes the §6 fluence dump to that
// path before returning.
func RunFromConfig(ctx context.Context, cfg *Config) (*RunResult, error) {
	materials := cfg.MaterialTable()

	var grid *Grid
	if cfg.Grid.PackedFile != "" {
		packed, err := os.ReadFile(cfg.Grid.PackedFile)
		if err != nil {
			return nil, fmt.Errorf("read packed medium %q: %w", cfg.Grid.PackedFile, err)
		}
		grid, err = UnpackTwoBit(packed, cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz, materials)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		grid, err = NewGrid(cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz, materials)
		if err != nil {
			return nil, err
		}
	}

	fluence := NewFluenceGrid(cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz)

	params := RunParams{
		TotalMove:  cfg.TotalMove,
		NPhotons:   cfg.NPhotons,
		MinStep:    cfg.MinStep,
		LMax:       cfg.LMax,
		Source:     cfg.RunSource(),
		MasterSeed: cfg.Seed,
	}

	report, err := Run(ctx, grid, fluence, params)
	if err != nil {
		return nil, err
	}

	if cfg.FluenceOut != "" {
		if err := fluence.SaveFluenceDump(cfg.FluenceOut); err != nil {
			return nil, fmt.Errorf("write fluence dump %q: %w", cfg.FluenceOut, err)
		}
	}

	return &RunResult{Fluence: fluence, Report: report}, nil
}

// RunFromFile loads a config from path and runs it, a single-call
// convenience form of LoadConfig followed by RunFromConfig.
func RunFromFile(ctx context.Context, path string) (*RunResult, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return RunFromConfig(ctx, cfg)
}
