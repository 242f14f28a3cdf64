package mcxgo

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// MaterialCfg is the JSON form of a Material table entry (§3, §6).
type MaterialCfg struct {
	Mua float32 `json:"mua"`
	Mus float32 `json:"mus"`
	G   float32 `json:"g"`
	N   float32 `json:"n"`
}

// SourceCfg is the JSON form of a photon launch source (§4.G, §6).
type SourceCfg struct {
	Pos [3]float64 `json:"pos"`
	Dir [3]float64 `json:"dir"`
}

// GridCfg describes the voxel resolution and, optionally, a path to a
// packed-medium file to load instead of an all-vacuum grid (§6).
type GridCfg struct {
	Nx         int    `json:"nx"`
	Ny         int    `json:"ny"`
	Nz         int    `json:"nz"`
	PackedFile string `json:"packedFile,omitempty"`
}

// Config is the JSON input deck (§6): simulation parameters, source,
// medium grid, and material table, loaded via struct tags + encoding/json.
type Config struct {
	TotalMove int           `json:"totalMove,omitempty"`
	NPhotons  int           `json:"nPhotons"`
	MinStep   float64       `json:"minStep,omitempty"`
	LMax      float64       `json:"lMax,omitempty"`
	Seed      uint32        `json:"seed"`
	Source    SourceCfg     `json:"source"`
	Grid      GridCfg       `json:"grid"`
	Materials []MaterialCfg `json:"materials"`

	FluenceOut string `json:"fluenceOut,omitempty"`
}

// LoadConfig reads and validates a JSON input deck from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TotalMove == 0 {
		c.TotalMove = defaultTotalMove
	}
	if c.MinStep == 0 {
		c.MinStep = defaultMinStep
	}
	if c.LMax == 0 {
		c.LMax = defaultLMax
	}
}

func (c *Config) validate() error {
	if c.NPhotons <= 0 {
		return fmt.Errorf("nPhotons must be positive: %w", ErrInvalidInput)
	}
	if c.Grid.Nx <= 0 || c.Grid.Ny <= 0 || c.Grid.Nz <= 0 {
		return fmt.Errorf("grid resolution must be positive: %w", ErrInvalidInput)
	}
	if len(c.Materials) == 0 {
		return fmt.Errorf("material table must have at least one (vacuum) entry: %w", ErrInvalidInput)
	}
	return nil
}

// MaterialTable converts the JSON material entries into a MaterialTable.
func (c *Config) MaterialTable() MaterialTable {
	t := make(MaterialTable, len(c.Materials))
	for i, m := range c.Materials {
		t[i] = Material{Mua: m.Mua, Mus: m.Mus, G: m.G, N: m.N}
	}
	return t
}

// RunSource converts the JSON source into a Source.
func (c *Config) RunSource() Source {
	return Source{
		Pos: r3.Vec{X: c.Source.Pos[0], Y: c.Source.Pos[1], Z: c.Source.Pos[2]},
		Dir: r3.Unit(r3.Vec{X: c.Source.Dir[0], Y: c.Source.Dir[1], Z: c.Source.Dir[2]}),
	}
}
