package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/heat"
)

const (
	DefaultLength  = 1.0
	DefaultTime    = 0.1
	DefaultNx      = 50
	DefaultNt      = 100
	DefaultAlpha   = 1.0
	DefaultScheme  = heat.SchemeImplicit
	DefaultProfile = "sine"
)

type Config struct {
	Scheme   string         `yaml:"scheme"`
	Solver   string         `yaml:"solver"`
	Length   float64        `yaml:"length"`
	Time     float64        `yaml:"time"`
	Nx       int            `yaml:"nx"`
	Nt       int            `yaml:"nt"`
	Alpha    float64        `yaml:"alpha"`
	Profile  string         `yaml:"profile"`
	Boundary BoundaryConfig `yaml:"boundary"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

type BoundaryConfig struct {
	Kind  string  `yaml:"kind"`
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

type SweepConfig struct {
	Nt       []int    `yaml:"nt,omitempty"`
	Nx       []int    `yaml:"nx,omitempty"`
	Profiles []string `yaml:"profiles,omitempty"`
	Schemes  []string `yaml:"schemes,omitempty"`
	Workers  int      `yaml:"workers,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:   DefaultScheme,
		Solver:   string(heat.SolverThomas),
		Length:   DefaultLength,
		Time:     DefaultTime,
		Nx:       DefaultNx,
		Nt:       DefaultNt,
		Alpha:    DefaultAlpha,
		Profile:  DefaultProfile,
		Boundary: BoundaryConfig{Kind: string(heat.Dirichlet)},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Grid() heat.Grid {
	return heat.Grid{Length: c.Length, Time: c.Time, Nx: c.Nx, Nt: c.Nt, Alpha: c.Alpha}
}

func (c *Config) GetBoundary() (heat.Boundary, error) {
	kind, err := heat.ParseBoundaryKind(c.Boundary.Kind)
	if err != nil {
		return heat.Boundary{}, err
	}
	return heat.Boundary{Kind: kind, Left: c.Boundary.Left, Right: c.Boundary.Right}, nil
}

// InitialCondition samples the configured profile with the boundary
// values pinned at both ends.
func (c *Config) InitialCondition() ([]float64, error) {
	p, err := heat.LookupProfile(c.Profile)
	if err != nil {
		return nil, err
	}
	bc, err := c.GetBoundary()
	if err != nil {
		return nil, err
	}
	return bc.Pin(heat.Sample(c.Grid(), p)), nil
}

func (c *Config) Validate() error {
	if err := c.Grid().Validate(); err != nil {
		return err
	}
	if _, err := heat.LookupScheme(c.Scheme); err != nil {
		return err
	}
	if _, err := heat.ParseSolver(c.Solver); err != nil {
		return err
	}
	if _, err := heat.LookupProfile(c.Profile); err != nil {
		return err
	}
	if _, err := c.GetBoundary(); err != nil {
		return err
	}
	for _, p := range c.Sweep.Profiles {
		if _, err := heat.LookupProfile(p); err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
	}
	for _, s := range c.Sweep.Schemes {
		if _, err := heat.LookupScheme(s); err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep: workers must be >= 0, got %d", c.Sweep.Workers)
	}
	return nil
}

// SchemeName resolves the scheme and solver pair to a registered scheme.
func (c *Config) SchemeName() string {
	if c.Scheme == heat.SchemeImplicit && c.Solver == string(heat.SolverDense) {
		return heat.SchemeImplicitDense
	}
	return c.Scheme
}
