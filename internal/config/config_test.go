package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/heatsim/internal/heat"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, heat.SchemeImplicit, cfg.Scheme)
	require.NoError(t, cfg.Validate())

	g := cfg.Grid()
	assert.Equal(t, 50, g.Nx)
	assert.Equal(t, 100, g.Nt)
	assert.InDelta(t, 2.401, g.R(), 1e-9)
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Scheme = heat.SchemeExplicit
	cfg.Nt = 1000
	cfg.Boundary = BoundaryConfig{Kind: "mixed", Left: 1, Right: 0.5}
	cfg.Sweep.Nt = []int{100, 200}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	bc, err := loaded.GetBoundary()
	require.NoError(t, err)
	assert.Equal(t, heat.Mixed, bc.Kind)
	assert.Equal(t, 0.5, bc.Right)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nx: 21\nprofile: step\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.Nx)
	assert.Equal(t, "step", cfg.Profile)
	assert.Equal(t, DefaultNt, cfg.Nt)
	assert.Equal(t, DefaultScheme, cfg.Scheme)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nx: [1, 2\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(c *Config)
	}{
		{"bad grid", func(c *Config) { c.Nx = 2 }},
		{"bad scheme", func(c *Config) { c.Scheme = "leapfrog" }},
		{"bad solver", func(c *Config) { c.Solver = "cg" }},
		{"bad profile", func(c *Config) { c.Profile = "sawtooth" }},
		{"bad boundary", func(c *Config) { c.Boundary.Kind = "robin" }},
		{"bad sweep profile", func(c *Config) { c.Sweep.Profiles = []string{"sine", "square"} }},
		{"bad sweep scheme", func(c *Config) { c.Sweep.Schemes = []string{"rk4"} }},
		{"negative workers", func(c *Config) { c.Sweep.Workers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestInitialCondition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boundary = BoundaryConfig{Kind: "dirichlet", Left: 2, Right: 3}

	u0, err := cfg.InitialCondition()
	require.NoError(t, err)
	require.Len(t, u0, cfg.Nx)
	assert.Equal(t, 2.0, u0[0])
	assert.Equal(t, 3.0, u0[cfg.Nx-1])
}

func TestSchemeName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, heat.SchemeImplicit, cfg.SchemeName())

	cfg.Solver = string(heat.SolverDense)
	assert.Equal(t, heat.SchemeImplicitDense, cfg.SchemeName())

	cfg.Scheme = heat.SchemeExplicit
	assert.Equal(t, heat.SchemeExplicit, cfg.SchemeName())
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	assert.Nil(t, GetPreset("nonexistent"))

	cfg := GetPreset("time-refinement")
	cfg.Sweep.Nt[0] = 1
	assert.Equal(t, 50, Presets["time-refinement"].Sweep.Nt[0], "GetPreset must not alias the table")

	cfg = GetPreset("explicit-unstable")
	assert.False(t, heat.StableExplicit(cfg.Grid().R()))
}
