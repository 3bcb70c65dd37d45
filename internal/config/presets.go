package config

import "sort"

// Presets are the studies of the original rod experiments: the reference
// run, the explicit stability edge, and the refinement sweeps.
var Presets = map[string]*Config{
	"reference": {
		Scheme: "implicit", Solver: "thomas", Length: 1, Time: 0.1, Nx: 50, Nt: 100, Alpha: 1,
		Profile: "sine", Boundary: BoundaryConfig{Kind: "dirichlet"},
	},
	"explicit-stable": {
		Scheme: "explicit", Length: 1, Time: 0.1, Nx: 50, Nt: 1000, Alpha: 1,
		Profile: "sine", Boundary: BoundaryConfig{Kind: "dirichlet"},
	},
	"explicit-unstable": {
		Scheme: "explicit", Length: 1, Time: 0.1, Nx: 50, Nt: 100, Alpha: 1,
		Profile: "step", Boundary: BoundaryConfig{Kind: "dirichlet"},
	},
	"time-refinement": {
		Scheme: "explicit", Length: 1, Time: 0.01, Nx: 50, Nt: 50, Alpha: 1,
		Profile: "sine", Boundary: BoundaryConfig{Kind: "dirichlet"},
		Sweep: SweepConfig{Nt: []int{50, 100, 200, 400}, Schemes: []string{"explicit", "implicit"}},
	},
	"space-refinement": {
		Scheme: "implicit", Length: 1, Time: 0.1, Nx: 11, Nt: 2000, Alpha: 1,
		Profile: "sine", Boundary: BoundaryConfig{Kind: "dirichlet"},
		Sweep: SweepConfig{Nx: []int{6, 11, 21, 41, 81}},
	},
	"boundaries": {
		Scheme: "implicit", Length: 1, Time: 0.1, Nx: 50, Nt: 100, Alpha: 1,
		Profile: "gaussian", Boundary: BoundaryConfig{Kind: "dirichlet"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Sweep.Nt = append([]int(nil), cfg.Sweep.Nt...)
	c.Sweep.Nx = append([]int(nil), cfg.Sweep.Nx...)
	c.Sweep.Profiles = append([]string(nil), cfg.Sweep.Profiles...)
	c.Sweep.Schemes = append([]string(nil), cfg.Sweep.Schemes...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
