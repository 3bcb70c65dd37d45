package heat

import (
	"fmt"
	"math"
	"sort"
)

// Profile is an initial temperature as a function of position on a rod of
// the given length.
type Profile func(x, length float64) float64

// Sine is the fundamental mode sin(πx/L), the profile with a closed-form
// solution under zero boundaries.
func Sine(x, length float64) float64 { return math.Sin(math.Pi * x / length) }

func Gaussian(x, length float64) float64 {
	z := (x - length/2) / (0.1 * length)
	return math.Exp(-z * z)
}

func Step(x, length float64) float64 {
	if x >= length/3 && x <= 2*length/3 {
		return 1
	}
	return 0
}

func Triangle(x, length float64) float64 {
	return 1 - math.Abs(2*x/length-1)
}

func Constant(c float64) Profile {
	return func(float64, float64) float64 { return c }
}

var profiles = map[string]Profile{
	"sine":     Sine,
	"gaussian": Gaussian,
	"step":     Step,
	"triangle": Triangle,
	"constant": Constant(1),
}

func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s (available: %v)", name, ProfileNames())
	}
	return p, nil
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample evaluates p at every node of g.
func Sample(g Grid, p Profile) []float64 {
	u := make([]float64, g.Nx)
	for i := range u {
		u[i] = p(g.X(i), g.Length)
	}
	return u
}
