package heat

import (
	"fmt"
	"sort"
)

// Scheme is the common signature of the registered solvers.
type Scheme func(initial []float64, nt, nx int, r float64, bc Boundary) (*Field, error)

const (
	SchemeExplicit      = "explicit"
	SchemeImplicit      = "implicit"
	SchemeImplicitDense = "implicit-dense"
)

var schemes = map[string]Scheme{
	SchemeExplicit: Explicit,
	SchemeImplicit: func(u0 []float64, nt, nx int, r float64, bc Boundary) (*Field, error) {
		return Implicit(u0, nt, nx, r, bc, WithSolver(SolverThomas))
	},
	SchemeImplicitDense: func(u0 []float64, nt, nx int, r float64, bc Boundary) (*Field, error) {
		return Implicit(u0, nt, nx, r, bc, WithSolver(SolverDense))
	},
}

func LookupScheme(name string) (Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScheme, name, SchemeNames())
	}
	return s, nil
}

func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run validates g and runs the named scheme on it.
func Run(name string, g Grid, initial []float64, bc Boundary) (*Field, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	s, err := LookupScheme(name)
	if err != nil {
		return nil, err
	}
	return s(initial, g.Nt, g.Nx, g.R(), bc)
}
