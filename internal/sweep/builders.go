package sweep

import (
	"fmt"

	"github.com/san-kum/heatsim/internal/heat"
)

// DefaultBoundaries is the boundary study: the three labels, each applied
// as fixed end values.
func DefaultBoundaries() []heat.Boundary {
	return []heat.Boundary{
		{Kind: heat.Dirichlet, Left: 0, Right: 0},
		{Kind: heat.Neumann, Left: 1, Right: 1},
		{Kind: heat.Mixed, Left: 1, Right: 0},
	}
}

func TimeSteps(base Case, nts ...int) []Case {
	cases := make([]Case, len(nts))
	for i, nt := range nts {
		c := base
		c.Grid.Nt = nt
		c.Name = fmt.Sprintf("nt=%d", nt)
		cases[i] = c
	}
	return cases
}

func SpaceSteps(base Case, nxs ...int) []Case {
	cases := make([]Case, len(nxs))
	for i, nx := range nxs {
		c := base
		c.Grid.Nx = nx
		c.Name = fmt.Sprintf("nx=%d", nx)
		cases[i] = c
	}
	return cases
}

func Profiles(base Case, names ...string) []Case {
	cases := make([]Case, len(names))
	for i, name := range names {
		c := base
		c.Profile = name
		c.Name = fmt.Sprintf("profile=%s", name)
		cases[i] = c
	}
	return cases
}

func Boundaries(base Case, bcs ...heat.Boundary) []Case {
	cases := make([]Case, len(bcs))
	for i, bc := range bcs {
		c := base
		c.Boundary = bc
		c.Name = fmt.Sprintf("bc=%s", bc)
		cases[i] = c
	}
	return cases
}

// Grid is the cartesian product of nts and nxs.
func Grid(base Case, nts, nxs []int) []Case {
	cases := make([]Case, 0, len(nts)*len(nxs))
	for _, nt := range nts {
		for _, nx := range nxs {
			c := base
			c.Grid.Nt, c.Grid.Nx = nt, nx
			c.Name = fmt.Sprintf("nt=%d/nx=%d", nt, nx)
			cases = append(cases, c)
		}
	}
	return cases
}

// Schemes repeats every case once per scheme.
func Schemes(cases []Case, schemes ...string) []Case {
	out := make([]Case, 0, len(cases)*len(schemes))
	for _, s := range schemes {
		for _, c := range cases {
			c.Scheme = s
			c.Name = fmt.Sprintf("%s/%s", s, c.Name)
			out = append(out, c)
		}
	}
	return out
}

// Expand applies a builder to every case, joining the case names.
func Expand(cases []Case, build func(Case) []Case) []Case {
	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		for _, sub := range build(c) {
			if c.Name != "" {
				sub.Name = c.Name + "/" + sub.Name
			}
			out = append(out, sub)
		}
	}
	return out
}
