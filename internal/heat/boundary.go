package heat

import (
	"fmt"
	"strings"
)

// BoundaryKind labels how a boundary pair was specified. Every kind is
// enforced as fixed end values; neumann and mixed are labels carried over
// from boundary-condition studies, not flux conditions.
type BoundaryKind string

const (
	Dirichlet BoundaryKind = "dirichlet"
	Neumann   BoundaryKind = "neumann"
	Mixed     BoundaryKind = "mixed"
)

func ParseBoundaryKind(s string) (BoundaryKind, error) {
	switch k := BoundaryKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Dirichlet, Neumann, Mixed:
		return k, nil
	case "":
		return Dirichlet, nil
	default:
		return "", fmt.Errorf("unknown boundary kind: %s", s)
	}
}

// Boundary holds the values of node 0 and node Nx−1.
type Boundary struct {
	Kind  BoundaryKind `json:"kind"`
	Left  float64      `json:"left"`
	Right float64      `json:"right"`
}

func ZeroBoundary() Boundary {
	return Boundary{Kind: Dirichlet}
}

func (b Boundary) String() string {
	kind := b.Kind
	if kind == "" {
		kind = Dirichlet
	}
	return fmt.Sprintf("%s(%g, %g)", kind, b.Left, b.Right)
}

// ApplyLayer overwrites the two end nodes of layer.
func (b Boundary) ApplyLayer(layer []float64) {
	if len(layer) == 0 {
		return
	}
	layer[0] = b.Left
	layer[len(layer)-1] = b.Right
}

// Pin returns a copy of u with the boundary values in place, for building
// an initial condition consistent with the boundary.
func (b Boundary) Pin(u []float64) []float64 {
	c := make([]float64, len(u))
	copy(c, u)
	b.ApplyLayer(c)
	return c
}

// apply fixes the ends of layers 1..Nt−1 before marching starts, so step n
// always sees its boundary values in place. Layer 0 stays the initial
// condition exactly.
func (b Boundary) apply(f *Field) {
	for n := 1; n < f.nt; n++ {
		b.ApplyLayer(f.row(n))
	}
}
