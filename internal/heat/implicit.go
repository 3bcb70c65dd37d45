package heat

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type implicitOptions struct {
	solver Solver
}

type Option func(*implicitOptions)

func WithSolver(s Solver) Option {
	return func(o *implicitOptions) { o.solver = s }
}

// BuildMatrices assembles the (nx−2)×(nx−2) tridiagonal pair
//
//	A: diagonal 1+r, off-diagonals −r/2
//	B: diagonal 1−r, off-diagonals +r/2
//
// acting on interior nodes.
func BuildMatrices(nx int, r float64) (a, b *mat.BandDense, err error) {
	if nx < 3 {
		return nil, nil, &GridError{Field: "nx", Value: nx, Want: ">= 3"}
	}
	n := nx - 2
	k := 1
	if n == 1 {
		k = 0
	}
	a = mat.NewBandDense(n, n, k, k, nil)
	b = mat.NewBandDense(n, n, k, k, nil)
	for i := 0; i < n; i++ {
		a.SetBand(i, i, 1+r)
		b.SetBand(i, i, 1-r)
		if i > 0 {
			a.SetBand(i, i-1, -r/2)
			b.SetBand(i, i-1, r/2)
		}
		if i < n-1 {
			a.SetBand(i, i+1, -r/2)
			b.SetBand(i, i+1, r/2)
		}
	}
	return a, b, nil
}

// Implicit marches initial forward by solving A·u[n+1] = B·u[n] on the
// interior at every step. The end values of layers n and n+1 enter the
// first and last rows of the right-hand side.
func Implicit(initial []float64, nt, nx int, r float64, bc Boundary, opts ...Option) (*Field, error) {
	if err := validateRun(initial, nt, nx, r); err != nil {
		return nil, err
	}

	o := implicitOptions{solver: SolverThomas}
	for _, opt := range opts {
		opt(&o)
	}

	a, b, err := BuildMatrices(nx, r)
	if err != nil {
		return nil, err
	}
	ls, err := newLinearSolver(o.solver, a)
	if err != nil {
		return nil, fmt.Errorf("implicit setup: %w", err)
	}

	f := newField(initial, nt, nx)
	bc.apply(f)

	if err := march(f, b, ls, r); err != nil {
		return f, err
	}
	if err := f.checkFinite(r); err != nil {
		return f, err
	}
	return f, nil
}

// march fills layers 1..nt-1 of f. On a failed solve the layers before the
// failing step are left in place.
func march(f *Field, b *mat.BandDense, ls linearSolver, r float64) error {
	nx, n := f.nx, f.nx-2
	rhs := mat.NewVecDense(n, nil)
	half := r / 2

	for step := 0; step < f.nt-1; step++ {
		cur, next := f.row(step), f.row(step+1)

		rhs.MulVec(b, mat.NewVecDense(n, cur[1:nx-1]))
		raw := rhs.RawVector().Data
		raw[0] += half * (cur[0] + next[0])
		raw[n-1] += half * (cur[nx-1] + next[nx-1])

		if err := ls.solve(next[1:nx-1], raw); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}
	return nil
}

// ImplicitScheme is Implicit with both ends held at zero.
func ImplicitScheme(initial []float64, nt, nx int, r float64) (*Field, error) {
	return Implicit(initial, nt, nx, r, ZeroBoundary())
}
