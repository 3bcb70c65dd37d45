package heat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solver selects how the implicit scheme solves A·x = b each step.
type Solver string

const (
	// SolverThomas is the O(n) tridiagonal elimination, factorised once per run.
	SolverThomas Solver = "thomas"
	// SolverDense is a general LU solve. Same answer, cubic setup.
	SolverDense Solver = "dense"
)

func ParseSolver(s string) (Solver, error) {
	switch Solver(s) {
	case SolverThomas, "":
		return SolverThomas, nil
	case SolverDense:
		return SolverDense, nil
	default:
		return "", fmt.Errorf("unknown solver: %s", s)
	}
}

type linearSolver interface {
	solve(dst, rhs []float64) error
}

func newLinearSolver(s Solver, a *mat.BandDense) (linearSolver, error) {
	switch s {
	case SolverThomas, "":
		return newThomas(a)
	case SolverDense:
		return newDenseLU(a)
	default:
		return nil, fmt.Errorf("unknown solver: %s", s)
	}
}

// thomas holds the forward-eliminated form of a tridiagonal matrix.
type thomas struct {
	lower []float64 // lower[i] = a[i][i-1]
	cp    []float64 // eliminated super-diagonal
	inv   []float64 // reciprocal pivots
}

func newThomas(a mat.Banded) (*thomas, error) {
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("%w: matrix is %dx%d", ErrSingularSystem, n, c)
	}
	t := &thomas{
		lower: make([]float64, n),
		cp:    make([]float64, n),
		inv:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d := a.At(i, i)
		if i > 0 {
			t.lower[i] = a.At(i, i-1)
			d -= t.lower[i] * t.cp[i-1]
		}
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("%w: zero pivot at row %d", ErrSingularSystem, i)
		}
		t.inv[i] = 1 / d
		if i < n-1 {
			t.cp[i] = a.At(i, i+1) * t.inv[i]
		}
	}
	return t, nil
}

func (t *thomas) solve(dst, rhs []float64) error {
	n := len(t.inv)
	dst[0] = rhs[0] * t.inv[0]
	for i := 1; i < n; i++ {
		dst[i] = (rhs[i] - t.lower[i]*dst[i-1]) * t.inv[i]
	}
	for i := n - 2; i >= 0; i-- {
		dst[i] -= t.cp[i] * dst[i+1]
	}
	return nil
}

type denseLU struct {
	n  int
	lu mat.LU
}

func newDenseLU(a mat.Matrix) (*denseLU, error) {
	n, _ := a.Dims()
	d := &denseLU{n: n}
	d.lu.Factorize(a)
	if det := d.lu.Det(); det == 0 || math.IsNaN(det) {
		return nil, fmt.Errorf("%w: determinant is %v", ErrSingularSystem, det)
	}
	return d, nil
}

func (d *denseLU) solve(dst, rhs []float64) error {
	x := mat.NewVecDense(d.n, dst)
	if err := d.lu.SolveVecTo(x, false, mat.NewVecDense(d.n, rhs)); err != nil {
		return fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	return nil
}
