package heat

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrInvalidGrid indicates grid parameters no scheme can march on.
	ErrInvalidGrid = errors.New("heat: invalid grid")

	// ErrNumericalInstability indicates the field diverged (NaN or Inf detected).
	ErrNumericalInstability = errors.New("heat: numerical instability (field diverged)")

	// ErrSingularSystem indicates the implicit coefficient matrix could not be solved.
	ErrSingularSystem = errors.New("heat: singular coefficient matrix")

	// ErrUnknownScheme indicates a scheme name with no registered solver.
	ErrUnknownScheme = errors.New("heat: unknown scheme")
)

// GridError reports which grid parameter was rejected.
type GridError struct {
	Field string
	Value any
	Want  string
}

func (e *GridError) Error() string {
	return fmt.Sprintf("%v: %s = %v, want %s", ErrInvalidGrid, e.Field, e.Value, e.Want)
}

func (e *GridError) Unwrap() error { return ErrInvalidGrid }

// InstabilityError locates the first non-finite value of a diverged field.
type InstabilityError struct {
	Step int
	Node int
	R    float64
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("%v: step %d node %d (r=%.4f)", ErrNumericalInstability, e.Step, e.Node, e.R)
}

func (e *InstabilityError) Unwrap() error { return ErrNumericalInstability }
