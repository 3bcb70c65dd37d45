package analysis

import (
	"math"

	"github.com/san-kum/heatsim/internal/heat"
)

// Exact is the solution for a sin(πx/L) start with zero ends.
func Exact(x, t, alpha, length float64) float64 {
	k := math.Pi / length
	return math.Exp(-alpha*k*k*t) * math.Sin(k*x)
}

func ExactLayer(g heat.Grid, t float64) heat.Layer {
	l := make(heat.Layer, g.Nx)
	for i := range l {
		l[i] = Exact(g.X(i), t, g.Alpha, g.Length)
	}
	return l
}

// MaxAbsError compares layer n of f with the exact solution at time t.
func MaxAbsError(f *heat.Field, g heat.Grid, n int, t float64) float64 {
	return f.Layer(n).Sub(ExactLayer(g, t)).MaxAbs()
}

// L2Error is the grid-weighted L2 norm of the same difference.
func L2Error(f *heat.Field, g heat.Grid, n int, t float64) float64 {
	return f.Layer(n).Sub(ExactLayer(g, t)).Norm() * math.Sqrt(g.Dx())
}

// LayerError measures layer n at its own time n·Δt.
func LayerError(f *heat.Field, g heat.Grid, n int) float64 {
	return MaxAbsError(f, g, n, g.TimeAt(n))
}

// FinalError measures the last layer against the exact solution at the
// target time g.Time. The last layer sits one step short of it, so the
// figure includes that first-order lag.
func FinalError(f *heat.Field, g heat.Grid) float64 {
	return MaxAbsError(f, g, f.Nt()-1, g.Time)
}
