package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/heatsim/internal/heat"
)

type Point struct {
	Nt     int     `json:"nt"`
	Nx     int     `json:"nx"`
	Dt     float64 `json:"dt"`
	Dx     float64 `json:"dx"`
	R      float64 `json:"r"`
	MaxErr float64 `json:"max_err"`
	// Order is log2 of the error ratio to the previous point; 0 for the first.
	Order float64 `json:"order"`
}

// Refinement derives the grid of one convergence point from the base grid.
type Refinement func(base heat.Grid) []heat.Grid

func RefineTime(nts ...int) Refinement {
	return func(base heat.Grid) []heat.Grid {
		grids := make([]heat.Grid, len(nts))
		for i, nt := range nts {
			grids[i] = base
			grids[i].Nt = nt
		}
		return grids
	}
}

func RefineSpace(nxs ...int) Refinement {
	return func(base heat.Grid) []heat.Grid {
		grids := make([]heat.Grid, len(nxs))
		for i, nx := range nxs {
			grids[i] = base
			grids[i].Nx = nx
		}
		return grids
	}
}

// Convergence runs scheme on each refined grid from a sin(πx/L) start with
// zero ends and reports FinalError per grid.
func Convergence(ctx context.Context, scheme string, base heat.Grid, refine Refinement) ([]Point, error) {
	grids := refine(base)
	points := make([]Point, 0, len(grids))

	for _, g := range grids {
		select {
		case <-ctx.Done():
			return points, ctx.Err()
		default:
		}

		bc := heat.ZeroBoundary()
		f, err := heat.Run(scheme, g, bc.Pin(heat.Sample(g, heat.Sine)), bc)
		if err != nil {
			return points, fmt.Errorf("nt=%d nx=%d: %w", g.Nt, g.Nx, err)
		}

		p := Point{Nt: g.Nt, Nx: g.Nx, Dt: g.Dt(), Dx: g.Dx(), R: g.R(), MaxErr: FinalError(f, g)}
		if len(points) > 0 {
			p.Order = ObservedOrder(points[len(points)-1].MaxErr, p.MaxErr)
		}
		points = append(points, p)
	}

	return points, nil
}

// ObservedOrder is log2(prev/next): 1 when halving a step halves the error,
// 2 when it quarters it.
func ObservedOrder(prev, next float64) float64 {
	if prev <= 0 || next <= 0 {
		return 0
	}
	return math.Log2(prev / next)
}

// Monotone reports whether the errors strictly decrease.
func Monotone(points []Point) bool {
	for i := 1; i < len(points); i++ {
		if !(points[i].MaxErr < points[i-1].MaxErr) {
			return false
		}
	}
	return true
}
