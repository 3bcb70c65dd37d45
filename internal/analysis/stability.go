package analysis

import (
	"math"

	"github.com/san-kum/heatsim/internal/heat"
)

// DefaultBound is the |u| above which a layer counts as diverged.
const DefaultBound = 1e6

func Diverged(l heat.Layer, bound float64) bool {
	return !l.IsValid() || l.MaxAbs() > bound
}

type Summary struct {
	R              float64 `json:"r"`
	ExplicitStable bool    `json:"explicit_stable"`
	Finite         bool    `json:"finite"`
	InitialMax     float64 `json:"initial_max"`
	FinalMax       float64 `json:"final_max"`
	Decay          float64 `json:"decay"`

	// Stability is the fraction of layers within the bound.
	Stability float64 `json:"stability"`
	// FirstDiverged is the first layer past the bound, or -1.
	FirstDiverged int `json:"first_diverged"`
}

func Summarize(f *heat.Field, r, bound float64) Summary {
	first, last := f.Layer(0), f.Final()
	s := Summary{
		R:              r,
		ExplicitStable: heat.StableExplicit(r),
		Finite:         last.IsValid(),
		InitialMax:     first.MaxAbs(),
		FinalMax:       last.MaxAbs(),
		FirstDiverged:  -1,
	}
	if s.InitialMax != 0 {
		s.Decay = s.FinalMax / s.InitialMax
	}

	violations := 0
	for n := 0; n < f.Nt(); n++ {
		if Diverged(f.Layer(n), bound) {
			violations++
			if s.FirstDiverged < 0 {
				s.FirstDiverged = n
			}
		}
	}
	s.Stability = 1.0 - float64(violations)/float64(f.Nt())

	// JSON has no encoding for NaN or Inf.
	if !s.Finite || math.IsInf(s.FinalMax, 0) || math.IsNaN(s.FinalMax) {
		s.FinalMax = math.MaxFloat64
		s.Decay = math.MaxFloat64
	}
	return s
}
