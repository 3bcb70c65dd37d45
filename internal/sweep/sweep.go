package sweep

import (
	"fmt"
	"time"

	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/heat"
)

// Case is one independent solver invocation of a sweep.
type Case struct {
	Name     string        `json:"name"`
	Scheme   string        `json:"scheme"`
	Grid     heat.Grid     `json:"grid"`
	Profile  string        `json:"profile"`
	Boundary heat.Boundary `json:"boundary"`
}

type Result struct {
	Case    Case             `json:"case"`
	Summary analysis.Summary `json:"summary"`
	// MaxErr is FinalError against the closed-form solution, set only when
	// HasExact: a sine profile with zero ends.
	MaxErr   float64       `json:"max_err"`
	HasExact bool          `json:"has_exact"`
	Elapsed  time.Duration `json:"elapsed"`
	Field    *heat.Field   `json:"-"`
	Err      error         `json:"-"`
}

func (c Case) hasExact() bool {
	return c.Profile == "sine" && c.Boundary.Left == 0 && c.Boundary.Right == 0
}

// Execute runs a single case and times the solver call alone.
func Execute(c Case) Result {
	res := Result{Case: c}

	p, err := heat.LookupProfile(c.Profile)
	if err != nil {
		res.Err = err
		return res
	}
	if err := c.Grid.Validate(); err != nil {
		res.Err = err
		return res
	}
	u0 := c.Boundary.Pin(heat.Sample(c.Grid, p))

	start := time.Now()
	f, err := heat.Run(c.Scheme, c.Grid, u0, c.Boundary)
	res.Elapsed = time.Since(start)

	if f == nil {
		res.Err = fmt.Errorf("%s: %w", c.Name, err)
		return res
	}
	res.Err = err
	res.Field = f
	res.Summary = analysis.Summarize(f, c.Grid.R(), analysis.DefaultBound)
	if c.hasExact() && res.Summary.Finite {
		res.HasExact = true
		res.MaxErr = analysis.FinalError(f, c.Grid)
	}
	return res
}
