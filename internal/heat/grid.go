package heat

import (
	"fmt"
	"math"
)

// Grid describes a uniform space-time mesh over a rod of the given length.
// Layer n of a field sits at time n·Dt, so the last of Nt layers is at
// Time−Dt.
type Grid struct {
	Length float64 `json:"length"`
	Time   float64 `json:"time"`
	Nx     int     `json:"nx"`
	Nt     int     `json:"nt"`
	Alpha  float64 `json:"alpha"`
}

func (g Grid) Dx() float64 { return g.Length / float64(g.Nx-1) }
func (g Grid) Dt() float64 { return g.Time / float64(g.Nt) }

// R is the stability ratio α·Δt/Δx².
func (g Grid) R() float64 {
	dx := g.Dx()
	return g.Alpha * g.Dt() / (dx * dx)
}

func (g Grid) X(i int) float64      { return float64(i) * g.Dx() }
func (g Grid) TimeAt(n int) float64 { return float64(n) * g.Dt() }

// FinalTime is the time of the last stored layer.
func (g Grid) FinalTime() float64 { return g.TimeAt(g.Nt - 1) }

// Xs returns the node coordinates.
func (g Grid) Xs() []float64 {
	xs := make([]float64, g.Nx)
	for i := range xs {
		xs[i] = g.X(i)
	}
	return xs
}

func (g Grid) Validate() error {
	if !(g.Length > 0) || math.IsInf(g.Length, 0) {
		return &GridError{Field: "length", Value: g.Length, Want: "a positive finite value"}
	}
	if !(g.Time > 0) || math.IsInf(g.Time, 0) {
		return &GridError{Field: "time", Value: g.Time, Want: "a positive finite value"}
	}
	if !(g.Alpha > 0) || math.IsInf(g.Alpha, 0) {
		return &GridError{Field: "alpha", Value: g.Alpha, Want: "a positive finite value"}
	}
	return validateShape(g.Nt, g.Nx)
}

func validateShape(nt, nx int) error {
	if nx < 3 {
		return &GridError{Field: "nx", Value: nx, Want: ">= 3"}
	}
	if nt < 1 {
		return &GridError{Field: "nt", Value: nt, Want: ">= 1"}
	}
	return nil
}

func validateRun(initial []float64, nt, nx int, r float64) error {
	if err := validateShape(nt, nx); err != nil {
		return err
	}
	if len(initial) != nx {
		return &GridError{Field: "len(initial)", Value: len(initial), Want: "nx"}
	}
	for i, v := range initial {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &GridError{Field: fmt.Sprintf("initial[%d]", i), Value: v, Want: "a finite value"}
		}
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return &GridError{Field: "r", Value: r, Want: "a finite value >= 0"}
	}
	return nil
}

// Field is the temperature history of a run: Nt layers of Nx values stored
// row-major. Accessors hand out copies so a returned field cannot change.
type Field struct {
	nt, nx int
	data   []float64
}

func newField(initial []float64, nt, nx int) *Field {
	f := &Field{nt: nt, nx: nx, data: make([]float64, nt*nx)}
	copy(f.data, initial)
	return f
}

// NewField rebuilds a field from stored rows, e.g. a CSV loaded from disk.
func NewField(rows [][]float64) (*Field, error) {
	if len(rows) == 0 {
		return nil, &GridError{Field: "nt", Value: 0, Want: ">= 1"}
	}
	nx := len(rows[0])
	if err := validateShape(len(rows), nx); err != nil {
		return nil, err
	}
	f := &Field{nt: len(rows), nx: nx, data: make([]float64, len(rows)*nx)}
	for n, row := range rows {
		if len(row) != nx {
			return nil, &GridError{Field: "len(row)", Value: len(row), Want: "nx"}
		}
		copy(f.row(n), row)
	}
	return f, nil
}

func (f *Field) Nt() int { return f.nt }
func (f *Field) Nx() int { return f.nx }

func (f *Field) At(n, i int) float64 { return f.data[n*f.nx+i] }

func (f *Field) Layer(n int) Layer { return Layer(f.row(n)).Clone() }
func (f *Field) Final() Layer      { return f.Layer(f.nt - 1) }

// Rows copies the field into one slice per layer.
func (f *Field) Rows() [][]float64 {
	rows := make([][]float64, f.nt)
	for n := range rows {
		rows[n] = f.Layer(n)
	}
	return rows
}

// Column returns the history of node i over all layers.
func (f *Field) Column(i int) []float64 {
	col := make([]float64, f.nt)
	for n := range col {
		col[n] = f.At(n, i)
	}
	return col
}

func (f *Field) row(n int) []float64 {
	return f.data[n*f.nx : (n+1)*f.nx : (n+1)*f.nx]
}

// checkFinite scans the last layer and, if it has diverged, locates the
// first layer with a non-finite value.
func (f *Field) checkFinite(r float64) error {
	if Layer(f.row(f.nt - 1)).IsValid() {
		return nil
	}
	for n := 0; n < f.nt; n++ {
		for i, v := range f.row(n) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InstabilityError{Step: n, Node: i, R: r}
			}
		}
	}
	return nil
}
