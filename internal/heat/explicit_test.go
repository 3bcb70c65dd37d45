package heat

import (
	"errors"
	"math"
	"testing"
)

func TestExplicit_SingleStep(t *testing.T) {
	f, err := ExplicitScheme([]float64{0, 1, 2, 1, 0}, 2, 5, 0.25)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []float64{0, 1, 1.5, 1, 0}
	for i, w := range want {
		if got := f.At(1, i); math.Abs(got-w) > 1e-15 {
			t.Errorf("node %d = %v, want %v", i, got, w)
		}
	}
}

func TestExplicit_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		initial []float64
		nt, nx  int
		r       float64
	}{
		{"nx too small", []float64{0, 0}, 5, 2, 0.1},
		{"nt zero", []float64{0, 0, 0}, 0, 3, 0.1},
		{"length mismatch", []float64{0, 0, 0}, 5, 4, 0.1},
		{"negative r", []float64{0, 0, 0}, 5, 3, -0.1},
		{"NaN r", []float64{0, 0, 0}, 5, 3, math.NaN()},
		{"NaN initial", []float64{0, math.NaN(), 0}, 5, 3, 0.1},
		{"Inf initial", []float64{0, 1, math.Inf(-1)}, 5, 3, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ExplicitScheme(tt.initial, tt.nt, tt.nx, tt.r)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("expected ErrInvalidGrid, got %v", err)
			}
			if f != nil {
				t.Error("expected nil field on invalid input")
			}
		})
	}
}

func TestExplicit_ConstantIsExactFixedPoint(t *testing.T) {
	const c = 3.7
	for _, r := range []float64{0, 0.1, 0.5, 2.0} {
		nx, nt := 17, 40
		initial := make([]float64, nx)
		for i := range initial {
			initial[i] = c
		}

		f, err := Explicit(initial, nt, nx, r, Boundary{Left: c, Right: c})
		if err != nil {
			t.Fatalf("r=%v: run failed: %v", r, err)
		}
		for n := 0; n < nt; n++ {
			for i := 0; i < nx; i++ {
				if f.At(n, i) != c {
					t.Fatalf("r=%v: u[%d][%d] = %v, want exactly %v", r, n, i, f.At(n, i), c)
				}
			}
		}
	}
}

// Error of the last layer against exp(−π²T)·sin(πx) at the study's target
// time T, with nx fixed.
func TestExplicit_ConvergesInTime(t *testing.T) {
	const T = 0.01
	prev := math.Inf(1)

	for _, nt := range []int{50, 100, 200, 400} {
		g := Grid{Length: 1, Time: T, Nx: 50, Nt: nt, Alpha: 1}
		if !StableExplicit(g.R()) {
			t.Fatalf("nt=%d: r=%v outside the stable range", nt, g.R())
		}

		f, err := ExplicitScheme(Sample(g, Sine), g.Nt, g.Nx, g.R())
		if err != nil {
			t.Fatalf("nt=%d: run failed: %v", nt, err)
		}

		final := f.Final()
		maxErr := 0.0
		for i, x := range g.Xs() {
			exact := math.Exp(-math.Pi*math.Pi*T) * math.Sin(math.Pi*x)
			maxErr = math.Max(maxErr, math.Abs(final[i]-exact))
		}

		if maxErr >= prev {
			t.Errorf("nt=%d: error %.3e did not decrease (previous %.3e)", nt, maxErr, prev)
		}
		prev = maxErr
	}
}

func TestExplicit_DivergesAboveStableR(t *testing.T) {
	g := Grid{Length: 1, Time: 0.1, Nx: 50, Nt: 100, Alpha: 1}
	if StableExplicit(g.R()) {
		t.Fatalf("r=%v should be above the stable range", g.R())
	}
	u0 := ZeroBoundary().Pin(Sample(g, Step))

	f, err := ExplicitScheme(u0, g.Nt, g.Nx, g.R())
	if err != nil && !errors.Is(err, ErrNumericalInstability) {
		t.Fatalf("unexpected error: %v", err)
	}
	if f == nil {
		t.Fatal("expected the diverged field to be returned")
	}
	if got := f.Final().MaxAbs(); !(got > 1e6) {
		t.Errorf("final max |u| = %v, expected divergence past 1e6", got)
	}
}

func TestExplicit_ReportsNonFiniteField(t *testing.T) {
	g := Grid{Length: 1, Time: 10, Nx: 50, Nt: 400, Alpha: 1}
	u0 := ZeroBoundary().Pin(Sample(g, Step))

	f, err := ExplicitScheme(u0, g.Nt, g.Nx, g.R())
	if !errors.Is(err, ErrNumericalInstability) {
		t.Fatalf("expected ErrNumericalInstability, got %v", err)
	}
	var ie *InstabilityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InstabilityError, got %T", err)
	}
	if ie.Step <= 0 || ie.Step >= g.Nt {
		t.Errorf("instability step = %d, want within (0, %d)", ie.Step, g.Nt)
	}
	if f == nil || f.Final().IsValid() {
		t.Error("expected the non-finite field to be returned")
	}
}
