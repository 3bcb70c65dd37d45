package heat

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestSchemes_FirstLayerIsInitial(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, name := range SchemeNames() {
		scheme, err := LookupScheme(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, nx := range []int{3, 4, 10, 33} {
			for _, nt := range []int{1, 2, 7} {
				initial := make([]float64, nx)
				for i := range initial {
					initial[i] = rng.NormFloat64()
				}

				f, err := scheme(initial, nt, nx, 0.3, Boundary{Left: 9, Right: -9})
				if err != nil {
					t.Fatalf("%s nx=%d nt=%d: %v", name, nx, nt, err)
				}
				if f.Nt() != nt || f.Nx() != nx {
					t.Fatalf("%s: shape %dx%d, want %dx%d", name, f.Nt(), f.Nx(), nt, nx)
				}
				for i, v := range initial {
					if f.At(0, i) != v {
						t.Fatalf("%s nx=%d nt=%d: u[0][%d] = %v, want %v", name, nx, nt, i, f.At(0, i), v)
					}
				}
			}
		}
	}
}

// L=1, T=0.1, α=1, sin(πx), zero boundaries. With nt=100 the explicit ratio
// is 2.4, so the explicit run uses nt=1000 to stay inside r ≤ 0.5.
func TestSchemes_EndToEndDecay(t *testing.T) {
	tests := []struct {
		scheme string
		nt     int
	}{
		{SchemeImplicit, 100},
		{SchemeImplicitDense, 100},
		{SchemeExplicit, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			g := Grid{Length: 1, Time: 0.1, Nx: 50, Nt: tt.nt, Alpha: 1}
			bc := ZeroBoundary()
			u0 := bc.Pin(Sample(g, Sine))

			f, err := Run(tt.scheme, g, u0, bc)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			initialMax := Layer(u0).Max()
			finalMax := f.Final().Max()
			if !(finalMax < initialMax) {
				t.Errorf("final max %v not below initial max %v", finalMax, initialMax)
			}
			if finalMax <= 0 {
				t.Errorf("final max %v, expected a decayed positive profile", finalMax)
			}

			for n := 0; n < f.Nt(); n++ {
				if f.At(n, 0) != 0 || f.At(n, g.Nx-1) != 0 {
					t.Fatalf("layer %d boundary = (%v, %v), want zeros", n, f.At(n, 0), f.At(n, g.Nx-1))
				}
			}

			want := math.Exp(-math.Pi * math.Pi * g.FinalTime())
			if math.Abs(finalMax-want) > 5e-3 {
				t.Errorf("final max %v, exact decay %v", finalMax, want)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	g := Grid{Length: 1, Time: 0.1, Nx: 2, Nt: 10, Alpha: 1}
	if _, err := Run(SchemeExplicit, g, []float64{0, 0}, ZeroBoundary()); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}

	g.Nx = 5
	if _, err := Run("leapfrog", g, make([]float64, 5), ZeroBoundary()); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}
}
