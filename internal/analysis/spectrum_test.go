package analysis

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/san-kum/heatsim/internal/heat"
)

// The odd-extension FFT and a direct discrete sine transform of the
// interior agree for even and odd interior sizes.
func TestSineModesMatchDST(t *testing.T) {
	for _, nx := range []int{17, 50} {
		m := nx - 1
		l := make(heat.Layer, nx)
		for i := range l {
			x := float64(i) / float64(m)
			l[i] = math.Exp(-(x - 0.4) * (x - 0.4) / 0.01)
		}
		l[0], l[m] = 0, 0

		want := fourier.NewDST(m-1).Transform(nil, l[1:m])
		got := SineModes(l)
		for k := 1; k < m; k++ {
			if d := math.Abs(got[k] - want[k-1]/float64(m)); d > 1e-12 {
				t.Errorf("nx=%d: b_%d = %v, dst %v", nx, k, got[k], want[k-1]/float64(m))
			}
		}
	}
}

func TestSineModes(t *testing.T) {
	for _, nx := range []int{9, 12, 50} {
		m := nx - 1
		l := make(heat.Layer, nx)
		for i := range l {
			// mode 1 and mode 3 on top of a 2 -> 5 ramp
			l[i] = 2 + 3*float64(i)/float64(m) +
				1.5*math.Sin(math.Pi*float64(i)/float64(m)) -
				0.25*math.Sin(3*math.Pi*float64(i)/float64(m))
		}

		modes := SineModes(l)
		if len(modes) != m {
			t.Fatalf("nx=%d: %d modes, want %d", nx, len(modes), m)
		}
		for k, b := range modes {
			want := 0.0
			switch k {
			case 1:
				want = 1.5
			case 3:
				want = -0.25
			}
			if math.Abs(b-want) > 1e-10 {
				t.Errorf("nx=%d: b_%d = %v, want %v", nx, k, b, want)
			}
		}
	}
}

// A sine mode is an eigenvector of both schemes' update, so its amplitude
// after n steps is exactly the amplification factor to the n.
func TestAmplificationMatchesSolvers(t *testing.T) {
	const nx, nt, k = 21, 40, 2
	g := heat.Grid{Length: 1, Time: 0.02, Nx: nx, Nt: nt, Alpha: 1}

	u0 := make([]float64, nx)
	for i := range u0 {
		u0[i] = math.Sin(math.Pi * float64(k*i) / float64(nx-1))
	}
	u0[0], u0[nx-1] = 0, 0

	for _, scheme := range []string{heat.SchemeExplicit, heat.SchemeImplicit} {
		f, err := heat.Run(scheme, g, u0, heat.ZeroBoundary())
		if err != nil {
			t.Fatalf("%s: %v", scheme, err)
		}
		want := math.Pow(Amplification(scheme, g.R(), k, nx), nt-1)
		got := SineModes(f.Final())[k]
		if math.Abs(got-want) > 1e-10 {
			t.Errorf("%s: mode %d amplitude %v, want %v", scheme, k, got, want)
		}
	}
}

func TestAmplificationStabilityEdge(t *testing.T) {
	nx := 51
	top := nx - 2
	if g := Amplification(heat.SchemeExplicit, 0.5, top, nx); math.Abs(g) > 1 {
		t.Errorf("explicit r=0.5 highest mode |g| = %v, want <= 1", math.Abs(g))
	}
	if g := Amplification(heat.SchemeExplicit, 0.6, top, nx); math.Abs(g) <= 1 {
		t.Errorf("explicit r=0.6 highest mode |g| = %v, want > 1", math.Abs(g))
	}
	for _, r := range []float64{0.5, 2.4, 100} {
		if g := Amplification(heat.SchemeImplicit, r, top, nx); math.Abs(g) >= 1 {
			t.Errorf("implicit r=%v |g| = %v, want < 1", r, math.Abs(g))
		}
	}
}

func TestDecays(t *testing.T) {
	g := heat.Grid{Length: 1, Time: 0.05, Nx: 41, Nt: 500, Alpha: 1}
	f, err := heat.Run(heat.SchemeImplicit, g, heat.Sample(g, heat.Sine), heat.ZeroBoundary())
	if err != nil {
		t.Fatal(err)
	}
	d := Decays(f, g, 3)
	if len(d) != 3 {
		t.Fatalf("got %d modes", len(d))
	}
	if math.Abs(d[0].Observed-d[0].Exact) > 1e-3 {
		t.Errorf("mode 1 decay %v, exact %v", d[0].Observed, d[0].Exact)
	}
	if math.Abs(d[1].Initial) > 1e-12 {
		t.Errorf("mode 2 should be absent, got %+v", d[1])
	}
}
