package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/heatsim/internal/heat"
)

// SineModes returns the discrete sine coefficients b_k of a layer, indexed
// by mode k (b_0 is always 0), so that
//
//	u_i = left + (right-left)·i/m + Σ_k b_k·sin(πki/m),  m = nx-1.
//
// The straight line through the end values is removed first.
func SineModes(l heat.Layer) []float64 {
	nx := len(l)
	if nx < 3 {
		return make([]float64, max(nx-1, 0))
	}
	m := nx - 1
	left, right := l[0], l[m]

	// odd extension of the interior
	ext := make([]float64, 2*m)
	for i := 1; i < m; i++ {
		v := l[i] - (left + (right-left)*float64(i)/float64(m))
		ext[i] = v
		ext[2*m-i] = -v
	}

	bins := fft.FFTReal(ext)
	modes := make([]float64, m)
	for k := 1; k < m; k++ {
		modes[k] = -imag(bins[k]) / float64(m)
	}
	return modes
}

// Amplification is the per-step growth factor of sine mode k on an
// nx-node grid: 1−4rs for the explicit scheme and (1−2rs)/(1+2rs) for the
// implicit one, with s = sin²(πk/(2(nx−1))).
func Amplification(scheme string, r float64, k, nx int) float64 {
	s := math.Sin(math.Pi * float64(k) / float64(2*(nx-1)))
	s *= s
	if scheme == heat.SchemeExplicit {
		return 1 - 4*r*s
	}
	return (1 - 2*r*s) / (1 + 2*r*s)
}

// ModeDecay compares how far mode k decayed between the first and last
// layer with the exact continuous decay exp(−α(πk/L)²t) over the same span.
type ModeDecay struct {
	Mode     int     `json:"mode"`
	Initial  float64 `json:"initial"`
	Final    float64 `json:"final"`
	Observed float64 `json:"observed"`
	Exact    float64 `json:"exact"`
}

// Decays reports the first count modes of a field.
func Decays(f *heat.Field, g heat.Grid, count int) []ModeDecay {
	first, last := SineModes(f.Layer(0)), SineModes(f.Final())
	span := g.FinalTime()

	count = min(count, len(first)-1)
	out := make([]ModeDecay, 0, max(count, 0))
	for k := 1; k <= count; k++ {
		wave := math.Pi * float64(k) / g.Length
		d := ModeDecay{
			Mode:    k,
			Initial: first[k],
			Final:   last[k],
			Exact:   math.Exp(-g.Alpha * wave * wave * span),
		}
		if first[k] != 0 {
			d.Observed = last[k] / first[k]
		}
		out = append(out, d)
	}
	return out
}
