package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heatsim/internal/heat"
)

var ErrNoData = errors.New("viz: nothing to plot")

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Green, asciigraph.Yellow,
	asciigraph.Red, asciigraph.Cyan, asciigraph.Magenta,
}

type PlotOptions struct {
	Width, Height int
	Caption       string
}

func (o PlotOptions) options() []asciigraph.Option {
	width, height := o.Width, o.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 12
	}
	opts := []asciigraph.Option{asciigraph.Width(width), asciigraph.Height(height)}
	if o.Caption != "" {
		opts = append(opts, asciigraph.Caption(o.Caption))
	}
	return opts
}

// EvenLayers picks k layer indices spread from 0 to nt-1, always including
// both ends.
func EvenLayers(nt, k int) []int {
	if nt <= 0 || k <= 0 {
		return nil
	}
	if k == 1 || nt == 1 {
		return []int{nt - 1}
	}
	k = min(k, nt)
	out := make([]int, 0, k)
	for i := 0; i < k; i++ {
		n := i * (nt - 1) / (k - 1)
		if len(out) > 0 && out[len(out)-1] == n {
			continue
		}
		out = append(out, n)
	}
	return out
}

// PlotLayers overlays the profiles u(x) of the given layers. Layers with
// non-finite values cannot be scaled and are rejected.
func PlotLayers(f *heat.Field, g heat.Grid, layers []int, o PlotOptions) (string, error) {
	if f == nil || len(layers) == 0 {
		return "", ErrNoData
	}

	series := make([][]float64, 0, len(layers))
	legends := make([]string, 0, len(layers))
	colors := make([]asciigraph.AnsiColor, 0, len(layers))
	for i, n := range layers {
		if n < 0 || n >= f.Nt() {
			return "", fmt.Errorf("viz: layer %d out of range [0, %d)", n, f.Nt())
		}
		l := f.Layer(n)
		if !l.IsValid() {
			return "", fmt.Errorf("viz: layer %d: %w", n, heat.ErrNumericalInstability)
		}
		series = append(series, l)
		legends = append(legends, fmt.Sprintf("t=%.4g", g.TimeAt(n)))
		colors = append(colors, seriesColors[i%len(seriesColors)])
	}

	opts := append(o.options(), asciigraph.SeriesColors(colors...), asciigraph.SeriesLegends(legends...))
	return asciigraph.PlotMany(series, opts...), nil
}

// PlotSeries plots a single curve, e.g. error against refinement level.
func PlotSeries(values []float64, o PlotOptions) (string, error) {
	if len(values) == 0 {
		return "", ErrNoData
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("viz: series contains %v", v)
		}
	}
	return asciigraph.Plot(values, o.options()...), nil
}

// Log10 maps values onto a log scale; non-positive values become NaN.
func Log10(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log10(v)
	}
	return out
}
