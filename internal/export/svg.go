package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WriteProfiles draws u(x) of each layer as a path, coloured from cold
// (earliest) to hot (latest). Non-finite values break the path.
func WriteProfiles(w io.Writer, f *heat.Field, g heat.Grid, layers []int, width, height int) error {
	if f == nil || len(layers) == 0 {
		return viz.ErrNoData
	}
	for _, n := range layers {
		if n < 0 || n >= f.Nt() {
			return fmt.Errorf("export: layer %d out of range [0, %d)", n, f.Nt())
		}
	}

	rows := make([][]float64, len(layers))
	for i, n := range layers {
		rows[i] = f.Layer(n)
	}
	lo, hi := viz.Range(rows)

	// pad the value range by 10% on both sides
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	lo, hi = lo-rng*0.1, hi+rng*0.1
	rng = hi - lo

	var sb strings.Builder
	header(&sb, width, height)

	for i, row := range rows {
		color := viz.RampColor(float64(i), 0, float64(max(len(rows)-1, 1)))
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" data-time="%g" d="`, color, g.TimeAt(layers[i]))

		pen := false
		for j, v := range row {
			if !finite(v) {
				pen = false
				continue
			}
			x := float64(j) / float64(len(row)-1) * float64(width)
			y := float64(height) - (v-lo)/rng*float64(height)
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			fmt.Fprintf(&sb, "%s%.1f,%.1f ", cmd, x, y)
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteHeatmap draws the field as coloured cells, x across and time down.
// At most maxRows layers are drawn, evenly spaced.
func WriteHeatmap(w io.Writer, f *heat.Field, width, height, maxRows int) error {
	if f == nil {
		return viz.ErrNoData
	}
	layers := viz.EvenLayers(f.Nt(), min(maxRows, f.Nt()))
	if len(layers) == 0 {
		return viz.ErrNoData
	}

	rows := f.Rows()
	lo, hi := viz.Range(rows)

	cw := float64(width) / float64(f.Nx())
	ch := float64(height) / float64(len(layers))

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString("<g shape-rendering=\"crispEdges\">\n")

	for r, n := range layers {
		for i, v := range rows[n] {
			if math.IsNaN(v) {
				continue
			}
			fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, float64(i)*cw, float64(r)*ch, cw, ch, viz.RampColor(v, lo, hi))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
