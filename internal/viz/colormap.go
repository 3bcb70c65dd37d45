package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// heatRamp runs from cold to hot.
var heatRamp = []lipgloss.Color{
	"#1e3a8a", "#2563eb", "#06b6d4", "#10b981",
	"#a3e635", "#facc15", "#f97316", "#dc2626",
}

var shades = []rune{' ', '░', '▒', '▓', '█'}

// level maps v in [lo, hi] to an index in [0, n).
func level(v, lo, hi float64, n int) int {
	if math.IsNaN(v) {
		return 0
	}
	rng := hi - lo
	if rng <= 0 {
		return n - 1
	}
	idx := int((v - lo) / rng * float64(n-1))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// resample picks width evenly spaced values from values.
func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) == 0 {
		return nil
	}
	out := make([]float64, width)
	for i := range out {
		j := 0
		if width > 1 {
			j = i * (len(values) - 1) / (width - 1)
		}
		out[i] = values[j]
	}
	return out
}

// RampColor returns the hex colour of v on the cold-to-hot ramp.
func RampColor(v, lo, hi float64) string {
	return string(heatRamp[level(v, lo, hi, len(heatRamp))])
}

// HeatStrip renders one layer as a coloured bar, one cell per column.
func HeatStrip(values []float64, lo, hi float64, width int) string {
	var b strings.Builder
	for _, v := range resample(values, width) {
		c := lipgloss.Color(RampColor(v, lo, hi))
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("█"))
	}
	return b.String()
}

// Heatmap renders the space-time history with shade characters, earliest
// layer on top.
func Heatmap(rows [][]float64, lo, hi float64, width, height int) string {
	if len(rows) == 0 || height <= 0 {
		return ""
	}
	var b strings.Builder
	for r := 0; r < height; r++ {
		n := 0
		if height > 1 {
			n = r * (len(rows) - 1) / (height - 1)
		}
		for _, v := range resample(rows[n], width) {
			b.WriteRune(shades[level(v, lo, hi, len(shades))])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Range returns the finite min and max of rows.
func Range(rows [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
