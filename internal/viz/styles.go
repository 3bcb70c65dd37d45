package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	Failure = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff4444"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)
)

// Metric renders "label: value".
func Metric(label string, value any) string {
	return MetricLabel.Render(label+":") + " " + MetricValue.Render(fmt.Sprint(value))
}

// Table renders rows as aligned columns with a styled header row.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cell := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}

	var b strings.Builder
	hs := make([]string, len(header))
	for i, h := range header {
		hs[i] = cell(h, widths[i])
	}
	b.WriteString(HeaderStyle.Render(strings.Join(hs, "  ")))
	b.WriteString("\n")

	for _, row := range rows {
		cs := make([]string, len(row))
		for i, c := range row {
			if i < len(widths) {
				c = cell(c, widths[i])
			}
			cs[i] = c
		}
		b.WriteString(strings.Join(cs, "  "))
		b.WriteString("\n")
	}
	return b.String()
}
