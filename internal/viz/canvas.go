package viz

import (
	"math"
	"strings"
)

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleEmpty = 0x2800

// Canvas draws rod profiles at braille resolution: Width*2 by Height*4
// sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleEmpty
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Profile draws values across the full width, scaled so lo sits on the
// bottom row and hi on the top. Non-finite values break the line.
func (c *Canvas) Profile(values []float64, lo, hi float64) {
	pw, ph := c.Width*2, c.Height*4
	if len(values) < 2 || pw < 2 {
		return
	}
	rng := hi - lo
	if rng <= 0 {
		rng = 1
	}

	px := func(i int) int { return i * (pw - 1) / (len(values) - 1) }
	py := func(v float64) int {
		y := int(math.Round((hi - v) / rng * float64(ph-1)))
		return min(max(y, 0), ph-1)
	}
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	for i := 1; i < len(values); i++ {
		a, b := values[i-1], values[i]
		if !finite(a) || !finite(b) {
			continue
		}
		c.DrawLine(px(i-1), py(a), px(i), py(b))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
