package viz

import (
	"strings"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// Braille Patterns: 2x4 dots
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

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels; anything outside is ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Plot scales tr to fill the canvas, y growing upwards.
func (c *Canvas) Plot(tr dynamo.Trajectory) {
	if len(tr) == 0 {
		return
	}
	minX, maxX, minY, maxY := bounds(tr)
	pw, ph := c.Width*2-1, c.Height*4-1

	for _, p := range tr {
		px := int(scale(p.X, minX, maxX) * float64(pw))
		py := ph - int(scale(p.Y, minY, maxY)*float64(ph))
		c.Set(px, py)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// PhasePortrait renders tr on a fresh w×h canvas.
func PhasePortrait(tr dynamo.Trajectory, w, h int) string {
	c := NewCanvas(w, h)
	c.Plot(tr)
	return c.String()
}

func bounds(tr dynamo.Trajectory) (minX, maxX, minY, maxY float64) {
	minX, maxX = tr[0].X, tr[0].X
	minY, maxY = tr[0].Y, tr[0].Y
	for _, p := range tr[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return
}

// scale maps v from [lo, hi] to [0, 1]; a flat range maps to the middle.
func scale(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
