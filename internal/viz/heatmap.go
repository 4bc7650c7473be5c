package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitgrid/internal/grid"
)

// shades from empty to full, indexed by |v|.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Heatmap draws g two characters per cell. With color set, the sign of each
// cell picks the hue; otherwise only the shade encodes |v|.
func Heatmap(g grid.Grid, color bool) string {
	var b strings.Builder
	for r := 0; r < g.Res; r++ {
		for c := 0; c < g.Res; c++ {
			v := g.At(r, c)
			cell := strings.Repeat(string(Shade(v)), 2)
			if color {
				cell = lipgloss.NewStyle().Foreground(CellColor(v)).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Shade picks the block character for |v|, v in [-1, 1].
func Shade(v float64) rune {
	if v < 0 {
		v = -v
	}
	i := int(v*float64(len(shades)-1) + 0.5)
	return shades[min(i, len(shades)-1)]
}
