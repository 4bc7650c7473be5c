package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// AxisSeries plots x and y against iteration number.
func AxisSeries(tr dynamo.Trajectory, width, height int, caption string) string {
	if len(tr) == 0 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{tr.Xs(), tr.Ys()},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.Caption(caption),
	)
}
