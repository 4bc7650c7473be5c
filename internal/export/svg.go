// Package export renders grids and orbits as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
	"github.com/san-kum/orbitgrid/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// GridSVG draws one square per cell, coloured like the terminal heatmap.
func GridSVG(g grid.Grid, cell float64) string {
	if g.Res == 0 || cell <= 0 {
		return ""
	}
	side := float64(g.Res) * cell

	var sb strings.Builder
	header(&sb, side, side)
	for r := 0; r < g.Res; r++ {
		for c := 0; c < g.Res; c++ {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*cell, float64(r)*cell, cell, cell, viz.CellColor(g.At(r, c))))
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// OrbitSVG scatters tr over a width×height canvas, y growing upwards.
func OrbitSVG(tr dynamo.Trajectory, width, height int, color string) string {
	if len(tr) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := tr[0].X, tr[0].X
	minY, maxY := tr[0].Y, tr[0].Y
	for _, p := range tr {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	padding := 10.0
	w := float64(width) - 2*padding
	h := float64(height) - 2*padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", color))
	for _, p := range tr {
		x := padding + (p.X-minX)/rangeX*w
		y := padding + h - (p.Y-minY)/rangeY*h
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="1"/>
`, x, y))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
