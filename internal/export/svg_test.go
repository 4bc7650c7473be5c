package export

import (
	"strings"
	"testing"

	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
)

func TestGridSVG(t *testing.T) {
	g := grid.Grid{Res: 2, Data: []float64{1, 0, -1, 0.5}}
	svg := GridSVG(g, 10)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	// background plus one rect per cell
	if n := strings.Count(svg, "<rect"); n != 5 {
		t.Errorf("expected 5 rects, got %d", n)
	}
	if !strings.Contains(svg, `width="20"`) {
		t.Error("expected 20px side")
	}
	if !strings.Contains(svg, "#ff5522") || !strings.Contains(svg, "#2255ff") {
		t.Error("expected hot and cold cells")
	}
}

func TestGridSVGEmpty(t *testing.T) {
	if GridSVG(grid.Grid{}, 10) != "" {
		t.Error("expected empty output for empty grid")
	}
}

func TestOrbitSVG(t *testing.T) {
	tr := dynamo.Trajectory{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.2}}
	svg := OrbitSVG(tr, 120, 100, "#00ff00")

	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected 3 points, got %d", n)
	}
	// the minimum lands bottom-left inside the padding
	if !strings.Contains(svg, `cx="10.00" cy="90.00"`) {
		t.Error("expected minimum at (10, 90)")
	}
	if OrbitSVG(nil, 10, 10, "#fff") != "" {
		t.Error("expected empty output for empty orbit")
	}
}
