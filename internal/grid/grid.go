// Package grid turns orbits into the fixed-size images consumed by the
// classifier.
package grid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Grid is a res×res×1 image stored row-major.
type Grid struct {
	Res  int
	Data []float64
}

// New returns a zeroed grid.
func New(res int) Grid {
	return Grid{Res: res, Data: make([]float64, res*res)}
}

// Shape is always {res, res, 1}; the trailing channel is implicit in Data.
func (g Grid) Shape() [3]int {
	return [3]int{g.Res, g.Res, 1}
}

func (g Grid) At(row, col int) float64 {
	return g.Data[row*g.Res+col]
}

func (g Grid) Clone() Grid {
	d := make([]float64, len(g.Data))
	copy(d, g.Data)
	return Grid{Res: g.Res, Data: d}
}

// Equal compares bit patterns, so NaN == NaN and 0 != -0.
func (g Grid) Equal(o Grid) bool {
	if g.Res != o.Res || len(g.Data) != len(o.Data) {
		return false
	}
	for i := range g.Data {
		if math.Float64bits(g.Data[i]) != math.Float64bits(o.Data[i]) {
			return false
		}
	}
	return true
}

// Dense exposes a copy of the grid as a gonum matrix.
func (g Grid) Dense() *mat.Dense {
	d := make([]float64, len(g.Data))
	copy(d, g.Data)
	return mat.NewDense(g.Res, g.Res, d)
}

// Tensor returns the image as [row][col][channel].
func (g Grid) Tensor() [][][]float64 {
	out := make([][][]float64, g.Res)
	for r := 0; r < g.Res; r++ {
		out[r] = make([][]float64, g.Res)
		for c := 0; c < g.Res; c++ {
			out[r][c] = []float64{g.At(r, c)}
		}
	}
	return out
}

// Range returns the smallest and largest cell values.
func (g Grid) Range() (lo, hi float64) {
	if len(g.Data) == 0 {
		return 0, 0
	}
	lo, hi = g.Data[0], g.Data[0]
	for _, v := range g.Data[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
