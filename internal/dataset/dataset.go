// Package dataset assembles labelled grids from curated orbit tables and
// partitions them for training.
//
// Grids and Labels always have equal length and index i of one belongs to
// index i of the other. No operation here modifies a Dataset in place.
package dataset

import (
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
)

type Dataset struct {
	Grids  []grid.Grid
	Labels []int
}

func (d Dataset) Len() int { return len(d.Labels) }

// Append returns a new dataset with g and label added at the end.
func (d Dataset) Append(g grid.Grid, label int) Dataset {
	out := Dataset{
		Grids:  make([]grid.Grid, len(d.Grids), len(d.Grids)+1),
		Labels: make([]int, len(d.Labels), len(d.Labels)+1),
	}
	copy(out.Grids, d.Grids)
	copy(out.Labels, d.Labels)
	out.Grids = append(out.Grids, g.Clone())
	out.Labels = append(out.Labels, label)
	return out
}

// Concat joins datasets in argument order.
func Concat(parts ...Dataset) Dataset {
	n := 0
	for _, p := range parts {
		n += p.Len()
	}
	out := Dataset{Grids: make([]grid.Grid, 0, n), Labels: make([]int, 0, n)}
	for _, p := range parts {
		for i := range p.Labels {
			out.Grids = append(out.Grids, p.Grids[i].Clone())
			out.Labels = append(out.Labels, p.Labels[i])
		}
	}
	return out
}

// Subset picks entries by index, in the order given.
func (d Dataset) Subset(indices []int) Dataset {
	out := Dataset{
		Grids:  make([]grid.Grid, len(indices)),
		Labels: make([]int, len(indices)),
	}
	for i, idx := range indices {
		out.Grids[i] = d.Grids[idx].Clone()
		out.Labels[i] = d.Labels[idx]
	}
	return out
}

// Item returns the grid/label pair at i; this is the index → (grid, label)
// view handed to augmentation.
func (d Dataset) Item(i int) (grid.Grid, int) {
	return d.Grids[i], d.Labels[i]
}

// Counts returns how many entries carry each label.
func (d Dataset) Counts() map[int]int {
	c := make(map[int]int, 2)
	for _, l := range d.Labels {
		c[l]++
	}
	return c
}

// Resolution returns the side of the first grid, 0 when empty.
func (d Dataset) Resolution() int {
	if len(d.Grids) == 0 {
		return 0
	}
	return d.Grids[0].Res
}

// GridShape is the per-sample shape (res, res, 1); the zero value when empty.
func (d Dataset) GridShape() [3]int {
	if len(d.Grids) == 0 {
		return [3]int{}
	}
	return d.Grids[0].Shape()
}

// Validate checks pairing, labels and a uniform resolution.
func (d Dataset) Validate() error {
	if len(d.Grids) != len(d.Labels) {
		return &dynamo.ShapeError{Got: len(d.Grids), Want: len(d.Labels), What: "grids per label"}
	}
	res := d.Resolution()
	for i, g := range d.Grids {
		if err := dynamo.CheckLabel(d.Labels[i]); err != nil {
			return err
		}
		if g.Res != res || len(g.Data) != res*res {
			return &dynamo.ShapeError{Got: len(g.Data), Want: res * res, What: "grid cells"}
		}
	}
	return nil
}
