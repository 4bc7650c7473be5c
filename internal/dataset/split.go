package dataset

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

type SplitOptions struct {
	// Seed pins the shuffle; nil draws a seed from the clock.
	Seed *int64
	// Independent takes validation as the last ceil((1-f)·N) shuffled entries,
	// computed separately from the training slice. Rounding can make the two
	// overlap (N=9, f=2/3 gives 6 + 4).
	Independent bool
}

// Split shuffles ds once and cuts it into training and validation subsets.
func Split(ds Dataset, fraction float64, opts SplitOptions) (train, validation Dataset, err error) {
	if !(fraction > 0 && fraction < 1) {
		return Dataset{}, Dataset{}, dynamo.Configf("train_fraction", "must lie in (0, 1), got %v", fraction)
	}
	if len(ds.Grids) != len(ds.Labels) {
		return Dataset{}, Dataset{}, &dynamo.ShapeError{Got: len(ds.Grids), Want: len(ds.Labels), What: "grids per label"}
	}

	perm := Permutation(ds.Len(), opts.Seed)
	nTrain, vStart := Bounds(ds.Len(), fraction, opts.Independent)

	return ds.Subset(perm[:nTrain]), ds.Subset(perm[vStart:]), nil
}

// Bounds returns the training length and the start of the validation slice.
func Bounds(n int, fraction float64, independent bool) (nTrain, vStart int) {
	nTrain = int(math.Floor(fraction * float64(n)))
	if !independent {
		return nTrain, nTrain
	}
	nVal := int(math.Ceil((1 - fraction) * float64(n)))
	if nVal > n {
		nVal = n
	}
	return nTrain, n - nVal
}

// Permutation returns a shuffled [0, n). Identical seeds give identical results.
func Permutation(n int, seed *int64) []int {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	rng := rand.New(rand.NewSource(s))
	return rng.Perm(n)
}
