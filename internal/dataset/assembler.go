package dataset

import (
	"fmt"
	"time"

	"github.com/san-kum/orbitgrid/internal/catalog"
	"github.com/san-kum/orbitgrid/internal/config"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
	"github.com/san-kum/orbitgrid/internal/maps"
	"go.uber.org/zap"
)

// Assembler turns curated tables into datasets.
type Assembler struct {
	cfg *config.Config
	log *zap.Logger
}

// NewAssembler validates cfg up front. A nil logger discards output.
func NewAssembler(cfg *config.Config, log *zap.Logger) (*Assembler, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{cfg: cfg, log: log.Named("assembler")}, nil
}

// Assemble builds the dataset for one family from its curated table.
func (a *Assembler) Assemble(kind maps.Kind) (Dataset, error) {
	entries, err := catalog.Entries(kind)
	if err != nil {
		return Dataset{}, err
	}
	return a.AssembleEntries(kind, entries)
}

// AssembleEntries builds a dataset from caller-supplied entries. The first
// failing entry aborts the whole family; nothing partial is returned.
func (a *Assembler) AssembleEntries(kind maps.Kind, entries []catalog.Entry) (Dataset, error) {
	start := time.Now()

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("%v entry %d: %w", kind, i, err)
		}
	}

	grids := make([]grid.Grid, len(entries))
	errs := make([]error, len(entries))
	build := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			grids[i], errs[i] = a.entryGrid(kind, entries[i])
		}
	}

	if a.cfg.Parallel {
		dynamo.ParallelFor(len(entries), 4, build)
	} else {
		build(0, len(entries))
	}

	for i, err := range errs {
		if err != nil {
			a.log.Error("entry failed", zap.Stringer("family", kind), zap.Int("entry", i), zap.Error(err))
			return Dataset{}, fmt.Errorf("%v entry %d: %w", kind, i, err)
		}
	}

	ds := Dataset{Grids: grids, Labels: make([]int, len(entries))}
	for i, e := range entries {
		ds.Labels[i] = e.Label
	}

	counts := ds.Counts()
	a.log.Info("assembled",
		zap.Stringer("family", kind),
		zap.Int("entries", ds.Len()),
		zap.Int("order", counts[dynamo.LabelOrder]),
		zap.Int("chaos", counts[dynamo.LabelChaos]),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}

// AssembleAll builds every curated family in a fixed order.
func (a *Assembler) AssembleAll() (map[maps.Kind]Dataset, error) {
	out := make(map[maps.Kind]Dataset)
	for _, kind := range catalog.Families() {
		ds, err := a.Assemble(kind)
		if err != nil {
			return nil, err
		}
		out[kind] = ds
	}
	return out, nil
}

func (a *Assembler) multiplier(kind maps.Kind, e catalog.Entry) int {
	if e.Multiplier > 0 {
		return e.Multiplier
	}
	return a.cfg.Multiplier(kind)
}

// Orbit runs points×m iterations for e and keeps every m-th point, so longer
// runs still fill the configured grid.
func (a *Assembler) Orbit(kind maps.Kind, e catalog.Entry) (dynamo.Trajectory, error) {
	m := a.multiplier(kind, e)
	spec, err := e.Spec(kind, a.cfg.Points*m)
	if err != nil {
		return nil, err
	}
	if web, ok := spec.Params.(maps.WebParams); ok {
		if err := web.CheckStride(m); err != nil {
			return nil, err
		}
	}

	tr, err := maps.Simulate(spec)
	if err != nil {
		return nil, err
	}
	a.log.Debug("simulated", zap.Stringer("spec", spec), zap.Int("multiplier", m))
	return tr.Stride(m), nil
}

func (a *Assembler) entryGrid(kind maps.Kind, e catalog.Entry) (grid.Grid, error) {
	tr, err := a.Orbit(kind, e)
	if err != nil {
		return grid.Grid{}, err
	}
	return grid.Discretize(tr, a.cfg.Resolution)
}
