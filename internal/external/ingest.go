package external

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/san-kum/orbitgrid/internal/dataset"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
	"github.com/san-kum/orbitgrid/internal/maps"
	"go.uber.org/zap"
)

// Ingest keeps the first nPoints rows and discretizes them. A zero res means
// ResolutionFor(nPoints).
func Ingest(rows dynamo.Trajectory, nPoints, label, res int) (grid.Grid, int, error) {
	return ingestNamed("", rows, nPoints, label, res)
}

func ingestNamed(name string, rows dynamo.Trajectory, nPoints, label, res int) (grid.Grid, int, error) {
	if err := dynamo.CheckLabel(label); err != nil {
		return grid.Grid{}, 0, err
	}
	if nPoints <= 0 {
		return grid.Grid{}, 0, dynamo.Configf("points", "must be positive, got %d", nPoints)
	}
	if res == 0 {
		res = grid.ResolutionFor(nPoints)
	}
	if len(rows) < nPoints {
		return grid.Grid{}, 0, &dynamo.ShapeError{Got: len(rows), Want: nPoints, What: "external rows"}
	}

	// Run through the External family so truncation follows the same path as
	// every other orbit source.
	tr, err := maps.Simulate(maps.Spec{
		Params:     maps.ExternalParams{Name: name, Points: rows},
		Iterations: nPoints,
	})
	if err != nil {
		return grid.Grid{}, 0, err
	}

	g, err := grid.Discretize(tr, res)
	if err != nil {
		return grid.Grid{}, 0, err
	}
	return g, label, nil
}

// Source is one labelled trajectory file.
type Source struct {
	Path  string
	Label int
}

type Options struct {
	Points     int
	Resolution int
	// Tolerant skips files that fail with a format or shape error instead of
	// failing the batch. I/O errors always abort.
	Tolerant bool
	Logger   *zap.Logger
}

// IngestFile reads and ingests a single source.
func IngestFile(src Source, points, res int) (grid.Grid, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return grid.Grid{}, err
	}
	defer f.Close()

	name := filepath.Base(src.Path)
	rows, err := ReadRows(f, name)
	if err != nil {
		return grid.Grid{}, err
	}
	g, _, err := ingestNamed(name, rows, points, src.Label, res)
	return g, err
}

// IngestFiles aggregates sources into one dataset in the order given.
func IngestFiles(sources []Source, opts Options) (dataset.Dataset, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("ingest")

	var ds dataset.Dataset
	skipped := 0
	for _, src := range sources {
		g, err := IngestFile(src, opts.Points, opts.Resolution)
		if err != nil {
			if opts.Tolerant && skippable(err) {
				log.Warn("skipping trajectory", zap.String("path", src.Path), zap.Error(err))
				skipped++
				continue
			}
			return dataset.Dataset{}, fmt.Errorf("ingest %s: %w", src.Path, err)
		}
		ds.Grids = append(ds.Grids, g)
		ds.Labels = append(ds.Labels, src.Label)
		log.Debug("ingested", zap.String("path", src.Path), zap.Int("label", src.Label))
	}

	log.Info("batch ingested",
		zap.Int("files", len(sources)),
		zap.Int("grids", ds.Len()),
		zap.Int("skipped", skipped),
	)
	return ds, nil
}

func skippable(err error) bool {
	return errors.Is(err, dynamo.ErrFormat) || errors.Is(err, dynamo.ErrShape)
}

// LabelFunc derives a label from a file name.
type LabelFunc func(name string) (int, error)

// IngestDir ingests every file in dir matching pattern, in lexical order.
func IngestDir(dir, pattern string, labelFn LabelFunc, opts Options) (dataset.Dataset, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return dataset.Dataset{}, dynamo.Configf("pattern", "%v", err)
	}
	sort.Strings(paths)

	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		label, err := labelFn(filepath.Base(p))
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("label %s: %w", p, err)
		}
		sources = append(sources, Source{Path: p, Label: label})
	}
	return IngestFiles(sources, opts)
}

// FixedLabel labels every file the same way.
func FixedLabel(label int) LabelFunc {
	return func(string) (int, error) {
		return label, dynamo.CheckLabel(label)
	}
}
