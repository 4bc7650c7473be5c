// Package storage exports datasets for the external learner and reads them
// back. Exports are derived data: every dataset can be rebuilt from the
// curated tables and external trajectory files.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/orbitgrid/internal/dataset"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
)

const (
	manifestFile = "manifest.json"
	gridsFile    = "grids.csv"
)

type Store struct {
	baseDir string
	newID   func() string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, newID: uuid.NewString}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Manifest describes one exported dataset.
type Manifest struct {
	ID         string         `json:"id"`
	Family     string         `json:"family"`
	Subset     string         `json:"subset,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Seed       *int64         `json:"seed,omitempty"`
	Resolution int            `json:"resolution"`
	Count      int            `json:"count"`
	Labels     map[string]int `json:"labels"`
}

// Save writes ds under a fresh id. Family, Subset and Seed are taken from
// meta; the remaining fields are filled in from ds.
func (s *Store) Save(ds dataset.Dataset, meta Manifest) (string, error) {
	if err := ds.Validate(); err != nil {
		return "", err
	}

	meta.ID = s.newID()
	meta.Timestamp = time.Now().UTC()
	meta.Resolution = ds.Resolution()
	meta.Count = ds.Len()
	meta.Labels = make(map[string]int, 2)
	for l, c := range ds.Counts() {
		meta.Labels[dynamo.LabelName(l)] = c
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(dir, manifestFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(dir, gridsFile), func(w io.Writer) error {
			return WriteCSV(w, ds)
		})
	}
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return meta.ID, nil
}

// writeFile creates path, fills it with write and reports the first of the
// write or close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// WriteCSV writes a header and one row per grid: label, then res² cell values.
func WriteCSV(out io.Writer, ds dataset.Dataset) error {
	w := csv.NewWriter(out)

	res := ds.Resolution()
	header := make([]string, 0, res*res+1)
	header = append(header, "label")
	for i := 0; i < res*res; i++ {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, g := range ds.Grids {
		row := make([]string, 0, len(g.Data)+1)
		row = append(row, strconv.Itoa(ds.Labels[i]))
		for _, v := range g.Data {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadCSV is the inverse of WriteCSV.
func ReadCSV(in io.Reader, source string) (dataset.Dataset, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return dataset.Dataset{}, &dynamo.FormatError{Source: source, Text: err.Error()}
	}
	if len(records) < 2 {
		return dataset.Dataset{}, nil
	}

	cells := len(records[0]) - 1
	res := 0
	for res*res < cells {
		res++
	}
	if res*res != cells {
		return dataset.Dataset{}, &dynamo.ShapeError{Got: cells, Want: res * res, What: "cells per row"}
	}

	var ds dataset.Dataset
	for i, rec := range records[1:] {
		line := i + 2
		label, err := strconv.Atoi(rec[0])
		if err != nil {
			return dataset.Dataset{}, &dynamo.FormatError{Source: source, Line: line, Text: rec[0]}
		}
		g := grid.New(res)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return dataset.Dataset{}, &dynamo.FormatError{Source: source, Line: line, Text: field}
			}
			g.Data[j] = v
		}
		ds.Grids = append(ds.Grids, g)
		ds.Labels = append(ds.Labels, label)
	}
	return ds, ds.Validate()
}

// ExportJSON writes the manifest and the grids as a single JSON document.
func ExportJSON(w io.Writer, ds dataset.Dataset, meta Manifest) error {
	meta.Resolution = ds.Resolution()
	meta.Count = ds.Len()
	doc := struct {
		Manifest
		Shape  [3]int      `json:"shape"`
		Grids  [][]float64 `json:"grids"`
		Labels []int       `json:"labels"`
	}{
		Manifest: meta,
		Labels:   ds.Labels,
		Shape:    ds.GridShape(),
		Grids:    make([][]float64, len(ds.Grids)),
	}
	for i, g := range ds.Grids {
		doc.Grids[i] = g.Data
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// List returns the manifests under the base directory, oldest first.
// Directories without a readable manifest are ignored.
func (s *Store) List() ([]Manifest, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Manifest{}, nil
		}
		return nil, err
	}

	out := make([]Manifest, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *Store) Load(id string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, manifestFile))
	if err != nil {
		return nil, err
	}

	var meta Manifest
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadDataset reads the grids written by Save.
func (s *Store) LoadDataset(id string) (dataset.Dataset, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, gridsFile))
	if err != nil {
		return dataset.Dataset{}, err
	}
	defer f.Close()
	return ReadCSV(f, filepath.Join(id, gridsFile))
}
