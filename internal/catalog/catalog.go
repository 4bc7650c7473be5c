// Package catalog holds the curated (parameter → label) tables, one per map
// family. The tables ship as YAML inside the binary and are decoded once into
// read-only process state; callers only ever receive copies.
package catalog

import (
	"embed"
	"fmt"
	"sync"

	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/maps"
	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tableFS embed.FS

var tableFiles = map[maps.Kind]string{
	maps.Standard:    "tables/standard.yaml",
	maps.DeVogelaere: "tables/devogelaere.yaml",
	maps.Web:         "tables/web.yaml",
}

// Entry is one hand-picked orbit with a known regime.
type Entry struct {
	K          float64 `yaml:"k"`
	X0         float64 `yaml:"x0"`
	Y0         float64 `yaml:"y0"`
	Label      int     `yaml:"label"`
	Q          int     `yaml:"q,omitempty"`
	Multiplier int     `yaml:"multiplier,omitempty"`
}

// Table is the decoded form of one YAML file.
type Table struct {
	Family  string  `yaml:"family"`
	Entries []Entry `yaml:"entries"`
}

var (
	loadOnce sync.Once
	loaded   map[maps.Kind]Table
	loadErr  error
)

func load() {
	loaded = make(map[maps.Kind]Table, len(tableFiles))
	for kind, path := range tableFiles {
		data, err := tableFS.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("catalog: read %s: %w", path, err)
			return
		}
		tbl, err := Parse(data)
		if err != nil {
			loadErr = fmt.Errorf("catalog: %s: %w", path, err)
			return
		}
		if tbl.Family != kind.String() {
			loadErr = fmt.Errorf("catalog: %s declares family %q, want %q", path, tbl.Family, kind)
			return
		}
		loaded[kind] = tbl
	}
}

// Parse decodes a table without validating labels; [Entry.Validate] does that.
func Parse(data []byte) (Table, error) {
	var tbl Table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return Table{}, dynamo.Configf("table", "%v", err)
	}
	return tbl, nil
}

// Entries returns a copy of the curated table for kind.
func Entries(kind maps.Kind) ([]Entry, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	tbl, ok := loaded[kind]
	if !ok {
		return nil, dynamo.Configf("family", "no curated table for %v", kind)
	}
	out := make([]Entry, len(tbl.Entries))
	copy(out, tbl.Entries)
	return out, nil
}

// Families lists the kinds that have a curated table.
func Families() []maps.Kind {
	return []maps.Kind{maps.Standard, maps.DeVogelaere, maps.Web}
}

// Validate checks the label; the map parameters are checked when simulated.
func (e Entry) Validate() error {
	return dynamo.CheckLabel(e.Label)
}

// Params builds the family parameter record for this entry.
func (e Entry) Params(kind maps.Kind) (maps.Params, error) {
	switch kind {
	case maps.Standard:
		return maps.NewStandard(e.K), nil
	case maps.DeVogelaere:
		return maps.NewDeVogelaere(e.K), nil
	case maps.Web:
		return maps.NewWeb(e.K, e.Q), nil
	default:
		return nil, dynamo.Configf("family", "%v entries cannot be simulated", kind)
	}
}

// Spec builds the simulation spec with the given iteration count.
func (e Entry) Spec(kind maps.Kind, iterations int) (maps.Spec, error) {
	p, err := e.Params(kind)
	if err != nil {
		return maps.Spec{}, err
	}
	return maps.Spec{Params: p, X0: e.X0, Y0: e.Y0, Iterations: iterations}, nil
}
