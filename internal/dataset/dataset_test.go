package dataset

import (
	"errors"
	"testing"

	"github.com/san-kum/orbitgrid/internal/catalog"
	"github.com/san-kum/orbitgrid/internal/config"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
	"github.com/san-kum/orbitgrid/internal/maps"
	"go.uber.org/zap/zaptest"
)

// synthetic builds n 2×2 grids whose first cell holds the index, so subsets
// can be traced back to their source.
func synthetic(n int) Dataset {
	ds := Dataset{}
	for i := 0; i < n; i++ {
		g := grid.New(2)
		g.Data[0] = float64(i)
		ds.Grids = append(ds.Grids, g)
		ds.Labels = append(ds.Labels, i%2)
	}
	return ds
}

func ids(ds Dataset) []int {
	out := make([]int, ds.Len())
	for i, g := range ds.Grids {
		out[i] = int(g.Data[0])
	}
	return out
}

func seed(v int64) *int64 { return &v }

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		n           int
		fraction    float64
		independent bool
		train, val  int
	}{
		{384, 2.0 / 3.0, false, 256, 128},
		{384, 2.0 / 3.0, true, 256, 128},
		{9, 2.0 / 3.0, false, 6, 3},
		{9, 2.0 / 3.0, true, 6, 4},
		{10, 0.5, false, 5, 5},
		{1, 0.5, false, 0, 1},
	}

	for _, tt := range tests {
		train, val, err := Split(synthetic(tt.n), tt.fraction, SplitOptions{Seed: seed(7), Independent: tt.independent})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", tt.n, err)
		}
		if train.Len() != tt.train || val.Len() != tt.val {
			t.Errorf("n=%d independent=%v: expected %d/%d, got %d/%d",
				tt.n, tt.independent, tt.train, tt.val, train.Len(), val.Len())
		}
		if len(train.Grids) != len(train.Labels) || len(val.Grids) != len(val.Labels) {
			t.Errorf("n=%d: grids and labels out of step", tt.n)
		}
	}
}

func TestSplitDisjointByDefault(t *testing.T) {
	ds := synthetic(9)
	train, val, err := Split(ds, 2.0/3.0, SplitOptions{Seed: seed(3)})
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int]bool)
	for _, id := range ids(train) {
		seen[id] = true
	}
	for _, id := range ids(val) {
		if seen[id] {
			t.Errorf("entry %d in both subsets", id)
		}
		seen[id] = true
	}
	if len(seen) != 9 {
		t.Errorf("expected every entry assigned, got %d", len(seen))
	}
}

func TestSplitIndependentOverlap(t *testing.T) {
	ds := synthetic(9)
	train, val, err := Split(ds, 2.0/3.0, SplitOptions{Seed: seed(3), Independent: true})
	if err != nil {
		t.Fatal(err)
	}

	inTrain := make(map[int]bool)
	for _, id := range ids(train) {
		inTrain[id] = true
	}
	overlap := 0
	for _, id := range ids(val) {
		if inTrain[id] {
			overlap++
		}
	}
	if overlap != 1 {
		t.Errorf("expected 1 shared entry, got %d", overlap)
	}
}

func TestSplitDeterministic(t *testing.T) {
	ds := synthetic(384)
	a1, b1, _ := Split(ds, 2.0/3.0, SplitOptions{Seed: seed(42)})
	a2, b2, _ := Split(ds, 2.0/3.0, SplitOptions{Seed: seed(42)})

	x1, x2 := ids(a1), ids(a2)
	for i := range x1 {
		if x1[i] != x2[i] {
			t.Fatalf("train differs at %d: %d vs %d", i, x1[i], x2[i])
		}
	}
	y1, y2 := ids(b1), ids(b2)
	for i := range y1 {
		if y1[i] != y2[i] {
			t.Fatalf("validation differs at %d: %d vs %d", i, y1[i], y2[i])
		}
	}
}

func TestSplitKeepsPairs(t *testing.T) {
	ds := synthetic(50)
	train, val, _ := Split(ds, 0.8, SplitOptions{Seed: seed(11)})
	for _, part := range []Dataset{train, val} {
		for i, g := range part.Grids {
			if part.Labels[i] != int(g.Data[0])%2 {
				t.Errorf("grid %v carries label %d", g.Data[0], part.Labels[i])
			}
		}
	}
}

func TestSplitDoesNotMutate(t *testing.T) {
	ds := synthetic(20)
	before := ids(ds)
	train, _, _ := Split(ds, 0.5, SplitOptions{Seed: seed(1)})
	train.Grids[0].Data[0] = -1

	after := ids(ds)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input changed at %d", i)
		}
	}
}

func TestSplitBadFraction(t *testing.T) {
	for _, f := range []float64{0, 1, -0.5, 1.5} {
		_, _, err := Split(synthetic(4), f, SplitOptions{})
		if !errors.Is(err, dynamo.ErrConfiguration) {
			t.Errorf("fraction %v: expected configuration error, got %v", f, err)
		}
	}
}

func TestDatasetAppendCopies(t *testing.T) {
	g := grid.New(2)
	ds := Dataset{}.Append(g, dynamo.LabelOrder)
	g.Data[0] = 5

	if ds.Grids[0].Data[0] != 0 {
		t.Error("Append kept a reference to the caller's grid")
	}
	if ds.Len() != 1 || ds.Labels[0] != dynamo.LabelOrder {
		t.Errorf("unexpected dataset %+v", ds)
	}
}

func TestDatasetValidate(t *testing.T) {
	ds := synthetic(3)
	if err := ds.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := synthetic(3)
	bad.Labels[1] = 2
	if err := bad.Validate(); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	mixed := synthetic(2).Append(grid.New(3), 0)
	if err := mixed.Validate(); !errors.Is(err, dynamo.ErrShape) {
		t.Errorf("expected shape error, got %v", err)
	}
}

func TestConcat(t *testing.T) {
	ds := Concat(synthetic(2), synthetic(3))
	if ds.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", ds.Len())
	}
	want := []int{0, 1, 0, 1, 2}
	for i, id := range ids(ds) {
		if id != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], id)
		}
	}
}

func TestAssembleStandard(t *testing.T) {
	a, err := NewAssembler(config.DefaultConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	entries, _ := catalog.Entries(maps.Standard)

	ds, err := a.Assemble(maps.Standard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != len(entries) {
		t.Errorf("expected %d grids, got %d", len(entries), ds.Len())
	}
	for i, g := range ds.Grids {
		if g.Shape() != [3]int{30, 30, 1} {
			t.Errorf("grid %d: unexpected shape %v", i, g.Shape())
		}
		if ds.Labels[i] != entries[i].Label {
			t.Errorf("grid %d: expected label %d, got %d", i, entries[i].Label, ds.Labels[i])
		}
		lo, hi := g.Range()
		if lo < -1 || hi > 1 {
			t.Errorf("grid %d: values outside [-1, 1]: %v..%v", i, lo, hi)
		}
	}
}

func TestAssembleParallelMatchesSerial(t *testing.T) {
	serial, _ := NewAssembler(config.DefaultConfig(), nil)
	pcfg := config.DefaultConfig()
	pcfg.Parallel = true
	parallel, _ := NewAssembler(pcfg, nil)

	a, err := serial.Assemble(maps.Web)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parallel.Assemble(maps.Web)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Grids {
		if !a.Grids[i].Equal(b.Grids[i]) || a.Labels[i] != b.Labels[i] {
			t.Errorf("entry %d differs between serial and parallel runs", i)
		}
	}
}

func TestAssembleRejectsBadLabel(t *testing.T) {
	a, _ := NewAssembler(nil, nil)
	entries := []catalog.Entry{
		{K: 0.5, X0: 0.5, Y0: 0, Label: 1},
		{K: 0.5, X0: 0.01, Y0: 0, Label: 2},
	}
	ds, err := a.AssembleEntries(maps.Standard, entries)
	if !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("expected no partial dataset, got %d entries", ds.Len())
	}
}

func TestAssembleWebWithoutQ(t *testing.T) {
	a, _ := NewAssembler(nil, nil)
	_, err := a.AssembleEntries(maps.Web, []catalog.Entry{{K: 1, X0: 1, Y0: 0, Label: 1}})
	if !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestNewAssemblerRejectsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Points = 100
	if _, err := NewAssembler(cfg, nil); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestWebOrbitsVisitEveryQuadrant(t *testing.T) {
	a, err := NewAssembler(nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := catalog.Entries(maps.Web)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range entries {
		tr, err := a.Orbit(maps.Web, e)
		if err != nil {
			t.Fatalf("entry %d: %v", i, err)
		}
		var quadrants [4]int
		for _, p := range tr {
			q := 0
			if p.X < 0 {
				q |= 1
			}
			if p.Y < 0 {
				q |= 2
			}
			quadrants[q]++
		}
		for q, n := range quadrants {
			if n < 45 {
				t.Errorf("entry %d (k=%v q=%d): quadrant %d holds %d points, counts %v", i, e.K, e.Q, q, n, quadrants)
			}
		}
	}
}

func TestOrbitRejectsAliasedWebStride(t *testing.T) {
	a, _ := NewAssembler(nil, nil)
	e := catalog.Entry{K: 1, Q: 4, X0: 2, Y0: 1.5, Label: 1, Multiplier: 4}
	if _, err := a.Orbit(maps.Web, e); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	e.Multiplier = 7
	if _, err := a.Orbit(maps.Web, e); err != nil {
		t.Errorf("expected coprime stride to pass, got %v", err)
	}
}

func TestGridShape(t *testing.T) {
	if got := synthetic(3).GridShape(); got != [3]int{2, 2, 1} {
		t.Errorf("expected [2 2 1], got %v", got)
	}

	a, _ := NewAssembler(nil, nil)
	empty, err := a.AssembleEntries(maps.Standard, nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Len() != 0 || empty.GridShape() != [3]int{} {
		t.Errorf("expected empty dataset with zero shape, got %d entries, shape %v", empty.Len(), empty.GridShape())
	}
}
