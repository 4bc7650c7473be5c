package external

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// writeRows writes n random rows in [-5, 5] and returns the path.
func writeRows(t *testing.T, dir, name string, n int, seed int64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	b.WriteString("# x y\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%.6f %.6f\n", rng.Float64()*10-5, rng.Float64()*10-5)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestReadRows(t *testing.T) {
	in := "# header\n\n1.5  -2\n\t3e-1 4\n  \n-0 0.25\n"
	tr, err := ReadRows(strings.NewReader(in), "t.dat")
	require.NoError(t, err)
	assert.Equal(t, dynamo.Trajectory{{X: 1.5, Y: -2}, {X: 0.3, Y: 4}, {X: 0, Y: 0.25}}, tr)
}

func TestReadRowsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"one column", "1 2\n3\n", 2},
		{"three columns", "1 2 3\n", 1},
		{"not a number", "1 2\n\nx 4\n", 3},
		{"nan", "nan 1\n", 1},
		{"inf", "1 +Inf\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRows(strings.NewReader(tt.in), "bad.dat")
			require.ErrorIs(t, err, dynamo.ErrFormat)

			var fe *dynamo.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.line, fe.Line)
			assert.Equal(t, "bad.dat", fe.Source)
		})
	}
}

func TestIngestSynthetic(t *testing.T) {
	path := writeRows(t, t.TempDir(), "orbit.dat", 450, 1)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := ReadRows(f, "orbit.dat")
	require.NoError(t, err)

	g, label, err := Ingest(rows, 450, dynamo.LabelChaos, 30)
	require.NoError(t, err)
	assert.Equal(t, dynamo.LabelChaos, label)
	assert.Equal(t, [3]int{30, 30, 1}, g.Shape())

	lo, hi := g.Range()
	assert.GreaterOrEqual(t, lo, -1.0)
	assert.LessOrEqual(t, hi, 1.0)
}

func TestIngestDefaultResolution(t *testing.T) {
	rows := make(dynamo.Trajectory, 500)
	for i := range rows {
		rows[i] = dynamo.Point{X: float64(i), Y: -float64(i)}
	}
	g, _, err := Ingest(rows, 450, dynamo.LabelOrder, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, g.Res)
	assert.Equal(t, 1.0, g.Data[len(g.Data)-2])
}

func TestIngestTooFewRows(t *testing.T) {
	rows := make(dynamo.Trajectory, 100)
	_, _, err := Ingest(rows, 450, dynamo.LabelOrder, 30)
	assert.ErrorIs(t, err, dynamo.ErrShape)

	_, _, err = Ingest(nil, 450, dynamo.LabelOrder, 30)
	assert.ErrorIs(t, err, dynamo.ErrShape)
}

func TestIngestBadLabel(t *testing.T) {
	rows := make(dynamo.Trajectory, 450)
	_, _, err := Ingest(rows, 450, 3, 30)
	assert.ErrorIs(t, err, dynamo.ErrConfiguration)
}

func TestIngestFilesOrder(t *testing.T) {
	dir := t.TempDir()
	srcs := []Source{
		{Path: writeRows(t, dir, "b.dat", 450, 2), Label: dynamo.LabelOrder},
		{Path: writeRows(t, dir, "a.dat", 460, 3), Label: dynamo.LabelChaos},
		{Path: writeRows(t, dir, "c.dat", 450, 4), Label: dynamo.LabelOrder},
	}

	ds, err := IngestFiles(srcs, Options{Points: 450, Resolution: 30})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, ds.Labels)
	assert.Len(t, ds.Grids, 3)
	assert.NoError(t, ds.Validate())
}

func TestIngestFilesStrict(t *testing.T) {
	dir := t.TempDir()
	good := writeRows(t, dir, "good.dat", 450, 5)
	short := writeRows(t, dir, "short.dat", 10, 6)

	_, err := IngestFiles([]Source{{Path: good}, {Path: short}}, Options{Points: 450, Resolution: 30})
	assert.ErrorIs(t, err, dynamo.ErrShape)
	assert.Contains(t, err.Error(), "short.dat")
}

func TestIngestFilesTolerant(t *testing.T) {
	dir := t.TempDir()
	good := writeRows(t, dir, "good.dat", 450, 7)
	short := writeRows(t, dir, "short.dat", 10, 8)
	broken := filepath.Join(dir, "broken.dat")
	require.NoError(t, os.WriteFile(broken, []byte("1 2\nfoo bar\n"), 0644))

	core, logs := observer.New(zapcore.WarnLevel)
	ds, err := IngestFiles(
		[]Source{{Path: short}, {Path: good, Label: 1}, {Path: broken}},
		Options{Points: 450, Resolution: 30, Tolerant: true, Logger: zap.New(core)},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ds.Labels)
	assert.Equal(t, 2, logs.FilterMessage("skipping trajectory").Len())
}

func TestIngestFilesMissingFileAborts(t *testing.T) {
	_, err := IngestFiles(
		[]Source{{Path: filepath.Join(t.TempDir(), "nope.dat")}},
		Options{Points: 450, Resolution: 30, Tolerant: true},
	)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()
	writeRows(t, dir, "orbit_02_order.dat", 450, 9)
	writeRows(t, dir, "orbit_01_chaos.dat", 450, 10)
	writeRows(t, dir, "notes.txt", 450, 11)

	byName := func(name string) (int, error) {
		if strings.Contains(name, "order") {
			return dynamo.LabelOrder, nil
		}
		return dynamo.LabelChaos, nil
	}
	ds, err := IngestDir(dir, "*.dat", byName, Options{Points: 450})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ds.Labels)
}

func TestFixedLabel(t *testing.T) {
	l, err := FixedLabel(1)("x")
	assert.NoError(t, err)
	assert.Equal(t, 1, l)

	_, err = FixedLabel(5)("x")
	assert.ErrorIs(t, err, dynamo.ErrConfiguration)
}
