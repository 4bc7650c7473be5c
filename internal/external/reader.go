// Package external ingests trajectories computed outside this module (JHMAP
// runs and similar) and turns them into dataset-compatible grids.
package external

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// ReadRows parses whitespace-delimited "x y" rows. Blank lines and lines
// starting with '#' are skipped. source only labels errors.
func ReadRows(r io.Reader, source string) (dynamo.Trajectory, error) {
	var tr dynamo.Trajectory
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		p, ok := parseRow(text)
		if !ok {
			return nil, &dynamo.FormatError{Source: source, Line: line, Text: text}
		}
		tr = append(tr, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tr, nil
}

func parseRow(text string) (dynamo.Point, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return dynamo.Point{}, false
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return dynamo.Point{}, false
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return dynamo.Point{}, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return dynamo.Point{}, false
	}
	return dynamo.Point{X: x, Y: y}, true
}
