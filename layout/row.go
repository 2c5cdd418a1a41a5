package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/reflow/text"
)

// Row represents fragments judged to lie on the same visual line
type Row struct {
	// Fragments are the text fragments of the row (sorted left to right)
	Fragments []text.TextFragment

	// Y is the baseline of the first fragment assigned to the row
	Y float64

	// Height is the effective font size of the first fragment assigned to the row
	Height float64
}

// Text returns the fragment texts joined with single spaces
func (r Row) Text() string {
	parts := make([]string, len(r.Fragments))
	for i, f := range r.Fragments {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// Left returns the smallest X of the row, 0 for an empty row
func (r Row) Left() float64 {
	if len(r.Fragments) == 0 {
		return 0
	}
	return r.Fragments[0].X
}

// groupIntoRows clusters usable fragments into rows, top of page first.
func groupIntoRows(fragments []text.TextFragment, tolerance float64) []Row {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]text.TextFragment, len(fragments))
	copy(sorted, fragments)
	sortTopDown(sorted)

	var rows []Row
	var current Row
	var lastY float64
	haveLast := false

	for _, frag := range sorted {
		fontSize := frag.FontSize()

		if haveLast && math.Abs(lastY-frag.Y) > fontSize*tolerance {
			rows = append(rows, closeRow(current))
			current = Row{}
		}

		if len(current.Fragments) == 0 {
			current.Y = frag.Y
			current.Height = fontSize
		}
		current.Fragments = append(current.Fragments, frag)

		lastY = frag.Y
		haveLast = true
	}

	if len(current.Fragments) > 0 {
		rows = append(rows, closeRow(current))
	}

	return rows
}

// sortTopDown orders fragments by Y descending and equal baselines by X.
// Fragments at an identical position keep their input order.
func sortTopDown(fragments []text.TextFragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		a, b := fragments[i], fragments[j]
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X < b.X
	})
}

// closeRow orders the row's fragments left to right.
func closeRow(row Row) Row {
	sort.SliceStable(row.Fragments, func(i, j int) bool {
		return row.Fragments[i].X < row.Fragments[j].X
	})
	return row
}
