// Package layout turns positioned text fragments into reading-order lines.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/resumatch/internal/doctree"
)

// RowTolerance is the vertical distance within which fragments share a line.
const RowTolerance = 5.0

// Itemize orders fragments top-to-bottom, left-to-right and merges fragments
// whose Y lies within RowTolerance of a row's anchor into one line.
// Whitespace-only fragments are dropped. Multi-column layouts are not
// reconstructed.
func Itemize(frags []doctree.Fragment) []string {
	kept := make([]doctree.Fragment, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Y > kept[j].Y })

	var lines []string
	var row []doctree.Fragment
	anchor := kept[0].Y

	flush := func() {
		if len(row) == 0 {
			return
		}
		// Fragments in one row read left to right.
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		parts := make([]string, len(row))
		for i, f := range row {
			parts[i] = strings.TrimSpace(f.Text)
		}
		lines = append(lines, strings.Join(parts, " "))
		row = row[:0]
	}

	for _, f := range kept {
		if math.Abs(f.Y-anchor) > RowTolerance {
			flush()
			anchor = f.Y
		}
		row = append(row, f)
	}
	flush()
	return lines
}
