package surface

import "github.com/vtcore/vtcore/vt"

// Impact is a single (x, y, new_cell) write produced by a frame diff,
// matching the shape of vt.Impact but namespaced to the compositor since
// the two are diffed against different predecessors (previous rendered
// frame vs. previous token-applied state).
type Impact struct {
	X, Y int
	Cell vt.Cell
}

// diff compares cur against prev cell by cell and returns every position
// where they differ (§4.3 step 4).
func diff(prev, cur *vt.Grid) []Impact {
	var out []Impact
	h, w := cur.Height(), cur.Width()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cur.Cell(x, y)
			if !cellEqual(prev.Cell(x, y), c) {
				out = append(out, Impact{X: x, Y: y, Cell: c})
			}
		}
	}
	return out
}

// diffAgainstEmpty is the first-frame case: every non-empty cell in cur is
// an impact, since there is no previous surface to compare against.
func diffAgainstEmpty(cur *vt.Grid) []Impact {
	var out []Impact
	h, w := cur.Height(), cur.Width()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cur.Cell(x, y)
			if !cellEqual(vt.EmptyCell, c) {
				out = append(out, Impact{X: x, Y: y, Cell: c})
			}
		}
	}
	return out
}

// cellEqual compares cells on everything visible to the presentation side:
// grapheme, colors, attrs, and whether a tracked ref is attached (the ref's
// identity, not its refcount, which is the Emulator's concern not the
// compositor's). WriteSeq/WrittenAt are bookkeeping the presentation side
// never sees and are intentionally excluded from equality.
func cellEqual(a, b vt.Cell) bool {
	if a.Grapheme != b.Grapheme || a.Fg != b.Fg || a.Bg != b.Bg || a.Attrs != b.Attrs {
		return false
	}
	if (a.TrackedHyperlink == nil) != (b.TrackedHyperlink == nil) {
		return false
	}
	if (a.TrackedSixel == nil) != (b.TrackedSixel == nil) {
		return false
	}
	return true
}
