package surface

import (
	"github.com/vtcore/vtcore/vt"
)

// RenderContext is the write surface a root node renders into. It tracks a
// current cursor position and pen (fg/bg/attrs/hyperlink) the way vt's
// writeGrapheme tracks e.sgr, and applies the same grapheme-width rules as
// §4.2 so wide characters get a continuation cell here too.
type RenderContext struct {
	surface *Surface
	grid    *vt.Grid

	x, y int

	fg, bg    vt.Color
	attrs     vt.Attrs
	hyperlink *vt.TrackedRef
}

// SetCursor moves the render cursor. Out-of-bounds coordinates are clamped
// to the nearest valid cell rather than rejected, since a node is free to
// compute positions past its own bounds during layout churn.
func (r *RenderContext) SetCursor(x, y int) {
	r.x = clamp(x, 0, r.grid.Width()-1)
	r.y = clamp(y, 0, r.grid.Height()-1)
}

func (r *RenderContext) Cursor() (int, int) { return r.x, r.y }

// SetForeground, SetBackground, SetAttrs set the pen used by subsequent
// WriteString calls.
func (r *RenderContext) SetForeground(c vt.Color) { r.fg = c }
func (r *RenderContext) SetBackground(c vt.Color) { r.bg = c }
func (r *RenderContext) SetAttrs(a vt.Attrs)       { r.attrs = a }

// SetHyperlink sets (or, passed nil, clears) the tracked hyperlink ref
// subsequent writes attach to. The caller owns the ref's lifetime; the
// RenderContext never retains or releases it itself, since a widget tree
// may reuse the same interned ref across many frames.
func (r *RenderContext) SetHyperlink(ref *vt.TrackedRef) { r.hyperlink = ref }

// WriteString writes graphemes left to right from the current cursor,
// clipping at the grid's right edge. Wide graphemes occupy one origin cell
// plus continuation cells sharing write_seq, identical to vt's rule (§3).
func (r *RenderContext) WriteString(s string) {
	for _, g := range splitGraphemes(s) {
		w := vt.GraphemeWidth(g)
		if w == 0 {
			continue // combining marks with no prior cell in this context are dropped
		}
		if r.x+w > r.grid.Width() {
			return // clip rather than wrap: a surface write is not a terminal print
		}
		cell := vt.Cell{
			Grapheme:         g,
			Fg:               r.fg,
			Bg:               r.bg,
			Attrs:            r.attrs,
			WriteSeq:         0,
			TrackedHyperlink: r.hyperlink,
		}
		r.grid.Set(r.x, r.y, cell)
		for i := 1; i < w; i++ {
			r.grid.Set(r.x+i, r.y, vt.Cell{Fg: r.fg, Bg: r.bg, Attrs: r.attrs, TrackedHyperlink: r.hyperlink})
		}
		r.x += w
	}
}

// FillRect paints a rectangle with blank cells using the current pen,
// clipped to the grid bounds. Containers use this to paint their background
// before rendering children into it.
func (r *RenderContext) FillRect(x, y, w, h int) {
	blank := vt.Cell{Grapheme: " ", Fg: r.fg, Bg: r.bg, Attrs: r.attrs}
	for dy := 0; dy < h; dy++ {
		row := y + dy
		if row < 0 || row >= r.grid.Height() {
			continue
		}
		for dx := 0; dx < w; dx++ {
			col := x + dx
			if col < 0 || col >= r.grid.Width() {
				continue
			}
			r.grid.Set(col, row, blank)
		}
	}
}

// PlaceSixel writes a Sixel footprint starting at the current cursor: the
// origin cell holds ref, the remaining wCells x hCells-1 footprint carries
// only the Sixel attribute bit, matching vt.placeSixel's cell layout.
func (r *RenderContext) PlaceSixel(ref *vt.TrackedRef, wCells, hCells int) {
	x0, y0 := r.x, r.y
	for dy := 0; dy < hCells; dy++ {
		row := y0 + dy
		if row >= r.grid.Height() {
			break
		}
		for dx := 0; dx < wCells; dx++ {
			col := x0 + dx
			if col >= r.grid.Width() {
				break
			}
			c := vt.Cell{Grapheme: " ", Fg: vt.DefaultColor, Bg: vt.DefaultColor, Attrs: vt.AttrSixel}
			if dx == 0 && dy == 0 {
				c.TrackedSixel = ref
			}
			r.grid.Set(col, row, c)
		}
	}
}

// CellPixelMetrics returns the surface's current cell-pixel footprint, for
// nodes that need to size a Sixel image in cells given its pixel dimensions.
func (r *RenderContext) CellPixelMetrics() (w, h int) {
	return r.surface.cellPixelWidth, r.surface.cellPixelHeight
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// splitGraphemes is a minimal grapheme-cluster splitter: it groups a base
// rune with any immediately following zero-width combining/variation/ZWJ
// runes, mirroring what the tokenizer's incremental text accumulation
// already guarantees on the Emulator side. A RenderContext, unlike the
// Emulator, receives whole Go strings from widgets rather than a raw byte
// stream, so it re-derives clusters itself instead of relying on
// incremental buffering.
func splitGraphemes(s string) []string {
	var out []string
	var cur []rune
	for _, r := range s {
		if len(cur) > 0 && isCombining(r) {
			cur = append(cur, r)
			continue
		}
		if len(cur) > 0 {
			out = append(out, string(cur))
		}
		cur = []rune{r}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func isCombining(r rune) bool {
	switch {
	case r == '‍': // ZWJ
		return true
	case r == '️' || r == '︎': // VS16/VS15
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	case r >= 0x1AB0 && r <= 0x1AFF:
		return true
	case r >= 0x1DC0 && r <= 0x1DFF:
		return true
	case r >= 0x20D0 && r <= 0x20FF:
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r == 0x200B || r == 0x200C:
		return true
	default:
		return false
	}
}
