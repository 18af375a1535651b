package surface

import (
	"sort"

	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/vt"
)

// Capabilities is a mask of optional escape sequences the presentation side
// is assumed to understand, gating which compact forms emit can choose
// between. Grounded on charmbracelet/x/ansi-based terminal writers (the
// capabilities bitmask in ultraviolet's terminal_screen.go): not every
// presentation speaks every optimization, so the safe subset (cursor
// positioning + SGR + plain text) is always available and the rest only
// kick in when advertised.
type Capabilities uint

const (
	CapREP Capabilities = 1 << iota // CSI Ps b (repeat previous character)

	NoCapabilities  Capabilities = 0
	AllCapabilities              = CapREP
)

// Contains reports whether the mask contains c.
func (v Capabilities) Contains(c Capabilities) bool { return v&c == c }

const repMinRun = 4 // below this run length, literal repetition is shorter than CSI...b

// run is one contiguous horizontal stretch of changed cells within a row.
type run struct {
	startX int
	cells  []vt.Cell
}

// emit converts a list of impacts into a minimally-coalesced ANSI byte
// sequence (§4.3 step 5): grouped by row, horizontally contiguous runs
// coalesced, SGR transitions and cursor moves emitted only when the pen or
// position actually changes.
func emit(impacts []Impact, width int) []byte {
	return emitWithCapabilities(impacts, width, AllCapabilities)
}

func emitWithCapabilities(impacts []Impact, width int, caps Capabilities) []byte {
	if len(impacts) == 0 {
		return nil
	}

	byRow := make(map[int][]Impact)
	for _, im := range impacts {
		byRow[im.Y] = append(byRow[im.Y], im)
	}
	rows := make([]int, 0, len(byRow))
	for y := range byRow {
		rows = append(rows, y)
	}
	sort.Ints(rows)

	var toks []token.Token
	var pen vt.Cell
	havePen := false
	lastX, lastY := -1, -1

	for _, y := range rows {
		cells := byRow[y]
		sort.Slice(cells, func(i, j int) bool { return cells[i].X < cells[j].X })

		for _, r := range coalesceRuns(cells) {
			if !(lastY == y && lastX == r.startX-1) {
				toks = append(toks, token.Token{Kind: token.KindCursorPosition, Row: y + 1, Col: r.startX + 1})
			}

			i := 0
			for i < len(r.cells) {
				c := r.cells[i]
				if c.IsContinuation() {
					i++
					continue
				}

				runLen, uniform := repeatRun(r.cells, i)
				if caps.Contains(CapREP) && uniform && runLen >= repMinRun {
					if !havePen || !sameSgr(pen, c) {
						toks = append(toks, sgrTokenFor(c))
						pen, havePen = c, true
					}
					toks = append(toks, token.Token{Kind: token.KindText, Text: c.Grapheme})
					toks = append(toks, token.Token{Kind: token.KindRepeatCharacter, Count: runLen - 1})
					i += runLen
					continue
				}

				if !havePen || !sameSgr(pen, c) {
					toks = append(toks, sgrTokenFor(c))
					pen, havePen = c, true
				}
				toks = append(toks, token.Token{Kind: token.KindText, Text: c.Grapheme})
				i++
			}

			lastX = r.startX + len(r.cells) - 1
			lastY = y
		}
	}

	ser := token.NewSerializer()
	var out []byte
	for _, t := range toks {
		out = append(out, ser.Encode(t)...)
	}
	return out
}

// coalesceRuns groups same-row impacts with strictly-consecutive X values
// into a single run, so the emitter only issues a cursor move at a run's
// start rather than before every single changed cell.
func coalesceRuns(sorted []Impact) []run {
	var out []run
	for _, im := range sorted {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.startX+len(last.cells) == im.X {
				last.cells = append(last.cells, im.Cell)
				continue
			}
		}
		out = append(out, run{startX: im.X, cells: []vt.Cell{im.Cell}})
	}
	return out
}

// repeatRun reports the length of a uniform (identical grapheme/pen) run
// starting at i, for REP (CSI Ps b) coalescing.
func repeatRun(cells []vt.Cell, i int) (int, bool) {
	first := cells[i]
	if first.IsContinuation() || vt.GraphemeWidth(first.Grapheme) != 1 {
		return 1, false
	}
	n := 1
	for j := i + 1; j < len(cells); j++ {
		if !sameSgr(first, cells[j]) || cells[j].Grapheme != first.Grapheme {
			break
		}
		n++
	}
	return n, n > 1
}

func sameSgr(a, b vt.Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Attrs == b.Attrs
}

// sgrTokenFor builds the absolute SGR token for a cell's pen: always a
// reset followed by the cell's attributes and colors, rather than a delta
// against the previous pen. This trades a few redundant bytes for never
// needing to track which individual attribute bits were toggled on versus
// off across a run boundary.
func sgrTokenFor(c vt.Cell) token.Token {
	params := []int64{0}

	if c.Attrs.Has(vt.AttrBold) {
		params = append(params, 1)
	}
	if c.Attrs.Has(vt.AttrDim) {
		params = append(params, 2)
	}
	if c.Attrs.Has(vt.AttrItalic) {
		params = append(params, 3)
	}
	if c.Attrs.Has(vt.AttrUnderline) {
		params = append(params, 4)
	}
	if c.Attrs.Has(vt.AttrBlink) {
		params = append(params, 5)
	}
	if c.Attrs.Has(vt.AttrReverse) {
		params = append(params, 7)
	}
	if c.Attrs.Has(vt.AttrHidden) {
		params = append(params, 8)
	}
	if c.Attrs.Has(vt.AttrStrikethrough) {
		params = append(params, 9)
	}
	if c.Attrs.Has(vt.AttrOverline) {
		params = append(params, 53)
	}

	params = append(params, colorParams(c.Fg, true)...)
	params = append(params, colorParams(c.Bg, false)...)

	return token.Token{Kind: token.KindSgr, SgrParams: params}
}

func colorParams(c vt.Color, isFg bool) []int64 {
	switch c.Kind {
	case vt.ColorDefault:
		return nil // default is already implied by the reset (0) in sgrTokenFor
	case vt.ColorPalette:
		if c.Index < 8 {
			if isFg {
				return []int64{30 + int64(c.Index)}
			}
			return []int64{40 + int64(c.Index)}
		}
		if isFg {
			return []int64{90 + int64(c.Index-8)}
		}
		return []int64{100 + int64(c.Index-8)}
	case vt.ColorIndexed:
		if isFg {
			return []int64{38, 5, int64(c.Index)}
		}
		return []int64{48, 5, int64(c.Index)}
	case vt.ColorRGB:
		if isFg {
			return []int64{38, 2, int64(c.R), int64(c.G), int64(c.B)}
		}
		return []int64{48, 2, int64(c.R), int64(c.G), int64(c.B)}
	default:
		return nil
	}
}
