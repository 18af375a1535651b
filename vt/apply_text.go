package vt

// applyText writes a run of decoded text runes, one grapheme at a time, per
// §4.2 "Printable write". The tokenizer hands us whole runes; grapheme
// clustering beyond single-rune width classification is intentionally not
// attempted here (Non-goals: accessibility/full Unicode segmentation are out
// of scope, and the teacher treats each rune independently too).
func (e *Emulator) applyText(text string, impacts *[]Impact) {
	for _, r := range text {
		e.writeGrapheme(string(r), impacts)
	}
}

func (e *Emulator) writeGrapheme(g string, impacts *[]Impact) {
	w := GraphemeWidth(g)
	if w == 0 {
		// Combining mark etc: merge into the previously written cell rather
		// than consuming a column (§4.2 width rule: combining chars are 0
		// width and do not advance the cursor).
		e.mergeIntoPrevious(g, impacts)
		return
	}

	if e.cursor.PendingWrap {
		e.advanceToNextLine(impacts)
	}

	if w > 1 && e.cursor.X+w-1 > e.effectiveRightMargin() {
		if e.modes&ModeAutoWrap == 0 {
			// No room for the continuation cell and autowrap is off, so
			// there's nowhere to defer to: drop the glyph rather than
			// leave a wide grapheme with no continuation cell (§3, §8
			// "Wide-character atomicity").
			return
		}
		e.advanceToNextLine(impacts)
	}

	seq := e.nextWriteSeq()
	origin := Cell{
		Grapheme: g,
		Fg:       e.sgr.Fg,
		Bg:       e.sgr.Bg,
		Attrs:    e.sgr.Attrs,
		WriteSeq: seq,
		WrittenAt: nowForCell(),
	}
	if e.sgr.Hyperlink != nil {
		e.interner.Retain(e.sgr.Hyperlink)
		origin.TrackedHyperlink = e.sgr.Hyperlink
	}

	x, y := e.cursor.X, e.cursor.Y
	e.writeCell(impacts, x, y, origin)
	e.lastPrintedX, e.lastPrintedY = x, y
	e.hasLastPrinted = true

	for i := 1; i < w; i++ {
		cx := x + i
		if cx > e.effectiveRightMargin() {
			break
		}
		cont := Cell{Grapheme: "", Fg: origin.Fg, Bg: origin.Bg, Attrs: origin.Attrs, WriteSeq: seq, WrittenAt: origin.WrittenAt}
		if e.sgr.Hyperlink != nil {
			e.interner.Retain(e.sgr.Hyperlink)
			cont.TrackedHyperlink = e.sgr.Hyperlink
		}
		e.writeCell(impacts, cx, y, cont)
	}

	e.cursor.X += w
	right := e.effectiveRightMargin()
	if e.cursor.X > right {
		e.cursor.X = right
		if e.modes&ModeAutoWrap != 0 {
			e.cursor.PendingWrap = true
		}
	}
}

// advanceToNextLine moves the cursor to the left margin of the next row,
// scrolling the active region up one line if that would cross the bottom
// margin. Used both for a deferred wrap consumed by the next printable and
// for a wide grapheme that cannot fit its continuation cell on this row.
func (e *Emulator) advanceToNextLine(impacts *[]Impact) {
	e.cursor.PendingWrap = false
	e.cursor.X = e.effectiveLeftMargin()
	e.cursor.Y++
	if e.cursor.Y > e.scrollBottom {
		e.cursor.Y = e.scrollBottom
		e.scrollUp(e.scrollTop, e.scrollBottom, 1, impacts)
	}
}

// mergeIntoPrevious folds a zero-width combining mark into the grapheme at
// the cursor's preceding column, if any.
func (e *Emulator) mergeIntoPrevious(mark string, impacts *[]Impact) {
	x := e.cursor.X - 1
	y := e.cursor.Y
	if x < 0 {
		return
	}
	prev := e.active.Cell(x, y)
	if prev.IsContinuation() && x > 0 {
		x--
		prev = e.active.Cell(x, y)
	}
	merged := prev
	merged.Grapheme = prev.Grapheme + mark
	e.active.Set(x, y, merged)
	if impacts != nil {
		*impacts = append(*impacts, Impact{X: x, Y: y, Cell: merged})
	}
}

func (e *Emulator) nextWriteSeq() uint64 {
	e.writeSeq++
	return e.writeSeq
}

// applyRepeat implements CSI b (REP): replays the last printed grapheme n
// times through the same deferred-wrap path, but never creates new tracked
// refs (§4.2: "REP does not replicate images/hyperlinks").
func (e *Emulator) applyRepeat(n int, impacts *[]Impact) {
	if !e.hasLastPrinted || n <= 0 {
		return
	}
	cell := e.active.Cell(e.lastPrintedX, e.lastPrintedY)
	if cell.Grapheme == "" {
		return
	}
	saved := e.sgr.Hyperlink
	e.sgr.Hyperlink = nil
	for i := 0; i < n; i++ {
		e.writeGrapheme(cell.Grapheme, impacts)
	}
	e.sgr.Hyperlink = saved
}
