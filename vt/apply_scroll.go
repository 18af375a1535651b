package vt

// marginBounds returns the active left/right column bounds for shift
// operations: the scroll-region margins when DECLRMM is on, else the full
// row width (§4.2 "Scroll region ops").
func (e *Emulator) marginBounds() (left, right int) {
	if e.modes&ModeLeftRightMargin != 0 {
		return e.marginLeft, e.marginRight
	}
	return 0, e.width - 1
}

// scrollUp shifts rows [top..bottom] up by n within the active margin
// columns: each row's contents are replaced by the row n below it (copy,
// ref-neutral), the bottom n rows become empty (refs released), and rows
// introduced by the shift are blank.
func (e *Emulator) scrollUp(top, bottom, n int, impacts *[]Impact) {
	if n <= 0 {
		return
	}
	e.scrollUpFrom(top, bottom, n, impacts)
}

// scrollDown is the mirror of scrollUp: rows shift down, vacating rows at
// the top of the region.
func (e *Emulator) scrollDown(top, bottom, n int, impacts *[]Impact) {
	if n <= 0 {
		return
	}
	e.scrollDownFrom(top, bottom, n, impacts)
}

// transferCell installs a copy of c at (x,y): c's refs are retained for the
// new holder and the prior occupant's refs are released. Over a whole shift
// every source cell is itself overwritten in turn, so a moved cell's refs
// end with no net change and only discarded cells lose theirs (§3 invariant).
func (e *Emulator) transferCell(impacts *[]Impact, x, y int, c Cell) {
	old := e.active.Cell(x, y)
	e.interner.Retain(c.TrackedSixel)
	e.interner.Retain(c.TrackedHyperlink)
	releaseCellRefs(e.interner, old)
	e.active.Set(x, y, c)
	if impacts != nil {
		*impacts = append(*impacts, Impact{X: x, Y: y, Cell: c})
	}
}

// insertLines implements IL (CSI L): within the scroll region and active
// margins, shift lines at/below the cursor down by n, discarding the bottom
// n (refs released) and introducing blank lines at the cursor row.
func (e *Emulator) insertLines(n int, impacts *[]Impact) {
	if n <= 0 {
		n = 1
	}
	if e.cursor.Y < e.scrollTop || e.cursor.Y > e.scrollBottom {
		return
	}
	e.scrollDownFrom(e.cursor.Y, e.scrollBottom, n, impacts)
}

// deleteLines implements DL (CSI M): shift lines at/below the cursor up by
// n, discarding the top n within that sub-range.
func (e *Emulator) deleteLines(n int, impacts *[]Impact) {
	if n <= 0 {
		n = 1
	}
	if e.cursor.Y < e.scrollTop || e.cursor.Y > e.scrollBottom {
		return
	}
	e.scrollUpFrom(e.cursor.Y, e.scrollBottom, n, impacts)
}

func (e *Emulator) scrollUpFrom(top, bottom, n int, impacts *[]Impact) {
	left, right := e.marginBounds()
	for y := top; y <= bottom; y++ {
		srcY := y + n
		for x := left; x <= right; x++ {
			var c Cell
			if srcY <= bottom {
				c = e.active.Cell(x, srcY)
			} else {
				c = EmptyCell
			}
			e.transferCell(impacts, x, y, c)
		}
	}
}

func (e *Emulator) scrollDownFrom(top, bottom, n int, impacts *[]Impact) {
	left, right := e.marginBounds()
	for y := bottom; y >= top; y-- {
		srcY := y - n
		for x := left; x <= right; x++ {
			var c Cell
			if srcY >= top {
				c = e.active.Cell(x, srcY)
			} else {
				c = EmptyCell
			}
			e.transferCell(impacts, x, y, c)
		}
	}
}

// insertCharacters implements ICH (CSI @): shift cells at/right of the
// cursor within the active row margin to the right by n, discarding the
// rightmost n.
func (e *Emulator) insertCharacters(n int, impacts *[]Impact) {
	if n <= 0 {
		n = 1
	}
	_, right := e.marginBounds()
	y := e.cursor.Y
	for x := right; x >= e.cursor.X; x-- {
		srcX := x - n
		var c Cell
		if srcX >= e.cursor.X {
			c = e.active.Cell(srcX, y)
		} else {
			c = EmptyCell
		}
		e.transferCell(impacts, x, y, c)
	}
}

// deleteCharacters implements DCH (CSI P): shift cells right of the cursor
// left by n, discarding the leftmost n of that sub-range and blanking the
// vacated right edge.
func (e *Emulator) deleteCharacters(n int, impacts *[]Impact) {
	if n <= 0 {
		n = 1
	}
	_, right := e.marginBounds()
	y := e.cursor.Y
	for x := e.cursor.X; x <= right; x++ {
		srcX := x + n
		var c Cell
		if srcX <= right {
			c = e.active.Cell(srcX, y)
		} else {
			c = EmptyCell
		}
		e.transferCell(impacts, x, y, c)
	}
}

// eraseCharacters implements ECH (CSI X): blanks n cells from the cursor
// rightward (release, no shifting), clamped to the active right margin.
func (e *Emulator) eraseCharacters(n int, impacts *[]Impact) {
	if n <= 0 {
		n = 1
	}
	_, right := e.marginBounds()
	y := e.cursor.Y
	for x := e.cursor.X; x <= right && x < e.cursor.X+n; x++ {
		e.recordClear(impacts, x, y)
	}
}
