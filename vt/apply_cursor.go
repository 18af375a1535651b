package vt

import "github.com/vtcore/vtcore/token"

// applyCursorPosition implements CUP/HVP (1-based row/col), clamped per
// §4.2: under DECOM the position is relative to the scroll region and the y
// origin is scroll_top.
func (e *Emulator) applyCursorPosition(row, col int) {
	e.cursor.PendingWrap = false
	y := row - 1
	x := col - 1
	if e.modes&ModeOrigin != 0 {
		y += e.scrollTop
		y = clampInt(y, e.scrollTop, e.scrollBottom)
	} else {
		y = clampInt(y, 0, e.height-1)
	}
	x = clampInt(x, 0, e.width-1)
	e.cursor.X, e.cursor.Y = x, y
}

// applyCursorColumn implements CHA/HPA (1-based column), clamped to the screen.
func (e *Emulator) applyCursorColumn(col int) {
	e.cursor.PendingWrap = false
	e.cursor.X = clampInt(col-1, 0, e.width-1)
}

// applyCursorRow implements VPA (1-based row), clamped per origin mode.
func (e *Emulator) applyCursorRow(row int) {
	e.cursor.PendingWrap = false
	y := row - 1
	if e.modes&ModeOrigin != 0 {
		y = clampInt(y+e.scrollTop, e.scrollTop, e.scrollBottom)
	} else {
		y = clampInt(y, 0, e.height-1)
	}
	e.cursor.Y = y
}

// applyCursorMove implements the relative cursor moves CUU/CUD/CUF/CUB/CNL/CPL.
func (e *Emulator) applyCursorMove(dir token.Direction, n int, impacts *[]Impact) {
	e.cursor.PendingWrap = false
	if n <= 0 {
		n = 1
	}
	switch dir {
	case token.DirUp:
		e.cursor.Y = clampInt(e.cursor.Y-n, 0, e.height-1)
	case token.DirDown:
		e.cursor.Y = clampInt(e.cursor.Y+n, 0, e.height-1)
	case token.DirForward:
		e.cursor.X = clampInt(e.cursor.X+n, 0, e.width-1)
	case token.DirBack:
		e.cursor.X = clampInt(e.cursor.X-n, 0, e.width-1)
	case token.DirNextLine:
		e.cursor.X = e.effectiveLeftMargin()
		e.cursor.Y = clampInt(e.cursor.Y+n, 0, e.height-1)
	case token.DirPreviousLine:
		e.cursor.X = e.effectiveLeftMargin()
		e.cursor.Y = clampInt(e.cursor.Y-n, 0, e.height-1)
	}
}

// applyIndex implements IND (ESC D): move down, scrolling at the region bottom.
func (e *Emulator) applyIndex(impacts *[]Impact) {
	e.cursor.PendingWrap = false
	if e.cursor.Y >= e.scrollBottom {
		e.scrollUp(e.scrollTop, e.scrollBottom, 1, impacts)
	} else {
		e.cursor.Y++
	}
}

// applyReverseIndex implements RI (ESC M): move up, scrolling at the region top.
func (e *Emulator) applyReverseIndex(impacts *[]Impact) {
	e.cursor.PendingWrap = false
	if e.cursor.Y <= e.scrollTop {
		e.scrollDown(e.scrollTop, e.scrollBottom, 1, impacts)
	} else {
		e.cursor.Y--
	}
}

// saveCursor implements DECSC (ESC 7 / CSI s without params).
func (e *Emulator) saveCursor() {
	e.savedCursor = SavedCursor{
		X: e.cursor.X, Y: e.cursor.Y,
		SGR:        e.sgr,
		OriginMode: e.modes&ModeOrigin != 0,
	}
	e.cursorSaved = true
}

// restoreCursor implements DECRC (ESC 8 / CSI u). A no-op when nothing was
// ever saved, per §4.2.
func (e *Emulator) restoreCursor() {
	if !e.cursorSaved {
		return
	}
	e.cursor.X = e.savedCursor.X
	e.cursor.Y = e.savedCursor.Y
	e.cursor.PendingWrap = false
	e.sgr = e.savedCursor.SGR
	if e.savedCursor.OriginMode {
		e.modes |= ModeOrigin
	} else {
		e.modes &^= ModeOrigin
	}
}

// applyScrollRegion implements DECSTBM (CSI r), 1-based inclusive, default
// full screen when top/bottom are zero/absent.
func (e *Emulator) applyScrollRegion(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 || bottom > e.height {
		bottom = e.height
	}
	t, b := top-1, bottom-1
	if t >= b {
		t, b = 0, e.height-1
	}
	e.scrollTop, e.scrollBottom = t, b
	// DECSTBM homes the cursor (to the scroll-region origin under DECOM,
	// else the screen origin), clearing pending wrap.
	e.cursor.PendingWrap = false
	if e.modes&ModeOrigin != 0 {
		e.cursor.X, e.cursor.Y = e.effectiveLeftMargin(), e.scrollTop
	} else {
		e.cursor.X, e.cursor.Y = 0, 0
	}
}

// applyLeftRightMargin implements DECSLRM (CSI s with params), only honored
// when DECLRMM (mode 69) is enabled. token/csi.go turns every CSI s that has
// params into this token, and a bare CSI s into SaveCursor, whatever the
// mode; with DECLRMM off the token is ignored here.
func (e *Emulator) applyLeftRightMargin(left, right int) {
	if e.modes&ModeLeftRightMargin == 0 {
		return
	}
	if left <= 0 {
		left = 1
	}
	if right <= 0 || right > e.width {
		right = e.width
	}
	l, r := left-1, right-1
	if l >= r {
		l, r = 0, e.width-1
	}
	e.marginLeft, e.marginRight = l, r
	e.cursor.PendingWrap = false
	e.cursor.X, e.cursor.Y = e.marginLeft, 0
}
