package vt

import "github.com/vtcore/vtcore/token"

// applyClearScreen implements ED (CSI J).
func (e *Emulator) applyClearScreen(mode token.ClearMode, impacts *[]Impact) {
	switch mode {
	case token.ClearToEnd:
		e.clearRowPartial(e.cursor.Y, e.cursor.X, e.width-1, impacts)
		for y := e.cursor.Y + 1; y < e.height; y++ {
			e.clearRowPartial(y, 0, e.width-1, impacts)
		}
	case token.ClearToStart:
		e.clearRowPartial(e.cursor.Y, 0, e.cursor.X, impacts)
		for y := 0; y < e.cursor.Y; y++ {
			e.clearRowPartial(y, 0, e.width-1, impacts)
		}
	case token.ClearAll, token.ClearAllAndScrollback:
		// No scrollback exists to additionally clear (§1 Non-goals).
		for y := 0; y < e.height; y++ {
			e.clearRowPartial(y, 0, e.width-1, impacts)
		}
	}
}

// applyClearLine implements EL (CSI K). When DECLRMM is on, clearing
// respects [margin_left, margin_right]; otherwise the full row.
func (e *Emulator) applyClearLine(mode token.ClearMode, impacts *[]Impact) {
	left, right := 0, e.width-1
	if e.modes&ModeLeftRightMargin != 0 {
		left, right = e.marginLeft, e.marginRight
	}
	switch mode {
	case token.ClearToEnd:
		e.clearRowPartial(e.cursor.Y, max(e.cursor.X, left), right, impacts)
	case token.ClearToStart:
		e.clearRowPartial(e.cursor.Y, left, min(e.cursor.X, right), impacts)
	default: // ClearAll / ClearAllAndScrollback both mean "whole line" for EL
		e.clearRowPartial(e.cursor.Y, left, right, impacts)
	}
}

func (e *Emulator) clearRowPartial(y, xFrom, xTo int, impacts *[]Impact) {
	if y < 0 || y >= e.height {
		return
	}
	for x := xFrom; x <= xTo && x < e.width; x++ {
		if x < 0 {
			continue
		}
		e.recordClear(impacts, x, y)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
