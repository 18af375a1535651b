package vt

// DEC private mode numbers the emulator gives dedicated behavior to. Modes
// outside this set (mouse reporting, bracketed paste, cursor blink, ...)
// are presentation/router concerns and pass through untouched; the
// emulator simply does not react to their PrivateMode tokens.
const (
	decModeCursorKeys     = 1
	decModeOriginMode     = 6
	decModeAutoWrap       = 7
	decModeNewline        = 20
	decModeAlternateSaved = 1049
	decModeLeftRightMargin = 69
)

// applyPrivateMode implements CSI ? Pm h/l for the subset of DEC private
// modes the emulator tracks (§4.2: origin, newline, left-right-margin,
// alternate screen).
func (e *Emulator) applyPrivateMode(mode int, enable bool, impacts *[]Impact) {
	switch mode {
	case decModeCursorKeys:
		e.setMode(ModeCursorKeys, enable)
	case decModeOriginMode:
		e.setMode(ModeOrigin, enable)
		e.applyCursorPosition(1, 1)
	case decModeAutoWrap:
		e.setMode(ModeAutoWrap, enable)
	case decModeNewline:
		e.setMode(ModeNewline, enable)
	case decModeLeftRightMargin:
		e.setMode(ModeLeftRightMargin, enable)
		if !enable {
			e.marginLeft, e.marginRight = 0, e.width-1
		}
	case decModeAlternateSaved:
		if enable {
			e.enterAlternateScreen(impacts)
		} else {
			e.exitAlternateScreen(impacts)
		}
	}
}

func (e *Emulator) setMode(m Mode, enable bool) {
	if enable {
		e.modes |= m
	} else {
		e.modes &^= m
	}
}

// enterAlternateScreen implements the enter half of DEC 1049 (§4.2): save
// the cursor and switch the active grid to the alternate buffer, clearing
// it. When the presentation side maintains its own alternate buffer
// natively, the clear records no impacts.
func (e *Emulator) enterAlternateScreen(impacts *[]Impact) {
	if e.active == e.alternate {
		return // already in the alternate screen; unbalanced enter is a no-op
	}
	e.altSavedCursor = SavedCursor{
		X:           e.cursor.X,
		Y:           e.cursor.Y,
		PendingWrap: e.cursor.PendingWrap,
		SGR:         e.sgr,
		OriginMode:  e.modes&ModeOrigin != 0,
	}
	e.altCursorSaved = true
	e.altSnapshot = e.primary
	e.active = e.alternate
	if e.HandlesAlternateScreenNatively {
		e.alternate.Fill(EmptyCell)
	} else {
		for y := 0; y < e.height; y++ {
			e.clearRowPartial(y, 0, e.width-1, impacts)
		}
	}
	e.cursor.X, e.cursor.Y, e.cursor.PendingWrap = 0, 0, false
}

// exitAlternateScreen implements the exit half: restores the primary grid
// and the saved cursor. Unbalanced exits (no snapshot) are ignored.
func (e *Emulator) exitAlternateScreen(impacts *[]Impact) {
	if e.altSnapshot == nil {
		return
	}
	primary := e.primary
	e.active = primary
	e.altSnapshot = nil
	if !e.HandlesAlternateScreenNatively {
		for y := 0; y < e.height; y++ {
			for x := 0; x < e.width; x++ {
				if impacts != nil {
					*impacts = append(*impacts, Impact{X: x, Y: y, Cell: primary.Cell(x, y)})
				}
			}
		}
	}
	if e.altCursorSaved {
		e.cursor.X, e.cursor.Y = e.altSavedCursor.X, e.altSavedCursor.Y
		e.cursor.PendingWrap = e.altSavedCursor.PendingWrap
		e.sgr = e.altSavedCursor.SGR
		e.altCursorSaved = false
	}
}
