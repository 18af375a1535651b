package vt

// applyControlChar implements the C0 controls named in §4.2: LF, CR, HT, BS.
// BEL (0x07) fires the bell observer; all other C0 bytes are ignored.
func (e *Emulator) applyControlChar(c byte, impacts *[]Impact) {
	switch c {
	case '\n': // LF (0x0A)
		e.cursor.PendingWrap = false
		if e.modes&ModeNewline != 0 {
			e.cursor.X = e.effectiveLeftMargin()
		}
		if e.cursor.Y >= e.scrollBottom {
			e.scrollUp(e.scrollTop, e.scrollBottom, 1, impacts)
		} else {
			e.cursor.Y++
		}
	case '\r': // CR (0x0D)
		e.cursor.PendingWrap = false
		e.cursor.X = e.effectiveLeftMargin()
	case '\t': // HT (0x09)
		next := (e.cursor.X/8 + 1) * 8
		if next > e.width-1 {
			next = e.width - 1
		}
		e.cursor.X = next
	case 0x08: // BS
		e.cursor.PendingWrap = false
		if e.cursor.X > 0 {
			e.cursor.X--
		}
	case 0x07: // BEL
		e.bell.Ring()
	default:
		// Vertical tab / form feed / shift-in/out etc: soft-ignored, the
		// closed token set has no dedicated handling for them.
	}
}
