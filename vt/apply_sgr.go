package vt

// applySgr implements CSI m: a stream of SGR parameters updates the current
// SGR state (colors, attributes, hyperlink-adjacent underline color). An
// empty parameter list means "reset" (equivalent to a single 0 parameter).
func (e *Emulator) applySgr(params []int64) {
	if len(params) == 0 {
		e.sgr = DefaultSGR
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		if p < 0 {
			p = 0
		}
		switch p {
		case 0:
			e.sgr = DefaultSGR
		case 1:
			e.sgr.Attrs |= AttrBold
		case 2:
			e.sgr.Attrs |= AttrDim
		case 3:
			e.sgr.Attrs |= AttrItalic
		case 4:
			e.sgr.Attrs |= AttrUnderline
		case 5, 6:
			e.sgr.Attrs |= AttrBlink
		case 7:
			e.sgr.Attrs |= AttrReverse
		case 8:
			e.sgr.Attrs |= AttrHidden
		case 9:
			e.sgr.Attrs |= AttrStrikethrough
		case 21:
			e.sgr.Attrs &^= AttrBold
		case 22:
			e.sgr.Attrs &^= (AttrBold | AttrDim)
		case 23:
			e.sgr.Attrs &^= AttrItalic
		case 24:
			e.sgr.Attrs &^= AttrUnderline
		case 25:
			e.sgr.Attrs &^= AttrBlink
		case 27:
			e.sgr.Attrs &^= AttrReverse
		case 28:
			e.sgr.Attrs &^= AttrHidden
		case 29:
			e.sgr.Attrs &^= AttrStrikethrough
		case 53:
			e.sgr.Attrs |= AttrOverline
		case 55:
			e.sgr.Attrs &^= AttrOverline
		case 30, 31, 32, 33, 34, 35, 36, 37:
			e.sgr.Fg = Palette(uint8(p - 30))
		case 39:
			e.sgr.Fg = DefaultColor
		case 40, 41, 42, 43, 44, 45, 46, 47:
			e.sgr.Bg = Palette(uint8(p - 40))
		case 49:
			e.sgr.Bg = DefaultColor
		case 90, 91, 92, 93, 94, 95, 96, 97:
			e.sgr.Fg = Palette(uint8(p-90) + 8)
		case 100, 101, 102, 103, 104, 105, 106, 107:
			e.sgr.Bg = Palette(uint8(p-100) + 8)
		case 38:
			var consumed int
			e.sgr.Fg, consumed = parseExtendedColor(params[i+1:])
			i += consumed
		case 48:
			var consumed int
			e.sgr.Bg, consumed = parseExtendedColor(params[i+1:])
			i += consumed
		case 58:
			var consumed int
			var c Color
			c, consumed = parseExtendedColor(params[i+1:])
			e.sgr.UnderlineColor = c
			e.sgr.HasUnderlineColor = true
			i += consumed
		case 59:
			e.sgr.HasUnderlineColor = false
		}
	}
}

// parseExtendedColor decodes the 38/48/58 extended-color sub-sequence:
// "5;N" (indexed) or "2;R;G;B" (truecolor). A colorspace-id sub-param
// before R is not recognised: the first three values after 2 are taken as
// R, G, B. Returns the number of parameters consumed after the introducer.
func parseExtendedColor(rest []int64) (Color, int) {
	if len(rest) == 0 {
		return DefaultColor, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return DefaultColor, 1
		}
		return Indexed(uint8(clampInt(int(rest[1]), 0, 255))), 2
	case 2:
		if len(rest) >= 4 {
			return RGB(uint8(clampInt(int(rest[1]), 0, 255)), uint8(clampInt(int(rest[2]), 0, 255)), uint8(clampInt(int(rest[3]), 0, 255))), 4
		}
		return DefaultColor, len(rest)
	default:
		return DefaultColor, 1
	}
}
