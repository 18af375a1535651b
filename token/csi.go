package token

import "strconv"

// parseCSI interprets the bytes between "ESC [" and the final byte
// (exclusive of both) plus the final byte itself, producing the matching
// Token. Malformed or out-of-range parameters are treated as their
// defaults per §4.2's soft-failure policy; unknown finals become
// KindUnrecognized rather than an error.
func parseCSI(body []byte, final byte) Token {
	private := byte(0)
	start := 0
	if len(body) > 0 && (body[0] == '?' || body[0] == '<' || body[0] == '>' || body[0] == '=') {
		private = body[0]
		start = 1
	}
	hasSpaceIntermediate := len(body) > 0 && body[len(body)-1] == ' '
	paramBytes := body[start:]
	if hasSpaceIntermediate && len(paramBytes) > 0 {
		paramBytes = paramBytes[:len(paramBytes)-1]
	}
	params := splitParams(paramBytes)

	switch {
	case private == '<' && (final == 'M' || final == 'm'):
		return parseSgrMouse(params, final)
	case private == '?' && (final == 'h' || final == 'l'):
		return parsePrivateMode(params, final == 'h')
	case hasSpaceIntermediate && final == 'q':
		return Token{Kind: KindCursorShape, Shape: intParam(params, 0, 0)}
	}

	switch final {
	case 'm':
		return Token{Kind: KindSgr, SgrParams: params}
	case 'H', 'f':
		return Token{Kind: KindCursorPosition, Row: intParam(params, 0, 1), Col: intParam(params, 1, 1)}
	case 'A':
		return Token{Kind: KindCursorMove, Direction: DirUp, Count: intParamMin1(params, 0)}
	case 'B':
		return Token{Kind: KindCursorMove, Direction: DirDown, Count: intParamMin1(params, 0)}
	case 'C':
		return Token{Kind: KindCursorMove, Direction: DirForward, Count: intParamMin1(params, 0)}
	case 'D':
		return Token{Kind: KindCursorMove, Direction: DirBack, Count: intParamMin1(params, 0)}
	case 'E':
		return Token{Kind: KindCursorMove, Direction: DirNextLine, Count: intParamMin1(params, 0)}
	case 'F':
		return Token{Kind: KindCursorMove, Direction: DirPreviousLine, Count: intParamMin1(params, 0)}
	case 'G', '`':
		return Token{Kind: KindCursorColumn, Col: intParam(params, 0, 1)}
	case 'd':
		return Token{Kind: KindCursorRow, Row: intParam(params, 0, 1)}
	case 'J':
		return Token{Kind: KindClearScreen, ClearMode: clearMode(params)}
	case 'K':
		return Token{Kind: KindClearLine, ClearMode: clearMode(params)}
	case 'S':
		return Token{Kind: KindScrollUp, Count: intParamMin1(params, 0)}
	case 'T':
		return Token{Kind: KindScrollDown, Count: intParamMin1(params, 0)}
	case 'L':
		return Token{Kind: KindInsertLines, Count: intParamMin1(params, 0)}
	case 'M':
		return Token{Kind: KindDeleteLines, Count: intParamMin1(params, 0)}
	case '@':
		return Token{Kind: KindInsertCharacter, Count: intParamMin1(params, 0)}
	case 'P':
		return Token{Kind: KindDeleteCharacter, Count: intParamMin1(params, 0)}
	case 'X':
		return Token{Kind: KindEraseCharacter, Count: intParamMin1(params, 0)}
	case 'b':
		return Token{Kind: KindRepeatCharacter, Count: intParamMin1(params, 0)}
	case 'r':
		return Token{Kind: KindScrollRegion, Top: intParam(params, 0, 1), Bottom: intParam(params, 1, 0)}
	case 's':
		if len(params) > 0 {
			return Token{Kind: KindLeftRightMargin, Left: intParam(params, 0, 1), Right: intParam(params, 1, 0)}
		}
		return Token{Kind: KindSaveCursor}
	case 'u':
		return Token{Kind: KindRestoreCursor}
	case 'n':
		return Token{Kind: KindDeviceStatusReport, ReportType: intParam(params, 0, 0)}
	case 'Z':
		return Token{Kind: KindBackTab}
	case 'I':
		return Token{Kind: KindCursorMove, Direction: DirForward, Count: 0} // CHT: forward tabs, handled by router
	default:
		raw := append([]byte{0x1b, '['}, body...)
		raw = append(raw, final)
		return Token{Kind: KindUnrecognized, Raw: raw}
	}
}

func parsePrivateMode(params []int64, enable bool) Token {
	mode := 0
	if len(params) > 0 {
		mode = int(params[0])
	}
	return Token{Kind: KindPrivateMode, Mode: mode, Enable: enable}
}

func parseSgrMouse(params []int64, final byte) Token {
	if len(params) < 3 {
		return Token{Kind: KindUnrecognized}
	}
	raw := int(params[0])
	x := int(params[1]) - 1
	y := int(params[2]) - 1

	mods := Modifiers(0)
	if raw&4 != 0 {
		mods |= ModShift
	}
	if raw&8 != 0 {
		mods |= ModAlt
	}
	if raw&16 != 0 {
		mods |= ModCtrl
	}

	button := MouseButton(raw & 3)
	action := MouseDown
	switch {
	case raw&64 != 0:
		if raw&1 != 0 {
			button = MouseButtonWheelDown
		} else {
			button = MouseButtonWheelUp
		}
	case raw&32 != 0:
		action = MouseMove
		if button != MouseButtonNone {
			action = MouseDrag
		}
	case final == 'm':
		action = MouseUp
	}

	return Token{
		Kind:        KindSgrMouse,
		MouseButton: button,
		MouseAction: action,
		MouseX:      x,
		MouseY:      y,
		MouseMods:   mods,
		RawButton:   raw,
	}
}

func clearMode(params []int64) ClearMode {
	switch intParam(params, 0, 0) {
	case 1:
		return ClearToStart
	case 2:
		return ClearAll
	case 3:
		return ClearAllAndScrollback
	default:
		return ClearToEnd
	}
}

func splitParams(b []byte) []int64 {
	if len(b) == 0 {
		return nil
	}
	var params []int64
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ';' {
			seg := b[start:i]
			if len(seg) == 0 {
				params = append(params, -1)
			} else if v, err := strconv.ParseInt(string(seg), 10, 64); err == nil {
				params = append(params, v)
			} else {
				params = append(params, -1)
			}
			start = i + 1
		}
	}
	return params
}

func intParam(params []int64, idx int, def int) int {
	if idx >= len(params) || params[idx] < 0 {
		return def
	}
	return int(params[idx])
}

// intParamMin1 is for "count" parameters where 0 or absent both mean 1.
func intParamMin1(params []int64, idx int) int {
	v := intParam(params, idx, 1)
	if v <= 0 {
		return 1
	}
	return v
}
