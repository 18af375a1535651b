package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Serializer is the inverse of Tokenizer for the subset of tokens used to
// emit bytes from the library: rendered surface diffs (§4.3) and UI-input
// events (§4.1 "the serializer is the inverse... used to emit input events
// from the library"). It builds on charmbracelet/x/ansi's sequence
// constructors rather than hand-formatting escape strings everywhere the
// teacher/pack already provide a tested builder.
type Serializer struct{}

// NewSerializer returns a stateless Serializer.
func NewSerializer() *Serializer { return &Serializer{} }

// Encode renders one token to its ANSI byte encoding. Tokens with no
// serializable form (e.g. KindUnrecognized) encode to nil.
func (s *Serializer) Encode(t Token) []byte {
	switch t.Kind {
	case KindText:
		return []byte(t.Text)
	case KindControlChar:
		return []byte{t.Control}
	case KindSgr:
		return []byte(encodeSgr(t.SgrParams))
	case KindCursorPosition:
		return []byte(ansi.CursorPosition(t.Col, t.Row))
	case KindCursorMove:
		return []byte(encodeCursorMove(t.Direction, t.Count))
	case KindCursorColumn:
		return []byte(ansi.CursorHorizontalAbsolute(t.Col))
	case KindCursorRow:
		return []byte(ansi.VerticalPositionAbsolute(t.Row))
	case KindClearScreen:
		return []byte(ansi.EraseDisplay(int(t.ClearMode)))
	case KindClearLine:
		return []byte(ansi.EraseLine(int(t.ClearMode)))
	case KindScrollUp:
		return []byte(ansi.ScrollUp(t.Count))
	case KindScrollDown:
		return []byte(ansi.ScrollDown(t.Count))
	case KindInsertLines:
		return []byte(ansi.InsertLine(t.Count))
	case KindDeleteLines:
		return []byte(ansi.DeleteLine(t.Count))
	case KindInsertCharacter:
		return []byte(ansi.InsertCharacter(t.Count))
	case KindDeleteCharacter:
		return []byte(ansi.DeleteCharacter(t.Count))
	case KindEraseCharacter:
		return []byte(ansi.EraseCharacter(t.Count))
	case KindRepeatCharacter:
		return []byte(ansi.RepeatPreviousCharacter(t.Count))
	case KindScrollRegion:
		return []byte(fmt.Sprintf("\x1b[%d;%dr", t.Top, t.Bottom))
	case KindLeftRightMargin:
		return []byte(fmt.Sprintf("\x1b[%d;%ds", t.Left, t.Right))
	case KindSaveCursor:
		return []byte("\x1b7")
	case KindRestoreCursor:
		return []byte("\x1b8")
	case KindIndex:
		return []byte("\x1bD")
	case KindReverseIndex:
		return []byte("\x1bM")
	case KindPrivateMode:
		return []byte(encodePrivateMode(t.Mode, t.Enable))
	case KindCursorShape:
		return []byte(fmt.Sprintf("\x1b[%d q", t.Shape))
	case KindOsc:
		return encodeOsc(t.Osc)
	case KindDeviceStatusReport:
		return []byte(fmt.Sprintf("\x1b[%dn", t.ReportType))
	case KindBackTab:
		return []byte(ansi.CursorBackwardTab(1))
	case KindSs3:
		return []byte{0x1b, 'O', t.Final}
	case KindSpecialKey:
		return encodeSpecialKey(t.KeyCode, t.KeyMods)
	case KindArrowKey:
		return encodeArrowKey(t.Direction, t.ArrowMods)
	default:
		return nil
	}
}

func encodeCursorMove(dir Direction, n int) string {
	if n <= 0 {
		n = 1
	}
	switch dir {
	case DirUp:
		return ansi.CursorUp(n)
	case DirDown:
		return ansi.CursorDown(n)
	case DirForward:
		return ansi.CursorForward(n)
	case DirBack:
		return ansi.CursorBackward(n)
	case DirNextLine:
		return strings.Repeat("\r\n", n)
	case DirPreviousLine:
		return fmt.Sprintf("\x1b[%dF", n)
	default:
		return ""
	}
}

func encodeSgr(params []int64) string {
	if len(params) == 0 {
		return "\x1b[m"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		if p < 0 {
			parts[i] = ""
			continue
		}
		parts[i] = strconv.FormatInt(p, 10)
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func encodePrivateMode(mode int, enable bool) string {
	c := byte('h')
	if !enable {
		c = 'l'
	}
	return fmt.Sprintf("\x1b[?%d%c", mode, c)
}

func encodeOsc(o OscData) []byte {
	var b strings.Builder
	b.WriteString("\x1b]")
	b.WriteString(strconv.Itoa(o.Command))
	for _, p := range o.Parameters {
		b.WriteByte(';')
		b.WriteString(p)
	}
	if len(o.Payload) > 0 || len(o.Parameters) > 0 {
		b.WriteByte(';')
		b.Write(o.Payload)
	}
	b.WriteByte(0x07)
	return []byte(b.String())
}

// encodeSpecialKey serializes a non-printable special key as an SS3 or CSI
// tilde-coded sequence, per the xterm function-key convention.
func encodeSpecialKey(kc KeyCode, mods Modifiers) []byte {
	if mods == 0 {
		switch kc {
		case KeyF1:
			return []byte("\x1bOP")
		case KeyF2:
			return []byte("\x1bOQ")
		case KeyF3:
			return []byte("\x1bOR")
		case KeyF4:
			return []byte("\x1bOS")
		case KeyHome:
			return []byte("\x1bOH")
		case KeyEnd:
			return []byte("\x1bOF")
		}
	}
	code, ok := tildeCode(kc)
	if !ok {
		return nil
	}
	if mods == 0 {
		return []byte(fmt.Sprintf("\x1b[%d~", code))
	}
	return []byte(fmt.Sprintf("\x1b[%d;%d~", code, modifierParam(mods)))
}

func tildeCode(kc KeyCode) (int, bool) {
	switch kc {
	case KeyHome:
		return 1, true
	case KeyInsert:
		return 2, true
	case KeyDelete:
		return 3, true
	case KeyEnd:
		return 4, true
	case KeyPageUp:
		return 5, true
	case KeyPageDown:
		return 6, true
	case KeyF5:
		return 15, true
	case KeyF6:
		return 17, true
	case KeyF7:
		return 18, true
	case KeyF8:
		return 19, true
	case KeyF9:
		return 20, true
	case KeyF10:
		return 21, true
	case KeyF11:
		return 23, true
	case KeyF12:
		return 24, true
	default:
		return 0, false
	}
}

// encodeArrowKey serializes an arrow key in the CSI form (ESC [ A, or
// ESC [ 1 ; m A with modifiers) per xterm convention. The SS3 form of
// application cursor key mode (DECCKM) is not produced.
func encodeArrowKey(dir Direction, mods Modifiers) []byte {
	final := arrowFinal(dir)
	if final == 0 {
		return nil
	}
	if mods == 0 {
		return []byte{0x1b, '[', final}
	}
	return []byte(fmt.Sprintf("\x1b[1;%d%c", modifierParam(mods), final))
}

func arrowFinal(dir Direction) byte {
	switch dir {
	case DirUp:
		return 'A'
	case DirDown:
		return 'B'
	case DirForward:
		return 'C'
	case DirBack:
		return 'D'
	default:
		return 0
	}
}

// modifierParam follows the xterm convention: 1 + bitmask(shift=1,alt=2,ctrl=4).
func modifierParam(mods Modifiers) int {
	n := 1
	if mods&ModShift != 0 {
		n += 1
	}
	if mods&ModAlt != 0 {
		n += 2
	}
	if mods&ModCtrl != 0 {
		n += 4
	}
	return n
}

// EncodeCtrlLetter encodes Ctrl+<letter> as its C0 control code.
func EncodeCtrlLetter(letter rune) byte {
	upper := letter
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	return byte(upper) & 0x1f
}

// EncodeAltKey encodes Alt+<rune> as ESC <rune> (meta-prefix convention).
func EncodeAltKey(r rune) []byte {
	return append([]byte{0x1b}, []byte(string(r))...)
}
