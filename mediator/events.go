package mediator

import (
	"github.com/vtcore/vtcore/loop"
	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/ui"
)

// TokenToInputEvents converts one presentation-side token into zero or
// more structured loop.InputEvents for a UI-app workload's event channel
// (§4.7: "convert tokens into high-level events"). A KindText token can
// carry an entire printable run, so it fans out into one key event per
// rune; tokens with no routable key/mouse meaning (e.g. an SGR echo)
// yield nothing.
func TokenToInputEvents(t token.Token) []loop.InputEvent {
	switch t.Kind {
	case token.KindText:
		events := make([]loop.InputEvent, 0, len(t.Text))
		for _, r := range t.Text {
			events = append(events, loop.InputEvent{Key: &ui.KeyEvent{Rune: r}})
		}
		return events

	case token.KindControlChar:
		return []loop.InputEvent{{Key: &ui.KeyEvent{Rune: rune(t.Control)}}}

	case token.KindSpecialKey:
		return []loop.InputEvent{{Key: &ui.KeyEvent{Code: t.KeyCode, Mods: t.KeyMods}}}

	case token.KindArrowKey:
		return []loop.InputEvent{{Key: &ui.KeyEvent{
			IsArrow: true, ArrowDir: t.Direction, Mods: t.ArrowMods,
		}}}

	case token.KindSgrMouse:
		return []loop.InputEvent{{Mouse: &ui.MouseEvent{
			Kind:   mouseEventKind(t.MouseAction),
			Button: t.MouseButton,
			Mods:   t.MouseMods,
			X:      t.MouseX,
			Y:      t.MouseY,
		}}}

	default:
		return nil
	}
}

func mouseEventKind(a token.MouseAction) ui.MouseEventKind {
	switch a {
	case token.MouseDown:
		return ui.MouseDown
	case token.MouseUp:
		return ui.MouseUp
	case token.MouseDrag:
		return ui.MouseDrag
	default:
		return ui.MouseMove
	}
}
