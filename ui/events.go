package ui

import "github.com/vtcore/vtcore/token"

// KeyEvent is the structured form of a key press handed to the router and,
// ultimately, to a binding trie or a node's HandleKey (§4.5).
type KeyEvent struct {
	Rune  rune
	Code  token.KeyCode // non-zero for special keys (Home, F1, ...); arrows use IsArrow/ArrowDir
	Mods  token.Modifiers
	IsArrow  bool
	ArrowDir token.Direction
}

// MouseEventKind distinguishes the phases §4.5 routes separately.
type MouseEventKind int

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseMove
	MouseDrag
	MouseWheel
)

// MouseEvent is the structured form of an SGR mouse report after hit
// testing has resolved which node it targets.
type MouseEvent struct {
	Kind       MouseEventKind
	Button     token.MouseButton
	Mods       token.Modifiers
	X, Y       int
	ClickCount int // 1, 2, or 3 — set by the click-count detector (§4.6)
}
