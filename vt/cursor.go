package vt

// Cursor is the emulator's cursor position in 0-based cell coordinates,
// plus the deferred-wrap flag described in §3.
//
// PendingWrap captures that a write landed at the effective right margin:
// the cursor stays at that column and PendingWrap is set; the next
// printable consumes the wrap by moving to the next line, left margin.
// CR/LF/any explicit cursor move clears it.
type Cursor struct {
	X, Y       int
	PendingWrap bool
}

// SGRState is the current Select Graphic Rendition template applied to
// newly written cells, plus the currently-open hyperlink (if any).
type SGRState struct {
	Fg               Color
	Bg               Color
	Attrs            Attrs
	UnderlineColor   Color
	HasUnderlineColor bool
	Hyperlink        *TrackedRef
}

// DefaultSGR is the reset state: default colors, no attrs, no hyperlink.
var DefaultSGR = SGRState{Fg: DefaultColor, Bg: DefaultColor}

// SavedCursor is the DECSC/DECRC save slot: cursor position plus SGR state
// and origin mode, restorable by DECRC. A separate instance is kept for
// alternate-screen entry (§3 "Emulator state").
type SavedCursor struct {
	X, Y        int
	PendingWrap bool
	SGR         SGRState
	OriginMode  bool
}
