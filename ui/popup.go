package ui

// PopupEntry is one layer of the popup/window stack (§3): a content
// builder plus placement and lifecycle hooks. The z-stack root composite
// (§4.4) renders each entry's content, after its ThemeMutator, on top of the
// application root; it draws no backdrop and does not read Anchor,
// Position or IsBarrier.
type PopupEntry struct {
	ContentBuilder func() Widget

	// Anchor and Position are placement data for ContentBuilder's use; no
	// anchored positioner is wrapped around the content.
	Anchor Node
	Position Rect

	// ThemeMutator, when non-nil, wraps the content in a theme panel that
	// applies it for the popup's subtree only.
	ThemeMutator func(Widget) Widget

	// FocusRestoreNode is refocused when this entry is dismissed.
	FocusRestoreNode Node

	// IsBarrier marks a barrier popup and is reported by TopIsBarrier; no
	// input-routing or dismissal code in this module reads it.
	IsBarrier bool

	OnDismiss func()
}

// PopupStack is the ordered stack of active popups, topmost last.
type PopupStack struct {
	entries []PopupEntry
}

// Push adds a new topmost popup.
func (s *PopupStack) Push(e PopupEntry) { s.entries = append(s.entries, e) }

// Pop removes and returns the topmost popup, invoking its OnDismiss and
// restoring focus to FocusRestoreNode if the caller's FocusRing is given.
func (s *PopupStack) Pop(ring *FocusRing) (PopupEntry, bool) {
	if len(s.entries) == 0 {
		return PopupEntry{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	if top.OnDismiss != nil {
		top.OnDismiss()
	}
	if ring != nil && top.FocusRestoreNode != nil {
		ring.Focus(top.FocusRestoreNode)
	}
	return top, true
}

// Top returns the topmost popup without removing it, or false if empty.
func (s *PopupStack) Top() (PopupEntry, bool) {
	if len(s.entries) == 0 {
		return PopupEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Entries returns the stack bottom-to-top.
func (s *PopupStack) Entries() []PopupEntry { return s.entries }

// Empty reports whether no popups are active.
func (s *PopupStack) Empty() bool { return len(s.entries) == 0 }

// TopIsBarrier reports whether the topmost popup (if any) is a barrier.
func (s *PopupStack) TopIsBarrier() bool {
	top, ok := s.Top()
	return ok && top.IsBarrier
}
