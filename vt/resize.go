package vt

// Resize changes the emulator's grid dimensions, preserving the top-left
// min(old,new) region of both buffers per §4.2 "Resize"; margins and scroll
// region reset to full screen and the cursor is clamped into bounds.
func (e *Emulator) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.primary.Resize(width, height, e.interner)
	e.alternate.Resize(width, height, e.interner)

	e.width, e.height = width, height
	e.resetScrollRegion()

	e.cursor.X = clampInt(e.cursor.X, 0, width-1)
	e.cursor.Y = clampInt(e.cursor.Y, 0, height-1)
	e.cursor.PendingWrap = false
}

// Width/Height report the current grid dimensions.
func (e *Emulator) Width() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width
}

func (e *Emulator) Height() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}
