package vt

import "strings"

// Snapshot is a plain-text capture of the active grid, used by tests and
// debug tooling to assert on screen contents without reaching into Grid
// internals. Unlike the teacher's JSON Snapshot (styled segments, per-cell
// attribute dumps for a diagnostic UI), only the text plane is named by any
// component here, so that is all this carries.
type Snapshot struct {
	Width, Height int
	Lines         []string
	CursorX       int
	CursorY       int
}

// Snapshot captures the emulator's active grid as plain text lines plus the
// cursor position.
func (e *Emulator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]string, e.height)
	for y := 0; y < e.height; y++ {
		var b strings.Builder
		row := e.active.Row(y)
		for _, c := range row {
			if c.IsContinuation() {
				continue
			}
			if c.Grapheme == "" {
				b.WriteByte(' ')
			} else {
				b.WriteString(c.Grapheme)
			}
		}
		lines[y] = b.String()
	}
	return Snapshot{Width: e.width, Height: e.height, Lines: lines, CursorX: e.cursor.X, CursorY: e.cursor.Y}
}

// Text joins the snapshot's lines with newlines.
func (s Snapshot) Text() string {
	return strings.Join(s.Lines, "\n")
}
