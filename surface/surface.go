// Package surface implements the Surface Compositor (§4.3): a
// double-buffered cell grid that renders a frame, diffs it against the
// previous frame, and serializes the difference into a minimal ANSI byte
// sequence for the mediator to emit to the presentation side.
package surface

import (
	"sync"

	"github.com/vtcore/vtcore/vt"
)

// Surface owns the current and previous cell buffers plus the cell-pixel
// metrics used to estimate Sixel footprints placed through its
// RenderContext. It mirrors vt.Emulator's double-grid shape but never
// applies tokens itself — it is written to directly by a render pass.
type Surface struct {
	mu sync.Mutex

	width, height                   int
	cellPixelWidth, cellPixelHeight int

	current, previous *vt.Grid
	interner          *vt.Interner

	firstFrame   bool
	resetPending bool
}

// NewSurface creates a width x height Surface with default 10x20 cell-pixel
// metrics (matching vt.sixel.go's defaults, since the two estimate Sixel
// footprints the same way).
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:            width,
		height:           height,
		cellPixelWidth:   10,
		cellPixelHeight:  20,
		current:          vt.NewGrid(width, height),
		previous:         vt.NewGrid(width, height),
		interner:         vt.NewInterner(),
		firstFrame:       true,
	}
}

// SetInterner wires the Surface to the tracked-object interner used by
// whatever feeds it Sixel payloads (typically the same Interner the
// Emulator that drives this UI layer uses).
func (s *Surface) SetInterner(i *vt.Interner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interner = i
}

// Resize changes the surface's dimensions. Per §4.3 step 1, a dimension
// change forces a reset (full clear + recreated buffers) on the next frame.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.resetPending = true
}

// SetCellMetrics updates the cell-pixel footprint used for Sixel placement.
// Like Resize, a change forces a reset next frame (§4.3 step 1).
func (s *Surface) SetCellMetrics(pixelWidth, pixelHeight int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pixelWidth == s.cellPixelWidth && pixelHeight == s.cellPixelHeight {
		return
	}
	s.cellPixelWidth, s.cellPixelHeight = pixelWidth, pixelHeight
	s.resetPending = true
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// BeginFrame performs §4.3 steps 1-2: apply any pending reset (recreating
// both buffers and marking first-frame), then swap previous <-> current and
// clear the new current buffer. It returns a RenderContext ready for a root
// node to render into.
func (s *Surface) BeginFrame() *RenderContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resetPending {
		s.current = vt.NewGrid(s.width, s.height)
		s.previous = vt.NewGrid(s.width, s.height)
		s.firstFrame = true
		s.resetPending = false
	}

	s.previous, s.current = s.current, s.previous
	s.current.Fill(vt.EmptyCell)

	return &RenderContext{
		surface: s,
		grid:    s.current,
		fg:      vt.DefaultColor,
		bg:      vt.DefaultColor,
	}
}

// EndFrame performs §4.3 steps 4-5: diff the just-rendered current buffer
// against the previous one (or against empty, on the first frame, whose
// output starts with an attribute reset and a clear-screen), convert the
// diff into a minimally-coalesced token sequence, and serialize it to
// bytes. The caller (mediator) is responsible for step 6, writing the bytes
// to the presentation side.
func (s *Surface) EndFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []byte
	var impacts []Impact
	if s.firstFrame {
		out = append(out, "\x1b[0m\x1b[2J"...)
		impacts = diffAgainstEmpty(s.current)
		s.firstFrame = false
	} else {
		impacts = diff(s.previous, s.current)
	}

	return append(out, emit(impacts, s.width)...)
}

// Reset marks the surface for a full reset (clear-screen + recreated
// buffers) on the next BeginFrame, without changing dimensions. Used when
// the presentation side reconnects and needs a full repaint.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetPending = true
}

// Snapshot returns the current buffer's plain-text contents, row by row,
// primarily for tests and diagnostics.
func (s *Surface) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]string, s.height)
	for y := 0; y < s.height; y++ {
		line := ""
		for x := 0; x < s.width; x++ {
			c := s.current.Cell(x, y)
			if c.IsContinuation() {
				continue
			}
			if c.Grapheme == "" {
				line += " "
			} else {
				line += c.Grapheme
			}
		}
		lines[y] = line
	}
	return lines
}
