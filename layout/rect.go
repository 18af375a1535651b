// Package layout implements the two-pass measure/arrange engine described
// in §4.4's closing paragraph: nodes are measured against tight
// constraints, then arranged into a final Rect.
package layout

// Rect is an axis-aligned cell-space rectangle: X,Y is the top-left
// corner, W,H the extent. Used for both a node's final bounds and for
// hit-testing in the event loop/input router (§4.5).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x,y) falls within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the rect by n cells on every side, clamping to a
// zero-size rect rather than going negative.
func (r Rect) Inset(n int) Rect {
	w := r.W - 2*n
	h := r.H - 2*n
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + n, Y: r.Y + n, W: w, H: h}
}

// Empty reports whether the rect has zero area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }
