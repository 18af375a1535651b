package ui

import "github.com/vtcore/vtcore/surface"

const zStackKind = "__zstack"

// zStackWidget is the inner composite §4.4 names: it renders its layers
// bottom to top, each occupying the full available rect, so a later layer
// (a popup) naturally draws over an earlier one (the app root).
type zStackWidget struct {
	BaseWidget
	layers []Widget
}

func (w *zStackWidget) Kind() string        { return zStackKind }
func (w *zStackWidget) Children() []Widget  { return w.layers }
func (w *zStackWidget) NewNode() Node       { return &zStackNode{BaseNode: NewBaseNode(zStackKind)} }

type zStackNode struct {
	BaseNode
}

func (n *zStackNode) Update(Widget) {} // no state of its own beyond its children

func (n *zStackNode) Measure(c Constraints) (int, int) {
	w, h := c.Constrain(c.MaxW, c.MaxH)
	for _, child := range n.Children() {
		child.Measure(c)
	}
	return w, h
}

func (n *zStackNode) Arrange(r Rect) {
	n.SetBounds(r)
	for _, child := range n.Children() {
		child.Arrange(r)
	}
}

func (n *zStackNode) Render(rc *surface.RenderContext) {
	for _, child := range n.Children() {
		child.Render(rc)
	}
}
