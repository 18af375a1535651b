package loop

import (
	"time"

	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/ui"
)

// Bindable is the optional interface a ui.Node implements to expose a
// BindingTrie for key routing. Nodes with no bindings of their own simply
// don't implement it.
type Bindable interface {
	Bindings() *BindingTrie
}

// Router resolves a tokenizer-level key or mouse event against the
// current focus ring and a hit-tested node tree (§4.5).
type Router struct {
	Ring *ui.FocusRing

	clicks ClickCounter
	drag   *dragState
}

type dragState struct {
	node   ui.Node
	button token.MouseButton
}

// RouteKey walks from the ring's handling node (captured node if any,
// else focused node) up through Parent() links, consulting each node's
// BindingTrie for a single-chord match; the first match wins. If no
// ancestor's trie matches, the handling node's own HandleKey is tried as
// the fallback.
func (r *Router) RouteKey(e ui.KeyEvent) bool {
	handling := r.Ring.HandlingNode()
	if handling == nil {
		return false
	}

	ch := KeyChord{Rune: e.Rune, Code: e.Code, Mods: e.Mods}
	for n := handling; n != nil; n = n.Parent() {
		if b, ok := n.(Bindable); ok && b.Bindings() != nil {
			if handler, ok := b.Bindings().MatchOne(ch); ok {
				if handler(e) {
					return true
				}
			}
		}
	}

	return handling.HandleKey(e)
}

// RouteMouse hit-tests e against root in reverse document order (later
// siblings and deeper z-layers draw on top, so they are tested first),
// updates hover state, computes the click count for a Down event via the
// embedded ClickCounter, and dispatches to the hit node's HandleMouse.
// Drag is tracked from Down through the next Up: once a node accepts a
// Down (its HandleMouse returns true), subsequent Move events are
// redirected to it as Drag events, and the Up to it as well, regardless of
// where the pointer currently sits; the button these events report is not
// compared with the Down's.
func (r *Router) RouteMouse(root ui.Node, e ui.MouseEvent, now time.Time) bool {
	if r.drag != nil && (e.Kind == ui.MouseMove || e.Kind == ui.MouseUp) {
		target := r.drag.node
		kind := e.Kind
		if kind == ui.MouseMove {
			kind = ui.MouseDrag
		}
		handled := target.HandleMouse(ui.MouseEvent{
			Kind: kind, Button: e.Button, Mods: e.Mods, X: e.X, Y: e.Y, ClickCount: e.ClickCount,
		})
		if e.Kind == ui.MouseUp {
			r.drag = nil
		}
		return handled
	}

	target := hitTest(root, e.X, e.Y)
	updateHover(root, target)
	if target == nil {
		return false
	}

	switch e.Kind {
	case ui.MouseDown:
		e.ClickCount = r.clicks.OnDown(e.Button, e.X, e.Y, now)
		handled := target.HandleMouse(e)
		if handled {
			r.drag = &dragState{node: target, button: e.Button}
		}
		return handled
	default:
		return target.HandleMouse(e)
	}
}

// hitTest returns the deepest node containing (x, y), preferring later
// children over earlier ones at the same depth since later children draw
// on top (§4.4's z-stack convention).
func hitTest(n ui.Node, x, y int) ui.Node {
	if n == nil || !n.Bounds().Contains(x, y) {
		return nil
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := hitTest(children[i], x, y); hit != nil {
			return hit
		}
	}
	return n
}

// updateHover clears Hovered on every node except target and sets it on
// target, walking the whole tree since the previously-hovered node may no
// longer be an ancestor of target.
func updateHover(root ui.Node, target ui.Node) {
	if root == nil {
		return
	}
	root.SetHovered(root == target)
	for _, c := range root.Children() {
		updateHover(c, target)
	}
}
