package ui

// FocusRing is the ordered list of focusable nodes in document order
// (§3). Exactly one node may be `focused`; at most one additional node
// may be `captured`, overriding focus for input routing without
// affecting ring membership.
type FocusRing struct {
	nodes    []Node
	focused  Node
	captured Node
}

// Rebuild walks root in document order and replaces the ring's contents
// with every focusable node found (§4.4: "rebuilt from the post-arrange
// tree in document order" — called after each layout pass). If the
// previously-focused node is still present, focus is preserved; otherwise
// it is cleared.
func (f *FocusRing) Rebuild(root Node) {
	var nodes []Node
	var walk func(n Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		if n.Focusable() {
			nodes = append(nodes, n)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)

	f.nodes = nodes
	if f.focused != nil && !containsNode(nodes, f.focused) {
		f.focused.SetFocused(false)
		f.focused = nil
	}
}

func containsNode(nodes []Node, target Node) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}

// Nodes returns the ring in document order.
func (f *FocusRing) Nodes() []Node { return f.nodes }

// Focused returns the currently-focused node, or nil.
func (f *FocusRing) Focused() Node { return f.focused }

// Focus sets n as the focused node (n must be a member of the ring), and
// clears focus from whatever was previously focused. A nil n clears focus
// entirely.
func (f *FocusRing) Focus(n Node) {
	if f.focused == n {
		return
	}
	if f.focused != nil {
		f.focused.SetFocused(false)
	}
	f.focused = n
	if n != nil {
		n.SetFocused(true)
	}
}

// Captured returns the node that currently captures input, or nil.
func (f *FocusRing) Captured() Node { return f.captured }

// Capture sets n as the capturing node. Capture is independent of ring
// membership: a node may capture input without being focusable.
func (f *FocusRing) Capture(n Node) { f.captured = n }

// ReleaseCapture clears the captured node.
func (f *FocusRing) ReleaseCapture() { f.captured = nil }

// HandlingNode returns the node that should receive a routed key event
// per §4.5: the captured node if set, else the focused node.
func (f *FocusRing) HandlingNode() Node {
	if f.captured != nil {
		return f.captured
	}
	return f.focused
}
