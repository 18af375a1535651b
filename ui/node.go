package ui

import "github.com/vtcore/vtcore/surface"

// Node is a mutable, retained render object (§3 "Node / Widget
// distinction"). One widget reconciles to one node of a fixed expected
// type; concrete node kinds (button, stack, text, ...) live outside this
// package (§1 Non-goal: "concrete widgets") and implement this interface.
type Node interface {
	Kind() string
	Key() string

	// Update applies w's declared properties onto this node in place.
	// w.Kind() is guaranteed to equal n.Kind() by the time Update is
	// called; Reconcile allocates a fresh node otherwise.
	Update(w Widget)

	Parent() Node
	SetParent(Node)

	Children() []Node
	SetChildren([]Node)

	Bounds() Rect
	SetBounds(Rect)

	Dirty() bool
	MarkDirty()
	ClearDirty()

	Focusable() bool
	Focused() bool
	SetFocused(bool)
	Hovered() bool
	SetHovered(bool)

	Measure(c Constraints) (w, h int)
	Arrange(r Rect)
	Render(rc *surface.RenderContext)

	// HandleKey/HandleMouse are the node's own default handler, consulted
	// by the event loop's router (§4.5) only after the binding trie finds
	// no match. Returning false lets the event continue propagating.
	HandleKey(e KeyEvent) bool
	HandleMouse(e MouseEvent) bool
}

// BaseNode is embedded by concrete Node implementations for the
// bookkeeping every node needs regardless of kind: parent/children links,
// bounds, dirty/focus/hover flags. Concrete nodes override Update/Measure/
// Arrange/Render/HandleKey/HandleMouse for their own behavior.
type BaseNode struct {
	kind string
	key  string

	parent   Node
	children []Node

	bounds Rect
	dirty  bool

	focusable bool
	focused   bool
	hovered   bool
}

func NewBaseNode(kind string) BaseNode { return BaseNode{kind: kind, dirty: true} }

func (n *BaseNode) Kind() string { return n.kind }
func (n *BaseNode) Key() string  { return n.key }
func (n *BaseNode) SetKey(k string) { n.key = k }

func (n *BaseNode) Parent() Node      { return n.parent }
func (n *BaseNode) SetParent(p Node)  { n.parent = p }
func (n *BaseNode) Children() []Node  { return n.children }
func (n *BaseNode) SetChildren(c []Node) { n.children = c }

func (n *BaseNode) Bounds() Rect        { return n.bounds }
func (n *BaseNode) SetBounds(r Rect)    { n.bounds = r }

func (n *BaseNode) Dirty() bool    { return n.dirty }
func (n *BaseNode) MarkDirty()     { n.dirty = true }
func (n *BaseNode) ClearDirty()    { n.dirty = false }

func (n *BaseNode) Focusable() bool     { return n.focusable }
func (n *BaseNode) SetFocusable(v bool) { n.focusable = v }
func (n *BaseNode) Focused() bool       { return n.focused }
func (n *BaseNode) SetFocused(v bool)   { n.focused = v }
func (n *BaseNode) Hovered() bool       { return n.hovered }
func (n *BaseNode) SetHovered(v bool)   { n.hovered = v }

// HandleKey/HandleMouse default to "not handled"; concrete nodes override.
func (n *BaseNode) HandleKey(KeyEvent) bool     { return false }
func (n *BaseNode) HandleMouse(MouseEvent) bool { return false }
