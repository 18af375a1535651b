package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/vtcore/surface"
)

// textWidget/textNode are a minimal concrete node used only by this
// package's own tests, standing in for the "concrete widgets" the spec
// explicitly treats as an external collaborator (§1 Non-goal).

type textWidget struct {
	BaseWidget
	text string
}

func (w *textWidget) Kind() string { return "text" }
func (w *textWidget) NewNode() Node {
	return &textNode{BaseNode: NewBaseNode("text")}
}

type textNode struct {
	BaseNode
	text    string
	updates int
}

func (n *textNode) Update(w Widget) {
	n.text = w.(*textWidget).text
	n.updates++
}
func (n *textNode) Measure(c Constraints) (int, int) { return len(n.text), 1 }
func (n *textNode) Arrange(r Rect)                   { n.SetBounds(r) }
func (n *textNode) Render(rc *surface.RenderContext) {
	x, y := n.Bounds().X, n.Bounds().Y
	rc.SetCursor(x, y)
	rc.WriteString(n.text)
}

func TestReconcileReusesSameKindNode(t *testing.T) {
	w1 := &textWidget{text: "a"}
	n := Reconcile(nil, w1)
	require.NotNil(t, n)
	tn := n.(*textNode)
	assert.Equal(t, 1, tn.updates)

	w2 := &textWidget{text: "b"}
	n2 := Reconcile(n, w2)
	assert.Same(t, n, n2, "same kind reuses the node in place")
	assert.Equal(t, 2, tn.updates)
	assert.Equal(t, "b", tn.text)
}

func TestReconcileReplacesOnKindMismatch(t *testing.T) {
	n := Reconcile(nil, &textWidget{text: "a"})
	other := &zStackWidget{}
	n2 := Reconcile(n, other)
	assert.NotSame(t, n, n2)
	assert.Equal(t, zStackKind, n2.Kind())
}

func TestFocusRingRebuildFindsFocusableNodes(t *testing.T) {
	leaf := &textNode{BaseNode: NewBaseNode("text")}
	leaf.SetFocusable(true)
	root := &zStackNode{BaseNode: NewBaseNode(zStackKind)}
	root.SetChildren([]Node{leaf})

	var ring FocusRing
	ring.Rebuild(root)
	assert.Len(t, ring.Nodes(), 1)
	assert.Same(t, leaf, ring.Nodes()[0])
}

func TestFocusRingClearsFocusWhenNodeLeavesRing(t *testing.T) {
	leaf := &textNode{BaseNode: NewBaseNode("text")}
	leaf.SetFocusable(true)
	root := &zStackNode{BaseNode: NewBaseNode(zStackKind)}
	root.SetChildren([]Node{leaf})

	var ring FocusRing
	ring.Rebuild(root)
	ring.Focus(leaf)
	assert.Same(t, leaf, ring.Focused())

	root.SetChildren(nil)
	ring.Rebuild(root)
	assert.Nil(t, ring.Focused())
	assert.False(t, leaf.Focused())
}

func TestPopupStackPushPopRestoresFocus(t *testing.T) {
	var stack PopupStack
	var ring FocusRing

	restoreTarget := &textNode{BaseNode: NewBaseNode("text")}
	restoreTarget.SetFocusable(true)
	dismissed := false

	stack.Push(PopupEntry{
		ContentBuilder:   func() Widget { return &textWidget{text: "popup"} },
		FocusRestoreNode: restoreTarget,
		OnDismiss:        func() { dismissed = true },
	})
	assert.False(t, stack.Empty())

	_, ok := stack.Pop(&ring)
	assert.True(t, ok)
	assert.True(t, dismissed)
	assert.Same(t, restoreTarget, ring.Focused())
	assert.True(t, stack.Empty())
}

func TestRescueCatchesPanicAndReportsStage(t *testing.T) {
	var got *RescueError
	err := Rescue("render", func(e *RescueError) { got = e }, func() {
		panic("boom")
	})
	require.NotNil(t, err)
	assert.Equal(t, "render", err.Stage)
	assert.Same(t, err, got)
}

func TestRescueReturnsNilWhenNoPanic(t *testing.T) {
	err := Rescue("build", nil, func() {})
	assert.Nil(t, err)
}

func TestRootRunFrameRendersAppWidget(t *testing.T) {
	root := &Root{
		AppBuilder:    func() Widget { return &textWidget{text: "hello"} },
		RescueEnabled: true,
	}
	s := surface.NewSurface(10, 1)
	rc := s.BeginFrame()
	err := root.RunFrame(rc, Rect{X: 0, Y: 0, W: 10, H: 1})
	assert.Nil(t, err)
	out := s.EndFrame()
	assert.Contains(t, string(out), "hello")
}

func TestRootRunFrameRecoversBuildPanic(t *testing.T) {
	root := &Root{
		AppBuilder:    func() Widget { panic("widget build exploded") },
		Fallback:      func(err *RescueError) Widget { return &textWidget{text: "fallback"} },
		RescueEnabled: true,
	}
	s := surface.NewSurface(10, 1)
	rc := s.BeginFrame()
	err := root.RunFrame(rc, Rect{X: 0, Y: 0, W: 10, H: 1})
	require.NotNil(t, err)
	assert.Equal(t, "build", err.Stage)
	out := s.EndFrame()
	assert.Contains(t, string(out), "fallback")
}
