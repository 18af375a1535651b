package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/vtcore/surface"
	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/ui"
)

func TestClickCounterIncrementsWithinWindowAndThreshold(t *testing.T) {
	var c ClickCounter
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, c.OnDown(token.MouseButtonLeft, 5, 5, base))
	assert.Equal(t, 2, c.OnDown(token.MouseButtonLeft, 5, 5, base.Add(100*time.Millisecond)))
	assert.Equal(t, 3, c.OnDown(token.MouseButtonLeft, 5, 5, base.Add(200*time.Millisecond)))
	// caps at 3 rather than climbing to 4
	assert.Equal(t, 3, c.OnDown(token.MouseButtonLeft, 5, 5, base.Add(300*time.Millisecond)))
}

func TestClickCounterResetsAfterWindowExpires(t *testing.T) {
	var c ClickCounter
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c.OnDown(token.MouseButtonLeft, 0, 0, base)
	got := c.OnDown(token.MouseButtonLeft, 0, 0, base.Add(501*time.Millisecond))
	assert.Equal(t, 1, got)
}

func TestClickCounterResetsOnDifferentButton(t *testing.T) {
	var c ClickCounter
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c.OnDown(token.MouseButtonLeft, 0, 0, base)
	got := c.OnDown(token.MouseButtonRight, 0, 0, base.Add(10*time.Millisecond))
	assert.Equal(t, 1, got)
}

func TestClickCounterResetsOutsideThreshold(t *testing.T) {
	c := ClickCounter{Threshold: 0}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c.OnDown(token.MouseButtonLeft, 10, 10, base)
	got := c.OnDown(token.MouseButtonLeft, 12, 10, base.Add(10*time.Millisecond))
	assert.Equal(t, 1, got)
}

func TestInvalidatorCoalescesMultipleSignals(t *testing.T) {
	inv := NewInvalidator()
	inv.Signal()
	inv.Signal()
	inv.Signal()

	select {
	case <-inv.C():
	default:
		t.Fatal("expected one pending tick")
	}
	select {
	case <-inv.C():
		t.Fatal("expected no second tick, signals should have coalesced")
	default:
	}
}

func TestInvalidatorDrainEmptiesPending(t *testing.T) {
	inv := NewInvalidator()
	inv.Signal()
	inv.Drain()
	select {
	case <-inv.C():
		t.Fatal("expected drain to empty the pending tick")
	default:
	}
}

func TestTimerQueuePopsOnlyDueTimers(t *testing.T) {
	var q TimerQueue
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var fired []string
	q.Add(&Timer{Due: base, Fire: func() { fired = append(fired, "a") }})
	q.Add(&Timer{Due: base.Add(time.Hour), Fire: func() { fired = append(fired, "b") }})

	due := q.PopDue(base.Add(time.Minute))
	for _, d := range due {
		d.Fire()
	}
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, 1, q.Len())
}

func TestTimerQueueCancel(t *testing.T) {
	var q TimerQueue
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	id := q.Add(&Timer{Due: base, Fire: func() {}})
	q.Cancel(id)
	assert.Equal(t, 0, q.Len())
}

func TestBindingTrieSingleChordMatch(t *testing.T) {
	var trie BindingTrie
	called := false
	trie.Register([]KeyChord{{Rune: 'q'}}, func(ui.KeyEvent) bool {
		called = true
		return true
	})

	handler, ok := trie.MatchOne(KeyChord{Rune: 'q'})
	assert.True(t, ok)
	handler(ui.KeyEvent{Rune: 'q'})
	assert.True(t, called)

	_, ok = trie.MatchOne(KeyChord{Rune: 'x'})
	assert.False(t, ok)
}

func TestBindingTrieLaterRegistrationOverrides(t *testing.T) {
	var trie BindingTrie
	trie.Register([]KeyChord{{Rune: 'q'}}, func(ui.KeyEvent) bool { return false })
	trie.Register([]KeyChord{{Rune: 'q'}}, func(ui.KeyEvent) bool { return true })

	handler, ok := trie.MatchOne(KeyChord{Rune: 'q'})
	assert.True(t, ok)
	assert.True(t, handler(ui.KeyEvent{}))
}

func TestMatcherHandlesMultiChordSequence(t *testing.T) {
	var trie BindingTrie
	fired := false
	trie.Register([]KeyChord{{Rune: 'g'}, {Rune: 'g'}}, func(ui.KeyEvent) bool {
		fired = true
		return true
	})

	m := NewMatcher(&trie)
	_, matched, isPrefix := m.Feed(KeyChord{Rune: 'g'})
	assert.False(t, matched)
	assert.True(t, isPrefix)

	handler, matched, _ := m.Feed(KeyChord{Rune: 'g'})
	assert.True(t, matched)
	handler(ui.KeyEvent{})
	assert.True(t, fired)
}

func TestMatcherResetsOnMismatch(t *testing.T) {
	var trie BindingTrie
	trie.Register([]KeyChord{{Rune: 'g'}, {Rune: 'g'}}, func(ui.KeyEvent) bool { return true })

	m := NewMatcher(&trie)
	m.Feed(KeyChord{Rune: 'g'})
	_, matched, isPrefix := m.Feed(KeyChord{Rune: 'x'})
	assert.False(t, matched)
	assert.False(t, isPrefix)
}

// routerTestNode is a minimal concrete ui.Node used only to exercise the
// router's hit-testing and key-routing in isolation.
type routerTestNode struct {
	ui.BaseNode
	handledMouse []ui.MouseEvent
	handledKey   bool
}

func (n *routerTestNode) Update(ui.Widget)                  {}
func (n *routerTestNode) Measure(ui.Constraints) (int, int) { return n.Bounds().W, n.Bounds().H }
func (n *routerTestNode) Arrange(ui.Rect)                   {}
func (n *routerTestNode) Render(*surface.RenderContext)     {}
func (n *routerTestNode) HandleMouse(e ui.MouseEvent) bool {
	n.handledMouse = append(n.handledMouse, e)
	return true
}
func (n *routerTestNode) HandleKey(ui.KeyEvent) bool {
	n.handledKey = true
	return true
}

func TestRouterRouteKeyFallsBackToHandleKeyWithNoBinding(t *testing.T) {
	leaf := &routerTestNode{BaseNode: ui.NewBaseNode("leaf")}
	leaf.SetFocusable(true)

	var ring ui.FocusRing
	ring.Rebuild(leaf)
	ring.Focus(leaf)

	r := &Router{Ring: &ring}
	handled := r.RouteKey(ui.KeyEvent{Rune: 'z'})
	assert.True(t, handled)
	assert.True(t, leaf.handledKey)
}

// bindableTestNode additionally exposes a BindingTrie, so RouteKey should
// prefer a matching binding over falling through to HandleKey.
type bindableTestNode struct {
	routerTestNode
	trie BindingTrie
}

func (n *bindableTestNode) Bindings() *BindingTrie { return &n.trie }

func TestRouterRouteKeyPrefersBindingOverHandleKey(t *testing.T) {
	leaf := &bindableTestNode{routerTestNode: routerTestNode{BaseNode: ui.NewBaseNode("leaf")}}
	leaf.SetFocusable(true)
	bindingFired := false
	leaf.trie.Register([]KeyChord{{Rune: 'q'}}, func(ui.KeyEvent) bool {
		bindingFired = true
		return true
	})

	var ring ui.FocusRing
	ring.Rebuild(leaf)
	ring.Focus(leaf)

	r := &Router{Ring: &ring}
	handled := r.RouteKey(ui.KeyEvent{Rune: 'q'})
	assert.True(t, handled)
	assert.True(t, bindingFired)
	assert.False(t, leaf.handledKey, "binding match should short-circuit before HandleKey")
}

func TestRouterHitTestPrefersTopmostChild(t *testing.T) {
	back := &routerTestNode{BaseNode: ui.NewBaseNode("back")}
	back.SetBounds(ui.Rect{X: 0, Y: 0, W: 10, H: 10})
	front := &routerTestNode{BaseNode: ui.NewBaseNode("front")}
	front.SetBounds(ui.Rect{X: 0, Y: 0, W: 10, H: 10})

	root := &routerTestNode{BaseNode: ui.NewBaseNode("root")}
	root.SetBounds(ui.Rect{X: 0, Y: 0, W: 10, H: 10})
	root.SetChildren([]ui.Node{back, front})

	var ring ui.FocusRing
	r := &Router{Ring: &ring}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.RouteMouse(root, ui.MouseEvent{Kind: ui.MouseDown, X: 5, Y: 5}, now)

	assert.Empty(t, back.handledMouse, "the occluded back node should not receive the click")
	assert.Len(t, front.handledMouse, 1)
	assert.Equal(t, 1, front.handledMouse[0].ClickCount)
}

func TestRouterDragRedirectsMoveToDownTarget(t *testing.T) {
	a := &routerTestNode{BaseNode: ui.NewBaseNode("a")}
	a.SetBounds(ui.Rect{X: 0, Y: 0, W: 5, H: 5})
	b := &routerTestNode{BaseNode: ui.NewBaseNode("b")}
	b.SetBounds(ui.Rect{X: 5, Y: 0, W: 5, H: 5})
	root := &routerTestNode{BaseNode: ui.NewBaseNode("root")}
	root.SetBounds(ui.Rect{X: 0, Y: 0, W: 10, H: 5})
	root.SetChildren([]ui.Node{a, b})

	var ring ui.FocusRing
	r := &Router{Ring: &ring}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	r.RouteMouse(root, ui.MouseEvent{Kind: ui.MouseDown, X: 2, Y: 2}, now)
	// the pointer moves over b's rect while still dragging from a
	r.RouteMouse(root, ui.MouseEvent{Kind: ui.MouseMove, X: 7, Y: 2}, now)

	assert.Empty(t, b.handledMouse, "drag should stay targeted at the node that received the down")
	require.Len(t, a.handledMouse, 2)
	assert.Equal(t, ui.MouseDrag, a.handledMouse[1].Kind)
}
