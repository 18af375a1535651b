package ui

import (
	"github.com/vtcore/vtcore/layout"
	"github.com/vtcore/vtcore/surface"
)

// Root drives the fixed composite described in §4.4: an outer optional
// rescue wrapper around build/reconcile/measure/arrange/render, and an
// inner z-stack hosting the application root plus the popup stack. It is
// the single entry point the event loop (§4.5) calls once per frame.
type Root struct {
	AppBuilder    func() Widget
	Fallback      func(err *RescueError) Widget
	Observer      RescueObserver
	RescueEnabled bool

	Popups PopupStack
	Ring   FocusRing

	rootNode Node
}

// RunFrame executes build -> reconcile -> layout -> render against
// available, rebuilding the focus ring after layout (§4.4). It returns the
// most recent RescueError caught along the way, or nil if every stage ran
// clean. When RescueEnabled is false, a panicking stage is not recovered
// here — it propagates to the caller per §7 ("surfaces to the app
// boundary... triggers graceful shutdown").
func (root *Root) RunFrame(rc *surface.RenderContext, available layout.Rect) *RescueError {
	var lastErr *RescueError

	run := func(stage string, fn func()) bool {
		if !root.RescueEnabled {
			fn()
			return true
		}
		if err := Rescue(stage, root.Observer, fn); err != nil {
			lastErr = err
			return false
		}
		return true
	}

	var appWidget Widget
	if !run("build", func() { appWidget = root.AppBuilder() }) {
		appWidget = root.fallbackWidget(lastErr)
	}

	composite := root.composite(appWidget)

	if !run("reconcile", func() { root.rootNode = Reconcile(root.rootNode, composite) }) {
		fallback := root.composite(root.fallbackWidget(lastErr))
		root.rootNode = Reconcile(nil, fallback)
	}

	if root.rootNode == nil {
		return lastErr
	}

	run("layout", func() {
		layout.Run(asLayoutable(root.rootNode), available)
	})

	root.Ring.Rebuild(root.rootNode)

	run("render", func() {
		root.rootNode.Render(rc)
	})

	return lastErr
}

// RootNode returns the retained node tree built by the most recent
// RunFrame call, for the event loop's router to hit-test and walk
// ancestor chains against (§4.5). Nil before the first frame.
func (root *Root) RootNode() Node { return root.rootNode }

func (root *Root) fallbackWidget(err *RescueError) Widget {
	if root.Fallback != nil {
		return root.Fallback(err)
	}
	return &zStackWidget{} // an empty frame beats a crash
}

// composite wraps appWidget plus the active popup stack's content in a
// z-stack widget (§4.4: "hosts the application root plus the popup
// stack"). Each entry's content is passed through its ThemeMutator when one
// is set; no backdrop is drawn and no anchored positioning is applied, so
// beyond that the composite only establishes draw order.
func (root *Root) composite(appWidget Widget) Widget {
	z := &zStackWidget{layers: []Widget{appWidget}}
	for _, p := range root.Popups.Entries() {
		content := p.ContentBuilder()
		if p.ThemeMutator != nil {
			content = p.ThemeMutator(content)
		}
		z.layers = append(z.layers, content)
	}
	return z
}

// asLayoutable asserts that n also satisfies layout.Layoutable, which
// every concrete Node must since ui.Node already declares Measure/Arrange
// with layout's exact signatures.
func asLayoutable(n Node) layout.Layoutable {
	return n.(layout.Layoutable)
}
