// Package ui implements the Reconciler (§4.4): an immutable Widget
// description tree reconciled against a mutable, retained Node tree,
// followed by a two-pass layout and a render into a surface.RenderContext.
package ui

import "github.com/vtcore/vtcore/layout"

// Widget is an immutable declarative record identified by its Kind (the
// node type it reconciles to) and an optional Key (explicit identity
// within a sibling list; "" falls back to insertion-order matching).
type Widget interface {
	Kind() string
	Key() string
	Children() []Widget

	// NewNode allocates a fresh Node of this widget's kind. Called only
	// when reconcile can't reuse an existing node (none present, or a
	// type mismatch).
	NewNode() Node
}

// Rect and Constraints are re-exported from layout so widget/node code
// doesn't need to import both packages for these two value types.
type Rect = layout.Rect
type Constraints = layout.Constraints

// BaseWidget is embedded by concrete widgets to satisfy Key/Children with
// sensible zero-value defaults (no key, no children), matching how most
// leaf widgets (text, spacer) have nothing to override.
type BaseWidget struct {
	ExplicitKey string
}

func (b BaseWidget) Key() string        { return b.ExplicitKey }
func (b BaseWidget) Children() []Widget { return nil }
