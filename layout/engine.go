package layout

// Measurable is the measure half of the two-pass engine: given the
// constraints the parent offers, return the size this node wants.
type Measurable interface {
	Measure(c Constraints) (w, h int)
}

// Arrangeable is the arrange half: given the final rect the parent
// assigned, settle into it (and recursively arrange children).
type Arrangeable interface {
	Arrange(r Rect)
}

// Layoutable is measured, then arranged — the shape every ui.Node
// satisfies.
type Layoutable interface {
	Measurable
	Arrangeable
}

// Run performs the two-pass layout (§4.4): measure root against the
// constraints implied by available, then arrange it into available
// itself. This is the entire "Layout Engine" component — the actual
// per-kind sizing logic lives in each ui.Node's Measure/Arrange.
func Run(root Layoutable, available Rect) {
	root.Measure(Tight(available.W, available.H))
	root.Arrange(available)
}
