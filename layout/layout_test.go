package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 2, W: 3, H: 3}
	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(4, 4))
	assert.False(t, r.Contains(5, 4))
	assert.False(t, r.Contains(2, 5))
}

func TestRectInsetClampsToZero(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 2, H: 2}
	inset := r.Inset(3)
	assert.True(t, inset.Empty())
}

func TestConstraintsConstrainClampsToBounds(t *testing.T) {
	c := Constraints{MinW: 2, MaxW: 10, MinH: 1, MaxH: 5}
	w, h := c.Constrain(1, 20)
	assert.Equal(t, 2, w)
	assert.Equal(t, 5, h)
}

func TestTightConstraintsForceExactSize(t *testing.T) {
	c := Tight(4, 6)
	assert.True(t, c.IsTight())
	w, h := c.Constrain(100, 100)
	assert.Equal(t, 4, w)
	assert.Equal(t, 6, h)
}

type fixedNode struct {
	w, h       int
	measured   bool
	bounds     Rect
}

func (n *fixedNode) Measure(c Constraints) (int, int) {
	n.measured = true
	return n.w, n.h
}

func (n *fixedNode) Arrange(r Rect) { n.bounds = r }

func TestRunMeasuresThenArranges(t *testing.T) {
	n := &fixedNode{w: 5, h: 2}
	Run(n, Rect{X: 0, Y: 0, W: 20, H: 10})
	assert.True(t, n.measured)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 20, H: 10}, n.bounds)
}
