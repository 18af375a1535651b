package vt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridOutOfBoundsReadsReturnEmpty(t *testing.T) {
	g := NewGrid(10, 5)
	assert.Equal(t, EmptyCell, g.Cell(-1, 0))
	assert.Equal(t, EmptyCell, g.Cell(10, 0))
	assert.Equal(t, EmptyCell, g.Cell(0, 5))
}

func TestGridOutOfBoundsWritesIgnored(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(-1, 0, Cell{Grapheme: "x"})
	g.Set(4, 0, Cell{Grapheme: "x"})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, EmptyCell, g.Cell(x, y))
		}
	}
}

func TestGridResizePreservesTopLeft(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(0, 0, Cell{Grapheme: "a"})
	g.Set(3, 3, Cell{Grapheme: "z"})

	g.Resize(2, 2, nil)
	require.Equal(t, 2, g.Width())
	require.Equal(t, 2, g.Height())
	assert.Equal(t, "a", g.Cell(0, 0).Grapheme)

	g.Resize(4, 4, nil)
	assert.Equal(t, "a", g.Cell(0, 0).Grapheme)
	assert.Equal(t, EmptyCell, g.Cell(3, 3))
}

func TestGridResizeReleasesEvictedRefs(t *testing.T) {
	in := NewInterner()
	ref := in.InternHyperlink(HyperlinkPayload{URI: "https://example.com"})
	g := NewGrid(4, 4)
	g.Set(3, 3, Cell{Grapheme: "x", TrackedHyperlink: ref})
	require.Equal(t, 1, in.Refcount(ref))

	g.Resize(2, 2, in)
	assert.Equal(t, 0, in.Refcount(ref))
	assert.Equal(t, 0, in.Len())
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, Cell{Grapheme: "a"})
	clone := g.Clone()
	clone.Set(0, 0, Cell{Grapheme: "b"})
	assert.Equal(t, "a", g.Cell(0, 0).Grapheme)
	assert.Equal(t, "b", clone.Cell(0, 0).Grapheme)
}
