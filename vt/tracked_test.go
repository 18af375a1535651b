package vt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternerInterningByPayloadIdentity(t *testing.T) {
	in := NewInterner()
	a := in.InternHyperlink(HyperlinkPayload{ID: "42", URI: "https://example.com"})
	b := in.InternHyperlink(HyperlinkPayload{ID: "42", URI: "https://example.com"})
	require.Equal(t, a, b, "identical payloads intern to the same ref")
	assert.Equal(t, 2, in.Refcount(a))
}

func TestInternerDistinctPayloadsGetDistinctRefs(t *testing.T) {
	in := NewInterner()
	a := in.InternHyperlink(HyperlinkPayload{URI: "https://a"})
	b := in.InternHyperlink(HyperlinkPayload{URI: "https://b"})
	assert.NotEqual(t, a, b)
}

func TestInternerReleaseEvictsAtZero(t *testing.T) {
	in := NewInterner()
	ref := in.InternSixel(SixelPayload{Data: []byte("abc"), WidthInCells: 1, HeightInCells: 1})
	in.Retain(ref)
	assert.Equal(t, 2, in.Refcount(ref))

	in.Release(ref)
	assert.Equal(t, 1, in.Refcount(ref))
	in.Release(ref)
	assert.Equal(t, 0, in.Refcount(ref))
	assert.Equal(t, 0, in.Len())
}

func TestInternerReleaseNilIsNoop(t *testing.T) {
	in := NewInterner()
	assert.NotPanics(t, func() { in.Release(nil) })
	assert.NotPanics(t, func() { in.Retain(nil) })
}
