package asciicast

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTripsHeaderAndEvents(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader(Header{Width: 80, Height: 24, Title: "demo"}))
	require.NoError(t, w.WriteOutput(0.123456789, "hello"))
	require.NoError(t, w.WriteResize(1.5, 100, 40))

	r, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Header().Version)
	assert.Equal(t, 80, r.Header().Width)
	assert.Equal(t, "demo", r.Header().Title)

	e1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, EventOutput, e1.Code)
	assert.Equal(t, "hello", e1.Data)
	assert.InDelta(t, 0.123457, e1.Time, 1e-9, "time should round to 6 decimals")

	e2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, EventResize, e2.Code)
	assert.Equal(t, "100x40", e2.Data)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestWriteEventBeforeHeaderErrors(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.WriteOutput(0, "x")
	assert.Error(t, err)
}

func TestReaderSkipsShortEventLines(t *testing.T) {
	data := `{"version":2,"width":80,"height":24}
[0.1, "o"]
[0.2, "o", "ok"]
`
	r, err := NewReader(bytes.NewBufferString(data))
	require.NoError(t, err)

	events, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 1, "the 2-element line should be skipped")
	assert.Equal(t, "ok", events[0].Data)
}

func TestReaderRejectsEmptyStream(t *testing.T) {
	_, err := NewReader(bytes.NewBufferString(""))
	assert.Error(t, err)
}
