package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedPlainText(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("hello"))
	require.Len(t, toks, 1)
	assert.Equal(t, KindText, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Text)
}

func TestFeedSplitsTextAroundControlChars(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("ab\ncd"))
	require.Len(t, toks, 3)
	assert.Equal(t, "ab", toks[0].Text)
	assert.Equal(t, KindControlChar, toks[1].Kind)
	assert.Equal(t, byte('\n'), toks[1].Control)
	assert.Equal(t, "cd", toks[2].Text)
}

func TestFeedCSIFinal(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b[31m"))
	require.Len(t, toks, 1)
	require.Equal(t, KindSgr, toks[0].Kind)
	assert.Equal(t, []int64{31}, toks[0].SgrParams)
}

func TestFeedBuffersTrailingPartialEscape(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b["))
	assert.Len(t, toks, 0)

	toks = tz.Feed([]byte("31m"))
	require.Len(t, toks, 1)
	assert.Equal(t, KindSgr, toks[0].Kind)
}

func TestFeedBuffersTrailingPartialUTF8(t *testing.T) {
	tz := NewTokenizer()
	full := "中"
	// Split the 3-byte UTF-8 sequence across two Feed calls.
	toks := tz.Feed([]byte(full)[:1])
	assert.Len(t, toks, 0)
	toks = tz.Feed([]byte(full)[1:])
	require.Len(t, toks, 1)
	assert.Equal(t, full, toks[0].Text)
}

func TestOscTerminatesOnBEL(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b]0;title\x07"))
	require.Len(t, toks, 1)
	require.Equal(t, KindOsc, toks[0].Kind)
	assert.Equal(t, 0, toks[0].Osc.Command)
}

func TestOscTerminatesOnST(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b]0;title\x1b\\"))
	require.Len(t, toks, 1)
	assert.Equal(t, KindOsc, toks[0].Kind)
}

func TestHyperlinkOscRoundTrip(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b]8;id=42;https://ex\x07"))
	require.Len(t, toks, 1)
	require.Equal(t, KindOsc, toks[0].Kind)
	assert.Equal(t, 8, toks[0].Osc.Command)
	assert.Equal(t, []string{"id=42"}, toks[0].Osc.Parameters)
	assert.Equal(t, "https://ex", string(toks[0].Osc.Payload))
}

func TestDcsSixelParamsSplit(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1bP0;1;0q#0;2;0;0;0\x1b\\"))
	require.Len(t, toks, 1)
	require.Equal(t, KindDcs, toks[0].Kind)
	assert.Equal(t, []int64{0, 1, 0}, toks[0].DcsParams)
}

func TestUnrecognizedEscapeNeverFatal(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1bQ"))
	require.Len(t, toks, 1)
	assert.Equal(t, KindUnrecognized, toks[0].Kind)
}

func TestBareEscapeAtEndIsBuffered(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b"))
	assert.Len(t, toks, 0)
}

func TestSGRMouseToken(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b[<0;10;20M"))
	require.Len(t, toks, 1)
	require.Equal(t, KindSgrMouse, toks[0].Kind)
	assert.Equal(t, MouseButtonLeft, toks[0].MouseButton)
	assert.Equal(t, MouseDown, toks[0].MouseAction)
	assert.Equal(t, 9, toks[0].MouseX)
	assert.Equal(t, 19, toks[0].MouseY)
}

func TestPrivateModeToken(t *testing.T) {
	tz := NewTokenizer()
	toks := tz.Feed([]byte("\x1b[?1049h"))
	require.Len(t, toks, 1)
	require.Equal(t, KindPrivateMode, toks[0].Kind)
	assert.Equal(t, 1049, toks[0].Mode)
	assert.True(t, toks[0].Enable)
}
