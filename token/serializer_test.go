package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeCursorPosition(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindCursorPosition, Row: 3, Col: 5})
	assert.Equal(t, "\x1b[3;5H", string(out))
}

func TestEncodeSgrReset(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindSgr})
	assert.Equal(t, "\x1b[m", string(out))
}

func TestEncodeArrowKeyPlain(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindArrowKey, Direction: DirUp})
	assert.Equal(t, "\x1b[A", string(out))
}

func TestEncodeArrowKeyWithShift(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindArrowKey, Direction: DirUp, ArrowMods: ModShift})
	assert.Equal(t, "\x1b[1;2A", string(out))
}

func TestEncodeSpecialKeyHome(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindSpecialKey, KeyCode: KeyHome})
	assert.Equal(t, "\x1bOH", string(out))
}

func TestEncodeSpecialKeyDeleteTilde(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindSpecialKey, KeyCode: KeyDelete})
	assert.Equal(t, "\x1b[3~", string(out))
}

func TestEncodeCtrlLetter(t *testing.T) {
	assert.Equal(t, byte(0x03), EncodeCtrlLetter('c'))
	assert.Equal(t, byte(0x01), EncodeCtrlLetter('A'))
}

func TestEncodeAltKey(t *testing.T) {
	out := EncodeAltKey('x')
	assert.Equal(t, []byte{0x1b, 'x'}, out)
}

func TestEncodeOscHyperlink(t *testing.T) {
	s := NewSerializer()
	out := s.Encode(Token{Kind: KindOsc, Osc: OscData{Command: 8, Parameters: []string{"id=42"}, Payload: []byte("https://ex")}})
	assert.Equal(t, "\x1b]8;id=42;https://ex\x07", string(out))
}

func TestTokenizerSerializerRoundTripCursorPosition(t *testing.T) {
	tz := NewTokenizer()
	s := NewSerializer()
	original := Token{Kind: KindCursorPosition, Row: 7, Col: 2}
	bytes := s.Encode(original)
	toks := tz.Feed(bytes)
	if assert.Len(t, toks, 1) {
		assert.Equal(t, original.Row, toks[0].Row)
		assert.Equal(t, original.Col, toks[0].Col)
	}
}
