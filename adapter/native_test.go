package adapter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/vtcore/mediator"
)

func TestNativeAdapterSizeReturnsZeroForNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	a := NewNativeAdapter(r, w, mediator.Capabilities{})
	width, height := a.Size()
	assert.Equal(t, 0, width)
	assert.Equal(t, 0, height)
}

func TestNativeAdapterWriteOutputWritesToOutFile(t *testing.T) {
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	defer inR.Close()
	defer inW.Close()
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	defer outR.Close()
	defer outW.Close()

	a := NewNativeAdapter(inR, outW, mediator.Capabilities{})
	require.NoError(t, a.WriteOutput([]byte("hi")))

	buf := make([]byte, 2)
	n, err := outR.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(buf[:n]))
}

func TestNativeAdapterReadInputReturnsWrittenBytes(t *testing.T) {
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	defer inR.Close()
	defer inW.Close()
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	defer outR.Close()
	defer outW.Close()

	a := NewNativeAdapter(inR, outW, mediator.Capabilities{})

	go func() {
		_, _ = inW.Write([]byte("keys"))
	}()

	data, err := a.ReadInput()
	require.NoError(t, err)
	assert.Equal(t, "keys", string(data))
}

func TestNativeAdapterReadInputMarksDisconnectedOnHangup(t *testing.T) {
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	defer inR.Close()
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	defer outR.Close()
	defer outW.Close()

	a := NewNativeAdapter(inR, outW, mediator.Capabilities{})
	require.NoError(t, inW.Close())

	data, err := a.ReadInput()
	require.NoError(t, err)
	assert.Empty(t, data)

	select {
	case <-a.Disconnected():
	default:
		t.Fatal("expected Disconnected to be closed after EOF")
	}
}

func TestNativeAdapterExitRawModeWithoutEnterIsNoop(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	a := NewNativeAdapter(r, w, mediator.Capabilities{})
	assert.NoError(t, a.ExitRawMode())
}
