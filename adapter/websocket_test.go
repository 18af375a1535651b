package adapter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtcore/vtcore/mediator"
)

func TestParseResizeLegacyTextForm(t *testing.T) {
	w, h, ok := parseResize([]byte("resize:120,40"))
	require.True(t, ok)
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}

func TestParseResizeJSONForm(t *testing.T) {
	w, h, ok := parseResize([]byte(`{"type":"resize","cols":100,"rows":30,"cellWidth":9.5,"cellHeight":18}`))
	require.True(t, ok)
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)
}

func TestParseResizeRejectsNonResizeJSON(t *testing.T) {
	_, _, ok := parseResize([]byte(`{"type":"ping"}`))
	assert.False(t, ok)
}

func TestParseResizeRejectsMalformedLegacyForm(t *testing.T) {
	_, _, ok := parseResize([]byte("resize:notanumber,40"))
	assert.False(t, ok)
}

func TestWebSocketAdapterRoundTripsBinaryFramesAndResize(t *testing.T) {
	var serverAdapter *WebSocketAdapter
	ready := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, err := Upgrade(w, r, mediator.Capabilities{Mouse: true})
		require.NoError(t, err)
		serverAdapter = a
		close(ready)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	<-ready

	inputCh := make(chan []byte, 4)
	go func() {
		for {
			data, err := serverAdapter.ReadInput()
			if err != nil {
				return
			}
			inputCh <- data
		}
	}()

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("resize:80,24")))
	select {
	case sz := <-serverAdapter.Resized():
		assert.Equal(t, 80, sz.W)
		assert.Equal(t, 24, sz.H)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a resize event")
	}
	w, h := serverAdapter.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	require.NoError(t, client.WriteMessage(websocket.BinaryMessage, []byte("hello")))
	select {
	case data := <-inputCh:
		assert.Equal(t, "hello", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("expected input bytes")
	}

	require.NoError(t, serverAdapter.WriteOutput([]byte("world")))
	mt, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, mt)
	assert.Equal(t, "world", string(data))

	assert.NotEmpty(t, serverAdapter.SessionID())
}

func TestUpgradeAssignsDistinctSessionIDs(t *testing.T) {
	seen := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, err := Upgrade(w, r, mediator.Capabilities{})
		require.NoError(t, err)
		seen <- a.SessionID()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	for i := 0; i < 2; i++ {
		c, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		defer c.Close()
	}

	first := <-seen
	second := <-seen
	assert.NotEqual(t, first, second)
}
