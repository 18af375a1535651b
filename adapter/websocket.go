// Package adapter provides concrete mediator.PresentationAdapter
// implementations: a WebSocket transport for remote/browser clients and a
// native-terminal transport for direct local use.
package adapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vtcore/vtcore/mediator"
)

const (
	maxMessageSize = 1 << 20
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// resizeMsg is the JSON control-message shape named by §6; cellWidth/
// cellHeight are optional float hints that are decoded but not applied:
// Capabilities().CellPxW/H keep the values passed to Upgrade.
type resizeMsg struct {
	Type       string  `json:"type"`
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
}

// WebSocketAdapter implements mediator.PresentationAdapter over a single
// upgraded *websocket.Conn, per the raw binary/text framing described in
// §6: binary and text frames both carry terminal bytes, except a text
// frame that parses as a resize control message, which is consumed rather
// than forwarded as input.
type WebSocketAdapter struct {
	conn      *websocket.Conn
	caps      mediator.Capabilities
	sessionID string

	mu   sync.Mutex
	w, h int

	resized      chan mediator.Size
	disconnected chan struct{}
	closeOnce    sync.Once
}

// Upgrade upgrades an HTTP connection to a WebSocket and wraps it as a
// PresentationAdapter, mirroring the teacher's
// RawTerminalWebSocketHandler.ServeHTTP setup (read limit, pong handler,
// ping ticker) but exposed as a pull-based ReadInput/WriteOutput adapter
// instead of a push-based handler.
func Upgrade(w http.ResponseWriter, r *http.Request, caps mediator.Capabilities) (*WebSocketAdapter, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	a := &WebSocketAdapter{
		conn:         conn,
		caps:         caps,
		sessionID:    uuid.NewString(),
		resized:      make(chan mediator.Size, 1),
		disconnected: make(chan struct{}),
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go a.pingLoop()

	return a, nil
}

func (a *WebSocketAdapter) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.mu.Lock()
			_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := a.conn.WriteMessage(websocket.PingMessage, nil)
			a.mu.Unlock()
			if err != nil {
				a.markDisconnected()
				return
			}
		case <-a.disconnected:
			return
		}
	}
}

func (a *WebSocketAdapter) markDisconnected() {
	a.closeOnce.Do(func() { close(a.disconnected) })
}

// SessionID uniquely identifies this connection for logging and
// correlation across reconnects; assigned once at Upgrade time.
func (a *WebSocketAdapter) SessionID() string { return a.sessionID }

// Size returns the last size reported by a resize control frame, or
// (0,0) if none has arrived yet.
func (a *WebSocketAdapter) Size() (width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.w, a.h
}

func (a *WebSocketAdapter) Capabilities() mediator.Capabilities { return a.caps }

func (a *WebSocketAdapter) WriteOutput(b []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return a.conn.WriteMessage(websocket.BinaryMessage, b)
}

// ReadInput blocks for the next frame, transparently consuming and
// resolving resize control frames (both the legacy "resize:W,H" text form
// and the JSON {"type":"resize",...} form) rather than returning them as
// input bytes, per §6.
func (a *WebSocketAdapter) ReadInput() ([]byte, error) {
	for {
		messageType, data, err := a.conn.ReadMessage()
		if err != nil {
			a.markDisconnected()
			return nil, err
		}

		if messageType == websocket.BinaryMessage {
			return data, nil
		}

		if messageType != websocket.TextMessage {
			continue
		}

		if w, h, ok := parseResize(data); ok {
			a.mu.Lock()
			a.w, a.h = w, h
			a.mu.Unlock()
			select {
			case a.resized <- mediator.Size{W: w, H: h}:
			default:
			}
			continue
		}

		return data, nil
	}
}

// parseResize recognizes both wire forms named by §6. Malformed control
// text falls through to (0,0,false), so the caller forwards it as input
// bytes instead of silently discarding it.
func parseResize(data []byte) (w, h int, ok bool) {
	s := string(data)
	if strings.HasPrefix(s, "resize:") {
		parts := strings.SplitN(strings.TrimPrefix(s, "resize:"), ",", 2)
		if len(parts) != 2 {
			return 0, 0, false
		}
		cols, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		rows, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || cols <= 0 || rows <= 0 {
			return 0, 0, false
		}
		return cols, rows, true
	}

	var msg resizeMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "resize" {
		return 0, 0, false
	}
	if msg.Cols <= 0 || msg.Rows <= 0 {
		return 0, 0, false
	}
	return msg.Cols, msg.Rows, true
}

func (a *WebSocketAdapter) EnterRawMode() error { return nil }
func (a *WebSocketAdapter) ExitRawMode() error  { return nil }

func (a *WebSocketAdapter) Flush() error { return nil }

func (a *WebSocketAdapter) Resized() <-chan mediator.Size { return a.resized }

func (a *WebSocketAdapter) Disconnected() <-chan struct{} { return a.disconnected }

// Close terminates the underlying connection; safe to call more than once.
func (a *WebSocketAdapter) Close() error {
	a.markDisconnected()
	return a.conn.Close()
}
