package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// DefaultWriteTimeout bounds a single WebSocket write.
const DefaultWriteTimeout = 10 * time.Second

// WS realizes the stream transport shape over a WebSocket connection, one
// binary message per frame. The connection itself requires serialized
// writes, so a mutex guards them; frame order is still exactly call order.
type WS struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
}

// DialWS connects to a WebSocket renderer endpoint.
func DialWS(url string) (*WS, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return NewWS(conn), nil
}

// NewWS wraps an established WebSocket connection.
func NewWS(conn *websocket.Conn) *WS {
	return &WS{conn: conn, writeTimeout: DefaultWriteTimeout}
}

// WithWriteTimeout sets the per-write deadline.
func (t *WS) WithWriteTimeout(d time.Duration) *WS {
	t.writeTimeout = d
	return t
}

// WriteFrame sends one frame as a single binary message.
func (t *WS) WriteFrame(f *protocol.Frame) error {
	if len(f.Payload) > protocol.MaxFramePayload {
		return protocol.ErrFrameTooLarge
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	return t.conn.WriteMessage(websocket.BinaryMessage, f.Encode())
}

// Flush is a no-op: WebSocket messages are delivered per write.
func (t *WS) Flush() error { return nil }

// Close sends a close message and tears the connection down.
func (t *WS) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return t.conn.Close()
}
