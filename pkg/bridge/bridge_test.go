package bridge

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/canvaswire/canvaswire/pkg/protocol"
	"github.com/canvaswire/canvaswire/pkg/recording"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	opts = append([]Option{
		WithLogger(quietLogger()),
		WithRegistry(prometheus.NewRegistry()),
	}, opts...)
	srv := New(DefaultConfig(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
}

// memStore records saved captures in memory.
type memStore struct {
	mu    sync.Mutex
	saved [][]byte
}

func (m *memStore) Save(_ string, _ int64, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.saved = append(m.saved, data)
	m.mu.Unlock()
	return "capture-1", nil
}

func (m *memStore) Open(string) (*recording.Recording, error) { return nil, recording.ErrNotFound }
func (m *memStore) List() ([]*recording.Recording, error)     { return nil, nil }
func (m *memStore) Cleanup(time.Duration) error               { return nil }

func (m *memStore) first() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[0]
}

func TestSessionCaptureStored(t *testing.T) {
	store := &memStore{}
	ts := newTestServer(t, WithStore(store))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	frames := []*protocol.Frame{
		protocol.NewFrame(protocol.OpCreate, 0, []byte{0x01, 0x2C, 0x00, 0x96}),
		protocol.NewFrame(protocol.OpFillRect, 0, []byte{0, 10, 0, 10, 0, 50, 0, 50}),
		protocol.NewFrame(protocol.OpCommit, 0, nil),
	}
	for _, f := range frames {
		if err := conn.WriteMessage(websocket.BinaryMessage, f.Encode()); err != nil {
			t.Fatalf("WriteMessage: %v", err)
		}
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	// The handler saves the capture after the close frame arrives.
	deadline := time.Now().Add(2 * time.Second)
	var data []byte
	for data == nil {
		if time.Now().After(deadline) {
			t.Fatal("capture never stored")
		}
		time.Sleep(10 * time.Millisecond)
		data = store.first()
	}

	got, err := recording.ReadAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(frames) {
		t.Fatalf("captured %d frames, want %d", len(got), len(frames))
	}
	for i, f := range got {
		if f.Op != frames[i].Op {
			t.Errorf("frame #%d = %s, want %s", i, f.Op, frames[i].Op)
		}
	}
}

func TestNonBinaryMessagesIgnored(t *testing.T) {
	store := &memStore{}
	ts := newTestServer(t, WithStore(store))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	f := protocol.NewFrame(protocol.OpStroke, 0, nil)
	if err := conn.WriteMessage(websocket.BinaryMessage, f.Encode()); err != nil {
		t.Fatal(err)
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	var data []byte
	for data == nil {
		if time.Now().After(deadline) {
			t.Fatal("capture never stored")
		}
		time.Sleep(10 * time.Millisecond)
		data = store.first()
	}
	got, err := recording.ReadAll(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Op != protocol.OpStroke {
		t.Errorf("capture = %v, want one stroke frame", got)
	}
}
