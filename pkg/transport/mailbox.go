package transport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// Mailbox timing defaults. The renderer swaps the file contents for a reply;
// polling is how we notice. One second of silence means nothing is reading
// the rendezvous directory at all.
const (
	DefaultMailboxTimeout = 1 * time.Second
	mailboxPollInterval   = 10 * time.Millisecond
)

// Mailbox maps each query action to its own file under a rendezvous
// directory. A request is written to <dir>/<action>; the renderer replaces
// the file contents with the framed reply, which RoundTrip reads back from
// the same path.
type Mailbox struct {
	dir     string
	timeout time.Duration
}

// NewMailbox creates the rendezvous directory if needed and returns a
// mailbox transport over it.
func NewMailbox(dir string) (*Mailbox, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transport: creating mailbox dir: %w", err)
	}
	return &Mailbox{dir: dir, timeout: DefaultMailboxTimeout}, nil
}

// WithTimeout sets how long RoundTrip waits for a reply when the caller's
// context carries no deadline of its own.
func (m *Mailbox) WithTimeout(d time.Duration) *Mailbox {
	m.timeout = d
	return m
}

func (m *Mailbox) path(action string) string {
	return filepath.Join(m.dir, action)
}

// Send writes a fire-and-forget query. No read is attempted.
func (m *Mailbox) Send(req *protocol.Request) error {
	framed, err := req.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path(req.Action), framed, 0o644); err != nil {
		return fmt.Errorf("transport: writing query %q: %w", req.Action, err)
	}
	return nil
}

// RoundTrip writes a query and polls the same file for the reply. The file
// still holding the exact bytes we wrote means no renderer has picked the
// query up yet; once the deadline passes in that state the result is
// protocol.ErrNoResponse.
func (m *Mailbox) RoundTrip(ctx context.Context, req *protocol.Request) (any, error) {
	framed, err := req.Encode()
	if err != nil {
		return nil, err
	}
	path := m.path(req.Action)
	if err := os.WriteFile(path, framed, 0o644); err != nil {
		return nil, fmt.Errorf("transport: writing query %q: %w", req.Action, err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(mailboxPollInterval)
	defer ticker.Stop()

	for {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("transport: reading reply for %q: %w", req.Action, err)
		}
		if !bytes.Equal(data, framed) {
			return protocol.ReadResponse(bytes.NewReader(data))
		}

		select {
		case <-ctx.Done():
			return nil, protocol.ErrNoResponse
		case <-ticker.C:
		}
	}
}

// Close is a no-op; the mailbox holds no open handles between exchanges.
func (m *Mailbox) Close() error { return nil }
