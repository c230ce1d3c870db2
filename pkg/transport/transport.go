package transport

import (
	"context"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// FrameWriter is the stream-shaped transport: an ordered sink of frames.
// Implementations must preserve write order; callers sharing one FrameWriter
// across goroutines are responsible for serializing their calls.
type FrameWriter interface {
	// WriteFrame writes one frame. One call, one frame, no batching.
	WriteFrame(f *protocol.Frame) error

	// Flush pushes any buffered frames to the channel. The dispatcher calls
	// this on the commit opcode.
	Flush() error

	// Close flushes and releases the channel handle.
	Close() error
}

// QueryTransport is the mailbox-shaped transport for the query sub-protocol.
type QueryTransport interface {
	// Send writes a fire-and-forget query. No read is ever attempted, so a
	// renderer that never replies cannot block the caller.
	Send(req *protocol.Request) error

	// RoundTrip writes a query and blocks for its reply. A reply that never
	// arrives before the context expires is protocol.ErrNoResponse.
	RoundTrip(ctx context.Context, req *protocol.Request) (any, error)

	// Close releases any resources held by the transport.
	Close() error
}
