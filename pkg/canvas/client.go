package canvas

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/canvaswire/canvaswire/pkg/protocol"
	"github.com/canvaswire/canvaswire/pkg/transport"
)

// defaultTracerName is the OpenTelemetry tracer name.
const defaultTracerName = "canvaswire"

// Client owns the process-wide protocol state: the frame transport, the
// optional query transport, the surface id allocator and the shadow state.
// Construct one Client at startup and create surfaces from it.
//
// All methods assume single-threaded use; see the package documentation.
type Client struct {
	frames  transport.FrameWriter
	queries transport.QueryTransport

	alloc  *allocator
	shadow *ShadowState

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	queryTimeout    time.Duration
	strictHandshake bool
}

// Option configures a Client.
type Option func(*Client)

// WithQueryTransport attaches a query transport. Without one, creation
// handshakes are skipped and queries are silently dropped.
func WithQueryTransport(qt transport.QueryTransport) Option {
	return func(c *Client) { c.queries = qt }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracing enables OpenTelemetry spans around query round trips, using
// the global tracer provider. Configure the provider in main() first.
func WithTracing(tracerName string) Option {
	return func(c *Client) {
		if tracerName == "" {
			tracerName = defaultTracerName
		}
		c.tracer = otel.Tracer(tracerName)
	}
}

// WithQueryTimeout bounds how long a creation handshake or other reply-
// bearing query waits before giving up with protocol.ErrNoResponse.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) { c.queryTimeout = d }
}

// WithStrictHandshake makes surface creation fail with
// protocol.ErrEnvironmentUnsupported when no renderer acknowledges the
// handshake, instead of degrading to a silent no-op surface.
func WithStrictHandshake() Option {
	return func(c *Client) { c.strictHandshake = true }
}

// NewClient creates a client writing frames to the given transport.
func NewClient(frames transport.FrameWriter, opts ...Option) *Client {
	c := &Client{
		frames:       frames,
		alloc:        newAllocator(),
		shadow:       NewShadowState(),
		logger:       slog.Default(),
		queryTimeout: transport.DefaultMailboxTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "canvas")
	return c
}

// Close flushes and closes the transports.
func (c *Client) Close() error {
	err := c.frames.Close()
	if c.queries != nil {
		if qerr := c.queries.Close(); err == nil {
			err = qerr
		}
	}
	return err
}

// LiveSurfaces returns how many surface ids are currently allocated.
func (c *Client) LiveSurfaces() int { return c.alloc.liveCount() }

// Sleep asks the renderer to pause replay for the given duration. It is a
// global fire-and-forget query: no reply is read, so it never blocks, and
// without a query transport it is a no-op.
func (c *Client) Sleep(ms float64) error {
	if c.queries == nil {
		return nil
	}
	req := protocol.NewGlobalRequest("sleep", ms)
	err := c.queries.Send(req)
	c.metrics.recordQuery(req.Action, err)
	return err
}

// dispatch frames one operation and writes it. One call, one frame, in call
// order. The commit opcode additionally flushes the transport.
func (c *Client) dispatch(id protocol.SurfaceID, op protocol.Opcode, payload []byte) error {
	f := protocol.NewFrame(op, id, payload)
	if err := c.frames.WriteFrame(f); err != nil {
		c.logger.Error("frame write failed", "op", op.String(), "surface", uint8(id), "error", err)
		return err
	}
	c.metrics.recordFrame(op.String(), f.EncodedLen())

	if op == protocol.OpCommit {
		return c.frames.Flush()
	}
	return nil
}

// setProperty dispatches a stateful property only if its encoding differs
// from the shadow state, committing the mirror after a successful write.
// It reports whether a frame was dispatched.
func (c *Client) setProperty(id protocol.SurfaceID, op protocol.Opcode, e *protocol.Encoder) (bool, error) {
	if err := e.Err(); err != nil {
		return false, err
	}
	payload := e.Bytes()
	if !c.shadow.Changed(id, op, payload) {
		c.metrics.recordSuppressed()
		return false, nil
	}
	if err := c.dispatch(id, op, payload); err != nil {
		return false, err
	}
	c.shadow.Commit(id, op, payload)
	return true, nil
}

// roundTrip performs a reply-bearing query with tracing and metrics.
func (c *Client) roundTrip(ctx context.Context, req *protocol.Request) (any, error) {
	if c.queries == nil {
		return nil, protocol.ErrNoResponse
	}

	if c.tracer != nil {
		var span trace.Span
		attrs := []attribute.KeyValue{
			attribute.String("canvaswire.action", req.Action),
		}
		if req.ID != nil {
			attrs = append(attrs, attribute.Int("canvaswire.surface_id", int(*req.ID)))
		}
		ctx, span = c.tracer.Start(ctx, "canvaswire.query."+req.Action,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		resp, err := c.queries.RoundTrip(ctx, req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		c.metrics.recordQuery(req.Action, err)
		return resp, err
	}

	resp, err := c.queries.RoundTrip(ctx, req)
	c.metrics.recordQuery(req.Action, err)
	return resp, err
}
