// Package bridge runs the renderer-side WebSocket endpoint: clients dial in,
// stream drawing frames, and the bridge relays each session into a capture
// that can be stored for replay.
package bridge

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canvaswire/canvaswire/pkg/protocol"
	"github.com/canvaswire/canvaswire/pkg/recording"
)

// Config holds the bridge server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ReadLimit caps a single WebSocket message in bytes.
	// Default: protocol.MaxFramePayload + the frame header.
	ReadLimit int64

	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		ReadLimit:       protocol.MaxFramePayload + protocol.FrameHeaderSize,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the bridge HTTP/WebSocket server.
type Server struct {
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger
	store    recording.Store

	httpServer *http.Server

	sessionsTotal prometheus.Counter
	framesTotal   prometheus.Counter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithStore persists each finished session's capture.
func WithStore(store recording.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithRegistry registers the bridge metrics on a custom registry instead of
// the default one.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(s *Server) { s.registerMetrics(reg) }
}

// New creates a bridge server.
func New(config *Config, opts ...Option) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Server{
		config: config,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "bridge")
	if s.sessionsTotal == nil {
		s.registerMetrics(prometheus.DefaultRegisterer)
	}
	s.routes()
	return s
}

func (s *Server) registerMetrics(reg prometheus.Registerer) {
	factory := promauto.With(reg)
	s.sessionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "canvaswire",
		Subsystem: "bridge",
		Name:      "sessions_total",
		Help:      "WebSocket drawing sessions accepted",
	})
	s.framesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "canvaswire",
		Subsystem: "bridge",
		Name:      "frames_total",
		Help:      "Frames relayed across all sessions",
	})
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.handleWS)
	s.router = r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// handleWS upgrades the connection and relays frames until the client hangs
// up. Each binary message holds one or more complete frames.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.sessionsTotal.Inc()
	conn.SetReadLimit(s.config.ReadLimit)

	capture := recording.NewRecorder()
	remote := r.RemoteAddr
	s.logger.Info("session started", "remote", remote)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("session ended abnormally", "remote", remote, "error", err)
			}
			break
		}
		if msgType != websocket.BinaryMessage {
			s.logger.Warn("dropping non-binary message", "remote", remote, "type", msgType)
			continue
		}

		frames, err := recording.ReadAll(bytes.NewReader(data))
		if err != nil {
			// Desynced stream: the session is unrecoverable.
			s.logger.Error("malformed frame stream", "remote", remote, "error", err)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseProtocolError, "malformed frame"))
			break
		}
		for _, f := range frames {
			s.framesTotal.Inc()
			if err := capture.WriteFrame(f); err != nil {
				s.logger.Error("capture write failed", "remote", remote, "error", err)
			}
		}
	}

	s.finishSession(capture, remote)
}

func (s *Server) finishSession(capture *recording.Recorder, remote string) {
	s.logger.Info("session ended", "remote", remote,
		"frames", capture.FrameCount(), "bytes", capture.Len())
	if s.store == nil || capture.FrameCount() == 0 {
		return
	}
	id, err := s.store.Save(remote, int64(capture.Len()), capture.Reader())
	if err != nil {
		s.logger.Error("saving capture failed", "remote", remote, "error", err)
		return
	}
	s.logger.Info("capture saved", "remote", remote, "capture", id)
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("bridge listening", "addr", s.config.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
