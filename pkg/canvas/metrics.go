package canvas

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics for a Client.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "canvaswire").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "canvaswire",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for one Client.
//
// Metrics collected:
//   - canvaswire_frames_total: Counter of frames written, by operation
//   - canvaswire_frame_bytes_total: Counter of frame bytes written
//   - canvaswire_suppressed_writes_total: Counter of property sets skipped
//     by the shadow state
//   - canvaswire_queries_total: Counter of queries, by action
//   - canvaswire_query_errors_total: Counter of failed queries
//   - canvaswire_live_surfaces: Gauge of surfaces currently allocated
type Metrics struct {
	framesTotal      *prometheus.CounterVec
	frameBytes       prometheus.Counter
	suppressedWrites prometheus.Counter
	queriesTotal     *prometheus.CounterVec
	queryErrors      prometheus.Counter
	liveSurfaces     prometheus.Gauge
}

// NewMetrics creates and registers the Client metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "frames_total",
			Help:        "Total number of frames written, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		frameBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "frame_bytes_total",
			Help:        "Total frame bytes written to the transport",
			ConstLabels: config.ConstLabels,
		}),

		suppressedWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "suppressed_writes_total",
			Help:        "Property sets skipped because the value was unchanged",
			ConstLabels: config.ConstLabels,
		}),

		queriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "queries_total",
			Help:        "Total queries sent on the query sub-protocol, by action",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),

		queryErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "query_errors_total",
			Help:        "Queries that failed or got no response",
			ConstLabels: config.ConstLabels,
		}),

		liveSurfaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "live_surfaces",
			Help:        "Surfaces currently allocated",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordFrame(op string, n int) {
	if m == nil {
		return
	}
	m.framesTotal.WithLabelValues(op).Inc()
	m.frameBytes.Add(float64(n))
}

func (m *Metrics) recordSuppressed() {
	if m == nil {
		return
	}
	m.suppressedWrites.Inc()
}

func (m *Metrics) recordQuery(action string, err error) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(action).Inc()
	if err != nil {
		m.queryErrors.Inc()
	}
}

func (m *Metrics) setLiveSurfaces(n int) {
	if m == nil {
		return
	}
	m.liveSurfaces.Set(float64(n))
}
