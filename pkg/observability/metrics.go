package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the bridge.
type Metrics struct {
	// Tool dispatch metrics
	ToolCallsTotal   *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec
	ToolErrorsTotal  *prometheus.CounterVec

	// Backend round-trip metrics
	BackendRequestsTotal   *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec

	// Session store metrics
	SessionOpsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics. A nil registry
// creates a private one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		ToolCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_tool_calls_total",
				Help: "Total tool invocations by tool name and outcome",
			},
			[]string{"tool", "outcome"},
		),
		ToolCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_tool_call_duration_seconds",
				Help:    "Tool invocation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		ToolErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_tool_errors_total",
				Help: "Tool failures by error kind",
			},
			[]string{"tool", "kind"},
		),
		BackendRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_backend_requests_total",
				Help: "Backend HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		),
		BackendRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_backend_request_duration_seconds",
				Help:    "Backend HTTP round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		SessionOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_session_ops_total",
				Help: "Session store operations by op and result",
			},
			[]string{"op", "result"},
		),
	}

	registry.MustRegister(
		m.ToolCallsTotal,
		m.ToolCallDuration,
		m.ToolErrorsTotal,
		m.BackendRequestsTotal,
		m.BackendRequestDuration,
		m.SessionOpsTotal,
	)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveToolCall records one tool invocation.
func (m *Metrics) ObserveToolCall(tool, outcome string, duration time.Duration) {
	m.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// ObserveToolError records one tool failure by error kind.
func (m *Metrics) ObserveToolError(tool, kind string) {
	m.ToolErrorsTotal.WithLabelValues(tool, kind).Inc()
}

// ObserveBackendRequest records one backend round trip.
func (m *Metrics) ObserveBackendRequest(method, status string, duration time.Duration) {
	m.BackendRequestsTotal.WithLabelValues(method, status).Inc()
	m.BackendRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveSessionOp records one session store operation.
func (m *Metrics) ObserveSessionOp(op, result string) {
	m.SessionOpsTotal.WithLabelValues(op, result).Inc()
}
