package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tool metrics
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"}, // status: success|invalid_params|not_found|rate_limited|error
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_tool_latency_seconds",
			Help:    "Tool invocation latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool"},
	)

	// Admission metrics
	RateLimitDenials = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hermes_rate_limit_denials_total",
			Help: "Total number of requests denied by the admission limiter",
		},
	)

	// Upstream metrics
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_upstream_calls_total",
			Help: "Total number of upstream GLM API calls",
		},
		[]string{"model", "status"}, // status: success|error
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_upstream_latency_seconds",
			Help:    "Upstream GLM API latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"model"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(ToolCalls)
	prometheus.MustRegister(ToolLatency)
	prometheus.MustRegister(RateLimitDenials)
	prometheus.MustRegister(UpstreamCalls)
	prometheus.MustRegister(UpstreamLatency)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordToolCall records a tool invocation outcome
func RecordToolCall(tool, status string, latency time.Duration) {
	ToolCalls.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordUpstreamCall records an upstream API call
func RecordUpstreamCall(model string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	UpstreamCalls.WithLabelValues(model, status).Inc()
	UpstreamLatency.WithLabelValues(model).Observe(latency.Seconds())
}
