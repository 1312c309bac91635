package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds transport-level Prometheus metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
}

// New creates and registers all transport metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meetsched_http_requests_total",
			Help: "Total HTTP requests served, by method and status class",
		}, []string{"method", "status"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "meetsched_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method string, status int, start time.Time) {
	m.RequestsTotal.WithLabelValues(method, statusClass(status)).Inc()
	m.RequestDuration.Observe(time.Since(start).Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
