package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Fit     = "fit"
	Analyze = "analyze"

	OK    = "ok"
	Error = "error"
)

// Observer is the process wide metrics collector.
var Observer = New()

type Metrics struct {
	prometheus Prometheus
	registry   *prometheus.Registry
}

// New creates a metrics collector with its own registry.
func New() *Metrics {
	p := NewPrometheusMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.collectors()...)
	return &Metrics{
		prometheus: p,
		registry:   registry,
	}
}

func (m *Metrics) Increment(operation, status string) {
	m.prometheus.Operations.WithLabelValues(operation, status).Inc()
}

// Observe records the outcome and duration of an operation started at the given time.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	status := OK
	if err != nil {
		status = Error
	}
	m.Increment(operation, status)
	m.prometheus.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Rows records the size of a regressed dataset.
func (m *Metrics) Rows(n int) {
	m.prometheus.Observations.Observe(float64(n))
}

// Handler exposes the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
