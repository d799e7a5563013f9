package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "regression"

type Prometheus struct {
	Operations   *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	Observations prometheus.Histogram
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Number of fits and analyses by outcome.",
			}, []string{"operation", "status"}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of fits and analyses.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			}, []string{"operation"}),
		Observations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "observations",
				Help:      "Number of rows of the regressed datasets.",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
			}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Operations, p.Duration, p.Observations}
}
