package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "prediction_league"

// Metrics owns a private registry so tests and multiple servers never collide
// on the global one.
type Metrics struct {
	registry          *prometheus.Registry
	corrections       *prometheus.CounterVec
	correctionLatency prometheus.Histogram
	scoredPredictions prometheus.Counter
	httpRequests      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		corrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "corrections_total",
			Help:      "Fixture corrections by outcome.",
		}, []string{"status"}),
		correctionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "correction_duration_seconds",
			Help:      "Time spent scoring and persisting one fixture correction.",
			Buckets:   prometheus.DefBuckets,
		}),
		scoredPredictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scored_predictions_total",
			Help:      "Predictions scored by fixture corrections.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.corrections,
		m.correctionLatency,
		m.scoredPredictions,
		m.httpRequests,
	)
	return m
}

func (m *Metrics) ObserveCorrection(status string, elapsed time.Duration) {
	m.corrections.WithLabelValues(status).Inc()
	m.correctionLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) AddScoredPredictions(n int) {
	if n <= 0 {
		return
	}
	m.scoredPredictions.Add(float64(n))
}

// ObserveHTTPRequest counts one request. route is the matched ServeMux
// pattern, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
