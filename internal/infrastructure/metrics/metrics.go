package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Comparison outcomes
const (
	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// Metrics bundles the service's Prometheus collectors on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	comparisons     *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabfare",
			Name:      "comparisons_total",
			Help:      "Fare comparisons computed, by outcome.",
		}, []string{"outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabfare",
			Name:      "provider_fallbacks_total",
			Help:      "Provider calls answered from fallback data or dropped.",
		}, []string{"provider"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cabfare",
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of provider API calls including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "endpoint"}),
	}
	registry.MustRegister(
		m.comparisons,
		m.fallbacks,
		m.requestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveComparison counts one comparison
func (m *Metrics) ObserveComparison(outcome string) {
	if m == nil {
		return
	}
	m.comparisons.WithLabelValues(outcome).Inc()
}

// IncFallback counts one provider fallback
func (m *Metrics) IncFallback(provider string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(provider).Inc()
}

// ObserveRequest records the latency of one provider call
func (m *Metrics) ObserveRequest(provider, endpoint string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(provider, endpoint).Observe(elapsed.Seconds())
}

// WatchSessions exports the number of comparisons reported by size as a gauge
func (m *Metrics) WatchSessions(size func() int) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "cabfare",
		Name:      "sessions_stored",
		Help:      "Comparisons held by the in-memory session store.",
	}, func() float64 { return float64(size()) }))
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
