package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the assistant's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ChatResponses      *prometheus.CounterVec
	ChatRouteSeconds   prometheus.Histogram
	CompletionRequests *prometheus.CounterVec
	KnowledgeReloads   *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ChatResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dsolar",
			Subsystem: "chat",
			Name:      "responses_total",
			Help:      "Chat responses by answer source",
		}, []string{"source"}),
		ChatRouteSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dsolar",
			Subsystem: "chat",
			Name:      "route_seconds",
			Help:      "Time spent routing a chat message",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.25, 1, 2.5, 5, 10, 30},
		}),
		CompletionRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dsolar",
			Subsystem: "completion",
			Name:      "requests_total",
			Help:      "Completion provider calls by purpose and outcome",
		}, []string{"purpose", "outcome"}),
		KnowledgeReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dsolar",
			Subsystem: "knowledge",
			Name:      "reloads_total",
			Help:      "Knowledge seed reloads by outcome",
		}, []string{"outcome"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveResponse records a routed response. Safe on a nil receiver.
func (m *Metrics) ObserveResponse(source string, seconds float64) {
	if m == nil {
		return
	}
	m.ChatResponses.WithLabelValues(source).Inc()
	m.ChatRouteSeconds.Observe(seconds)
}

// ObserveCompletion records a provider call. Safe on a nil receiver.
func (m *Metrics) ObserveCompletion(purpose, outcome string) {
	if m == nil {
		return
	}
	m.CompletionRequests.WithLabelValues(purpose, outcome).Inc()
}

// ObserveReload records a knowledge reload. Safe on a nil receiver.
func (m *Metrics) ObserveReload(outcome string) {
	if m == nil {
		return
	}
	m.KnowledgeReloads.WithLabelValues(outcome).Inc()
}
