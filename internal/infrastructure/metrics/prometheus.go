package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "viva"

type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
	MutationsTotal  *prometheus.CounterVec
	EnrichmentTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	mutationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Successful writes by resource and operation.",
	}, []string{"resource", "op"})

	enrichmentTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_enrichment_total",
		Help:      "Listing enrichment attempts by step and outcome.",
	}, []string{"step", "outcome"})

	registry.MustRegister(
		requestsTotal,
		requestLatency,
		mutationsTotal,
		enrichmentTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requestsTotal,
		RequestLatency:  requestLatency,
		MutationsTotal:  mutationsTotal,
		EnrichmentTotal: enrichmentTotal,
	}
}

// Mutation records a successful write. Safe on a nil receiver.
func (m *Metrics) Mutation(resource, op string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(resource, op).Inc()
}

// Enrichment records a geocode or prediction attempt. Safe on a nil receiver.
func (m *Metrics) Enrichment(step, outcome string) {
	if m == nil {
		return
	}
	m.EnrichmentTotal.WithLabelValues(step, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
