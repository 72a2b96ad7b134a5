package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Downstream call outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeDownstreamError = "downstream_error"
	OutcomeTransportError  = "transport_error"
	OutcomeUnexpectedError = "unexpected_error"
)

// llmBuckets suit inference latencies, from 100ms up to the call timeout.
var llmBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60}

// Metrics tracks gateway and downstream call metrics on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	downstreamRequests *prometheus.CounterVec
	downstreamLatency  prometheus.Histogram
	downstreamUp       prometheus.Gauge
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	rateLimited        prometheus.Counter
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		downstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_gateway_downstream_requests_total",
			Help: "Calls to the inference service by outcome",
		}, []string{"outcome"}),
		downstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chat_gateway_downstream_latency_seconds",
			Help:    "Inference service call latency",
			Buckets: llmBuckets,
		}),
		downstreamUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_gateway_downstream_up",
			Help: "1 when the last probe reached the inference service",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_gateway_http_requests_total",
			Help: "Inbound requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chat_gateway_http_request_duration_seconds",
			Help:    "Inbound request duration",
			Buckets: llmBuckets,
		}, []string{"method", "path"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_gateway_ratelimit_rejected_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
	m.registry.MustRegister(
		m.downstreamRequests,
		m.downstreamLatency,
		m.downstreamUp,
		m.httpRequests,
		m.httpDuration,
		m.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// DownstreamRequests returns the counter for one outcome.
func (m *Metrics) DownstreamRequests(outcome string) prometheus.Counter {
	return m.downstreamRequests.WithLabelValues(outcome)
}

// DownstreamUp returns the reachability gauge.
func (m *Metrics) DownstreamUp() prometheus.Gauge { return m.downstreamUp }

// HTTPRequests returns the inbound request counter for one route and status.
func (m *Metrics) HTTPRequests(method, path string, status int) prometheus.Counter {
	return m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status))
}

// RateLimited returns the rejection counter.
func (m *Metrics) RateLimited() prometheus.Counter { return m.rateLimited }

func (m *Metrics) recordDownstreamCall(duration time.Duration, outcome string) {
	if m == nil {
		return
	}
	m.downstreamRequests.WithLabelValues(outcome).Inc()
	m.downstreamLatency.Observe(duration.Seconds())
}

func (m *Metrics) setDownstreamUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.downstreamUp.Set(1)
	} else {
		m.downstreamUp.Set(0)
	}
}

// ObserveRequest records one inbound request.
func (m *Metrics) ObserveRequest(method, path string, status int, latency time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(latency.Seconds())
}

// ObserveRateLimited records one rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}
