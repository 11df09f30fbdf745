package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector manages Prometheus metrics for the gateway
type MetricsCollector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	activeRequests  *prometheus.GaugeVec
}

// NewMetricsCollector creates a new MetricsCollector with its own registry,
// so multiple gateway instances (tests included) never collide.
func NewMetricsCollector() *MetricsCollector {
	m := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total number of gateway requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"route"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_errors_total",
				Help: "Total number of errors",
			},
			[]string{"route", "error_type"},
		),
		activeRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gateway_active_requests",
				Help: "Number of active requests",
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(m.requestsTotal)
	m.registry.MustRegister(m.requestDuration)
	m.registry.MustRegister(m.errorsTotal)
	m.registry.MustRegister(m.activeRequests)

	return m
}

// RecordRequest records a completed request
func (m *MetricsCollector) RecordRequest(route, method, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordError records an error
func (m *MetricsCollector) RecordError(route, errorType string) {
	m.errorsTotal.WithLabelValues(route, errorType).Inc()
}

// IncActiveRequests increments the active request counter
func (m *MetricsCollector) IncActiveRequests(route string) {
	m.activeRequests.WithLabelValues(route).Inc()
}

// DecActiveRequests decrements the active request counter
func (m *MetricsCollector) DecActiveRequests(route string) {
	m.activeRequests.WithLabelValues(route).Dec()
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
