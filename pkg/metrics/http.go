package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request metadata for the API server.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	orders   prometheus.Counter
	contacts prometheus.Counter
}

// NewHTTPMetrics registers the API metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted through the public API.",
	})
	contacts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_messages_total",
		Help: "Contact messages accepted through the public API.",
	})
	reg.MustRegister(duration, requests, orders, contacts)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
		orders:   orders,
		contacts: contacts,
	}
}

// ObserveRequest records one handled request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	method = normalizeLabel(method)
	route = normalizeLabel(route)
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// IncOrdersCreated increments the accepted-order counter.
func (m *HTTPMetrics) IncOrdersCreated() {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Inc()
}

// IncContactMessages increments the accepted-contact-message counter.
func (m *HTTPMetrics) IncContactMessages() {
	if m == nil || m.contacts == nil {
		return
	}
	m.contacts.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
