package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	scansTotal      *prometheus.CounterVec
	imagesProcessed prometheus.Histogram
	emailsTotal     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "awl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "awl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency. Scan requests block on model calls.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"method", "path"},
	)
	scansTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "awl",
			Subsystem: "scan",
			Name:      "batches_total",
			Help:      "Scan batches by outcome.",
		},
		[]string{"outcome"},
	)
	imagesProcessed := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "awl",
			Subsystem: "scan",
			Name:      "images_processed",
			Help:      "Successfully processed images per batch.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)
	emailsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "awl",
			Subsystem: "mail",
			Name:      "emails_total",
			Help:      "Delivery attempts by outcome.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(requestTotal, requestDuration, scansTotal, imagesProcessed, emailsTotal)

	return &Metrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		scansTotal:      scansTotal,
		imagesProcessed: imagesProcessed,
		emailsTotal:     emailsTotal,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.requestTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// ObserveScan records a finished batch.
func (m *Metrics) ObserveScan(outcome string, imagesProcessed int) {
	m.scansTotal.WithLabelValues(outcome).Inc()
	if imagesProcessed >= 0 {
		m.imagesProcessed.Observe(float64(imagesProcessed))
	}
}

// ObserveEmail records one delivery attempt.
func (m *Metrics) ObserveEmail(success bool) {
	outcome := "error"
	if success {
		outcome = "sent"
	}
	m.emailsTotal.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
