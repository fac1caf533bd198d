package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	importRequestsTotal     *prometheus.CounterVec
	importPages             *prometheus.HistogramVec
	importPageErrorsTotal   *prometheus.CounterVec
	importDuration          *prometheus.HistogramVec
	destinatariCreatedTotal *prometheus.CounterVec
	spedizioniSavedTotal    *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gt",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gt",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gt",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	importRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gt",
			Subsystem: "import",
			Name:      "requests_total",
			Help:      "Total DDT import requests by outcome.",
		},
		[]string{"service", "outcome"},
	)
	importPages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gt",
			Subsystem: "import",
			Name:      "pages",
			Help:      "Distribution of processed pages per import.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
		[]string{"service"},
	)
	importPageErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gt",
			Subsystem: "import",
			Name:      "page_errors_total",
			Help:      "Total pages where field extraction recognized nothing.",
		},
		[]string{"service"},
	)
	importDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gt",
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "DDT import duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"service"},
	)
	destinatariCreatedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gt",
			Subsystem: "import",
			Name:      "destinatari_created_total",
			Help:      "Total recipients auto-created during imports.",
		},
		[]string{"service"},
	)
	spedizioniSavedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gt",
			Subsystem: "spedizioni",
			Name:      "saved_total",
			Help:      "Total shipments persisted by source.",
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		importRequestsTotal,
		importPages,
		importPageErrorsTotal,
		importDuration,
		destinatariCreatedTotal,
		spedizioniSavedTotal,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		importRequestsTotal:     importRequestsTotal,
		importPages:             importPages,
		importPageErrorsTotal:   importPageErrorsTotal,
		importDuration:          importDuration,
		destinatariCreatedTotal: destinatariCreatedTotal,
		spedizioniSavedTotal:    spedizioniSavedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses id segments so metric cardinality stays bounded.
func normalizePath(path string) string {
	for _, prefix := range []string{
		"/api/committenti/",
		"/api/destinatari/",
		"/api/autisti/",
		"/api/mezzi/",
		"/api/giri/",
		"/api/spedizioni/",
	} {
		if strings.HasPrefix(path, prefix) {
			rest := strings.TrimPrefix(path, prefix)
			if i := strings.Index(rest, "/"); i >= 0 {
				return prefix + "{id}" + rest[i:]
			}
			return prefix + "{id}"
		}
	}
	return path
}

func (m *HTTPServerMetrics) RecordImport(service, outcome string, processedPages, pageErrors, destinatariCreated int, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.importRequestsTotal.WithLabelValues(service, outcome).Inc()
	if processedPages > 0 {
		m.importPages.WithLabelValues(service).Observe(float64(processedPages))
	}
	if pageErrors > 0 {
		m.importPageErrorsTotal.WithLabelValues(service).Add(float64(pageErrors))
	}
	if destinatariCreated > 0 {
		m.destinatariCreatedTotal.WithLabelValues(service).Add(float64(destinatariCreated))
	}
	m.importDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordSpedizioneSaved(service, source string) {
	if source == "" {
		source = "manuale"
	}
	m.spedizioniSavedTotal.WithLabelValues(service, source).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
