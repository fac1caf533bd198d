package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	eventsTotal    *prometheus.CounterVec
	handleDuration *prometheus.HistogramVec
	eventsInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	eventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gt",
			Subsystem: "worker",
			Name:      "spedizione_events_total",
			Help:      "Total consumed shipment events by kind and status.",
		},
		[]string{"service", "kind", "status"},
	)
	handleDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gt",
			Subsystem: "worker",
			Name:      "event_handle_duration_seconds",
			Help:      "Shipment event handling duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)
	eventsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gt",
			Subsystem: "worker",
			Name:      "events_in_flight",
			Help:      "Number of shipment events being handled.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(eventsTotal, handleDuration, eventsInFlight)

	return &WorkerMetrics{
		registry:       registry,
		eventsTotal:    eventsTotal,
		handleDuration: handleDuration,
		eventsInFlight: eventsInFlight,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartEvent() {
	m.eventsInFlight.Inc()
}

func (m *WorkerMetrics) FinishEvent(service, kind string, duration time.Duration, err error) {
	m.eventsInFlight.Dec()
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsTotal.WithLabelValues(service, kind, status).Inc()
	m.handleDuration.WithLabelValues(service, kind).Observe(duration.Seconds())
}
