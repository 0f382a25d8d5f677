// Package metrics holds the prometheus collectors for the extraction pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is nil-safe: every method on a nil *Metrics is a no-op.
type Metrics struct {
	jobsTotal     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	queueDepth    prometheus.Gauge
	filesIngested *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	gatherer      prometheus.Gatherer
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letters",
			Name:      "extract_jobs_total",
			Help:      "Extraction jobs by final status.",
		}, []string{"status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "letters",
			Name:      "stage_duration_seconds",
			Help:      "Duration of the OCR and extraction stages.",
			Buckets:   []float64{.005, .05, .25, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "letters",
			Name:      "queue_depth",
			Help:      "Files waiting in the processing queue.",
		}),
		filesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letters",
			Name:      "files_ingested_total",
			Help:      "Ingested files by outcome (new, duplicate, error).",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letters",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		gatherer: reg,
	}
	reg.MustRegister(m.jobsTotal, m.stageDuration, m.queueDepth, m.filesIngested, m.httpRequests)
	return m
}

func (m *Metrics) JobFinished(status string) {
	if m == nil {
		return
	}
	m.jobsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *Metrics) FileIngested(outcome string) {
	if m == nil {
		return
	}
	m.filesIngested.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HTTPRequest(route, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
