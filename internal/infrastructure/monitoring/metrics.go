package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Model conversion outcomes.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	// Pipeline metrics
	ModelsTotal      *prometheus.CounterVec
	InstancesTotal   *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	DiagnosticsTotal *prometheus.CounterVec
	DocumentsWritten prometheus.Counter

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for the JSON stats endpoint.
type Snapshot struct {
	ModelsConverted int64
	ModelsFailed    int64
	Warnings        int64
	TotalRequests   int64
	TotalErrors     int64
}

// NewMetrics creates the collectors on a private registry, so several
// pipelines and tests never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		ModelsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpdgen_models_total",
				Help: "Total number of models processed, by outcome",
			},
			[]string{"status"},
		),
		InstancesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpdgen_instances_total",
				Help: "Total number of instances created, by command type",
			},
			[]string{"command"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rpdgen_stage_duration_seconds",
				Help:    "Duration of each model lifecycle stage in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"stage"},
		),
		DiagnosticsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpdgen_diagnostics_total",
				Help: "Total number of validation diagnostics, by level",
			},
			[]string{"level"},
		),
		DocumentsWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rpdgen_documents_written_total",
				Help: "Total number of RPD documents written",
			},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpdgen_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rpdgen_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rpdgen_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{1000, 10000, 100000, 1000000, 10000000, 50000000},
			},
			[]string{"method", "path"},
		),
	}
}

// RecordModel records one model outcome with its instance counts.
func (m *Metrics) RecordModel(status string, counts map[string]int) {
	m.ModelsTotal.WithLabelValues(status).Inc()
	for command, n := range counts {
		m.InstancesTotal.WithLabelValues(command).Add(float64(n))
	}

	m.mu.Lock()
	if status == StatusFailed {
		m.snapshot.ModelsFailed++
	} else {
		m.snapshot.ModelsConverted++
	}
	m.mu.Unlock()
}

// ObserveStage records the duration of a lifecycle stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordDiagnostics adds n diagnostics of one level.
func (m *Metrics) RecordDiagnostics(level string, n int) {
	if n == 0 {
		return
	}
	m.DiagnosticsTotal.WithLabelValues(level).Add(float64(n))
	if level == "warning" {
		m.mu.Lock()
		m.snapshot.Warnings += int64(n)
		m.mu.Unlock()
	}
}

// IncDocumentsWritten counts a written document.
func (m *Metrics) IncDocumentsWritten() {
	m.DocumentsWritten.Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// Snapshot returns the running totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
