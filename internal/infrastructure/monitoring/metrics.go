package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "appwrite_client"

// Upload outcomes used as the "result" label
const (
	UploadCompleted = "completed"
	UploadResumed   = "resumed"
	UploadFailed    = "failed"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Call metrics
	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
	CallRetries  *prometheus.CounterVec

	// Upload metrics
	UploadsActive  prometheus.Gauge
	UploadsTotal   *prometheus.CounterVec
	ChunksUploaded prometheus.Counter
	BytesUploaded  prometheus.Counter

	// Breaker metrics
	BreakerState *prometheus.GaugeVec
}

// NewMetrics registers all collectors with reg. A nil reg uses the
// default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_total",
				Help:      "Total number of calls to the service",
			},
			[]string{"method", "status"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "call_duration_seconds",
				Help:      "Call duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),
		CallRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "call_retries_total",
				Help:      "Total number of retried calls",
			},
			[]string{"method"},
		),

		UploadsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "uploads_active",
				Help:      "Number of uploads in progress",
			},
		),
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of finished uploads",
			},
			[]string{"result"},
		),
		ChunksUploaded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chunks_uploaded_total",
				Help:      "Total number of chunks accepted by the server",
			},
		),
		BytesUploaded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_uploaded_total",
				Help:      "Total number of bytes accepted by the server",
			},
		),

		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
}

// RecordCall records one completed call. status is the HTTP status code, or
// 0 when no response was received.
func (m *Metrics) RecordCall(method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.CallsTotal.WithLabelValues(method, label).Inc()
	m.CallDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// IncRetries counts a retried attempt
func (m *Metrics) IncRetries(method string) {
	if m == nil {
		return
	}
	m.CallRetries.WithLabelValues(method).Inc()
}

// UploadStarted marks an upload as in progress
func (m *Metrics) UploadStarted() {
	if m == nil {
		return
	}
	m.UploadsActive.Inc()
}

// UploadFinished records the outcome of an upload started with UploadStarted
func (m *Metrics) UploadFinished(result string) {
	if m == nil {
		return
	}
	m.UploadsActive.Dec()
	m.UploadsTotal.WithLabelValues(result).Inc()
}

// RecordChunk records one accepted chunk of n bytes
func (m *Metrics) RecordChunk(n int64) {
	if m == nil {
		return
	}
	m.ChunksUploaded.Inc()
	m.BytesUploaded.Add(float64(n))
}

// SetBreakerState exposes the numeric breaker state
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// Timer measures call duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	method  string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		method:  method,
	}
}

// Stop records the call with the elapsed duration
func (t *Timer) Stop(status int) time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordCall(t.method, status, elapsed)
	return elapsed
}
