package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	engineInvocations *prometheus.CounterVec
	engineDuration    *prometheus.HistogramVec
	trainingRuns      *prometheus.CounterVec
	anomalyRate       prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		engineInvocations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_invocations_total",
				Help: "Total number of analysis engine invocations",
			},
			[]string{"engine", "status"},
		),
		engineDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_duration_seconds",
				Help:    "Analysis engine invocation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"engine"},
		),
		trainingRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_training_runs_total",
				Help: "Total number of model training runs",
			},
			[]string{"engine"},
		),
		anomalyRate: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "anomaly_rate_last_batch",
				Help: "Fraction of expenses flagged in the most recent detection batch",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordEngineInvocation(engine, status string) {
	m.engineInvocations.WithLabelValues(engine, status).Inc()
}

func (m *PrometheusMetrics) RecordEngineDuration(engine string, seconds float64) {
	m.engineDuration.WithLabelValues(engine).Observe(seconds)
}

func (m *PrometheusMetrics) RecordTraining(engine string) {
	m.trainingRuns.WithLabelValues(engine).Inc()
}

func (m *PrometheusMetrics) RecordAnomalyRate(rate float64) {
	m.anomalyRate.Set(rate)
}

// NoopMetrics discards all recordings, for tests
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return &NoopMetrics{} }

func (m *NoopMetrics) RecordEngineInvocation(engine, status string) {}

func (m *NoopMetrics) RecordEngineDuration(engine string, seconds float64) {}

func (m *NoopMetrics) RecordTraining(engine string) {}

func (m *NoopMetrics) RecordAnomalyRate(rate float64) {}
