package services

import (
	"fmt"

	"finsight/internal/config"
	"finsight/internal/repositories"
)

// Registry holds the fully wired analysis engines
type Registry struct {
	Classifier TextClassifierInterface
	Detector   AnomalyDetectorInterface
	Forecaster CashflowForecasterInterface
	Scorer     HealthScorerInterface
	Patterns   PatternAnalyzerInterface
	Metrics    MetricsRecorderInterface
}

// NewRegistry wires the engines against the shared model store
func NewRegistry(cfg *config.Config, store repositories.ModelStoreInterface, metrics MetricsRecorderInterface) *Registry {
	return &Registry{
		Classifier: NewTextClassifier(store, metrics, cfg.Models.RandomSeed),
		Detector:   NewAnomalyDetector(store, metrics, cfg.Models.Contamination, cfg.Models.RandomSeed),
		Forecaster: NewCashflowForecaster(),
		Scorer:     NewHealthScorer(),
		Patterns:   NewPatternAnalyzer(),
		Metrics:    metrics,
	}
}

// Warmup trains or loads the stateful engines before traffic arrives
// so the first request does not pay the initialization cost
func (r *Registry) Warmup() error {
	if err := r.Classifier.EnsureInitialized(); err != nil {
		return fmt.Errorf("classifier warmup failed: %w", err)
	}
	if err := r.Detector.EnsureInitialized(); err != nil {
		return fmt.Errorf("anomaly detector warmup failed: %w", err)
	}
	return nil
}
