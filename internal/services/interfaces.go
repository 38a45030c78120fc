package services

import (
	"errors"

	"finsight/internal/dto"
	"finsight/internal/models"
)

// Sentinel errors surfaced by the engines
var (
	ErrInsufficientHistory = errors.New("need at least 6 months of historical data")
	ErrInvalidMonthsAhead  = errors.New("months ahead must be at least 1")
	ErrUnknownCategory     = errors.New("training example has unknown category")
	ErrNoTrainingExamples  = errors.New("no training examples supplied")
)

// TextClassifierInterface maps expense text to a category with confidence.
// Predict lazily trains from the bundled seed corpus when no persisted
// state exists. Retrain refits only the classifier; the vectorizer
// vocabulary is frozen after initial training.
type TextClassifierInterface interface {
	Predict(title, description string) (*models.ClassificationResult, error)
	Retrain(examples []models.TrainingExample) error
	IsTrained() bool
	EnsureInitialized() error
}

// AnomalyDetectorInterface maps an expense batch to a ranked anomaly list
type AnomalyDetectorInterface interface {
	Detect(expenses []models.Expense) (*models.AnomalyReport, error)
	IsTrained() bool
	EnsureInitialized() error
}

// CashflowForecasterInterface extrapolates future periods from history
type CashflowForecasterInterface interface {
	Predict(history []models.CashflowPeriod, monthsAhead int) (*models.CashflowForecast, error)
}

// HealthScorerInterface is the pure rule engine for financial health
type HealthScorerInterface interface {
	Calculate(metrics models.HealthMetrics) *models.HealthScoreResult
}

// PatternAnalyzerInterface aggregates spending patterns from a batch
type PatternAnalyzerInterface interface {
	Analyze(expenses []models.Expense) *dto.AnalyzePatternsResponse
}

// MetricsRecorderInterface defines the contract for recording operational metrics
type MetricsRecorderInterface interface {
	RecordEngineInvocation(engine, status string)
	RecordEngineDuration(engine string, seconds float64)
	RecordTraining(engine string)
	RecordAnomalyRate(rate float64)
}
