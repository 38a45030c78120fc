package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"finsight/internal/ml"
	"finsight/internal/models"
	"finsight/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	// minExpensesForDetection is the soft lower bound on batch size
	minExpensesForDetection = 10

	anomalyTreeCount = 100

	severityHighThreshold   = 0.5
	severityMediumThreshold = 0.3
)

var (
	roundAmountStep      = decimal.NewFromInt(1000)
	roundAmountThreshold = decimal.NewFromInt(5000)
)

// anomalyState is the persisted form of a fitted detector. Categories
// records the one-hot column order the scaler and ensemble were fitted
// on, so later batches build their feature rows against the same columns.
type anomalyState struct {
	Scaler     *ml.StandardScaler  `json:"scaler"`
	Forest     *ml.IsolationForest `json:"forest"`
	Categories []string            `json:"categories"`
}

// anomalyDetector flags statistically unusual expenses using an
// isolation-based ensemble over engineered amount, category, and
// calendar features
type anomalyDetector struct {
	mu      sync.Mutex
	store   repositories.ModelStoreInterface
	metrics MetricsRecorderInterface
	seed    int64

	contamination float64
	scaler        *ml.StandardScaler
	forest        *ml.IsolationForest
	categories    []string
	trained       bool
}

// NewAnomalyDetector creates an untrained detector. The ensemble and
// scaler are fitted on the first sufficiently large batch and reused on
// later calls, mirroring the classifier's train-once semantics.
func NewAnomalyDetector(store repositories.ModelStoreInterface, metrics MetricsRecorderInterface, contamination float64, seed int64) AnomalyDetectorInterface {
	return &anomalyDetector{
		store:         store,
		metrics:       metrics,
		seed:          seed,
		contamination: contamination,
	}
}

// IsTrained reports whether the detector holds fitted state
func (d *anomalyDetector) IsTrained() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.trained
}

// EnsureInitialized loads persisted state when present. Unlike the
// classifier there is no seed corpus; an untrained detector fits itself
// on the first detection batch.
func (d *anomalyDetector) EnsureInitialized() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadLocked()
	return nil
}

func (d *anomalyDetector) loadLocked() {
	if d.trained {
		return
	}

	blob, err := d.store.Load(models.ModelKeyAnomalyDetector)
	if err != nil {
		if !errors.Is(err, repositories.ErrModelNotFound) {
			slog.Error("failed to load anomaly detector state", "error", err)
		}
		return
	}

	var state anomalyState
	if jsonErr := json.Unmarshal(blob, &state); jsonErr != nil ||
		state.Scaler == nil || state.Forest == nil || len(state.Categories) == 0 {
		slog.Warn("persisted anomaly detector state is corrupt, will refit on next batch")
		return
	}

	d.scaler = state.Scaler
	d.forest = state.Forest
	d.categories = state.Categories
	d.trained = true
	slog.Info("anomaly detector loaded from store")
}

// Detect scores a batch of expenses and returns flagged ones ranked by
// anomaly score descending. Batches below the minimum size soft-fail
// with an empty list and an explanatory summary.
func (d *anomalyDetector) Detect(expenses []models.Expense) (*models.AnomalyReport, error) {
	if len(expenses) < minExpensesForDetection {
		return &models.AnomalyReport{
			Anomalies: []models.AnomalyRecord{},
			Summary: models.AnomalySummary{
				TotalExpenses:     len(expenses),
				AnomaliesDetected: 0,
				Message:           fmt.Sprintf("Need at least %d expenses for anomaly detection", minExpensesForDetection),
			},
		}, nil
	}

	start := time.Now()

	d.mu.Lock()
	d.loadLocked()
	if !d.trained {
		d.categories = observedCategories(expenses)
		if err := d.fitLocked(buildExpenseFeatures(expenses, d.categories)); err != nil {
			d.mu.Unlock()
			return nil, err
		}
	}
	scaler, forest, categories := d.scaler, d.forest, d.categories
	d.mu.Unlock()

	// Feature rows follow the fitted column order; categories the
	// detector has never seen carry no one-hot indicator
	if unknown := unknownCategories(expenses, categories); len(unknown) > 0 {
		slog.Warn("batch has categories outside the fitted feature space", "categories", unknown)
	}

	scaled, err := scaler.Transform(buildExpenseFeatures(expenses, categories))
	if err != nil {
		return nil, fmt.Errorf("failed to scale features: %w", err)
	}

	stats := newBatchStats(expenses)
	anomalies := make([]models.AnomalyRecord, 0)
	for i, expense := range expenses {
		score := forest.Score(scaled[i])
		if !forest.IsAnomaly(score) {
			continue
		}

		record := models.AnomalyRecord{
			ExpenseID:    expense.ID,
			Amount:       expense.AmountFloat(),
			Category:     expense.CategoryOrDefault(),
			Description:  expense.Description,
			AnomalyScore: math.Abs(score),
			Reason:       stats.reasonFor(expense),
			Severity:     severityFor(score),
		}
		if expense.Date != nil {
			record.Date = expense.Date.Format("2006-01-02")
		}
		anomalies = append(anomalies, record)
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].AnomalyScore > anomalies[j].AnomalyScore
	})

	summary := models.AnomalySummary{
		TotalExpenses:     len(expenses),
		AnomaliesDetected: len(anomalies),
		AnomalyRate:       float64(len(anomalies)) / float64(len(expenses)),
	}
	if len(anomalies) > 0 {
		var total float64
		for _, a := range anomalies {
			total += a.AnomalyScore
		}
		summary.AverageAnomalyScore = total / float64(len(anomalies))
	}

	d.metrics.RecordAnomalyRate(summary.AnomalyRate)
	slog.Info("anomaly detection completed",
		"total", summary.TotalExpenses,
		"anomalies", summary.AnomaliesDetected,
		"duration", time.Since(start))

	return &models.AnomalyReport{Anomalies: anomalies, Summary: summary}, nil
}

func (d *anomalyDetector) fitLocked(features [][]float64) error {
	d.scaler = ml.NewStandardScaler()
	scaled, err := d.scaler.FitTransform(features)
	if err != nil {
		return fmt.Errorf("failed to fit scaler: %w", err)
	}

	d.forest = ml.NewIsolationForest(anomalyTreeCount, d.contamination, d.seed)
	if err := d.forest.Fit(scaled); err != nil {
		return fmt.Errorf("failed to fit isolation ensemble: %w", err)
	}

	d.trained = true
	d.saveLocked()
	d.metrics.RecordTraining("anomaly_detector")
	slog.Info("anomaly detector fitted", "samples", len(features))

	return nil
}

func (d *anomalyDetector) saveLocked() {
	state := anomalyState{Scaler: d.scaler, Forest: d.forest, Categories: d.categories}
	blob, err := json.Marshal(state)
	if err != nil {
		slog.Error("failed to encode anomaly detector state", "error", err)
		return
	}
	if err := d.store.Save(models.ModelKeyAnomalyDetector, blob); err != nil {
		slog.Error("failed to save anomaly detector state", "error", err)
	}
}

// observedCategories collects the batch's distinct categories in sorted
// order. This order becomes the one-hot column layout at fit time.
func observedCategories(expenses []models.Expense) []string {
	seen := make(map[string]bool)
	var observed []string
	for _, e := range expenses {
		cat := e.CategoryOrDefault()
		if !seen[cat] {
			seen[cat] = true
			observed = append(observed, cat)
		}
	}
	sort.Strings(observed)
	return observed
}

func unknownCategories(expenses []models.Expense, fitted []string) []string {
	known := make(map[string]bool, len(fitted))
	for _, cat := range fitted {
		known[cat] = true
	}
	var unknown []string
	for _, cat := range observedCategories(expenses) {
		if !known[cat] {
			unknown = append(unknown, cat)
		}
	}
	return unknown
}

// buildExpenseFeatures constructs the per-expense feature rows: raw and
// log-scaled amount, one-hot indicators in the given category order, and
// calendar features when a date is present. Missing optional fields
// default to zero.
func buildExpenseFeatures(expenses []models.Expense, categories []string) [][]float64 {
	index := make(map[string]int, len(categories))
	for i, cat := range categories {
		index[cat] = i
	}

	features := make([][]float64, len(expenses))
	for i, e := range expenses {
		row := make([]float64, 2+len(categories)+3)
		amount := e.AmountFloat()
		row[0] = amount
		row[1] = math.Log1p(amount)
		if col, ok := index[e.CategoryOrDefault()]; ok {
			row[2+col] = 1
		}
		if e.Date != nil {
			base := 2 + len(categories)
			row[base] = float64(e.Date.Day())
			// Monday-indexed weekday
			row[base+1] = float64((int(e.Date.Weekday()) + 6) % 7)
			row[base+2] = float64(int(e.Date.Month()))
		}
		features[i] = row
	}
	return features
}

// batchStats precomputes amount distributions for reason generation
type batchStats struct {
	overallMean float64
	overallStd  float64
	byCategory  map[string][]float64
}

func newBatchStats(expenses []models.Expense) *batchStats {
	amounts := make([]float64, len(expenses))
	byCategory := make(map[string][]float64)
	for i, e := range expenses {
		amounts[i] = e.AmountFloat()
		cat := e.CategoryOrDefault()
		byCategory[cat] = append(byCategory[cat], amounts[i])
	}
	return &batchStats{
		overallMean: ml.Mean(amounts),
		overallStd:  sampleStdDev(amounts),
		byCategory:  byCategory,
	}
}

// reasonFor explains a flagged expense. Checks apply in fixed order and
// concatenate with "; " when several hold.
func (s *batchStats) reasonFor(expense models.Expense) string {
	var reasons []string
	amount := expense.AmountFloat()

	categoryAmounts := s.byCategory[expense.CategoryOrDefault()]
	if len(categoryAmounts) > 1 {
		mean := ml.Mean(categoryAmounts)
		std := sampleStdDev(categoryAmounts)
		if amount > mean+2*std {
			reasons = append(reasons, fmt.Sprintf("Amount $%.2f is significantly higher than category average $%.2f", amount, mean))
		}
	}

	if amount > s.overallMean+3*s.overallStd {
		reasons = append(reasons, "Extremely high amount compared to overall spending pattern")
	}

	// Round multiples of 1000 above 5000 often come from manual-entry errors
	if expense.Amount.Mod(roundAmountStep).IsZero() && expense.Amount.GreaterThan(roundAmountThreshold) {
		reasons = append(reasons, "Suspicious round number - may require verification")
	}

	if len(reasons) == 0 {
		return "Statistical outlier detected in spending pattern"
	}
	return strings.Join(reasons, "; ")
}

// sampleStdDev is the n-1 variant used for reason thresholds
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := ml.Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func severityFor(score float64) string {
	abs := math.Abs(score)
	switch {
	case abs > severityHighThreshold:
		return models.SeverityHigh
	case abs > severityMediumThreshold:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
