package services

import (
	"strconv"
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnomalyServiceTestSuite struct {
	suite.Suite
	store    *fakeModelStore
	detector AnomalyDetectorInterface
}

func TestAnomalyServiceSuite(t *testing.T) {
	suite.Run(t, new(AnomalyServiceTestSuite))
}

func (s *AnomalyServiceTestSuite) SetupTest() {
	s.store = newFakeModelStore()
	s.detector = NewAnomalyDetector(s.store, NewNoopMetrics(), 0.10, 42)
}

func (s *AnomalyServiceTestSuite) makeExpenses(amounts []float64, category string) []models.Expense {
	expenses := make([]models.Expense, len(amounts))
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, amount := range amounts {
		date := base.AddDate(0, 0, i)
		expenses[i] = models.Expense{
			ID:       strconv.Itoa(i + 1),
			Title:    gofakeit.ProductName(),
			Vendor:   gofakeit.Company(),
			Amount:   decimal.NewFromFloat(amount),
			Category: category,
			Date:     &date,
		}
	}
	return expenses
}

func (s *AnomalyServiceTestSuite) TestDetect_TooFewExpenses() {
	report, err := s.detector.Detect(s.makeExpenses([]float64{100, 110, 90}, models.CategorySoftware))
	s.Require().NoError(err)

	s.Empty(report.Anomalies)
	s.Equal(3, report.Summary.TotalExpenses)
	s.Zero(report.Summary.AnomaliesDetected)
	s.Contains(report.Summary.Message, "at least 10")
	s.False(s.detector.IsTrained(), "small batches must not fit the ensemble")
}

func (s *AnomalyServiceTestSuite) TestDetect_ObviousOutlier() {
	amounts := []float64{100, 102, 98, 101, 99, 103, 97, 100, 102, 98, 100000}
	report, err := s.detector.Detect(s.makeExpenses(amounts, models.CategorySoftware))
	s.Require().NoError(err)

	s.Require().NotEmpty(report.Anomalies)
	top := report.Anomalies[0]
	s.Equal(100000.0, top.Amount)
	s.Equal(models.SeverityHigh, top.Severity)
	s.Contains(top.Reason, "significantly higher than category average")
	s.Equal(11, report.Summary.TotalExpenses)
	s.Greater(report.Summary.AverageAnomalyScore, 0.0)
}

func (s *AnomalyServiceTestSuite) TestDetect_SortedByScoreDescending() {
	amounts := []float64{50, 52, 48, 51, 49, 53, 47, 50, 20000, 80000, 51, 49}
	report, err := s.detector.Detect(s.makeExpenses(amounts, models.CategoryMarketing))
	s.Require().NoError(err)

	for i := 1; i < len(report.Anomalies); i++ {
		s.GreaterOrEqual(report.Anomalies[i-1].AnomalyScore, report.Anomalies[i].AnomalyScore)
	}
}

func (s *AnomalyServiceTestSuite) TestDetect_RoundNumberReason() {
	amounts := []float64{120, 135, 118, 127, 141, 122, 133, 126, 138, 124, 10000}
	report, err := s.detector.Detect(s.makeExpenses(amounts, models.CategoryTravel))
	s.Require().NoError(err)

	s.Require().NotEmpty(report.Anomalies)
	s.Contains(report.Anomalies[0].Reason, "Suspicious round number")
}

func (s *AnomalyServiceTestSuite) TestDetect_FitsOnceAndPersists() {
	amounts := []float64{100, 102, 98, 101, 99, 103, 97, 100, 102, 98, 5000}
	expenses := s.makeExpenses(amounts, models.CategoryHardware)

	_, err := s.detector.Detect(expenses)
	s.Require().NoError(err)
	s.True(s.detector.IsTrained())
	s.Contains(s.store.blobs, models.ModelKeyAnomalyDetector)

	reloaded := NewAnomalyDetector(s.store, NewNoopMetrics(), 0.10, 42)
	s.Require().NoError(reloaded.EnsureInitialized())
	s.True(reloaded.IsTrained(), "persisted state should load without refitting")
}

func (s *AnomalyServiceTestSuite) TestDetect_ReusedScalerKeepsFittedColumns() {
	fitBatch := s.makeExpenses([]float64{100, 102, 98, 101, 99, 103, 97, 100, 102, 98, 5000}, models.CategorySoftware)
	_, err := s.detector.Detect(fitBatch)
	s.Require().NoError(err)

	s.Contains(string(s.store.blobs[models.ModelKeyAnomalyDetector]), `"categories"`,
		"fitted one-hot column order must persist with the scaler")

	// A later batch with categories the detector never saw must still
	// score against the fitted columns instead of a reshuffled layout
	reloaded := NewAnomalyDetector(s.store, NewNoopMetrics(), 0.10, 42)
	newBatch := s.makeExpenses([]float64{95, 105, 100, 97, 103, 99, 101, 96, 104, 98, 4800}, models.CategoryTravel)
	report, err := reloaded.Detect(newBatch)
	s.Require().NoError(err)
	s.Equal(11, report.Summary.TotalExpenses)
	s.True(reloaded.IsTrained(), "a fitted detector must not refit on new categories")
}

func (s *AnomalyServiceTestSuite) TestDetect_SummaryRate() {
	amounts := []float64{100, 102, 98, 101, 99, 103, 97, 100, 102, 98, 100000}
	report, err := s.detector.Detect(s.makeExpenses(amounts, models.CategorySoftware))
	s.Require().NoError(err)

	expected := float64(report.Summary.AnomaliesDetected) / float64(report.Summary.TotalExpenses)
	s.InDelta(expected, report.Summary.AnomalyRate, 1e-12)
}

func (s *AnomalyServiceTestSuite) TestDetect_MissingDatesAndCategories() {
	expenses := make([]models.Expense, 12)
	for i := range expenses {
		expenses[i] = models.Expense{
			ID:     strconv.Itoa(i + 1),
			Title:  "expense",
			Amount: decimal.NewFromInt(int64(100 + i)),
		}
	}

	report, err := s.detector.Detect(expenses)
	s.Require().NoError(err)
	s.Equal(12, report.Summary.TotalExpenses)
	for _, a := range report.Anomalies {
		s.Equal("Unknown", a.Category)
		s.Empty(a.Date)
	}
}
