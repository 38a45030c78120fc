package services

import (
	"math"
	"sort"
	"time"

	"finsight/internal/ml"
	"finsight/internal/models"
)

const (
	// minHistoryMonths is the shortest usable historical series
	minHistoryMonths = 6

	// movingAverageWindow is the number of trailing months the
	// prediction baseline averages over
	movingAverageWindow = 3

	forecastBaseConfidence  = 0.9
	forecastConfidenceDecay = 0.1
	shortHistoryPenalty     = 0.8
	shortHistoryMonths      = 12
	highVolatilityRatio     = 0.2
)

// cashflowForecaster projects income and expenses forward using a
// trailing moving average plus a fitted linear trend
type cashflowForecaster struct{}

// NewCashflowForecaster creates a stateless forecaster
func NewCashflowForecaster() CashflowForecasterInterface {
	return &cashflowForecaster{}
}

// Predict forecasts monthsAhead future months from the historical
// series. Requires at least six months of history and a positive
// horizon.
func (f *cashflowForecaster) Predict(history []models.CashflowPeriod, monthsAhead int) (*models.CashflowForecast, error) {
	if len(history) < minHistoryMonths {
		return nil, ErrInsufficientHistory
	}
	if monthsAhead < 1 {
		return nil, ErrInvalidMonthsAhead
	}

	periods := make([]models.CashflowPeriod, len(history))
	copy(periods, history)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Date.Before(periods[j].Date)
	})

	income := make([]float64, len(periods))
	expenses := make([]float64, len(periods))
	net := make([]float64, len(periods))
	for i, p := range periods {
		income[i] = p.Income
		expenses[i] = p.Expenses
		net[i] = p.Net
	}

	incomeTrend := ml.Slope(income)
	expenseTrend := ml.Slope(expenses)

	recentIncome := ml.MeanLast(income, movingAverageWindow)
	recentExpenses := ml.MeanLast(expenses, movingAverageWindow)

	lastDate := periods[len(periods)-1].Date
	predictions := make([]models.CashflowPrediction, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		predictedIncome := recentIncome + incomeTrend*float64(i)
		predictedExpenses := recentExpenses + expenseTrend*float64(i)
		// Net reflects the raw projections even when a side clamps to zero
		predictedNet := predictedIncome - predictedExpenses

		predictedIncome = math.Max(0, predictedIncome)
		predictedExpenses = math.Max(0, predictedExpenses)

		futureDate := lastDate.Add(time.Duration(30*i) * 24 * time.Hour)
		predictions = append(predictions, models.CashflowPrediction{
			Date:              futureDate.Format("2006-01-02"),
			Month:             futureDate.Format("January 2006"),
			PredictedIncome:   round2(predictedIncome),
			PredictedExpenses: round2(predictedExpenses),
			PredictedNet:      round2(predictedNet),
			Confidence:        forecastConfidence(i, len(periods)),
		})
	}

	incomeStd := ml.StdDev(income)
	expenseStd := ml.StdDev(expenses)

	forecast := &models.CashflowForecast{
		Predictions: predictions,
		ConfidenceInterval: models.ConfidenceInterval{
			Income: models.Range{
				Lower: round2(recentIncome - incomeStd),
				Upper: round2(recentIncome + incomeStd),
			},
			Expenses: models.Range{
				Lower: round2(recentExpenses - expenseStd),
				Upper: round2(recentExpenses + expenseStd),
			},
		},
		Metrics: models.CashflowMetrics{
			AverageMonthlyIncome:   round2(ml.Mean(income)),
			AverageMonthlyExpenses: round2(ml.Mean(expenses)),
			AverageNetCashflow:     round2(ml.Mean(net)),
			IncomeTrend:            trendLabel(incomeTrend),
			ExpenseTrend:           trendLabel(expenseTrend),
			Volatility:             volatilityLabel(incomeStd, recentIncome),
		},
	}

	return forecast, nil
}

// forecastConfidence decays exponentially with distance and takes a
// flat penalty for short histories
func forecastConfidence(monthsAhead, historyLength int) float64 {
	confidence := forecastBaseConfidence * math.Exp(-forecastConfidenceDecay*float64(monthsAhead)/6)
	if historyLength < shortHistoryMonths {
		confidence *= shortHistoryPenalty
	}
	return round2(confidence)
}

func trendLabel(slope float64) string {
	switch {
	case slope > 0:
		return models.TrendIncreasing
	case slope < 0:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func volatilityLabel(std, recent float64) string {
	// Zero recent average makes the ratio undefined; treat as low
	if recent == 0 {
		return models.VolatilityLow
	}
	if std/recent > highVolatilityRatio {
		return models.VolatilityHigh
	}
	return models.VolatilityLow
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
