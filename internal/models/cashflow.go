package models

import "time"

// Trend direction labels derived from the sign of the fitted slope
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Volatility labels for the income series
const (
	VolatilityHigh = "high"
	VolatilityLow  = "low"
)

// CashflowPeriod is one historical month of income and expenses.
// Net is informational; callers may supply any value and it is not
// validated against income-expenses.
type CashflowPeriod struct {
	Date     time.Time `json:"date"`
	Income   float64   `json:"income"`
	Expenses float64   `json:"expenses"`
	Net      float64   `json:"net"`
}

// CashflowPrediction is one forecast step. Confidence is monotonically
// non-increasing in months ahead.
type CashflowPrediction struct {
	Date               string  `json:"date"`
	Month              string  `json:"month"`
	PredictedIncome    float64 `json:"predicted_income"`
	PredictedExpenses  float64 `json:"predicted_expenses"`
	PredictedNet       float64 `json:"predicted_net"`
	Confidence         float64 `json:"confidence"`
}

// Range is a lower/upper bound pair
type Range struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ConfidenceInterval is the single global interval around the recent
// baselines, one standard deviation wide in each direction
type ConfidenceInterval struct {
	Income   Range `json:"income"`
	Expenses Range `json:"expenses"`
}

// CashflowMetrics summarizes the historical series
type CashflowMetrics struct {
	AverageMonthlyIncome   float64 `json:"average_monthly_income"`
	AverageMonthlyExpenses float64 `json:"average_monthly_expenses"`
	AverageNetCashflow     float64 `json:"average_net_cashflow"`
	IncomeTrend            string  `json:"income_trend"`
	ExpenseTrend           string  `json:"expense_trend"`
	Volatility             string  `json:"volatility"`
}

// CashflowForecast is the complete forecaster output
type CashflowForecast struct {
	Predictions        []CashflowPrediction `json:"predictions"`
	ConfidenceInterval ConfidenceInterval   `json:"confidence_interval"`
	Metrics            CashflowMetrics      `json:"metrics"`
}
