package dto

import (
	"fmt"

	"finsight/internal/models"
)

// HistoricalPeriod is one month of caller-supplied history
type HistoricalPeriod struct {
	Date     string  `json:"date" validate:"required"`
	Income   float64 `json:"income" validate:"gte=0"`
	Expenses float64 `json:"expenses" validate:"gte=0"`
	Net      float64 `json:"net"`
}

// PredictCashflowRequest is the body of POST /predict-cashflow.
// MonthsAhead defaults to the configured value when omitted.
type PredictCashflowRequest struct {
	HistoricalData []HistoricalPeriod `json:"historical_data" validate:"required,dive"`
	MonthsAhead    int                `json:"months_ahead" validate:"gte=0,lte=60"`
}

// PredictCashflowResponse mirrors models.CashflowForecast on the wire
type PredictCashflowResponse struct {
	Predictions        []models.CashflowPrediction `json:"predictions"`
	ConfidenceInterval models.ConfidenceInterval   `json:"confidence_interval"`
	Metrics            models.CashflowMetrics      `json:"metrics"`
}

// ToPeriods converts wire periods to domain records, rejecting
// unparseable dates
func ToPeriods(items []HistoricalPeriod) ([]models.CashflowPeriod, error) {
	periods := make([]models.CashflowPeriod, len(items))
	for i, item := range items {
		t, ok := ParseDate(item.Date)
		if !ok {
			return nil, fmt.Errorf("invalid period date %q", item.Date)
		}
		periods[i] = models.CashflowPeriod{
			Date:     t,
			Income:   item.Income,
			Expenses: item.Expenses,
			Net:      item.Net,
		}
	}
	return periods, nil
}
