package dto

import (
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// ExpenseItem is one expense in a detection or pattern-analysis batch.
// Date accepts date-only or RFC3339 timestamps; missing or unparseable
// dates fall back to the zero-feature default.
type ExpenseItem struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Vendor      string          `json:"vendor"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

// DetectAnomalyRequest is the body of POST /detect-anomaly
type DetectAnomalyRequest struct {
	Expenses []ExpenseItem `json:"expenses" validate:"required"`
}

// DetectAnomalyResponse mirrors models.AnomalyReport on the wire
type DetectAnomalyResponse struct {
	Anomalies []models.AnomalyRecord `json:"anomalies"`
	Summary   models.AnomalySummary  `json:"summary"`
}

// dateLayouts are the accepted expense date formats, first match wins
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses an expense or period date string
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToExpense converts the wire item into a domain expense record
func (e ExpenseItem) ToExpense() models.Expense {
	expense := models.Expense{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Amount:      e.Amount,
		Vendor:      e.Vendor,
		Category:    e.Category,
	}
	if t, ok := ParseDate(e.Date); ok {
		expense.Date = &t
	}
	return expense
}

// ToExpenses converts a batch of wire items to domain records
func ToExpenses(items []ExpenseItem) []models.Expense {
	expenses := make([]models.Expense, len(items))
	for i, item := range items {
		expenses[i] = item.ToExpense()
	}
	return expenses
}
