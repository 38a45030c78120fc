package models

// Anomaly severity buckets, derived from the absolute anomaly score
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// AnomalyRecord describes one flagged expense. Derived and read-only;
// recomputed on every detection call, never persisted.
type AnomalyRecord struct {
	ExpenseID    string  `json:"expense_id"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
	AnomalyScore float64 `json:"anomaly_score"`
	Reason       string  `json:"reason"`
	Severity     string  `json:"severity"`
}

// AnomalySummary aggregates a detection pass
type AnomalySummary struct {
	TotalExpenses       int     `json:"total_expenses"`
	AnomaliesDetected   int     `json:"anomalies_detected"`
	AnomalyRate         float64 `json:"anomaly_rate,omitempty"`
	AverageAnomalyScore float64 `json:"average_anomaly_score"`
	Message             string  `json:"message,omitempty"`
}

// AnomalyReport is the full detection result, anomalies ranked by score descending
type AnomalyReport struct {
	Anomalies []AnomalyRecord `json:"anomalies"`
	Summary   AnomalySummary  `json:"summary"`
}
