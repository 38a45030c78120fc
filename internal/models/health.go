package models

// Insight types
const (
	InsightPositive = "positive"
	InsightWarning  = "warning"
	InsightCritical = "critical"
)

// Recommendation priorities
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// HealthMetrics is the financial snapshot scored by the health engine.
// All fields are optional and default to zero.
type HealthMetrics struct {
	CashReserves    float64 `json:"cash_reserves"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	BurnRate        float64 `json:"burn_rate"`
	RunwayMonths    float64 `json:"runway_months"`
	GrowthRate      float64 `json:"growth_rate"`
	DebtRatio       float64 `json:"debt_ratio"`
}

// Insight is a single human-readable observation about the metrics
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Recommendation is an actionable suggestion tied to a weak component score
type Recommendation struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// HealthScoreResult is the complete output of the health scorer
type HealthScoreResult struct {
	Score           float64            `json:"score"`
	Grade           string             `json:"grade"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Insights        []Insight          `json:"insights"`
	Recommendations []Recommendation   `json:"recommendations"`
}
