package dto

// AnalyzePatternsRequest is the body of POST /analyze-patterns
type AnalyzePatternsRequest struct {
	Expenses []ExpenseItem `json:"expenses" validate:"required"`
}

// CategoryTotal is one category's aggregate spend
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SpendingPatterns groups the aggregate views of a batch
type SpendingPatterns struct {
	TopCategories  []CategoryTotal `json:"top_categories"`
	MonthlyAverage float64         `json:"monthly_average"`
}

// SpendingTrends summarizes directional behavior of the batch
type SpendingTrends struct {
	TrendDirection string `json:"trend_direction"`
	Volatility     string `json:"volatility"`
}

// AnalyzePatternsResponse is the pattern-analysis result on the wire
type AnalyzePatternsResponse struct {
	Patterns SpendingPatterns `json:"patterns"`
	Trends   SpendingTrends   `json:"trends"`
	Insights []string         `json:"insights"`
}
