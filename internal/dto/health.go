package dto

import "finsight/internal/models"

// FinancialHealthRequest is the body of POST /financial-health. All
// fields default to zero; the scorer's ladders guard every division.
type FinancialHealthRequest struct {
	CashReserves    float64 `json:"cash_reserves"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	BurnRate        float64 `json:"burn_rate"`
	RunwayMonths    float64 `json:"runway_months"`
	GrowthRate      float64 `json:"growth_rate"`
	DebtRatio       float64 `json:"debt_ratio"`
}

// ToMetrics converts the request to the domain metrics snapshot
func (r FinancialHealthRequest) ToMetrics() models.HealthMetrics {
	return models.HealthMetrics{
		CashReserves:    r.CashReserves,
		MonthlyRevenue:  r.MonthlyRevenue,
		MonthlyExpenses: r.MonthlyExpenses,
		BurnRate:        r.BurnRate,
		RunwayMonths:    r.RunwayMonths,
		GrowthRate:      r.GrowthRate,
		DebtRatio:       r.DebtRatio,
	}
}

// FinancialHealthResponse is the scored health snapshot on the wire
type FinancialHealthResponse struct {
	Score           float64                 `json:"score"`
	Grade           string                  `json:"grade"`
	ComponentScores map[string]float64      `json:"component_scores"`
	Insights        []models.Insight        `json:"insights"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// NewFinancialHealthResponse converts a score result to its response form
func NewFinancialHealthResponse(result *models.HealthScoreResult) FinancialHealthResponse {
	insights := result.Insights
	if insights == nil {
		insights = []models.Insight{}
	}
	recommendations := result.Recommendations
	if recommendations == nil {
		recommendations = []models.Recommendation{}
	}
	return FinancialHealthResponse{
		Score:           result.Score,
		Grade:           result.Grade,
		ComponentScores: result.ComponentScores,
		Insights:        insights,
		Recommendations: recommendations,
	}
}
