package services

import (
	"fmt"
	"math"

	"finsight/internal/models"
)

// Component weights for the overall health score. They sum to 1.
var healthScoreWeights = map[string]float64{
	"cash_reserves": 0.25,
	"burn_rate":     0.20,
	"runway":        0.20,
	"growth_rate":   0.15,
	"expense_ratio": 0.10,
	"revenue_trend": 0.10,
}

// revenueTrendScore is fixed until historical revenue feeds the scorer
const revenueTrendScore = 70

// healthScorer grades a financial snapshot on a 0-100 scale from
// weighted component ladders
type healthScorer struct{}

// NewHealthScorer creates a stateless scorer
func NewHealthScorer() HealthScorerInterface {
	return &healthScorer{}
}

// Calculate scores the metrics and derives a letter grade, insights,
// and recommendations. It is pure and never fails.
func (s *healthScorer) Calculate(metrics models.HealthMetrics) *models.HealthScoreResult {
	scores := map[string]float64{
		"cash_reserves": scoreCashReserves(metrics.CashReserves, metrics.MonthlyExpenses),
		"burn_rate":     scoreBurnRate(metrics.BurnRate, metrics.MonthlyRevenue),
		"runway":        scoreRunway(metrics.RunwayMonths),
		"growth_rate":   scoreGrowth(metrics.GrowthRate),
		"expense_ratio": scoreExpenseRatio(metrics.MonthlyExpenses, metrics.MonthlyRevenue),
		"revenue_trend": revenueTrendScore,
	}

	var overall float64
	for component, score := range scores {
		overall += score * healthScoreWeights[component]
	}
	overall = math.Round(overall*10) / 10

	return &models.HealthScoreResult{
		Score:           overall,
		Grade:           healthGrade(overall),
		ComponentScores: scores,
		Insights:        healthInsights(metrics),
		Recommendations: healthRecommendations(scores, overall),
	}
}

// scoreCashReserves grades months of expense coverage held in cash
func scoreCashReserves(cash, monthlyExpenses float64) float64 {
	if monthlyExpenses == 0 {
		return 50
	}
	coverage := cash / monthlyExpenses
	switch {
	case coverage >= 12:
		return 100
	case coverage >= 6:
		return 80
	case coverage >= 3:
		return 60
	case coverage >= 1:
		return 40
	default:
		return 20
	}
}

// scoreBurnRate grades burn relative to revenue. Zero or negative burn
// means the business is profitable.
func scoreBurnRate(burnRate, monthlyRevenue float64) float64 {
	if monthlyRevenue == 0 {
		if burnRate == 0 {
			return 30
		}
		return 20
	}
	ratio := burnRate / monthlyRevenue
	switch {
	case ratio <= 0:
		return 100
	case ratio <= 0.2:
		return 90
	case ratio <= 0.5:
		return 70
	case ratio <= 1.0:
		return 50
	default:
		return 30
	}
}

func scoreRunway(runwayMonths float64) float64 {
	switch {
	case runwayMonths >= 24:
		return 100
	case runwayMonths >= 12:
		return 80
	case runwayMonths >= 6:
		return 60
	case runwayMonths >= 3:
		return 40
	default:
		return 20
	}
}

func scoreGrowth(growthRate float64) float64 {
	switch {
	case growthRate >= 0.3:
		return 100
	case growthRate >= 0.2:
		return 90
	case growthRate >= 0.1:
		return 75
	case growthRate >= 0:
		return 60
	case growthRate >= -0.1:
		return 40
	default:
		return 20
	}
}

func scoreExpenseRatio(expenses, revenue float64) float64 {
	if revenue == 0 {
		return 30
	}
	ratio := expenses / revenue
	switch {
	case ratio <= 0.5:
		return 100
	case ratio <= 0.7:
		return 80
	case ratio <= 0.9:
		return 60
	case ratio <= 1.0:
		return 40
	default:
		return 20
	}
}

func healthGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

func healthInsights(metrics models.HealthMetrics) []models.Insight {
	insights := []models.Insight{}

	if metrics.MonthlyExpenses > 0 {
		cashMonths := metrics.CashReserves / metrics.MonthlyExpenses
		if cashMonths < 3 {
			insights = append(insights, models.Insight{
				Type:    models.InsightWarning,
				Message: fmt.Sprintf("Low cash reserves: Only %.1f months of runway", cashMonths),
			})
		} else if cashMonths >= 12 {
			insights = append(insights, models.Insight{
				Type:    models.InsightPositive,
				Message: fmt.Sprintf("Strong cash position: %.1f months of runway", cashMonths),
			})
		}
	}

	if metrics.GrowthRate > 0.2 {
		insights = append(insights, models.Insight{
			Type:    models.InsightPositive,
			Message: fmt.Sprintf("Excellent growth rate: %.1f%%", metrics.GrowthRate*100),
		})
	} else if metrics.GrowthRate < 0 {
		insights = append(insights, models.Insight{
			Type:    models.InsightWarning,
			Message: fmt.Sprintf("Negative growth: %.1f%%", metrics.GrowthRate*100),
		})
	}

	if metrics.MonthlyRevenue > 0 {
		expenseRatio := metrics.MonthlyExpenses / metrics.MonthlyRevenue
		if expenseRatio > 1.0 {
			insights = append(insights, models.Insight{
				Type:    models.InsightCritical,
				Message: fmt.Sprintf("Expenses exceed revenue: %.1f%% ratio", expenseRatio*100),
			})
		} else if expenseRatio < 0.6 {
			insights = append(insights, models.Insight{
				Type:    models.InsightPositive,
				Message: fmt.Sprintf("Healthy expense ratio: %.1f%%", expenseRatio*100),
			})
		}
	}

	return insights
}

func healthRecommendations(scores map[string]float64, overall float64) []models.Recommendation {
	recommendations := []models.Recommendation{}

	if scores["cash_reserves"] < 60 {
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityHigh,
			Category: "Cash Management",
			Action:   "Increase cash reserves to at least 6 months of operating expenses",
		})
	}
	if scores["burn_rate"] < 50 {
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityHigh,
			Category: "Cost Control",
			Action:   "Reduce monthly burn rate by optimizing expenses or increasing revenue",
		})
	}
	if scores["growth_rate"] < 60 {
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityMedium,
			Category: "Growth",
			Action:   "Focus on strategies to increase revenue growth rate",
		})
	}
	if scores["expense_ratio"] < 50 {
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityHigh,
			Category: "Expense Management",
			Action:   "Review and reduce operating expenses to improve profitability",
		})
	}

	if overall < 50 {
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityCritical,
			Category: "General",
			Action:   "Financial situation requires immediate attention and strategic planning",
		})
	} else if overall >= 80 {
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityLow,
			Category: "General",
			Action:   "Maintain current financial practices and look for expansion opportunities",
		})
	}

	return recommendations
}
