package services

import (
	"testing"

	"finsight/internal/models"

	"github.com/stretchr/testify/suite"
)

type HealthServiceTestSuite struct {
	suite.Suite
	scorer HealthScorerInterface
}

func TestHealthServiceSuite(t *testing.T) {
	suite.Run(t, new(HealthServiceTestSuite))
}

func (s *HealthServiceTestSuite) SetupTest() {
	s.scorer = NewHealthScorer()
}

func (s *HealthServiceTestSuite) TestCalculate_StrongCompany() {
	result := s.scorer.Calculate(models.HealthMetrics{
		CashReserves:    600000,
		MonthlyRevenue:  100000,
		MonthlyExpenses: 50000,
		BurnRate:        0,
		RunwayMonths:    24,
		GrowthRate:      0.35,
	})

	// cash 12 months -> 100, profitable burn -> 100, runway -> 100,
	// growth -> 100, expense ratio 0.5 -> 100, revenue trend fixed 70
	s.InDelta(97.0, result.Score, 1e-9)
	s.Equal("A+", result.Grade)

	s.Equal(100.0, result.ComponentScores["cash_reserves"])
	s.Equal(100.0, result.ComponentScores["burn_rate"])
	s.Equal(100.0, result.ComponentScores["runway"])
	s.Equal(100.0, result.ComponentScores["growth_rate"])
	s.Equal(100.0, result.ComponentScores["expense_ratio"])
	s.Equal(70.0, result.ComponentScores["revenue_trend"])
}

func (s *HealthServiceTestSuite) TestCalculate_StrugglingCompany() {
	result := s.scorer.Calculate(models.HealthMetrics{
		CashReserves:    10000,
		MonthlyRevenue:  20000,
		MonthlyExpenses: 30000,
		BurnRate:        25000,
		RunwayMonths:    1,
		GrowthRate:      -0.2,
	})

	s.Less(result.Score, 50.0)
	s.Contains([]string{"D", "F"}, result.Grade)

	var hasCritical bool
	for _, r := range result.Recommendations {
		if r.Priority == models.PriorityCritical {
			hasCritical = true
		}
	}
	s.True(hasCritical, "scores below 50 should carry a critical recommendation")
}

func (s *HealthServiceTestSuite) TestCalculate_AllZeroMetrics() {
	result := s.scorer.Calculate(models.HealthMetrics{})

	// cash -> 50, zero-revenue zero-burn -> 30, runway -> 20,
	// zero growth -> 60, zero-revenue expense ratio -> 30, trend 70
	s.InDelta(41.5, result.Score, 1e-9)
	s.Equal("D", result.Grade)
	s.NotNil(result.Insights)
	s.NotNil(result.Recommendations)
}

func (s *HealthServiceTestSuite) TestCalculate_GradeBoundaries() {
	testCases := []struct {
		score float64
		grade string
	}{
		{95, "A+"}, {90, "A+"}, {87, "A"}, {82, "A-"}, {76, "B+"},
		{71, "B"}, {66, "B-"}, {61, "C+"}, {56, "C"}, {51, "C-"},
		{45, "D"}, {39.9, "F"}, {0, "F"},
	}
	for _, tc := range testCases {
		s.Equal(tc.grade, healthGrade(tc.score), "score %.1f", tc.score)
	}
}

func (s *HealthServiceTestSuite) TestCalculate_MoreCashNeverScoresLower() {
	base := models.HealthMetrics{
		MonthlyRevenue:  50000,
		MonthlyExpenses: 40000,
		BurnRate:        10000,
		RunwayMonths:    8,
		GrowthRate:      0.1,
	}

	// Sweep cash through every coverage ladder boundary with everything
	// else fixed; both the component and the overall score must ride the
	// ladder upward, never down.
	cashLevels := []float64{0, 39999, 40000, 119999, 120000, 239999, 240000, 479999, 480000, 1000000}

	prevComponent, prevOverall := -1.0, -1.0
	for _, cash := range cashLevels {
		metrics := base
		metrics.CashReserves = cash
		result := s.scorer.Calculate(metrics)

		s.GreaterOrEqual(result.ComponentScores["cash_reserves"], prevComponent,
			"cash sub-score regressed at cash=%v", cash)
		s.GreaterOrEqual(result.Score, prevOverall,
			"overall score regressed at cash=%v", cash)

		prevComponent = result.ComponentScores["cash_reserves"]
		prevOverall = result.Score
	}

	s.Equal(20.0, s.scorer.Calculate(withCash(base, 0)).ComponentScores["cash_reserves"])
	s.Equal(100.0, s.scorer.Calculate(withCash(base, 1000000)).ComponentScores["cash_reserves"])
}

func withCash(m models.HealthMetrics, cash float64) models.HealthMetrics {
	m.CashReserves = cash
	return m
}

func (s *HealthServiceTestSuite) TestCalculate_CashInsights() {
	low := s.scorer.Calculate(models.HealthMetrics{
		CashReserves:    10000,
		MonthlyExpenses: 10000,
		MonthlyRevenue:  15000,
	})
	s.containsInsight(low.Insights, models.InsightWarning, "Low cash reserves")

	strong := s.scorer.Calculate(models.HealthMetrics{
		CashReserves:    150000,
		MonthlyExpenses: 10000,
		MonthlyRevenue:  15000,
	})
	s.containsInsight(strong.Insights, models.InsightPositive, "Strong cash position")
}

func (s *HealthServiceTestSuite) TestCalculate_ExpenseInsights() {
	overspending := s.scorer.Calculate(models.HealthMetrics{
		MonthlyRevenue:  10000,
		MonthlyExpenses: 12000,
		CashReserves:    100000,
	})
	s.containsInsight(overspending.Insights, models.InsightCritical, "Expenses exceed revenue")
}

func (s *HealthServiceTestSuite) TestCalculate_GrowthInsights() {
	growing := s.scorer.Calculate(models.HealthMetrics{GrowthRate: 0.25})
	s.containsInsight(growing.Insights, models.InsightPositive, "Excellent growth rate")

	shrinking := s.scorer.Calculate(models.HealthMetrics{GrowthRate: -0.05})
	s.containsInsight(shrinking.Insights, models.InsightWarning, "Negative growth")
}

func (s *HealthServiceTestSuite) TestCalculate_HealthyCompanyRecommendation() {
	result := s.scorer.Calculate(models.HealthMetrics{
		CashReserves:    600000,
		MonthlyRevenue:  100000,
		MonthlyExpenses: 50000,
		RunwayMonths:    24,
		GrowthRate:      0.35,
	})

	s.Require().NotEmpty(result.Recommendations)
	last := result.Recommendations[len(result.Recommendations)-1]
	s.Equal(models.PriorityLow, last.Priority)
	s.Equal("General", last.Category)
}

func (s *HealthServiceTestSuite) containsInsight(insights []models.Insight, insightType, fragment string) {
	s.T().Helper()
	for _, insight := range insights {
		if insight.Type == insightType {
			s.Contains(insight.Message, fragment)
			return
		}
	}
	s.Failf("missing insight", "no %s insight containing %q", insightType, fragment)
}
