package services

import (
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PatternServiceTestSuite struct {
	suite.Suite
	analyzer PatternAnalyzerInterface
}

func TestPatternServiceSuite(t *testing.T) {
	suite.Run(t, new(PatternServiceTestSuite))
}

func (s *PatternServiceTestSuite) SetupTest() {
	s.analyzer = NewPatternAnalyzer()
}

func expenseOn(year int, month time.Month, amount float64, category string) models.Expense {
	date := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	return models.Expense{
		Title:    "expense",
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Date:     &date,
	}
}

func (s *PatternServiceTestSuite) TestAnalyze_TopCategories() {
	expenses := []models.Expense{
		expenseOn(2024, 1, 500, models.CategoryRent),
		expenseOn(2024, 1, 300, models.CategorySoftware),
		expenseOn(2024, 2, 500, models.CategoryRent),
		expenseOn(2024, 2, 100, models.CategoryTravel),
	}

	result := s.analyzer.Analyze(expenses)

	s.Require().NotEmpty(result.Patterns.TopCategories)
	s.Equal(models.CategoryRent, result.Patterns.TopCategories[0].Category)
	s.Equal(1000.0, result.Patterns.TopCategories[0].Total)
	s.Contains(result.Insights[0], models.CategoryRent)
}

func (s *PatternServiceTestSuite) TestAnalyze_TopCategoriesCapped() {
	categories := []string{
		models.CategoryRent, models.CategorySoftware, models.CategoryTravel,
		models.CategoryMarketing, models.CategoryLegal, models.CategoryInsurance,
		models.CategoryHardware,
	}
	var expenses []models.Expense
	for i, cat := range categories {
		expenses = append(expenses, expenseOn(2024, 1, float64(100*(i+1)), cat))
	}

	result := s.analyzer.Analyze(expenses)
	s.Len(result.Patterns.TopCategories, 5)
	s.Equal(models.CategoryHardware, result.Patterns.TopCategories[0].Category)
}

func (s *PatternServiceTestSuite) TestAnalyze_MonthlyAverage() {
	expenses := []models.Expense{
		expenseOn(2024, 1, 1000, models.CategoryRent),
		expenseOn(2024, 2, 2000, models.CategoryRent),
		expenseOn(2024, 3, 3000, models.CategoryRent),
	}

	result := s.analyzer.Analyze(expenses)
	s.InDelta(2000, result.Patterns.MonthlyAverage, 1e-9)
	s.Contains(result.Insights[1], "$2000.00")
}

func (s *PatternServiceTestSuite) TestAnalyze_TrendFromMonthlySeries() {
	var growing []models.Expense
	for i := 0; i < 6; i++ {
		growing = append(growing, expenseOn(2024, time.Month(1+i), float64(1000+500*i), models.CategoryMarketing))
	}

	result := s.analyzer.Analyze(growing)
	s.Equal(models.TrendIncreasing, result.Trends.TrendDirection)
}

func (s *PatternServiceTestSuite) TestAnalyze_EmptyBatch() {
	result := s.analyzer.Analyze(nil)

	s.Empty(result.Patterns.TopCategories)
	s.Zero(result.Patterns.MonthlyAverage)
	s.Equal(models.TrendStable, result.Trends.TrendDirection)
	s.Equal(models.VolatilityLow, result.Trends.Volatility)
	s.Contains(result.Insights[0], "N/A")
}

func (s *PatternServiceTestSuite) TestAnalyze_DatelessExpensesPool() {
	expenses := []models.Expense{
		{Title: "a", Amount: decimal.NewFromInt(100), Category: models.CategoryOther},
		{Title: "b", Amount: decimal.NewFromInt(200), Category: models.CategoryOther},
	}

	result := s.analyzer.Analyze(expenses)
	s.InDelta(300, result.Patterns.MonthlyAverage, 1e-9, "dateless expenses share one bucket")
}
