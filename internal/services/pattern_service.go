package services

import (
	"fmt"
	"sort"

	"finsight/internal/dto"
	"finsight/internal/ml"
	"finsight/internal/models"
)

const maxTopCategories = 5

// patternAnalyzer aggregates a batch of expenses into category and
// monthly spending views
type patternAnalyzer struct{}

// NewPatternAnalyzer creates a stateless analyzer
func NewPatternAnalyzer() PatternAnalyzerInterface {
	return &patternAnalyzer{}
}

// Analyze summarizes spending by category and by month. Months come
// from expense dates; dateless expenses pool under a single bucket.
func (a *patternAnalyzer) Analyze(expenses []models.Expense) *dto.AnalyzePatternsResponse {
	categoryTotals := make(map[string]float64)
	monthlyTotals := make(map[string]float64)

	for _, e := range expenses {
		amount := e.AmountFloat()
		categoryTotals[e.CategoryOrDefault()] += amount

		month := "Unknown"
		if e.Date != nil {
			month = e.Date.Format("2006-01")
		}
		monthlyTotals[month] += amount
	}

	topCategories := rankCategories(categoryTotals)

	var monthlyAverage float64
	monthlySeries := sortedMonthlySeries(monthlyTotals)
	if len(monthlySeries) > 0 {
		monthlyAverage = ml.Mean(monthlySeries)
	}

	insights := []string{
		fmt.Sprintf("Top spending category: %s", topCategoryName(topCategories)),
		fmt.Sprintf("Average monthly spending: $%.2f", monthlyAverage),
	}

	return &dto.AnalyzePatternsResponse{
		Patterns: dto.SpendingPatterns{
			TopCategories:  topCategories,
			MonthlyAverage: round2(monthlyAverage),
		},
		Trends: dto.SpendingTrends{
			TrendDirection: monthlyTrend(monthlySeries),
			Volatility:     monthlyVolatility(monthlySeries),
		},
		Insights: insights,
	}
}

// rankCategories orders categories by total descending, alphabetical on
// ties, and keeps the top five
func rankCategories(totals map[string]float64) []dto.CategoryTotal {
	ranked := make([]dto.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		ranked = append(ranked, dto.CategoryTotal{Category: category, Total: round2(total)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > maxTopCategories {
		ranked = ranked[:maxTopCategories]
	}
	return ranked
}

func topCategoryName(ranked []dto.CategoryTotal) string {
	if len(ranked) == 0 {
		return "N/A"
	}
	return ranked[0].Category
}

// sortedMonthlySeries returns monthly totals in chronological key order
func sortedMonthlySeries(totals map[string]float64) []float64 {
	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]float64, len(months))
	for i, month := range months {
		series[i] = totals[month]
	}
	return series
}

func monthlyTrend(series []float64) string {
	if len(series) < 2 {
		return models.TrendStable
	}
	return trendLabel(ml.Slope(series))
}

func monthlyVolatility(series []float64) string {
	if len(series) == 0 {
		return models.VolatilityLow
	}
	return volatilityLabel(ml.StdDev(series), ml.Mean(series))
}
