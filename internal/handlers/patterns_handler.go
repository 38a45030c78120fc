package handlers

import (
	"net/http"
	"time"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// PatternsHandler handles spending pattern analysis requests
type PatternsHandler struct {
	analyzer services.PatternAnalyzerInterface
	metrics  services.MetricsRecorderInterface
}

// NewPatternsHandler creates a new pattern analysis handler
func NewPatternsHandler(analyzer services.PatternAnalyzerInterface, metrics services.MetricsRecorderInterface) *PatternsHandler {
	return &PatternsHandler{analyzer: analyzer, metrics: metrics}
}

// AnalyzePatterns aggregates spending patterns from an expense batch
// @Summary Analyze spending patterns
// @Description Aggregate a batch of expenses into top categories, monthly averages, and trend labels
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzePatternsRequest true "Expense batch to aggregate"
// @Success 200 {object} dto.AnalyzePatternsResponse "Patterns, trends, and insights"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_002 - Expenses array is required"
// @Router /analyze-patterns [post]
func (h *PatternsHandler) AnalyzePatterns(c echo.Context) error {
	var req dto.AnalyzePatternsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		h.metrics.RecordEngineInvocation("pattern_analyzer", "rejected")
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Expenses array is required"))
	}

	start := time.Now()
	result := h.analyzer.Analyze(dto.ToExpenses(req.Expenses))

	h.metrics.RecordEngineInvocation("pattern_analyzer", "success")
	h.metrics.RecordEngineDuration("pattern_analyzer", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, result)
}
