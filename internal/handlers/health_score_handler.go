package handlers

import (
	"net/http"
	"time"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// HealthScoreHandler handles financial health scoring requests
type HealthScoreHandler struct {
	scorer  services.HealthScorerInterface
	metrics services.MetricsRecorderInterface
}

// NewHealthScoreHandler creates a new financial health handler
func NewHealthScoreHandler(scorer services.HealthScorerInterface, metrics services.MetricsRecorderInterface) *HealthScoreHandler {
	return &HealthScoreHandler{scorer: scorer, metrics: metrics}
}

// ScoreHealth grades a financial snapshot
// @Summary Score financial health
// @Description Grade a company's financial metrics on a 0-100 scale with insights and recommendations
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.FinancialHealthRequest true "Financial metrics snapshot"
// @Success 200 {object} dto.FinancialHealthResponse "Overall score with grade and component breakdown"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Router /financial-health [post]
func (h *HealthScoreHandler) ScoreHealth(c echo.Context) error {
	var req dto.FinancialHealthRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	start := time.Now()
	result := h.scorer.Calculate(req.ToMetrics())

	h.metrics.RecordEngineInvocation("health_scorer", "success")
	h.metrics.RecordEngineDuration("health_scorer", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, dto.NewFinancialHealthResponse(result))
}
