package handlers

import (
	"net/http"
	"strings"
	"time"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// CategorizeHandler handles expense categorization requests
type CategorizeHandler struct {
	classifier services.TextClassifierInterface
	metrics    services.MetricsRecorderInterface
}

// NewCategorizeHandler creates a new categorization handler
func NewCategorizeHandler(classifier services.TextClassifierInterface, metrics services.MetricsRecorderInterface) *CategorizeHandler {
	return &CategorizeHandler{classifier: classifier, metrics: metrics}
}

// Categorize predicts the expense category from title and description
// @Summary Categorize an expense
// @Description Predict the spending category for an expense from its title and description
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.CategorizeRequest true "Expense to categorize"
// @Success 200 {object} dto.CategorizeResponse "Predicted category with confidence and alternatives"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_002 - Title is required"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categorize [post]
func (h *CategorizeHandler) Categorize(c echo.Context) error {
	var req dto.CategorizeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		h.metrics.RecordEngineInvocation("classifier", "rejected")
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Title is required"))
	}

	start := time.Now()
	result, err := h.classifier.Predict(req.Title, req.Description)
	if err != nil {
		h.metrics.RecordEngineInvocation("classifier", "error")
		return SendSystemError(c, err)
	}

	h.metrics.RecordEngineInvocation("classifier", "success")
	h.metrics.RecordEngineDuration("classifier", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, dto.NewCategorizeResponse(result))
}
