package handlers

import (
	"net/http"
	"time"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// AnomalyHandler handles anomaly detection requests
type AnomalyHandler struct {
	detector services.AnomalyDetectorInterface
	metrics  services.MetricsRecorderInterface
}

// NewAnomalyHandler creates a new anomaly detection handler
func NewAnomalyHandler(detector services.AnomalyDetectorInterface, metrics services.MetricsRecorderInterface) *AnomalyHandler {
	return &AnomalyHandler{detector: detector, metrics: metrics}
}

// DetectAnomalies scores a batch of expenses for anomalies
// @Summary Detect anomalous expenses
// @Description Score a batch of expenses and return statistically unusual ones ranked by severity
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.DetectAnomalyRequest true "Expense batch to analyze"
// @Success 200 {object} dto.DetectAnomalyResponse "Anomaly report; batches under 10 expenses return an explanatory summary"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_002 - Expenses array is required"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /detect-anomaly [post]
func (h *AnomalyHandler) DetectAnomalies(c echo.Context) error {
	var req dto.DetectAnomalyRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		h.metrics.RecordEngineInvocation("anomaly_detector", "rejected")
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Expenses array is required"))
	}

	start := time.Now()
	report, err := h.detector.Detect(dto.ToExpenses(req.Expenses))
	if err != nil {
		h.metrics.RecordEngineInvocation("anomaly_detector", "error")
		return SendSystemError(c, err)
	}

	h.metrics.RecordEngineInvocation("anomaly_detector", "success")
	h.metrics.RecordEngineDuration("anomaly_detector", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, dto.DetectAnomalyResponse{
		Anomalies: report.Anomalies,
		Summary:   report.Summary,
	})
}
