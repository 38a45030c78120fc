package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"finsight/internal/dto"
	"finsight/internal/errors"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// CashflowHandler handles cashflow forecast requests
type CashflowHandler struct {
	forecaster    services.CashflowForecasterInterface
	metrics       services.MetricsRecorderInterface
	defaultMonths int
}

// NewCashflowHandler creates a new cashflow forecast handler
func NewCashflowHandler(forecaster services.CashflowForecasterInterface, metrics services.MetricsRecorderInterface, defaultMonths int) *CashflowHandler {
	return &CashflowHandler{forecaster: forecaster, metrics: metrics, defaultMonths: defaultMonths}
}

// PredictCashflow forecasts future months from historical cashflow
// @Summary Predict future cashflow
// @Description Forecast income, expenses, and net cashflow from at least six months of history
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.PredictCashflowRequest true "Historical monthly cashflow"
// @Success 200 {object} dto.PredictCashflowResponse "Forecast with confidence interval and summary metrics"
// @Failure 400 {object} errors.ErrorResponse "DATA_002 - Insufficient history or VALIDATION_005 - Invalid period date"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /predict-cashflow [post]
func (h *CashflowHandler) PredictCashflow(c echo.Context) error {
	var req dto.PredictCashflowRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		h.metrics.RecordEngineInvocation("cashflow_forecaster", "rejected")
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Historical data is required"))
	}

	periods, err := dto.ToPeriods(req.HistoricalData)
	if err != nil {
		h.metrics.RecordEngineInvocation("cashflow_forecaster", "rejected")
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}

	monthsAhead := req.MonthsAhead
	if monthsAhead == 0 {
		monthsAhead = h.defaultMonths
	}

	start := time.Now()
	forecast, err := h.forecaster.Predict(periods, monthsAhead)
	if err != nil {
		h.metrics.RecordEngineInvocation("cashflow_forecaster", "rejected")
		switch {
		case stderrors.Is(err, services.ErrInsufficientHistory):
			return SendError(c, errors.DataInsufficientHistory)
		case stderrors.Is(err, services.ErrInvalidMonthsAhead):
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("months_ahead must be at least 1"))
		default:
			return SendSystemError(c, err)
		}
	}

	h.metrics.RecordEngineInvocation("cashflow_forecaster", "success")
	h.metrics.RecordEngineDuration("cashflow_forecaster", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, dto.PredictCashflowResponse{
		Predictions:        forecast.Predictions,
		ConfidenceInterval: forecast.ConfidenceInterval,
		Metrics:            forecast.Metrics,
	})
}
