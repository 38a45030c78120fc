package handlers

import (
	"net/http"
	"time"

	"finsight/internal/database"
	"finsight/internal/errors"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	db       *database.DB
	registry *services.Registry
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *database.DB, registry *services.Registry) *HealthCheckHandler {
	return &HealthCheckHandler{db: db, registry: registry}
}

// HealthCheck reports service liveness, store connectivity, and the
// readiness of each analysis capability
// @Summary Health check
// @Description Check API and model store connectivity plus per-capability readiness
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string,capabilities=object} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (model store unreachable)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	if err := h.db.HealthCheck(); err != nil {
		traceID := getTraceID(c)
		errorResponse := errors.NewErrorResponse(
			errors.SystemServiceUnavailable,
			traceID,
			errors.WithDetails("Model store connection failed"),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"capabilities": map[string]interface{}{
			"categorization": map[string]bool{
				"available": true,
				"trained":   h.registry.Classifier.IsTrained(),
			},
			"anomaly_detection": map[string]bool{
				"available": true,
				"trained":   h.registry.Detector.IsTrained(),
			},
			"cashflow_prediction": map[string]bool{
				"available": true,
			},
			"health_scoring": map[string]bool{
				"available": true,
			},
			"pattern_analysis": map[string]bool{
				"available": true,
			},
		},
	})
}
