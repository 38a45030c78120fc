package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"finsight/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts a panicking handler into a SYSTEM_001 response.
// Engine inference is pure computation over request data, so a panic here
// means a genuine bug; the stack is logged with the trace ID for follow-up.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					respondAfterPanic(c, r)
				}
			}()
			return next(c)
		}
	}
}

func respondAfterPanic(c echo.Context, recovered interface{}) {
	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	slog.Error("panic recovered",
		"trace_id", traceID,
		"panic", recovered,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack", string(debug.Stack()),
	)

	response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, response); err != nil {
		slog.Error("failed to write panic response", "trace_id", traceID, "error", err)
	}
}
