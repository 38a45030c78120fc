package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID on requests and responses
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is where the trace ID lives in the echo context
	TraceIDContextKey = "trace_id"
)

// RequestID assigns a trace ID to every request. Callers may supply their
// own via the X-Trace-ID header; otherwise a fresh UUID is generated. The
// ID is echoed back on the response and stored in the context so log
// lines and error envelopes for one analysis call correlate.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the request's trace ID, or "" outside the
// RequestID middleware
func GetTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}
