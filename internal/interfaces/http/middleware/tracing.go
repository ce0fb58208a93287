package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/codes"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns the otelgin server middleware. Spans are named after the
// route pattern, e.g. "/api/v1/orders/:id".
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// TraceIDHeader returns the trace id of the request so clients can quote it
const TraceIDHeader = "X-Trace-ID"

// SpanEnricher adds the authenticated user to the current span, exposes the
// trace id and sets the span status from the response. It runs after
// JWTAuthMiddleware.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span := telemetry.SpanFromContext(ctx)
		if !span.IsRecording() {
			c.Next()
			return
		}
		if traceID := telemetry.GetTraceID(ctx); traceID != "" {
			c.Writer.Header().Set(TraceIDHeader, traceID)
		}
		telemetry.SetAttribute(span, "request_id", requestIDOf(c))
		if actor, ok := GetActor(c); ok {
			telemetry.SetAttribute(span, telemetry.SpanAttrUserID, strconv.FormatUint(actor.UserID, 10))
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
			telemetry.SetAttribute(span, "http.status_code", status)
			return
		}
		telemetry.SetOK(span)
	}
}
