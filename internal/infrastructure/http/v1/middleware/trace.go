package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "phonefixtures/internal/core/context"
	"phonefixtures/internal/core/id"
	"phonefixtures/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace middleware adds request tracing context.
// Incoming IDs are honoured; missing ones are generated.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = id.NewString()
		}

		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = id.NewString()
		}

		trace := &appctx.TraceContext{
			TraceID:   traceID,
			SpanID:    id.NewString()[:16],
			RequestID: requestID,
		}

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		c.Set("trace_id", traceID)
		c.Set("request_id", requestID)

		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}

// ContextLogger puts log on the request context so handlers and the
// domain layer can reach it through logger.FromContext.
func ContextLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithLogger(c.Request.Context(), log)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
