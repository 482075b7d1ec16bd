package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider overrides the global provider when set
	TracerProvider trace.TracerProvider
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "nsnodes-backend",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin so every request runs inside a server span
// named after its route.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanAnnotator adds the request ID to the active span and marks the span as
// an error for 5xx responses. It must run after Tracing.
func SpanAnnotator() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
