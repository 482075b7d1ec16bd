package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ginLoggerKey is where GinMiddleware stores the request logger in gin.Context
const ginLoggerKey = "logger"

// GinMiddleware logs one entry per request and makes a request-scoped logger
// available both through GetGinLogger(c) and logger.L(c.Request.Context()).
// It must run after the RequestID middleware.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		query := c.Request.URL.RawQuery
		requestID := c.GetString("request_id")

		base := logger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		ctx, reqLogger := WithRequestID(c.Request.Context(), base, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ginLoggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		if traceID := GetTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		const msg = "HTTP Request"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}

// Recovery recovers from panics, logs them with the stack and answers with
// the standard error envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := c.GetString("request_id")
				logger.Error("Panic recovered",
					zap.String("request_id", requestID),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":       "INTERNAL_ERROR",
						"message":    "An internal error occurred",
						"request_id": requestID,
					},
				})
			}
		}()
		c.Next()
	}
}

// GetGinLogger returns the request logger set by GinMiddleware, or a no-op logger
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(ginLoggerKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return zap.NewNop()
}
