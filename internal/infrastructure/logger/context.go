package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
)

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.NewNop()
	}
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores requestID and logger in ctx. The returned logger has
// request_id attached; L(ctx) attaches it on every call.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithContext(ctx, logger), logger.With(zap.String("request_id", requestID))
}

// GetRequestID returns the request ID stored in ctx, if any
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetTraceID returns the trace ID of the active span, or ""
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// ContextLogger logs with the trace and request identifiers found in its
// context attached to every entry.
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L returns a ContextLogger for ctx.
//
//	logger.L(ctx).Warn("events query failed", zap.Error(err))
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// WithLogger returns a ContextLogger that writes to logger instead of the
// one stored in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: logger}
}

func (cl *ContextLogger) enriched() *zap.Logger {
	l := cl.logger
	if l == nil {
		l = zap.NewNop()
	}
	if cl.ctx == nil {
		return l
	}
	if spanCtx := trace.SpanContextFromContext(cl.ctx); spanCtx.IsValid() {
		l = l.With(
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	if requestID := GetRequestID(cl.ctx); requestID != "" {
		l = l.With(zap.String("request_id", requestID))
	}
	return l
}

// With returns a child ContextLogger with extra fields
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	base := cl.logger
	if base == nil {
		base = zap.NewNop()
	}
	return &ContextLogger{ctx: cl.ctx, logger: base.With(fields...)}
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.enriched().Debug(msg, fields...) }
func (cl *ContextLogger) Info(msg string, fields ...zap.Field)  { cl.enriched().Info(msg, fields...) }
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field)  { cl.enriched().Warn(msg, fields...) }
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.enriched().Error(msg, fields...) }

// Zap returns the enriched *zap.Logger
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.enriched()
}
