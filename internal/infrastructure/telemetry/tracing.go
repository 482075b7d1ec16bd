package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer used for application spans.
const TracerName = "nsnodes-backend"

// Span attribute keys used by the application services.
const (
	SpanAttrSource      = "event.source"
	SpanAttrTag         = "event.tag"
	SpanAttrTimezone    = "event.timezone"
	SpanAttrResultCount = "result.count"
	SpanAttrTotal       = "result.total"
	SpanAttrSocietyID   = "society.id"
	SpanAttrMatchTerm   = "society.match_term"
)

// SpanOption is a function that configures span start options
type SpanOption func(*spanOptions)

type spanOptions struct {
	attributes []attribute.KeyValue
	kind       trace.SpanKind
}

// WithAttribute adds an attribute to the span
func WithAttribute(key string, value interface{}) SpanOption {
	return func(opts *spanOptions) {
		opts.attributes = append(opts.attributes, toAttribute(key, value))
	}
}

// WithSpanKind sets the span kind
func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(opts *spanOptions) {
		opts.kind = kind
	}
}

// StartSpan starts a new span with the given name using the global provider.
// The caller must end the returned span.
//
//	ctx, span := telemetry.StartSpan(ctx, "events.list")
//	defer span.End()
func StartSpan(ctx context.Context, spanName string, opts ...SpanOption) (context.Context, trace.Span) {
	options := &spanOptions{
		kind: trace.SpanKindInternal,
	}
	for _, opt := range opts {
		opt(options)
	}

	startOpts := []trace.SpanStartOption{
		trace.WithSpanKind(options.kind),
	}
	if len(options.attributes) > 0 {
		startOpts = append(startOpts, trace.WithAttributes(options.attributes...))
	}

	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, spanName, startOpts...)
}

// StartServiceSpan starts a span named {service}.{method}, e.g. "event_service.list_events".
func StartServiceSpan(ctx context.Context, service, method string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("%s.%s", service, method), opts...)
}

// SetAttributes adds key/value pairs to an existing span. Non-string keys are skipped.
func SetAttributes(span trace.Span, keyValues ...interface{}) {
	if span == nil {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}

	span.SetAttributes(attrs...)
}

// RecordError records err on the span and marks the span status as error.
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
