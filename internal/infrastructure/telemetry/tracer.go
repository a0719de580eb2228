package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer for service spans
type Tracer struct {
	tracer trace.Tracer
	name   string
}

// NewTracer creates a tracer on the global provider
func NewTracer(name string) *Tracer {
	return NewTracerWithProvider(otel.GetTracerProvider(), name)
}

// NewTracerWithProvider creates a tracer on an explicit provider
func NewTracerWithProvider(tp trace.TracerProvider, name string) *Tracer {
	return &Tracer{
		tracer: tp.Tracer(name),
		name:   name,
	}
}

// StartServiceSpan starts a span for service operations
func (t *Tracer) StartServiceSpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("%s.%s", service, operation)

	base := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}

	return t.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(append(base, attrs...)...),
	)
}

// WithSpanError is a helper to record errors and set span status
func WithSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
