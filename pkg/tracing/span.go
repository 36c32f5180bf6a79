package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan creates a span from a context with `operationName` name
func StartSpan(
	ctx context.Context,
	tracerName string,
	operationName string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, operationName, opts...)
}

// Span executes function doFn inside new span with `operationName` name and hooking as child to a span found within given context if any.
func Span(
	ctx context.Context,
	tracerName string,
	operationName string,
	doFn func(context.Context, trace.Span),
	opts ...trace.SpanStartOption,
) {
	ctx, span := StartSpan(ctx, tracerName, operationName, opts...)
	defer span.End()
	doFn(ctx, span)
}

// Span1 is Span for functions returning a value.
func Span1[T any](
	ctx context.Context,
	tracerName string,
	operationName string,
	doFn func(context.Context, trace.Span) T,
	opts ...trace.SpanStartOption,
) T {
	ctx, span := StartSpan(ctx, tracerName, operationName, opts...)
	defer span.End()
	return doFn(ctx, span)
}
