// Package otel provides OpenTelemetry instrumentation utilities shared by the sync and API layers.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by sync and API spans
const (
	AttrCourseID    = attribute.Key("course.id")
	AttrGroupID     = attribute.Key("group.id")
	AttrRunID       = attribute.Key("sync.run_id")
	AttrOutcome     = attribute.Key("sync.outcome")
	AttrAttempts    = attribute.Key("sync.attempts")
	AttrRPCMethod   = attribute.Key("rpc.method")
	AttrResultCount = attribute.Key("result.count")
)

// StartSpan starts name on tracer. With a nil tracer it returns ctx and the span
// already in ctx, which is a no-op span when tracing is off.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError marks span as failed. The error text goes to the exception event
// only; the status keeps a fixed description so connection strings and SQL
// never end up in status fields.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, failedStatus)
}

const failedStatus = "operation failed"
