package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("competition-engine/internal/interfaces/httpapi")

// startSpan opens a handler span under the otelhttp server span. Requests on
// filtered routes (health probes) carry no valid parent, and then no span is
// created at all; a root span per helper call would be noise.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name)
}
