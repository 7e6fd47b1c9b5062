// Package oteltrace adapts the OpenTelemetry API to the observability.Tracer port.
package oteltrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

const defaultInstrumentation = "plantbay"

type tracer struct{ t trace.Tracer }

// New returns a tracer named after the service. Spans stay non-recording until a
// TracerProvider is installed with otel.SetTracerProvider, but parent contexts still flow.
func New(service string) observability.Tracer {
	if service == "" {
		service = defaultInstrumentation
	}
	return &tracer{t: otel.Tracer(service)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// InstallPropagator sets the global propagator to W3C trace context plus baggage.
// The otel default is a no-op, which would drop incoming traceparent headers.
func InstallPropagator() propagation.TextMapPropagator {
	p := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	otel.SetTextMapPropagator(p)
	return p
}
