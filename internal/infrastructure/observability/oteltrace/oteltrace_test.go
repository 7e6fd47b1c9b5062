package oteltrace

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const traceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func TestInstallPropagator_ExtractsTraceparent(t *testing.T) {
	InstallPropagator()

	h := http.Header{}
	h.Set("traceparent", traceparent)
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(h))

	sc := trace.SpanContextFromContext(ctx)
	require.True(t, sc.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
	assert.True(t, sc.IsRemote())
}

func TestTracer_ChildKeepsParentTrace(t *testing.T) {
	p := InstallPropagator()

	h := http.Header{}
	h.Set("traceparent", traceparent)
	parent := p.Extract(context.Background(), propagation.HeaderCarrier(h))

	ctx, span := New("").Start(parent, "UC.ListItems")
	defer span.End()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", trace.SpanContextFromContext(ctx).TraceID().String())
}
