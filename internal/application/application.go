// Package application holds the use-case instrumentation shared by every service.
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/plantbay/internal/observability"
	"github.com/Zhima-Mochi/plantbay/internal/observability/logctx"
)

const spanPrefix = "UC."

// Instrumentation holds the tracer, base logger and RED instruments of one service.
type Instrumentation struct {
	tracer observability.Tracer
	log    observability.Logger

	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewInstrumentation(tel observability.Observability, service string) *Instrumentation {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Instrumentation{
		tracer:       tel.Tracer(),
		log:          tel.Logger().With(observability.F("service", service)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
	}
}

// Run tracks a single use-case execution from Start to End.
type Run struct {
	ctx     context.Context
	span    trace.Span
	log     observability.Logger
	inst    *Instrumentation
	useCase string
	start   time.Time

	outcome    string
	statusText string
	fields     []observability.Field
}

// Start opens the UC.<spanName> span. The returned context carries the span.
func (in *Instrumentation) Start(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *Run) {
	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := in.tracer.Start(ctx, spanPrefix+spanName, attrs...)
	return ctx, &Run{
		ctx:        ctx,
		span:       span,
		log:        logctx.FromOr(ctx, in.log).With(observability.F("use_case", useCase)),
		inst:       in,
		useCase:    useCase,
		start:      time.Now(),
		outcome:    "success",
		statusText: "OK",
	}
}

// Fail marks the run as failed with a machine-readable status.
func (r *Run) Fail(status string) {
	r.outcome, r.statusText = "error", status
}

// Status replaces the status text without changing the outcome.
func (r *Run) Status(status string) {
	r.statusText = status
}

// Annotate sets span attributes and adds the same keys to the use_case_done line.
func (r *Run) Annotate(attrs ...attribute.KeyValue) {
	if r.span != nil {
		r.span.SetAttributes(attrs...)
	}
	for _, a := range attrs {
		r.fields = append(r.fields, observability.F(string(a.Key), a.Value.Emit()))
	}
}

func (r *Run) Event(name string, attrs ...attribute.KeyValue) {
	if r.span != nil {
		r.span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

// End closes the span, records RED metrics and writes the use_case_done line.
func (r *Run) End(err error) {
	if err != nil && r.outcome == "success" {
		r.Fail("INTERNAL")
	}
	lat := time.Since(r.start).Seconds()

	if r.span != nil {
		if err != nil {
			r.span.RecordError(err)
			r.span.SetStatus(codes.Error, r.statusText)
		} else {
			r.span.SetStatus(codes.Ok, r.statusText)
		}
		r.span.End()
	}

	r.inst.reqCounter.Add(1,
		observability.L("use_case", r.useCase),
		observability.L("outcome", r.outcome),
	)
	r.inst.durHistogram.Observe(lat,
		observability.L("use_case", r.useCase),
	)

	fields := []observability.Field{
		observability.F("outcome", r.outcome),
		observability.F("status", r.statusText),
		observability.F("latency_seconds", lat),
	}
	if sc := trace.SpanContextFromContext(r.ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	fields = append(fields, r.fields...)
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}

	r.log.Info("use_case_done", fields...)
}
