package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProduceOperation tracks a single producer call.
type ProduceOperation struct {
	Module    string
	Service   string
	Lifetime  string
	StartTime time.Time

	ctx     context.Context
	span    trace.Span
	metrics *Metrics
}

// StartProduce opens a "di.produce" span on tracer and starts timing.
// A nil tracer falls back to the global registry tracer; nil metrics are skipped.
func StartProduce(ctx context.Context, tracer trace.Tracer, metrics *Metrics, module, service, lifetime string) (context.Context, *ProduceOperation) {
	attrs := trace.WithAttributes(
		attribute.String(AttrModule, module),
		attribute.String(AttrService, service),
		attribute.String(AttrLifetime, lifetime),
	)
	var span trace.Span
	if tracer == nil {
		ctx, span = StartSpan(ctx, SpanProduce, attrs)
	} else {
		ctx, span = tracer.Start(ctx, SpanProduce, attrs)
	}
	return ctx, &ProduceOperation{
		Module:    module,
		Service:   service,
		Lifetime:  lifetime,
		StartTime: time.Now(),
		ctx:       ctx,
		span:      span,
		metrics:   metrics,
	}
}

// End closes the span with its outcome and records the producer duration.
func (op *ProduceOperation) End(err error) {
	duration := op.Duration()

	outcome := OutcomeProduced
	if err != nil {
		outcome = OutcomeFailed
		SetSpanError(op.ctx, err)
		op.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	op.span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()

	op.metrics.RecordProduce(op.ctx, op.Module, op.Service, duration)
}

// Duration returns the elapsed time since the operation started.
func (op *ProduceOperation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
