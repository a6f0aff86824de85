package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tinyurl.local/internal/app/tinyurl"
	"tinyurl.local/internal/platform/metrics"
)

const tracerName = "tinyurl.local/internal/app/tinyurl/store"

// instrumented wraps a MappingStore with store metrics and one span per call.
// Results pass through untouched.
type instrumented struct {
	next   tinyurl.MappingStore
	tracer trace.Tracer
}

// Instrument decorates s. Ping is forwarded when s implements Pinger.
func Instrument(s tinyurl.MappingStore) tinyurl.MappingStore {
	return &instrumented{next: s, tracer: otel.Tracer(tracerName)}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Put(ctx context.Context, m tinyurl.Mapping) tinyurl.Result {
	ctx, span := i.tracer.Start(ctx, "store.put", trace.WithAttributes(
		attribute.String("tinyurl.store", i.next.Name()),
		attribute.String("tinyurl.id", m.ID),
	))
	defer span.End()

	start := time.Now()
	res := i.next.Put(ctx, m)
	i.observe(span, "put", start, res)
	return res
}

func (i *instrumented) Get(ctx context.Context, id string) tinyurl.Result {
	ctx, span := i.tracer.Start(ctx, "store.get", trace.WithAttributes(
		attribute.String("tinyurl.store", i.next.Name()),
		attribute.String("tinyurl.id", id),
	))
	defer span.End()

	start := time.Now()
	res := i.next.Get(ctx, id)
	i.observe(span, "get", start, res)
	return res
}

func (i *instrumented) Ping(ctx context.Context) error {
	p, ok := i.next.(Pinger)
	if !ok {
		return nil
	}
	return p.Ping(ctx)
}

func (i *instrumented) observe(span trace.Span, op string, start time.Time, res tinyurl.Result) {
	name := i.next.Name()
	metrics.StoreDurationSeconds.WithLabelValues(name, op).Observe(time.Since(start).Seconds())
	metrics.StoreOperations.WithLabelValues(name, op, res.Outcome.String()).Inc()

	span.SetAttributes(attribute.String("tinyurl.outcome", res.Outcome.String()))
	if res.Failure != nil {
		span.SetAttributes(
			attribute.Int("tinyurl.failure.code", res.Failure.Code),
			attribute.String("tinyurl.failure.name", res.Failure.Name),
		)
		span.SetStatus(codes.Error, res.Failure.Error())
	}
}
