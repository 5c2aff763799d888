package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingHooks turns hook events into OpenTelemetry spans. Events arrive
// after the fact with a duration, so each span is back-dated to its start.
//
// Cache events have no duration and are attached to the span found in ctx.
type TracingHooks struct {
	tracer trace.Tracer
}

// NewTracingHooks creates hooks that record spans with tracer.
func NewTracingHooks(tracer trace.Tracer) *TracingHooks {
	return &TracingHooks{tracer: tracer}
}

func (h *TracingHooks) OnCompact(widgets, displaced int, duration time.Duration, err error) {
	h.record(context.Background(), "grid.compact", duration, err,
		attribute.Int("grid.widgets", widgets),
		attribute.Int("grid.displaced", displaced))
}

func (h *TracingHooks) OnMove(id string, steps int, duration time.Duration, err error) {
	h.record(context.Background(), "grid.move", duration, err,
		attribute.String("grid.widget_id", id),
		attribute.Int("grid.cascade_steps", steps))
}

func (h *TracingHooks) OnCascadeAbort(id string, depth, steps int) {
	_, span := h.tracer.Start(context.Background(), "grid.cascade_abort", trace.WithAttributes(
		attribute.String("grid.widget_id", id),
		attribute.Int("grid.cascade_depth", depth),
		attribute.Int("grid.cascade_steps", steps)))
	span.SetStatus(codes.Error, "cascade limit exceeded")
	span.End()
}

func (h *TracingHooks) OnLoadComplete(ctx context.Context, source string, widgets int, duration time.Duration, err error) {
	h.record(ctx, "pipeline.load", duration, err,
		attribute.String("pipeline.source", source),
		attribute.Int("grid.widgets", widgets))
}

func (h *TracingHooks) OnOperationStart(ctx context.Context, op string, widgets int) {
	trace.SpanFromContext(ctx).AddEvent("operation.start", trace.WithAttributes(
		attribute.String("pipeline.operation", op),
		attribute.Int("grid.widgets", widgets)))
}

func (h *TracingHooks) OnOperationComplete(ctx context.Context, op string, widgets int, duration time.Duration, err error) {
	h.record(ctx, "pipeline."+op, duration, err, attribute.Int("grid.widgets", widgets))
}

func (h *TracingHooks) OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error) {
	h.record(ctx, "pipeline.render", duration, err, attribute.StringSlice("pipeline.formats", formats))
}

func (h *TracingHooks) OnCacheHit(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.hit", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *TracingHooks) OnCacheMiss(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.miss", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *TracingHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	trace.SpanFromContext(ctx).AddEvent("cache.set", trace.WithAttributes(
		attribute.String("cache.key_type", keyType),
		attribute.Int("cache.size", size)))
}

func (h *TracingHooks) OnRequest(ctx context.Context, method, path string) {
	trace.SpanFromContext(ctx).AddEvent("http.request", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path)))
}

func (h *TracingHooks) OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	var err error
	if statusCode >= 500 {
		err = fmt.Errorf("status %d", statusCode)
	}
	h.record(ctx, "http "+method+" "+path, duration, err,
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.Int("http.status_code", statusCode))
}

func (h *TracingHooks) record(ctx context.Context, name string, duration time.Duration, err error, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, name,
		trace.WithTimestamp(end.Add(-duration)),
		trace.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(end))
}

var (
	_ EngineHooks   = (*TracingHooks)(nil)
	_ PipelineHooks = (*TracingHooks)(nil)
	_ CacheHooks    = (*TracingHooks)(nil)
	_ HTTPHooks     = (*TracingHooks)(nil)
)
