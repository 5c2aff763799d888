// Package observability lets callers watch the layout engine, the
// pipeline, the cache and the HTTP API without those packages depending
// on a telemetry backend.
//
// Each area exposes a small hooks interface. Packages report events
// through the current registration ([Engine], [Pipeline], [Cache],
// [HTTP]); by default every registration is a no-op. A binary swaps in
// real hooks once at startup, typically [NewTracingHooks]:
//
//	tracing := observability.NewTracingHooks(provider.Tracer("dashgrid"))
//	observability.SetEngineHooks(tracing)
//	observability.SetPipelineHooks(tracing)
//
// and the engine reports through them:
//
//	observability.Engine().OnCompact(len(l), displaced, time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// EngineHooks receives events from the grid engine. Engine operations are
// synchronous and take no context.
type EngineHooks interface {
	// OnCompact reports a compaction pass; displaced counts widgets whose
	// row changed.
	OnCompact(widgets, displaced int, duration time.Duration, err error)
	// OnMove reports a placement; steps counts every recursive placement
	// of the cascade, the initial one included.
	OnMove(id string, steps int, duration time.Duration, err error)
	// OnCascadeAbort reports a placement stopped by the cascade guard.
	OnCascadeAbort(id string, depth, steps int)
}

// PipelineHooks receives events from pipeline stages.
type PipelineHooks interface {
	OnLoadComplete(ctx context.Context, source string, widgets int, duration time.Duration, err error)
	OnOperationStart(ctx context.Context, op string, widgets int)
	OnOperationComplete(ctx context.Context, op string, widgets int, duration time.Duration, err error)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives pipeline cache lookups. kind is "layout" or "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives one OnRequest and one OnResponse per API request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type (
	NoopEngineHooks   struct{}
	NoopPipelineHooks struct{}
	NoopCacheHooks    struct{}
	NoopHTTPHooks     struct{}
)

func (NoopEngineHooks) OnCompact(int, int, time.Duration, error) {}
func (NoopEngineHooks) OnMove(string, int, time.Duration, error) {}
func (NoopEngineHooks) OnCascadeAbort(string, int, int)          {}

func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnOperationStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}
func (NoopPipelineHooks) OnOperationComplete(context.Context, string, int, time.Duration, error) {
}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one registration. Loads are lock-free so hot paths in the
// engine pay a single atomic read.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	s := &slot[T]{noop: noop}
	s.reset()
	return s
}

func (s *slot[T]) get() T {
	return *s.p.Load()
}

func (s *slot[T]) set(h T, isNil bool) {
	if !isNil {
		s.p.Store(&h)
	}
}

func (s *slot[T]) reset() {
	noop := s.noop
	s.p.Store(&noop)
}

var (
	engineSlot   = newSlot[EngineHooks](NoopEngineHooks{})
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetEngineHooks registers h for engine events. A nil h is ignored.
func SetEngineHooks(h EngineHooks) { engineSlot.set(h, h == nil) }

// SetPipelineHooks registers h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h, h == nil) }

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h, h == nil) }

// SetHTTPHooks registers h for API events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h, h == nil) }

func Engine() EngineHooks     { return engineSlot.get() }
func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores every registration to its no-op. Tests call it in
// cleanup after installing recorders.
func Reset() {
	engineSlot.reset()
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
