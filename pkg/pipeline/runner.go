package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/render"
)

// Runner executes layout operations and renders behind a result cache. The
// CLI and the HTTP server share it. A Runner holds no per-call state and
// may be used from several goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to every cache entry the runner writes.
	TTL time.Duration
}

// NewRunner returns a runner writing entries with [DefaultTTL]. A nil
// cache disables caching, a nil keyer selects [cache.DefaultKeyer] and a
// nil logger selects log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Load reads a layout file. The format follows the file extension.
func (r *Runner) Load(ctx context.Context, path string) (grid.Layout, error) {
	start := time.Now()
	l, err := layoutio.ReadFile(path)
	observability.Pipeline().OnLoadComplete(ctx, path, len(l), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded layout", "path", path, "widgets", len(l))
	return l, nil
}

// Execute validates l, applies the operation and renders the requested
// formats, with caching.
func (r *Runner) Execute(ctx context.Context, l grid.Layout, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := grid.Validate(l, opts.Grid.Columns); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Apply
	applyStart := time.Now()
	observability.Pipeline().OnOperationStart(ctx, opts.Operation, len(l))
	out, hit, err := r.ApplyWithCacheInfo(ctx, l, opts)
	observability.Pipeline().OnOperationComplete(ctx, opts.Operation, len(l), time.Since(applyStart), err)
	if err != nil {
		return nil, err
	}
	result.Layout = out
	result.Changed = Changed(l, out)
	result.Stats.ApplyTime = time.Since(applyStart)
	result.Stats.Widgets = len(out)
	result.Stats.Changed = len(result.Changed)
	result.CacheInfo.LayoutHit = hit

	m := opts.Grid.Metrics()
	result.Rects = make([]grid.Rect, len(out))
	for i, w := range out {
		result.Rects[i] = m.WidgetRect(w)
	}
	result.Height = grid.ContainerHeight(out, m.RowHeight, m.Padding)

	r.Logger.Info("applied operation",
		"op", describe(opts),
		"widgets", len(out),
		"changed", len(result.Changed),
		"duration", result.Stats.ApplyTime)

	// Stage 2: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, out, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered", "formats", opts.Formats, "cached", hit, "duration", result.Stats.RenderTime)

	return result, nil
}

// ApplyWithCacheInfo runs the operation with caching and returns cache hit
// info.
func (r *Runner) ApplyWithCacheInfo(ctx context.Context, l grid.Layout, opts Options) (grid.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hash, err := layoutHash(l)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached grid.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KindLayout)
				return cached, true, nil
			}
			// undecodable entries are recomputed and overwritten
		}
		observability.Cache().OnCacheMiss(ctx, cache.KindLayout)
	}

	out, err := Apply(l, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KindLayout, len(data))
		}
	}
	return out, false, nil
}

// Apply runs the operation without caching.
func Apply(l grid.Layout, opts Options) (grid.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.WidgetID != "" && opts.Operation != OpNone && opts.Operation != OpCompact {
		if _, ok := l.Find(opts.WidgetID); !ok {
			return nil, errors.New(errors.ErrCodeWidgetNotFound, "no widget with id %q", opts.WidgetID)
		}
	}

	e := grid.NewEngine(opts.Logger)
	e.Columns = opts.Grid.Columns
	e.MaxCascadeDepth = opts.Grid.MaxCascadeDepth
	packing := opts.Grid.PackingMode()

	switch opts.Operation {
	case OpCompact:
		return e.Compact(l)
	case OpMove:
		out, err := e.MoveElement(l, opts.WidgetID, opts.X, opts.Y, opts.MoveOptions())
		if err != nil || packing != grid.PackingOn {
			return out, err
		}
		return e.Compact(out)
	case OpResize:
		return e.Resize(l, opts.WidgetID, opts.Width, opts.Height, packing)
	case OpRemove:
		return e.Remove(l, opts.WidgetID, packing)
	}
	return l.Clone(), nil
}

// RenderWithCacheInfo renders every requested format with caching and
// returns whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l grid.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hash, err := layoutHash(l)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(hash, opts.RenderKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, cache.KindRender)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, cache.KindRender)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := render.RenderAll(l, missing, render.Options{Metrics: opts.Grid.Metrics()})
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.RenderKey(hash, opts.RenderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cache.KindRender, len(data))
	}
	return artifacts, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// layoutHash identifies l in cache keys.
func layoutHash(l grid.Layout) (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("hash layout: %w", err)
	}
	return cache.Hash(data), nil
}
