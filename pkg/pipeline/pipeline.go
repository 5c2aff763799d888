// Package pipeline runs layout operations end to end for the CLI and the
// HTTP API.
//
// # Architecture
//
// A run has three stages:
//
//  1. Load: read and validate a layout (from a file or a request body)
//  2. Apply: run one operation (compact, move, resize, remove) on it
//  3. Render: produce the requested output formats
//
// Apply and Render results are cached by a hash of their inputs, so
// re-running the same operation on an unchanged file is a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	l, err := runner.Load(ctx, "dashboard.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, l, pipeline.Options{
//	    Operation: pipeline.OpMove,
//	    WidgetID:  "chart",
//	    X:         grid.Coord(4),
//	    Formats:   []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/render"
)

// Operations.
const (
	OpNone    = "none"
	OpCompact = "compact"
	OpMove    = "move"
	OpResize  = "resize"
	OpRemove  = "remove"
)

// ValidOperations is the set of supported operations.
var ValidOperations = map[string]bool{
	OpNone:    true,
	OpCompact: true,
	OpMove:    true,
	OpResize:  true,
	OpRemove:  true,
}

// DefaultTTL is how long computed layouts and artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Operation string `json:"op"`
	WidgetID  string `json:"id,omitempty"`

	// Move target. A nil coordinate keeps the current value.
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`

	// Resize target.
	Width  int `json:"w,omitempty"`
	Height int `json:"h,omitempty"`

	// UserAction defaults to true: the mover is being dragged by a user.
	UserAction *bool `json:"user_action,omitempty"`

	// AllowCollision lets a move without packing overlap other widgets.
	AllowCollision bool `json:"allow_collision,omitempty"`

	Grid config.Grid `json:"grid"`

	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the layout after the operation.
	Layout grid.Layout

	// Changed lists widgets whose position or size differs from the input.
	Changed []string

	// Rects are the pixel rectangles of Layout, in order.
	Rects []grid.Rect

	// Height is the container height in pixels.
	Height float64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Widgets    int
	ApplyTime  time.Duration
	RenderTime time.Duration
	Changed    int
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool // Whether the operation result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateOperation checks that op is supported.
func ValidateOperation(op string) error {
	if !ValidOperations[op] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid operation: %q (must be one of: none, compact, move, resize, remove)", op)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Operation == "" {
		o.Operation = OpNone
	}
	if err := ValidateOperation(o.Operation); err != nil {
		return err
	}

	switch o.Operation {
	case OpMove:
		if o.WidgetID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "move requires a widget id")
		}
		if o.X == nil && o.Y == nil {
			return errors.New(errors.ErrCodeInvalidInput, "move requires x, y or both")
		}
	case OpResize:
		if o.WidgetID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "resize requires a widget id")
		}
		if o.Width < 1 || o.Height < 1 {
			return errors.New(errors.ErrCodeInvalidInput, "resize requires positive w and h, got %dx%d", o.Width, o.Height)
		}
	case OpRemove:
		if o.WidgetID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "remove requires a widget id")
		}
	}

	o.SetGridDefaults()
	if err := (config.Config{Grid: o.Grid, Cache: config.Default().Cache}).Validate(); err != nil {
		return err
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SetGridDefaults fills unset grid settings from [config.Default]. A zero
// Columns means the whole grid block was omitted, so packing defaults to on.
func (o *Options) SetGridDefaults() {
	def := config.Default().Grid
	if o.Grid.Columns == 0 {
		o.Grid.Columns = def.Columns
		o.Grid.Packing = def.Packing
	}
	if o.Grid.RowHeight == 0 {
		o.Grid.RowHeight = def.RowHeight
	}
	if o.Grid.Margin == [2]float64{} {
		o.Grid.Margin = def.Margin
	}
	if o.Grid.ContainerWidth == 0 {
		o.Grid.ContainerWidth = def.ContainerWidth
	}
	if o.Grid.MaxCascadeDepth == 0 {
		o.Grid.MaxCascadeDepth = def.MaxCascadeDepth
	}
}

// IsUserAction reports whether the move counts as a user drag.
func (o *Options) IsUserAction() bool {
	return o.UserAction == nil || *o.UserAction
}

// MoveOptions returns the engine options for a move.
func (o *Options) MoveOptions() grid.MoveOptions {
	return grid.MoveOptions{
		UserAction:       o.IsUserAction(),
		PreventCollision: !o.AllowCollision,
		Packing:          o.Grid.PackingMode(),
	}
}

// LayoutKeyOpts returns cache key options for the operation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Operation:       o.Operation,
		WidgetID:        o.WidgetID,
		Columns:         o.Grid.Columns,
		Packing:         o.Grid.PackingMode().String(),
		MaxCascadeDepth: o.Grid.MaxCascadeDepth,
	}
	switch o.Operation {
	case OpMove:
		k.X, k.Y = o.X, o.Y
		k.UserAction = o.IsUserAction()
		k.PreventCollision = !o.AllowCollision
	case OpResize:
		k.Width, k.Height = o.Width, o.Height
	}
	return k
}

// RenderKeyOpts returns cache key options for one output format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:         format,
		ContainerWidth: o.Grid.ContainerWidth,
		RowHeight:      o.Grid.RowHeight,
		Margin:         o.Grid.Margin,
		Columns:        o.Grid.Columns,
	}
}

// Changed returns the ids of widgets in next whose position or size
// differs from prev. Widgets missing from prev are not included.
func Changed(prev, next grid.Layout) []string {
	var ids []string
	for _, w := range next {
		p, ok := prev.Find(w.ID)
		if !ok {
			continue
		}
		if p.X != w.X || p.Y != w.Y || p.Width != w.Width || p.Height != w.Height || p.AutoHeight != w.AutoHeight {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func describe(o Options) string {
	switch o.Operation {
	case OpMove:
		return fmt.Sprintf("move %s to (%s,%s)", o.WidgetID, coord(o.X), coord(o.Y))
	case OpResize:
		return fmt.Sprintf("resize %s to %dx%d", o.WidgetID, o.Width, o.Height)
	case OpRemove:
		return "remove " + o.WidgetID
	}
	return o.Operation
}

func coord(v *int) string {
	if v == nil {
		return "_"
	}
	return fmt.Sprint(*v)
}
