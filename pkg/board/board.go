package board

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Phase is the stage of a pointer gesture.
type Phase uint8

const (
	PhaseStart Phase = iota // pointer down
	PhaseMove               // pointer moved
	PhaseEnd                // pointer released
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	}
	return "unknown"
}

// Area is a gesture target in grid units.
type Area struct {
	ID     string
	X, Y   int
	Width  int
	Height int
}

// Delta lists the widgets that appeared in or disappeared from the board
// since the previous change.
type Delta struct {
	Added   grid.Layout
	Removed grid.Layout
}

// Empty reports whether the delta has no entries.
func (d Delta) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Board is a dashboard's mutable layout state.
type Board struct {
	mu       sync.Mutex
	cfg      config.Grid
	engine   *grid.Engine
	logger   *log.Logger
	layout   grid.Layout
	baseline grid.Layout

	placeholder Area
	gesture     bool

	onChange func(grid.Layout)
	onResize func(containerWidth float64)
}

// Option configures a Board.
type Option func(*Board)

// WithOnChange registers a callback for every committed layout change.
func WithOnChange(fn func(grid.Layout)) Option {
	return func(b *Board) { b.onChange = fn }
}

// WithOnResize registers a callback for container width changes.
func WithOnResize(fn func(containerWidth float64)) Option {
	return func(b *Board) { b.onResize = fn }
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithEngine overrides the layout engine.
func WithEngine(e *grid.Engine) Option {
	return func(b *Board) { b.engine = e }
}

// New creates an empty board.
func New(cfg config.Grid, opts ...Option) *Board {
	b := &Board{cfg: cfg}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if b.engine == nil {
		b.engine = grid.NewEngine(b.logger)
		b.engine.Columns = cfg.Columns
		if cfg.MaxCascadeDepth > 0 {
			b.engine.MaxCascadeDepth = cfg.MaxCascadeDepth
		}
	}
	return b
}

// SetWidgets replaces the layout with widgets supplied from outside the
// board, compacting them when packing is on. The returned delta is
// relative to the widgets the board held before.
func (b *Board) SetWidgets(widgets grid.Layout) (Delta, error) {
	if err := grid.Validate(widgets, 0); err != nil {
		return Delta{}, err
	}

	b.mu.Lock()
	next := widgets.Clone()
	if b.packing() == grid.PackingOn {
		var err error
		if next, err = b.engine.Compact(next); err != nil {
			b.mu.Unlock()
			return Delta{}, err
		}
	}
	b.layout = next
	d := b.reconcile()
	b.mu.Unlock()

	b.logger.Debug("widgets set", "widgets", len(next), "added", len(d.Added), "removed", len(d.Removed))
	return d, nil
}

// Add places a new widget. An empty id is replaced with a generated one.
// With packing on the widget is inserted at its position, displacing
// anything it lands on, and the layout is compacted.
func (b *Board) Add(w grid.Widget) (string, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	b.mu.Lock()
	if b.layout.Index(w.ID) >= 0 {
		b.mu.Unlock()
		return "", errors.New(errors.ErrCodeInvalidLayout, "widget %q already exists", w.ID)
	}
	w.Width, w.Height = grid.ClampSize(w, w.Width, w.Height, b.cfg.Columns)
	if err := grid.Validate(grid.Layout{w}, b.cfg.Columns); err != nil {
		b.mu.Unlock()
		return "", err
	}

	next := append(b.layout.Clone(), w)
	if p := b.packing(); p == grid.PackingOn {
		moved, err := b.engine.MoveElement(next, w.ID, &w.X, &w.Y, grid.MoveOptions{Packing: p})
		if err == nil {
			next, err = b.engine.Compact(moved)
		}
		if err != nil {
			b.mu.Unlock()
			return "", err
		}
	}
	b.layout = next
	b.reconcile()
	notify := b.onChange
	b.mu.Unlock()

	b.logger.Debug("widget added", "id", w.ID)
	b.notify(notify, next)
	return w.ID, nil
}

// Drag moves widget a.ID to (a.X, a.Y). X is clamped so the widget stays
// inside the columns; width and height in a are ignored. PhaseStart and
// PhaseMove update the placeholder; PhaseMove and PhaseEnd commit the
// layout and fire the change callback. Unknown and non-draggable widgets
// are ignored.
func (b *Board) Drag(phase Phase, a Area) error {
	b.mu.Lock()
	item, ok := b.layout.Find(a.ID)
	if !ok || !item.IsDraggable() {
		b.mu.Unlock()
		return nil
	}

	if cols := b.cfg.Columns; cols > 0 {
		a.X = min(a.X, cols-item.Width)
	}
	packing := b.packing()
	next, err := b.engine.MoveElement(b.layout, a.ID, &a.X, &a.Y, grid.MoveOptions{
		UserAction:       true,
		PreventCollision: true,
		Packing:          packing,
	})
	if err == nil && packing == grid.PackingOn {
		next, err = b.engine.Compact(next)
	}
	if err != nil {
		b.mu.Unlock()
		return err
	}

	placed, _ := next.Find(a.ID)
	if phase == PhaseStart || phase == PhaseMove {
		b.placeholder = Area{ID: a.ID, X: placed.X, Y: placed.Y, Width: placed.Width, Height: placed.Height}
	}
	if phase == PhaseMove {
		b.gesture = true
	}

	var notify func(grid.Layout)
	if phase == PhaseMove || phase == PhaseEnd {
		b.layout = next
		b.reconcile()
		notify = b.onChange
	}
	if phase == PhaseEnd {
		b.gesture = false
	}
	b.mu.Unlock()

	b.logger.Debug("drag", "phase", phase, "id", a.ID, "x", placed.X, "y", placed.Y)
	b.notify(notify, next)
	return nil
}

// DragPixels is [Board.Drag] with the target given as the widget's pixel
// offset inside the container.
func (b *Board) DragPixels(phase Phase, id string, px, py float64) error {
	b.mu.Lock()
	item, ok := b.layout.Find(id)
	m := b.metrics()
	b.mu.Unlock()
	if !ok {
		return nil
	}
	x, y := m.PixelToGridPosition(px, py, item.Width, item.Height)
	return b.Drag(phase, Area{ID: id, X: x, Y: y})
}

// Resize sets the position and size of widget a.ID. Sizes are clamped to
// the widget's bounds; the first widget the result overlaps is pushed
// below it, then the layout is compacted when packing. PhaseStart only
// marks the gesture; PhaseMove and PhaseEnd commit.
func (b *Board) Resize(phase Phase, a Area) error {
	b.mu.Lock()
	item, ok := b.layout.Find(a.ID)
	if !ok || !item.IsResizable() {
		b.mu.Unlock()
		return nil
	}

	if phase == PhaseStart || phase == PhaseMove {
		b.gesture = true
	}
	if phase == PhaseStart {
		b.mu.Unlock()
		return nil
	}

	current := b.layout.Clone()
	i := current.Index(a.ID)
	current[i].X, current[i].Y = max(a.X, 0), max(a.Y, 0)
	next, err := b.engine.Resize(current, a.ID, a.Width, a.Height, b.packing())
	if err != nil {
		b.mu.Unlock()
		return err
	}

	resized, _ := next.Find(a.ID)
	b.placeholder = Area{ID: a.ID, X: resized.X, Y: resized.Y, Width: resized.Width, Height: resized.Height}
	b.layout = next
	b.reconcile()
	notify := b.onChange
	if phase == PhaseEnd {
		b.gesture = false
	}
	b.mu.Unlock()

	b.logger.Debug("resize", "phase", phase, "id", a.ID, "width", resized.Width, "height", resized.Height)
	b.notify(notify, next)
	return nil
}

// Remove deletes widget id and compacts when packing. Unknown ids are
// ignored.
func (b *Board) Remove(id string) error {
	b.mu.Lock()
	if b.layout.Index(id) < 0 {
		b.mu.Unlock()
		return nil
	}
	next, err := b.engine.Remove(b.layout, id, b.packing())
	if err != nil {
		b.mu.Unlock()
		return err
	}
	b.layout = next
	b.reconcile()
	notify := b.onChange
	b.mu.Unlock()

	b.logger.Debug("widget removed", "id", id)
	b.notify(notify, next)
	return nil
}

// SetContainerWidth updates the pixel width used for geometry and fires
// the resize callback.
func (b *Board) SetContainerWidth(width float64) {
	b.mu.Lock()
	changed := b.cfg.ContainerWidth != width
	b.cfg.ContainerWidth = width
	notify := b.onResize
	b.mu.Unlock()

	if changed && notify != nil {
		notify(width)
	}
}

// Layout returns a copy of the current layout.
func (b *Board) Layout() grid.Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout.Clone()
}

// Baseline returns the widgets the board has seen, in first-seen order.
func (b *Board) Baseline() grid.Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.baseline.Clone()
}

// Config returns the board's grid settings.
func (b *Board) Config() config.Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}

// Metrics returns the pixel metrics for the current container width.
func (b *Board) Metrics() grid.Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metrics()
}

// Rects returns the pixel rectangle of every widget in layout order.
func (b *Board) Rects() []grid.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.metrics()
	rects := make([]grid.Rect, len(b.layout))
	for i, w := range b.layout {
		rects[i] = m.WidgetRect(w)
	}
	return rects
}

// Height returns the container height in pixels.
func (b *Board) Height() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grid.ContainerHeight(b.layout, b.cfg.RowHeight, b.cfg.Margin)
}

// Placeholder returns where the widget under the current gesture will
// land. ok is false when no drag or resize is in progress.
func (b *Board) Placeholder() (a Area, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.placeholder, b.gesture
}

func (b *Board) packing() grid.Packing {
	return b.cfg.PackingMode()
}

func (b *Board) metrics() grid.Metrics {
	return b.cfg.Metrics()
}

// reconcile folds additions and removals into the baseline. Callers hold
// b.mu.
func (b *Board) reconcile() Delta {
	d := Delta{
		Added:   grid.Added(b.baseline, b.layout),
		Removed: grid.Removed(b.baseline, b.layout),
	}
	if len(d.Removed) > 0 {
		gone := make(map[string]bool, len(d.Removed))
		for _, w := range d.Removed {
			gone[w.ID] = true
		}
		b.baseline = slices.DeleteFunc(b.baseline, func(w grid.Widget) bool { return gone[w.ID] })
	}
	b.baseline = append(b.baseline, d.Added...)
	return d
}

func (b *Board) notify(fn func(grid.Layout), l grid.Layout) {
	if fn != nil {
		fn(l.Clone())
	}
}
