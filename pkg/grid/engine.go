package grid

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

// DefaultMaxCascadeDepth bounds the recursion depth of a single placement.
// Layouts that need more than this many nested displacements are treated
// as pathological and the placement is aborted.
const DefaultMaxCascadeDepth = 1024

// Engine runs layout operations. The zero value is not usable; create one
// with [NewEngine]. An Engine holds no layout state and is safe for
// concurrent use.
type Engine struct {
	// MaxCascadeDepth bounds the recursion depth of a placement cascade.
	MaxCascadeDepth int

	// Columns caps widget widths in [Engine.Resize]. Zero disables the cap.
	Columns int

	Logger *log.Logger

	newID func() string
}

// NewEngine creates an engine with default limits. A nil logger discards
// output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{
		MaxCascadeDepth: DefaultMaxCascadeDepth,
		Logger:          logger,
		newID:           uuid.NewString,
	}
}

var defaultEngine = NewEngine(nil)

// Compact runs [Engine.Compact] on a default engine.
func Compact(l Layout) (Layout, error) {
	return defaultEngine.Compact(l)
}

// MoveElement runs [Engine.MoveElement] on a default engine.
func MoveElement(l Layout, id string, x, y *int, opts MoveOptions) (Layout, error) {
	return defaultEngine.MoveElement(l, id, x, y, opts)
}

// Compact removes vertical gaps. Movable widgets are visited top to bottom,
// left to right, and each is pulled up until it would collide with a fixed
// widget or one already settled. Output order matches input order.
//
// The only error is [errors.ErrCodeUnplaceable], returned with an unchanged
// copy of l when a widget would have to be placed below an auto-height
// widget.
func (e *Engine) Compact(l Layout) (Layout, error) {
	start := time.Now()
	out, displaced, err := compact(l)
	observability.Engine().OnCompact(len(l), displaced, time.Since(start), err)
	if err != nil {
		e.Logger.Warn("compaction aborted", "err", err)
		return l.Clone(), err
	}
	e.Logger.Debug("compacted layout", "widgets", len(l), "displaced", displaced)
	return out, nil
}

func compact(l Layout) (Layout, int, error) {
	out := l.Clone()
	items := pointers(out)

	settled := make([]*Widget, 0, len(items))
	for _, w := range items {
		if w.Fixed {
			settled = append(settled, w)
		}
	}

	displaced := 0
	for _, w := range sortedByRowCol(items) {
		if w.Fixed {
			continue
		}
		before := w.Y
		if err := compactItem(settled, w); err != nil {
			return nil, displaced, err
		}
		if w.Y != before {
			displaced++
		}
		settled = append(settled, w)
	}
	return out, displaced, nil
}

// compactItem moves w up while it fits, then down past anything it still
// overlaps.
func compactItem(settled []*Widget, w *Widget) error {
	w.Y = max(w.Y, 0)
	for w.Y > 0 && firstCollision(settled, w) == nil {
		w.Y--
	}
	for {
		c := firstCollision(settled, w)
		if c == nil {
			return nil
		}
		bottom, ok := c.Bottom()
		if !ok {
			return errors.New(errors.ErrCodeUnplaceable,
				"widget %q cannot be placed below auto-height widget %q", w.ID, c.ID)
		}
		w.Y = bottom
	}
}

func pointers(l Layout) []*Widget {
	p := make([]*Widget, len(l))
	for i := range l {
		p[i] = &l[i]
	}
	return p
}
