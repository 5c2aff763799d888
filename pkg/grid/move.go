package grid

import (
	"slices"
	"time"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

// Packing selects how a placement treats the widgets it lands on.
type Packing uint8

const (
	// PackingDefault compares against the layout in input order and still
	// cascades displacements.
	PackingDefault Packing = iota

	// PackingOn compares against the layout sorted top to bottom (bottom to
	// top when moving up) and cascades displacements.
	PackingOn

	// PackingOff places the widget and leaves overlaps unresolved.
	PackingOff
)

// String returns the packing mode name.
func (p Packing) String() string {
	switch p {
	case PackingOn:
		return "on"
	case PackingOff:
		return "off"
	default:
		return "default"
	}
}

// PackingFor maps a boolean setting to PackingOn or PackingOff.
func PackingFor(enabled bool) Packing {
	if enabled {
		return PackingOn
	}
	return PackingOff
}

// MoveOptions controls a placement.
type MoveOptions struct {
	// UserAction marks the widget as being dragged or resized by a user.
	// Displaced widgets then prefer moving above the mover when there is
	// room.
	UserAction bool

	// PreventCollision rejects a placement that would overlap another
	// widget, unless packing is on.
	PreventCollision bool

	Packing Packing
}

// MoveElement moves the widget id to (x, y) and displaces the widgets it
// collides with. A nil coordinate leaves that axis unchanged. Coordinates
// are clamped at zero.
//
// Fixed widgets are never moved; a colliding fixed widget pushes the mover
// away instead. Unknown ids and fixed movers return an unchanged copy of l.
//
// With [PackingOn] the result has no overlapping widgets apart from a
// mover that clips the top quarter of a taller widget; see [settle].
//
// When the cascade exceeds the engine's depth or step budget, the
// placement is aborted and an unchanged copy of l is returned with an
// [errors.ErrCodeCascadeLimit] error.
func (e *Engine) MoveElement(l Layout, id string, x, y *int, opts MoveOptions) (Layout, error) {
	start := time.Now()
	out := l.Clone()
	i := out.Index(id)
	if i < 0 {
		e.Logger.Debug("move skipped: no such widget", "id", id)
		return out, nil
	}

	c := e.newCascade(out, opts.Packing)
	err := c.move(&out[i], x, y, opts.UserAction, opts.PreventCollision)
	observability.Engine().OnMove(id, c.steps, time.Since(start), err)
	if err != nil {
		e.Logger.Error("placement aborted", "id", id, "depth", c.maxDepth, "steps", c.steps, "err", err)
		observability.Engine().OnCascadeAbort(id, c.maxDepth, c.steps)
		return l.Clone(), err
	}
	if opts.Packing == PackingOn {
		if n := settle(c.items, &out[i]); n > 0 {
			e.Logger.Debug("settled displaced widgets", "id", id, "pushed", n)
		}
	}
	e.Logger.Debug("moved widget", "id", id, "x", out[i].X, "y", out[i].Y, "steps", c.steps)
	return out, nil
}

// settle removes overlaps the cascade left between displaced widgets. It
// walks the widgets top to bottom and pushes each non-fixed one below the
// first already-settled widget it overlaps. The mover and fixed widgets
// never move, and auto-height widgets are not pushed past. Overlaps with
// the mover that the top-quarter tolerance allows are kept. It returns the
// number of pushes.
func settle(items []*Widget, mover *Widget) int {
	settled := []*Widget{mover}
	for _, w := range items {
		if w.Fixed && w != mover {
			settled = append(settled, w)
		}
	}

	pushes := 0
	for _, w := range sortedByRowCol(items) {
		if w == mover || w.Fixed {
			continue
		}
		for {
			blocker := settledCollision(settled, mover, w)
			if blocker == nil {
				break
			}
			bottom, _ := blocker.Bottom()
			w.Y = bottom
			pushes++
		}
		settled = append(settled, w)
	}
	return pushes
}

func settledCollision(settled []*Widget, mover, w *Widget) *Widget {
	for _, o := range settled {
		if o.AutoHeight || !Collides(*o, *w) {
			continue
		}
		if o == mover && clipsTop(mover, w) {
			continue
		}
		return o
	}
	return nil
}

// clipsTop reports whether mover sits more than a quarter of other's
// height below other's top edge, which the cascade tolerates.
func clipsTop(mover, other *Widget) bool {
	bottom, ok := other.Bottom()
	return ok && mover.Y > other.Y && 4*(mover.Y-other.Y) > bottom-other.Y
}

// cascade is the working state of one placement. items point into the
// output layout; visited replaces a per-widget "moved" flag and is
// discarded with the cascade.
type cascade struct {
	items    []*Widget
	visited  map[string]bool
	packing  Packing
	newID    func() string
	depth    int
	maxDepth int
	steps    int
	maxSteps int
}

func (e *Engine) newCascade(l Layout, packing Packing) *cascade {
	maxDepth := e.MaxCascadeDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCascadeDepth
	}
	return &cascade{
		items:    pointers(l),
		visited:  make(map[string]bool, len(l)),
		packing:  packing,
		newID:    e.newID,
		maxDepth: maxDepth,
		maxSteps: maxDepth * (len(l) + 1),
	}
}

func (c *cascade) move(w *Widget, x, y *int, userAction, preventCollision bool) error {
	if w.Fixed {
		return nil
	}

	c.steps++
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.maxDepth || c.steps > c.maxSteps {
		return errors.New(errors.ErrCodeCascadeLimit,
			"moving %q needed more than %d nested displacements", w.ID, c.maxDepth)
	}

	oldX, oldY := w.X, w.Y
	movingUp := y != nil && *y < w.Y

	if x != nil {
		w.X = max(*x, 0)
	}
	if y != nil {
		w.Y = max(*y, 0)
	}
	c.visited[w.ID] = true

	collisions := c.collisions(w, movingUp)

	if preventCollision && len(collisions) > 0 && c.packing != PackingOn {
		w.X, w.Y = oldX, oldY
		delete(c.visited, w.ID)
		return nil
	}

	if c.packing == PackingOff {
		return nil
	}

	for _, other := range collisions {
		if c.visited[other.ID] {
			continue
		}
		if clipsTop(w, other) {
			continue
		}

		var err error
		if other.Fixed {
			err = c.moveAway(other, w, userAction)
		} else {
			err = c.moveAway(w, other, userAction)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// collisions lists the widgets w overlaps in the order they are
// displaced. With packing on that is nearest first: top to bottom, or
// bottom to top when w is moving up.
func (c *cascade) collisions(w *Widget, movingUp bool) []*Widget {
	sorted := c.items
	if c.packing == PackingOn {
		sorted = sortedByRowCol(c.items)
		if movingUp {
			slices.Reverse(sorted)
		}
	}
	return allCollisions(sorted, w)
}

// moveAway displaces item so it no longer overlaps collidesWith. A user
// action first tries to lift item directly above collidesWith; otherwise
// item is pushed down a row at a time, cascading at every step.
func (c *cascade) moveAway(collidesWith, item *Widget, userAction bool) error {
	if userAction {
		lifted := Widget{
			ID:         c.newID(),
			X:          item.X,
			Y:          aboveOf(collidesWith, item),
			Width:      item.Width,
			Height:     item.Height,
			AutoHeight: item.AutoHeight,
		}
		if firstCollision(c.items, &lifted) == nil {
			return c.move(item, nil, &lifted.Y, false, false)
		}
	}

	for {
		next := item.Y + 1
		if err := c.move(item, nil, &next, false, false); err != nil {
			return err
		}
		if item.Fixed || collidesWith.AutoHeight || !Collides(*collidesWith, *item) {
			return nil
		}
	}
}

// aboveOf is the row that puts item's bottom edge on collidesWith's top
// edge, clamped at zero.
func aboveOf(collidesWith, item *Widget) int {
	if item.AutoHeight {
		return 0
	}
	return max(collidesWith.Y-item.Height, 0)
}
