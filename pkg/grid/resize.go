package grid

// Resize sets the size of widget id, clamped to its bounds and to the
// engine's column cap. If the widget then overlaps another, the first
// widget it overlaps (in layout order) is pushed to the row below it.
// With PackingOn the result is compacted.
//
// Unknown ids return an unchanged copy of l.
func (e *Engine) Resize(l Layout, id string, width, height int, packing Packing) (Layout, error) {
	out := l.Clone()
	i := out.Index(id)
	if i < 0 {
		e.Logger.Debug("resize skipped: no such widget", "id", id)
		return out, nil
	}

	w := &out[i]
	w.Width, w.Height = ClampSize(*w, width, height, e.Columns)
	if e.Columns > 0 && w.Right() > e.Columns {
		w.Width = max(e.Columns-w.X, max(w.MinWidth, 1))
	}

	if c, ok := FirstCollision(out, *w); ok {
		below := w.Y + w.Height
		if w.AutoHeight {
			below = w.Y + 1
		}
		var err error
		out, err = e.MoveElement(out, c.ID, nil, &below, MoveOptions{
			UserAction:       true,
			PreventCollision: true,
			Packing:          packing,
		})
		if err != nil {
			return l.Clone(), err
		}
	}

	if packing == PackingOn {
		return e.Compact(out)
	}
	return out, nil
}

// Remove deletes widget id. With PackingOn the remaining widgets are
// compacted to close the gap it leaves.
func (e *Engine) Remove(l Layout, id string, packing Packing) (Layout, error) {
	out := l.Without(id)
	if packing == PackingOn {
		return e.Compact(out)
	}
	return out, nil
}
