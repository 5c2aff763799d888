package grid

import "slices"

// Widget is one positioned, sized rectangle on the dashboard grid.
// Positions and sizes are in grid units (columns horizontally, rows
// vertically).
type Widget struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// AutoHeight marks a placeholder whose height extends without bound.
	// Height is ignored while it is set.
	AutoHeight bool `json:"auto_height,omitempty" yaml:"auto_height,omitempty"`

	// Size bounds. Zero means "use the default": 1 for minimums, the
	// column count for MaxWidth and unbounded for MaxHeight.
	MinWidth  int `json:"min_width,omitempty" yaml:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty" yaml:"min_height,omitempty"`
	MaxWidth  int `json:"max_width,omitempty" yaml:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty" yaml:"max_height,omitempty"`

	// Fixed widgets are never moved by compaction or cascades.
	Fixed bool `json:"fixed,omitempty" yaml:"fixed,omitempty"`

	// Draggable and Resizable are consumed by the board, not the engine.
	// A nil value means true.
	Draggable *bool `json:"draggable,omitempty" yaml:"draggable,omitempty"`
	Resizable *bool `json:"resizable,omitempty" yaml:"resizable,omitempty"`
}

// IsDraggable reports whether the widget accepts drag gestures.
func (w Widget) IsDraggable() bool {
	return !w.Fixed && (w.Draggable == nil || *w.Draggable)
}

// IsResizable reports whether the widget accepts resize gestures.
func (w Widget) IsResizable() bool {
	return !w.Fixed && (w.Resizable == nil || *w.Resizable)
}

// Bottom returns the first row below the widget. The second result is
// false for auto-height widgets, which have no bottom edge.
func (w Widget) Bottom() (int, bool) {
	if w.AutoHeight {
		return 0, false
	}
	return w.Y + w.Height, true
}

// Right returns the first column right of the widget.
func (w Widget) Right() int { return w.X + w.Width }

// Layout is an ordered collection of widgets.
type Layout []Widget

// Clone returns a copy of the layout that shares no widget storage
// with l.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}

// Find returns the widget with the given id.
func (l Layout) Find(id string) (Widget, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Widget{}, false
}

// Index returns the position of the widget with the given id, or -1.
func (l Layout) Index(id string) int {
	return slices.IndexFunc(l, func(w Widget) bool { return w.ID == id })
}

// IDs returns the widget ids in layout order.
func (l Layout) IDs() []string {
	ids := make([]string, len(l))
	for i, w := range l {
		ids[i] = w.ID
	}
	return ids
}

// Without returns a copy of l with the widget id removed.
func (l Layout) Without(id string) Layout {
	out := make(Layout, 0, len(l))
	for _, w := range l {
		if w.ID != id {
			out = append(out, w)
		}
	}
	return out
}

// Bottom returns the lowest occupied row of the layout: the maximum
// y+height over all widgets. Auto-height widgets contribute their top row.
func Bottom(l Layout) int {
	var maxY int
	for _, w := range l {
		b, ok := w.Bottom()
		if !ok {
			b = w.Y
		}
		if b > maxY {
			maxY = b
		}
	}
	return maxY
}

// Coord returns a pointer to v, for use as an optional move target.
func Coord(v int) *int { return &v }

// Bool returns a pointer to v, for use in Draggable and Resizable.
func Bool(v bool) *bool { return &v }

// ClampSize applies the widget's size bounds to a requested width and
// height. columns caps the width when the widget has no MaxWidth.
func ClampSize(w Widget, width, height, columns int) (int, int) {
	minW, minH := max(w.MinWidth, 1), max(w.MinHeight, 1)
	maxW := w.MaxWidth
	if maxW <= 0 {
		maxW = columns
	}
	if maxW > 0 && width > maxW {
		width = maxW
	}
	if width < minW {
		width = minW
	}
	if w.MaxHeight > 0 && height > w.MaxHeight {
		height = w.MaxHeight
	}
	if height < minH {
		height = minH
	}
	return width, height
}
