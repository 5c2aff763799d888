package grid

import (
	"cmp"
	"slices"
)

// Collides reports whether the rectangles of a and b overlap. A widget
// never collides with itself; identity is the widget id.
func Collides(a, b Widget) bool {
	if a.ID == b.ID {
		return false
	}
	if a.Right() <= b.X || a.X >= b.Right() {
		return false
	}
	if bottom, ok := a.Bottom(); ok && bottom <= b.Y {
		return false
	}
	if bottom, ok := b.Bottom(); ok && a.Y >= bottom {
		return false
	}
	return true
}

// FirstCollision returns the first widget in l that collides with w.
// The result depends on the order of l.
func FirstCollision(l Layout, w Widget) (Widget, bool) {
	for _, o := range l {
		if Collides(o, w) {
			return o, true
		}
	}
	return Widget{}, false
}

// AllCollisions returns every widget in l that collides with w, in layout
// order.
func AllCollisions(l Layout, w Widget) Layout {
	var out Layout
	for _, o := range l {
		if Collides(o, w) {
			out = append(out, o)
		}
	}
	return out
}

// firstCollision is FirstCollision over working copies.
func firstCollision(items []*Widget, w *Widget) *Widget {
	for _, o := range items {
		if Collides(*o, *w) {
			return o
		}
	}
	return nil
}

func allCollisions(items []*Widget, w *Widget) []*Widget {
	var out []*Widget
	for _, o := range items {
		if Collides(*o, *w) {
			out = append(out, o)
		}
	}
	return out
}

// byRowCol orders widgets top to bottom, then left to right.
func byRowCol(a, b *Widget) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// sortedByRowCol returns a stably sorted copy of items.
func sortedByRowCol(items []*Widget) []*Widget {
	out := slices.Clone(items)
	slices.SortStableFunc(out, byRowCol)
	return out
}

// SortByRowCol returns a copy of l ordered top to bottom, then left to
// right. Widgets at the same cell keep their relative order.
func SortByRowCol(l Layout) Layout {
	out := l.Clone()
	slices.SortStableFunc(out, func(a, b Widget) int { return byRowCol(&a, &b) })
	return out
}
