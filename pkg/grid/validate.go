package grid

import "github.com/matzehuels/dashgrid/pkg/errors"

// Validate checks the structural invariants of a layout: unique, well
// formed ids, non-negative positions, positive sizes and consistent size
// bounds. When columns is positive every widget must also fit inside it.
func Validate(l Layout, columns int) error {
	seen := make(map[string]struct{}, len(l))
	for _, w := range l {
		if err := errors.ValidateWidgetID(w.ID); err != nil {
			return err
		}
		if _, dup := seen[w.ID]; dup {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = struct{}{}

		if w.X < 0 || w.Y < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has negative position (%d,%d)", w.ID, w.X, w.Y)
		}
		if w.Width < 1 {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has width %d, want at least 1", w.ID, w.Width)
		}
		if !w.AutoHeight && w.Height < 1 {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has height %d, want at least 1", w.ID, w.Height)
		}
		if w.MaxWidth > 0 && w.MinWidth > w.MaxWidth {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has min_width %d above max_width %d", w.ID, w.MinWidth, w.MaxWidth)
		}
		if w.MaxHeight > 0 && w.MinHeight > w.MaxHeight {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has min_height %d above max_height %d", w.ID, w.MinHeight, w.MaxHeight)
		}
		if columns > 0 && w.Right() > columns {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q spans columns %d-%d beyond the %d-column grid", w.ID, w.X, w.Right(), columns)
		}
	}
	return nil
}
