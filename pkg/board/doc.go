// Package board holds the live state of one dashboard: the current layout,
// its grid settings and the in-flight drag or resize gesture.
//
// A [Board] turns pointer gestures into layout operations. Each drag step
// moves the widget with [grid.Engine.MoveElement] (as a user action that
// refuses to overlap unless packing is on) and compacts the result when
// packing is enabled, so the board never shows overlapping widgets while
// packing. A placeholder tracks where the dragged widget will land.
//
//	b := board.New(config.Default().Grid, board.WithOnChange(func(l grid.Layout) {
//	    save(l)
//	}))
//	if _, err := b.SetWidgets(widgets); err != nil {
//	    return err
//	}
//	b.Drag(board.PhaseStart, board.Area{ID: "chart", X: 0, Y: 0})
//	b.Drag(board.PhaseMove, board.Area{ID: "chart", X: 4, Y: 0})
//	b.Drag(board.PhaseEnd, board.Area{ID: "chart", X: 4, Y: 0})
//
// Boards are safe for concurrent use. Callbacks run after the board's lock
// is released, so they may call back into the board.
package board
