// Package grid implements the dashboard layout engine.
//
// # Overview
//
// A dashboard is a set of rectangular widgets placed on an integer grid of
// columns and rows. This package computes everything the presentation layer
// needs from that description:
//
//   - Geometry: mapping grid units to pixel rectangles and back ([Metrics])
//   - Collision detection between widget rectangles ([Collides])
//   - Compaction: pulling every movable widget up to close vertical gaps
//     ([Engine.Compact])
//   - Placement: moving a widget to a target cell and cascading the
//     displacement to the widgets it lands on ([Engine.MoveElement])
//   - Diffing two layouts by widget id ([Diff])
//
// # Value Semantics
//
// A [Layout] is a slice of [Widget] values. Every operation works on a
// private copy and returns a new Layout; the caller's slice is never
// modified. Output order always matches input order, regardless of the
// order in which widgets were processed.
//
// # Fixed Widgets
//
// Widgets with Fixed set are anchors. They are never moved by compaction or
// by a cascade; a widget that collides with a fixed widget is pushed away
// from it instead.
//
// # Usage
//
//	l := grid.Layout{
//	    {ID: "cpu", X: 0, Y: 3, Width: 4, Height: 2},
//	    {ID: "mem", X: 4, Y: 0, Width: 4, Height: 2},
//	}
//	l, _ = grid.Compact(l) // cpu moves to y=0
//
//	l, err := grid.MoveElement(l, "mem", grid.Coord(0), nil, grid.MoveOptions{
//	    UserAction: true,
//	    Packing:    grid.PackingOn,
//	})
package grid
