// Package pkg provides the core libraries for dashgrid, a layout engine for
// grid dashboards.
//
// # Overview
//
// A dashboard is a set of rectangular widgets on an integer grid. Widgets
// fall upward to close gaps, push each other out of the way when one is
// dragged onto another, and map to pixel rectangles for a given container
// width. The pkg directory is organized into three areas:
//
//  1. Engine: [grid] (geometry, collisions, compaction, placement, diff)
//  2. Orchestration: [pipeline], [board], [layoutio], [render]
//  3. Infrastructure: [cache], [config], [errors], [observability],
//     [httputil], [server], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Layout file (JSON or YAML)
//	         ↓
//	    [layoutio] package (decode, fold field aliases)
//	         ↓
//	    [grid] package (compact, move, resize, remove)
//	         ↓
//	    [render] package (SVG, text, DOT, support graph)
//
// [pipeline] runs these stages with caching and is shared by the CLI and
// the HTTP [server]. [board] keeps a live layout for interactive drag and
// resize gestures.
//
// # Quick Start
//
//	l, _ := layoutio.ReadFile("board.yaml")
//
//	e := grid.NewEngine(nil)
//	x := 4
//	l, _ = e.MoveElement(l, "chart", &x, nil, grid.MoveOptions{
//	    UserAction:       true,
//	    PreventCollision: true,
//	    Packing:          grid.PackingOn,
//	})
//	l, _ = e.Compact(l)
//
//	cfg := config.Default().Grid
//	svg := render.SVG(l, cfg.Metrics())
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/grid/...     # Engine only
//	go test -run Example       # Examples only
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/grid
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/pipeline
// [board]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/board
// [layoutio]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/layoutio
// [render]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/httputil
// [server]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/server
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/buildinfo
package pkg
