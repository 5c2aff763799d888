// Package render draws dashboard layouts.
//
// # Formats
//
//   - svg: the widgets as pixel rectangles ([SVG])
//   - txt: a character grid for terminals, one cell per grid unit ([Text])
//   - json, yaml: the layout document itself (see [layoutio])
//   - dot: the support graph in Graphviz DOT ([ToDOT])
//   - graph: the support graph drawn by Graphviz as SVG ([GraphSVG])
//
// The support graph has an edge from each widget to every widget resting
// directly on top of it, which is the order compaction settles them in.
// Overlapping widgets are joined by a red undirected edge, so a layout
// that still needs compaction is easy to spot.
//
// Use [Render] to dispatch on a format name:
//
//	out, err := render.Render(layout, render.FormatSVG, render.Options{Metrics: m})
//
// [layoutio]: github.com/matzehuels/dashgrid/pkg/layoutio
package render
