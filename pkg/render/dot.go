package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Edge is one relation in the support graph.
type Edge struct {
	From, To string
	// Clash marks two widgets that overlap; otherwise To rests on From.
	Clash bool
}

// SupportEdges lists, in layout order, every pair where one widget rests
// directly on another (its top edge is the other's bottom edge and their
// columns overlap) and every overlapping pair.
func SupportEdges(l grid.Layout) []Edge {
	var edges []Edge
	for i, a := range l {
		for j, b := range l {
			switch {
			case i == j:
			case restsOn(b, a):
				edges = append(edges, Edge{From: a.ID, To: b.ID})
			case i < j && grid.Collides(a, b):
				edges = append(edges, Edge{From: a.ID, To: b.ID, Clash: true})
			}
		}
	}
	return edges
}

func restsOn(top, bottom grid.Widget) bool {
	end, ok := bottom.Bottom()
	return ok && top.Y == end && top.X < bottom.Right() && bottom.X < top.Right()
}

const dotPreamble = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.4;
  nodesep=0.3;
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
`

// ToDOT writes the support graph of l as Graphviz DOT. Fixed widgets are
// dashed grey; overlapping widgets are joined by a red undirected edge.
func ToDOT(l grid.Layout) string {
	var b strings.Builder
	b.WriteString(dotPreamble)
	b.WriteByte('\n')
	for _, w := range l {
		fmt.Fprintf(&b, "  %q [label=%q", w.ID, label(w)+"\n"+position(w))
		if w.Fixed {
			b.WriteString(`, style="rounded,filled,dashed", fillcolor=lightgrey`)
		}
		b.WriteString("];\n")
	}
	b.WriteByte('\n')
	for _, e := range SupportEdges(l) {
		fmt.Fprintf(&b, "  %q -> %q", e.From, e.To)
		if e.Clash {
			b.WriteString(" [dir=none, color=red, penwidth=2, constraint=false]")
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// GraphSVG lays out the support graph of l with Graphviz and returns SVG.
func GraphSVG(l grid.Layout) ([]byte, error) {
	return RenderDOT(context.Background(), ToDOT(l))
}

// RenderDOT runs Graphviz on dot and returns SVG sized in pixels.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("graphviz: %w", err)
	}
	return fitSVG(out.Bytes()), nil
}

var (
	openTagRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="[-0-9.]+\s+[-0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitSVG rewrites Graphviz's opening tag, whose size is in points and
// whose viewBox may be offset, to a zero-origin viewBox with matching
// pixel width and height.
func fitSVG(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return openTagRe.ReplaceAllLiteral(svg, []byte(tag))
}
