package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

var fills = []string{"#e3f2fd", "#e8f5e9", "#fff3e0", "#f3e5f5", "#e0f7fa", "#fce4ec", "#f1f8e9", "#ede7f6"}

const (
	styleBackground = "fill:#f5f6f8"
	styleLabel      = "font-family:sans-serif;font-size:14px;fill:#1a202c"
	styleDetail     = "font-family:sans-serif;font-size:11px;fill:#718096"
)

// SVG draws each widget as a rounded rectangle at its pixel position.
// Fixed widgets get a dashed outline. Auto-height widgets extend to the
// bottom of the canvas.
func SVG(l grid.Layout, m grid.Metrics) []byte {
	width := int(math.Ceil(float64(m.Columns)*(m.ColumnWidth+m.Padding[0]) + m.Padding[0]))
	height := int(math.Ceil(grid.ContainerHeight(l, m.RowHeight, m.Padding)))
	if hasAutoHeight(l) {
		height += int(m.RowHeight + m.Padding[1])
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, styleBackground)

	for i, w := range l {
		r := m.WidgetRect(w)
		h := r.Height
		if r.UnboundedHeight {
			h = max(height-r.Y-int(m.Padding[1]), 0)
		}

		style := fmt.Sprintf("fill:%s;stroke:#4a5568;stroke-width:1", fills[i%len(fills)])
		if w.Fixed {
			style += ";stroke-dasharray:6,3"
		}

		canvas.Group(`id="` + escapeAttr(w.ID) + `"`)
		canvas.Title(label(w))
		canvas.Roundrect(r.X, r.Y, r.Width, h, 4, 4, style)
		canvas.Text(r.X+8, r.Y+20, label(w), styleLabel)
		canvas.Text(r.X+8, r.Y+36, position(w), styleDetail)
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func label(w grid.Widget) string {
	if w.Title != "" {
		return w.Title
	}
	return w.ID
}

func position(w grid.Widget) string {
	if w.AutoHeight {
		return fmt.Sprintf("(%d,%d) %dxauto", w.X, w.Y, w.Width)
	}
	return fmt.Sprintf("(%d,%d) %dx%d", w.X, w.Y, w.Width, w.Height)
}

func hasAutoHeight(l grid.Layout) bool {
	for _, w := range l {
		if w.AutoHeight {
			return true
		}
	}
	return false
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
