package grid

import "math"

// Rect is a pixel rectangle. Height is meaningless when UnboundedHeight is
// set; the presentation layer should stretch the widget instead.
type Rect struct {
	X               int  `json:"x"`
	Y               int  `json:"y"`
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	UnboundedHeight bool `json:"unbounded_height,omitempty"`
}

// Metrics converts between grid units and pixels.
//
// Padding is the horizontal and vertical gap between cells, also applied
// once before the first column and row. Columns bounds horizontal
// positions; rows are unbounded.
type Metrics struct {
	ColumnWidth float64
	RowHeight   float64
	Padding     [2]float64
	Columns     int
}

// ColumnWidth derives the width of one column from the container width.
func ColumnWidth(containerWidth float64, columns int, padding [2]float64) float64 {
	if columns <= 0 {
		return 0
	}
	return (containerWidth-padding[0])/float64(columns) - padding[0]
}

// ContainerHeight is the pixel height needed to show every row of l.
func ContainerHeight(l Layout, rowHeight float64, padding [2]float64) float64 {
	return float64(Bottom(l))*(rowHeight+padding[1]) + padding[1]
}

// GridToPixel converts a grid rectangle to pixels.
func (m Metrics) GridToPixel(x, y, width, height int) Rect {
	return Rect{
		X:      round(m.ColumnWidth*float64(x) + float64(x+1)*m.Padding[0]),
		Y:      round(m.RowHeight*float64(y) + float64(y+1)*m.Padding[1]),
		Width:  span(m.ColumnWidth, m.Padding[0], width),
		Height: span(m.RowHeight, m.Padding[1], height),
	}
}

// WidgetRect converts a widget's grid rectangle to pixels. Auto-height
// widgets keep an unbounded height instead of a computed one.
func (m Metrics) WidgetRect(w Widget) Rect {
	if !w.AutoHeight {
		return m.GridToPixel(w.X, w.Y, w.Width, w.Height)
	}
	r := m.GridToPixel(w.X, w.Y, w.Width, 0)
	r.Height = 0
	r.UnboundedHeight = true
	return r
}

// PixelToGridPosition converts a pixel offset to the grid cell of a
// widget's top-left corner. x is clamped so the widget stays inside the
// columns; y is only clamped at zero. Metrics without a positive cell
// pitch, such as those of a zero-width container, map everything to (0, 0).
func (m Metrics) PixelToGridPosition(px, py float64, width, height int) (x, y int) {
	colPitch, rowPitch, ok := m.pitch()
	if !ok {
		return 0, 0
	}
	left := round((px - m.Padding[0]) / colPitch)
	top := round((py - m.Padding[1]) / rowPitch)
	return max(min(left, m.Columns-width), 0), max(top, 0)
}

// PixelToGridSize converts a pixel size to grid units for a widget whose
// top-left cell is (x, y). Width is clamped to the columns right of x.
// Callers apply the widget's own bounds with [ClampSize] afterwards.
// Metrics without a positive cell pitch give 0x0.
func (m Metrics) PixelToGridSize(x, y int, pw, ph float64) (width, height int) {
	colPitch, rowPitch, ok := m.pitch()
	if !ok {
		return 0, 0
	}
	w := round((pw + m.Padding[0]) / colPitch)
	h := round((ph + m.Padding[1]) / rowPitch)
	return max(min(w, m.Columns-x), 0), max(h, 0)
}

// pitch is the distance between the starts of adjacent columns and rows.
// ok is false when either is not a positive finite number.
func (m Metrics) pitch() (col, row float64, ok bool) {
	col = m.ColumnWidth + m.Padding[0]
	row = m.RowHeight + m.Padding[1]
	ok = col > 0 && row > 0 && !math.IsInf(col, 0) && !math.IsInf(row, 0)
	return col, row, ok
}

func span(unit, pad float64, n int) int {
	return round(unit*float64(n) + float64(max(0, n-1))*pad)
}

// round rounds half up, so 106.5 becomes 107 and -0.5 becomes 0.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
