package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// TextOptions configures [Text].
type TextOptions struct {
	Color bool
}

const (
	cellEmpty   = '.'
	cellOverlap = '!'
)

var textColors = []lipgloss.Color{"36", "35", "220", "75", "213", "114", "209", "147"}

// Text draws l as a character grid with one cell per grid unit, followed by
// a legend. Widget i is drawn with the i-th letter (A-Z, then a-z, then
// digits); overlapping cells show '!'. Auto-height widgets are drawn one
// row past the last bounded row.
//
//	AAAABB
//	AAAA..
//	CCCCCC
//
//	A  chart   (0,0) 4x2
//	B  status  (4,0) 2x1
//	C  footer  (0,2) 6x1 fixed
func Text(l grid.Layout, columns int, opts TextOptions) string {
	rows := grid.Bottom(l)
	for _, w := range l {
		columns = max(columns, w.Right())
		if w.AutoHeight {
			rows = max(rows, w.Y+1)
		}
	}
	if hasAutoHeight(l) {
		rows++
	}

	cells := make([][]int, rows)
	for y := range cells {
		cells[y] = make([]int, columns)
		for x := range cells[y] {
			cells[y][x] = -1
		}
	}
	for i, w := range l {
		bottom, ok := w.Bottom()
		if !ok {
			bottom = rows
		}
		for y := max(w.Y, 0); y < min(bottom, rows); y++ {
			for x := max(w.X, 0); x < min(w.Right(), columns); x++ {
				if cells[y][x] == -1 {
					cells[y][x] = i
				} else {
					cells[y][x] = -2
				}
			}
		}
	}

	var b strings.Builder
	for _, row := range cells {
		for _, i := range row {
			b.WriteString(cell(i, opts))
		}
		b.WriteByte('\n')
	}

	if len(l) > 0 {
		b.WriteByte('\n')
	}
	width := 0
	for _, w := range l {
		width = max(width, len(label(w)))
	}
	for i, w := range l {
		line := fmt.Sprintf("%s  %-*s  %s", cell(i, opts), width, label(w), position(w))
		if w.Fixed {
			line += " fixed"
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func cell(i int, opts TextOptions) string {
	switch i {
	case -1:
		return string(cellEmpty)
	case -2:
		if opts.Color {
			return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167")).Render(string(cellOverlap))
		}
		return string(cellOverlap)
	}
	s := string(glyph(i))
	if opts.Color {
		return lipgloss.NewStyle().Foreground(textColors[i%len(textColors)]).Render(s)
	}
	return s
}

const glyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func glyph(i int) byte {
	return glyphs[i%len(glyphs)]
}
