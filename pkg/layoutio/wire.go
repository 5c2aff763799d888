package layoutio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

type document struct {
	Widgets []widget `json:"widgets" yaml:"widgets"`
}

type widget struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height height `json:"height" yaml:"height"`
	W      int    `json:"w,omitempty" yaml:"w,omitempty"`
	H      height `json:"h,omitzero" yaml:"h,omitempty"`

	MinWidth  int `json:"min_width,omitempty" yaml:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty" yaml:"min_height,omitempty"`
	MaxWidth  int `json:"max_width,omitempty" yaml:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty" yaml:"max_height,omitempty"`

	Fixed      bool `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Static     bool `json:"static,omitempty" yaml:"static,omitempty"`
	Stationary bool `json:"stationary,omitempty" yaml:"stationary,omitempty"`

	Draggable *bool `json:"draggable,omitempty" yaml:"draggable,omitempty"`
	Resizable *bool `json:"resizable,omitempty" yaml:"resizable,omitempty"`
}

// height is a row count or "auto".
type height struct {
	rows int
	auto bool
}

func (h height) IsZero() bool { return h.rows == 0 && !h.auto }

func (h height) MarshalJSON() ([]byte, error) {
	if h.auto {
		return []byte(`"auto"`), nil
	}
	return []byte(strconv.Itoa(h.rows)), nil
}

func (h *height) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return h.parse(s)
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("height must be an integer or \"auto\"")
	}
	*h = height{rows: n}
	return nil
}

func (h height) MarshalYAML() (any, error) {
	if h.auto {
		return "auto", nil
	}
	return h.rows, nil
}

func (h *height) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: height must be a scalar", n.Line)
	}
	if err := h.parse(n.Value); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	return nil
}

func (h *height) parse(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		*h = height{auto: true}
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("height must be an integer or \"auto\", got %q", s)
	}
	*h = height{rows: n}
	return nil
}

func toWidget(w widget) grid.Widget {
	g := grid.Widget{
		ID:         w.ID,
		Title:      w.Title,
		X:          w.X,
		Y:          w.Y,
		Width:      w.Width,
		Height:     w.Height.rows,
		AutoHeight: w.Height.auto,
		MinWidth:   w.MinWidth,
		MinHeight:  w.MinHeight,
		MaxWidth:   w.MaxWidth,
		MaxHeight:  w.MaxHeight,
		Fixed:      w.Fixed || w.Static || w.Stationary,
		Draggable:  w.Draggable,
		Resizable:  w.Resizable,
	}
	if g.Width == 0 {
		g.Width = w.W
	}
	if w.Height.IsZero() {
		g.Height, g.AutoHeight = w.H.rows, w.H.auto
	}
	if g.AutoHeight {
		g.Height = 0
	}
	return g
}

func fromWidget(g grid.Widget) widget {
	return widget{
		ID:        g.ID,
		Title:     g.Title,
		X:         g.X,
		Y:         g.Y,
		Width:     g.Width,
		Height:    height{rows: g.Height, auto: g.AutoHeight},
		MinWidth:  g.MinWidth,
		MinHeight: g.MinHeight,
		MaxWidth:  g.MaxWidth,
		MaxHeight: g.MaxHeight,
		Fixed:     g.Fixed,
		Draggable: g.Draggable,
		Resizable: g.Resizable,
	}
}

// isList reports whether data starts with a list rather than an object.
func isList(data []byte, f Format) bool {
	trimmed := bytes.TrimSpace(data)
	if f == JSON {
		return len(trimmed) > 0 && trimmed[0] == '['
	}
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || bytes.Equal(line, []byte("---")) {
			continue
		}
		return line[0] == '-' || line[0] == '['
	}
	return false
}
