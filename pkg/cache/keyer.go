package cache

import (
	"encoding/json"
)

// Keyer derives cache keys for layout operations and render outputs.
type Keyer interface {
	// LayoutKey is the key for the result of applying an operation to the
	// layout with the given hash.
	LayoutKey(layoutHash string, opts LayoutKeyOpts) string

	// RenderKey is the key for a rendered artifact of a layout.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// LayoutKeyOpts holds every input of a layout operation besides the
// layout itself.
type LayoutKeyOpts struct {
	Operation        string `json:"op"`
	WidgetID         string `json:"id,omitempty"`
	X                *int   `json:"x,omitempty"`
	Y                *int   `json:"y,omitempty"`
	Width            int    `json:"w,omitempty"`
	Height           int    `json:"h,omitempty"`
	Columns          int    `json:"columns"`
	Packing          string `json:"packing"`
	UserAction       bool   `json:"user_action,omitempty"`
	PreventCollision bool   `json:"prevent_collision,omitempty"`
	MaxCascadeDepth  int    `json:"max_cascade_depth,omitempty"`
}

// RenderKeyOpts holds the settings that change a rendered artifact.
type RenderKeyOpts struct {
	Format         string     `json:"format"`
	ContainerWidth float64    `json:"container_width"`
	RowHeight      float64    `json:"row_height"`
	Margin         [2]float64 `json:"margin"`
	Columns        int        `json:"columns"`
}

// Key kinds. Every key starts with its kind and a colon; [FileCache]
// stores each kind in its own directory.
const (
	KindLayout = "layout"
	KindRender = "render"
)

// DefaultKeyer hashes the layout hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(layoutHash string, opts LayoutKeyOpts) string {
	return digestKey(KindLayout, layoutHash, opts)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return digestKey(KindRender, layoutHash, opts)
}

// digestKey hashes the layout hash and options as one JSON array. Option
// structs marshal deterministically, so equal inputs give equal keys.
func digestKey(kind, layoutHash string, opts any) string {
	data, _ := json.Marshal([]any{layoutHash, opts})
	return kind + ":" + Hash(data)
}

var _ Keyer = DefaultKeyer{}
