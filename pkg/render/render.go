package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
)

// Format names accepted by [Render].
const (
	FormatSVG   = "svg"
	FormatText  = "txt"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatDOT   = "dot"
	FormatGraph = "graph"
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatText, FormatJSON, FormatYAML, FormatDOT, FormatGraph}

// Options configures rendering.
type Options struct {
	// Metrics converts grid units to pixels for SVG output.
	Metrics grid.Metrics

	// Color enables ANSI colors in text output.
	Color bool
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatText:
		return ".txt"
	case FormatGraph:
		return ".graph.svg"
	}
	return "." + format
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, Formats...); err != nil {
			return err
		}
	}
	return nil
}

// Render produces l in the given format.
func Render(l grid.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return SVG(l, opts.Metrics), nil
	case FormatText:
		return []byte(Text(l, opts.Metrics.Columns, TextOptions{Color: opts.Color})), nil
	case FormatJSON, FormatYAML:
		var buf bytes.Buffer
		if err := layoutio.Write(&buf, l, layoutio.Format(format)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(ToDOT(l)), nil
	case FormatGraph:
		return GraphSVG(l)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q", format)
}

// RenderAll renders l in each format.
func RenderAll(l grid.Layout, formats []string, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		data, err := Render(l, f, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		out[f] = data
	}
	return out, nil
}
