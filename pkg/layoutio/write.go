package layoutio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Write encodes l to w as a "widgets" document in format f.
// The output can be read back with [Read].
func Write(w io.Writer, l grid.Layout, f Format) error {
	doc := document{Widgets: make([]widget, len(l))}
	for i, g := range l {
		doc.Widgets[i] = fromWidget(g)
	}

	if f == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes l to path, choosing the format by extension.
func WriteFile(path string, l grid.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, l, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
