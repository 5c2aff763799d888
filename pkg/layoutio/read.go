package layoutio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Format is a layout file encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat returns the format named by s ("json", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q (want json or yaml)", s)
}

// FormatFromPath picks the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Read decodes a layout from r.
//
// The input may be a list of widgets or an object with a "widgets" list.
// Field aliases (w, h, static, stationary) are folded into the canonical
// fields. Decode failures carry [errors.ErrCodeInvalidFormat].
func Read(r io.Reader, f Format) (grid.Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read layout")
	}

	var doc document
	if isList(data, f) {
		err = unmarshal(data, f, &doc.Widgets)
	} else {
		err = unmarshal(data, f, &doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s layout", f)
	}

	l := make(grid.Layout, len(doc.Widgets))
	for i, w := range doc.Widgets {
		l[i] = toWidget(w)
	}
	return l, nil
}

func unmarshal(data []byte, f Format, v any) error {
	if f == YAML {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// ReadFile reads a layout from path, choosing the format by extension.
// A missing file yields [errors.ErrCodeFileNotFound].
func ReadFile(path string) (grid.Layout, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}
