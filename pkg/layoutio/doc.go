// Package layoutio reads and writes dashboard layouts as JSON or YAML.
//
// # Format
//
// A layout file is either a bare list of widgets or an object with a
// "widgets" list:
//
//	{
//	  "widgets": [
//	    {"id": "header", "x": 0, "y": 0, "width": 12, "height": 1, "fixed": true},
//	    {"id": "chart", "x": 0, "y": 1, "width": 6, "height": 3},
//	    {"id": "feed", "x": 6, "y": 1, "width": 6, "height": "auto"}
//	  ]
//	}
//
// The same structure in YAML is accepted from files ending in .yaml or
// .yml. Everything else is treated as JSON.
//
// # Widget Fields
//
// Required:
//   - id: Unique string identifier
//   - width, height: Size in grid units. height may be "auto" for a widget
//     that extends without bound. "w" and "h" are accepted as aliases.
//
// Optional:
//   - x, y: Position in grid units (default 0)
//   - title: Display label
//   - min_width, min_height, max_width, max_height: Size bounds
//   - fixed: Never moved by compaction ("static" and "stationary" are
//     accepted as aliases)
//   - draggable, resizable: Gesture flags (default true)
//
// Output always uses the canonical field names, so a read followed by a
// write normalizes a file.
//
// # Reading and Writing
//
// Use [ReadFile] and [WriteFile] for paths, or [Read] and [Write] with an
// explicit [Format]:
//
//	l, err := layoutio.ReadFile("dashboard.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = layoutio.Write(os.Stdout, l, layoutio.JSON)
//
// Decoding only checks syntax and field types. Run [grid.Validate] to
// check ids, positions and bounds.
package layoutio
