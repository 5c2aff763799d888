// Package cli implements the dashgrid command-line interface.
//
// The commands load a layout file (JSON or YAML), run one grid operation
// on it through the pipeline runner and write the result. The CLI is
// built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - compact, move, resize, remove: layout operations
//   - diff: widgets added, removed or repositioned between two layouts
//   - geometry: pixel rectangles for a container width
//   - render: SVG, text, DOT and collision graph outputs
//   - validate: structural checks and overlap warnings
//   - serve: the HTTP API
//   - watch: re-run an operation whenever the layout file changes
//   - play: an interactive terminal board
//   - cache, config: manage the result cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Log output
// goes to stderr so layouts written to stdout stay parseable.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat renders as "14:32:01.45".
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress times one pipeline run, such as a watch rebuild. Not safe for
// concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	now    func() time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now(), now: time.Now}
}

// done logs msg at info level with an elapsed field appended to keyvals.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := p.now().Sub(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}
