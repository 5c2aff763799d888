package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info passes info", log.InfoLevel, func(l *log.Logger) { l.Info("compacted") }, true},
		{"info drops debug", log.InfoLevel, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug passes debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache miss") }, true},
		{"warn drops info", log.WarnLevel, func(l *log.Logger) { l.Info("compacted") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("tick")

	stamp, _, ok := strings.Cut(buf.String(), " ")
	if !ok {
		t.Fatalf("output %q has no timestamp", buf.String())
	}
	if _, err := time.Parse(logTimeFormat, stamp); err != nil {
		t.Errorf("timestamp %q does not match %q: %v", stamp, logTimeFormat, err)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.now = func() time.Time { return prog.start.Add(1234 * time.Microsecond) }

	prog.done("rebuilt", "input", "board.yaml", "widgets", 3)

	out := buf.String()
	for _, want := range []string{"rebuilt", "input=board.yaml", "widgets=3", "elapsed=1ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
