package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test
// to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestSpinner(ctx context.Context, message string) (*Spinner, *syncBuffer) {
	var out syncBuffer
	s := newSpinnerWithContext(ctx, message)
	s.w = &out
	return s, &out
}

func TestSpinnerDrawsFrames(t *testing.T) {
	s, out := newTestSpinner(context.Background(), "Compacting board.yaml")
	s.Start()
	time.Sleep(3 * s.kind.FPS)
	s.Stop()

	if !strings.Contains(out.String(), "Compacting board.yaml") {
		t.Errorf("output %q should contain the message", out.String())
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, out := newTestSpinner(context.Background(), "first")
	s.Start()
	s.SetMessage("second")
	time.Sleep(3 * s.kind.FPS)
	s.Stop()

	if !strings.Contains(out.String(), "second") {
		t.Errorf("output %q should contain the new message", out.String())
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s, _ := newTestSpinner(ctx, "waiting")
			s.Start()
			time.Sleep(50 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
		})
	}
}

func TestSpinnerNotCancelledWhileRunning(t *testing.T) {
	s, _ := newTestSpinner(context.Background(), "working")
	s.Start()
	if s.Cancelled() {
		t.Error("a running spinner is not cancelled")
	}
	s.Stop()
}

func TestSpinnerStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		s, _ := newTestSpinner(context.Background(), "stop")
		s.Start()
		s.Stop()
		s.Stop()
	})

	t.Run("never started", func(t *testing.T) {
		s, _ := newTestSpinner(context.Background(), "idle")
		done := make(chan struct{})
		go func() {
			s.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Stop blocked on a spinner that never started")
		}
	})

	t.Run("with status", func(t *testing.T) {
		prev := stdout
		var status bytes.Buffer
		stdout = &status
		t.Cleanup(func() { stdout = prev })

		s, _ := newTestSpinner(context.Background(), "rendering")
		s.Start()
		s.StopWithSuccess("Rendered board.yaml")
		s2, _ := newTestSpinner(context.Background(), "rendering")
		s2.Start()
		s2.StopWithError("Graphviz failed")

		for _, want := range []string{"Rendered board.yaml", "Graphviz failed"} {
			if !strings.Contains(status.String(), want) {
				t.Errorf("status %q missing %q", status.String(), want)
			}
		}
	})
}

func TestNewSpinnerDefaults(t *testing.T) {
	s := newSpinner("plain")
	if s.Cancelled() {
		t.Error("a new spinner is not cancelled")
	}
	if len(s.kind.Frames) == 0 || s.kind.FPS <= 0 {
		t.Errorf("spinner frames %v at %v", s.kind.Frames, s.kind.FPS)
	}
}
