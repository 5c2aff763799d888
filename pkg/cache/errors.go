package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks failures to reach a shared backend.
var ErrBackend = errors.New("cache backend unavailable")

// transientError marks a failure worth retrying, such as a dropped
// connection. Command and decode errors are never transient.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// transient wraps err as a backend failure worth retrying.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err is a retryable backend failure.
func IsTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

// backoff retries transient failures with a doubling delay.
type backoff struct {
	attempts int
	delay    time.Duration
}

// defaultBackoff tries three times over roughly 300ms, short enough that
// a dead backend does not stall an interactive drag.
var defaultBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// do calls fn until it succeeds, fails permanently or attempts run out.
func (b backoff) do(ctx context.Context, fn func() error) error {
	attempts := max(b.attempts, 1)
	delay := b.delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
