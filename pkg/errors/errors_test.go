package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("no such file or directory")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeWidgetNotFound, "widget %q not found", "cpu"), `widget "cpu" not found`},
		{"wrap", Wrap(ErrCodeFileNotFound, cause, "open %s", "board.yaml"), "open board.yaml: no such file or directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write cache entry")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestCodeLookup(t *testing.T) {
	coded := New(ErrCodeCascadeLimit, "cascade exceeded depth 8")
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", coded, ErrCodeCascadeLimit},
		{"fmt wrapped", fmt.Errorf("move cpu: %w", coded), ErrCodeCascadeLimit},
		{"outermost wins", Wrap(ErrCodeInvalidInput, coded, "apply"), ErrCodeInvalidInput},
		{"plain", errors.New("boom"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
		})
	}
	if Is(nil, "") {
		t.Error("Is(nil, \"\") should be false")
	}
}

func TestUserMessage(t *testing.T) {
	err := fmt.Errorf("pipeline: %w", Wrap(ErrCodeInvalidLayout, errors.New("yaml: line 3"), "decode board.yaml"))
	if got := UserMessage(err); got != "decode board.yaml" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		err    error
		kind   Kind
		client bool
		exit   int
	}{
		{New(ErrCodeInvalidLayout, "x"), KindInvalid, true, ExitUsage},
		{New(ErrCodeInvalidConfig, "x"), KindInvalid, true, ExitUsage},
		{New(ErrCodeWidgetNotFound, "x"), KindNotFound, true, ExitNotFound},
		{New(ErrCodeFileNotFound, "x"), KindNotFound, true, ExitNotFound},
		{New(ErrCodeCascadeLimit, "x"), KindRejected, true, ExitRejected},
		{New(ErrCodeUnplaceable, "x"), KindRejected, true, ExitRejected},
		{New(ErrCodeTimeout, "x"), KindTimeout, false, ExitFailure},
		{New(ErrCodeUnsupported, "x"), KindUnsupported, false, ExitFailure},
		{New(ErrCodeInternal, "x"), KindInternal, false, ExitFailure},
		{New("SOMETHING_NEW", "x"), KindInternal, false, ExitFailure},
		{errors.New("x"), KindInternal, false, ExitFailure},
	}
	for _, tt := range tests {
		t.Run(string(GetCode(tt.err)), func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
			if got := IsClientError(tt.err); got != tt.client {
				t.Errorf("IsClientError() = %v, want %v", got, tt.client)
			}
			if got := ExitCode(tt.err); got != tt.exit {
				t.Errorf("ExitCode() = %d, want %d", got, tt.exit)
			}
		})
	}
}
