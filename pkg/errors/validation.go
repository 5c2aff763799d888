package errors

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// MaxIDLength bounds widget ids so they stay usable as cache keys.
	MaxIDLength = 256
	// MaxPathLength bounds layout paths accepted from users.
	MaxPathLength = 500
)

// ValidateWidgetID rejects empty ids, ids longer than [MaxIDLength] bytes
// and ids containing control characters.
func ValidateWidgetID(id string) error {
	switch {
	case id == "":
		return New(ErrCodeInvalidLayout, "widget id cannot be empty")
	case len(id) > MaxIDLength:
		return New(ErrCodeInvalidLayout, "widget id %.16q... exceeds %d bytes", id, MaxIDLength)
	case strings.IndexFunc(id, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidLayout, "widget id %q contains control characters", id)
	}
	return nil
}

// ValidatePath applies the same rules as [ValidateWidgetID] to a layout
// file path, with [MaxPathLength] as the bound.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > MaxPathLength:
		return New(ErrCodeInvalidPath, "path exceeds %d bytes", MaxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path %q contains control characters", path)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed, ignoring case.
func ValidateFormat(format string, allowed ...string) error {
	if slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, format) }) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (want %s)", format, strings.Join(allowed, ", "))
}
