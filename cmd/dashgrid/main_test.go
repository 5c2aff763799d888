package main

import (
	"context"
	"fmt"
	"testing"

	dgerrors "github.com/matzehuels/dashgrid/pkg/errors"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), exitInterrupted},
		{"bad layout", dgerrors.New(dgerrors.ErrCodeInvalidLayout, "duplicate id a"), dgerrors.ExitUsage},
		{"missing widget", dgerrors.New(dgerrors.ErrCodeWidgetNotFound, "ghost"), dgerrors.ExitNotFound},
		{"cascade", dgerrors.New(dgerrors.ErrCodeCascadeLimit, "depth 8"), dgerrors.ExitRejected},
		{"plain", fmt.Errorf("boom"), dgerrors.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report(tt.err); got != tt.want {
				t.Errorf("report() = %d, want %d", got, tt.want)
			}
		})
	}
}
