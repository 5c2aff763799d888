package grid

import (
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		columns int
		wantErr bool
	}{
		{
			name: "valid",
			layout: Layout{
				{ID: "a", X: 0, Y: 0, Width: 4, Height: 2},
				{ID: "b", X: 4, Y: 0, Width: 8, AutoHeight: true},
			},
			columns: 12,
		},
		{name: "empty layout", layout: nil, columns: 12},
		{
			name:    "empty id",
			layout:  Layout{{ID: "", Width: 1, Height: 1}},
			wantErr: true,
		},
		{
			name:    "duplicate id",
			layout:  Layout{{ID: "a", Width: 1, Height: 1}, {ID: "a", X: 2, Width: 1, Height: 1}},
			wantErr: true,
		},
		{
			name:    "negative position",
			layout:  Layout{{ID: "a", X: -1, Width: 1, Height: 1}},
			wantErr: true,
		},
		{
			name:    "zero width",
			layout:  Layout{{ID: "a", Width: 0, Height: 1}},
			wantErr: true,
		},
		{
			name:    "zero height",
			layout:  Layout{{ID: "a", Width: 1, Height: 0}},
			wantErr: true,
		},
		{
			name:    "inverted bounds",
			layout:  Layout{{ID: "a", Width: 2, Height: 1, MinWidth: 4, MaxWidth: 2}},
			wantErr: true,
		},
		{
			name:    "beyond columns",
			layout:  Layout{{ID: "a", X: 10, Width: 4, Height: 1}},
			columns: 12,
			wantErr: true,
		},
		{
			name:   "columns unchecked when zero",
			layout: Layout{{ID: "a", X: 10, Width: 4, Height: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.layout, tt.columns)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsClientError(err) {
				t.Errorf("Validate() error %v should be a client error", err)
			}
		})
	}
}
