package grid

import (
	"slices"
	"testing"
)

func TestResizeClampsToBounds(t *testing.T) {
	e := NewEngine(nil)
	e.Columns = 12
	in := Layout{
		{ID: "a", X: 0, Y: 0, Width: 3, Height: 2, MinWidth: 2, MaxWidth: 4, MinHeight: 1, MaxHeight: 3},
		{ID: "edge", X: 10, Y: 5, Width: 1, Height: 1},
	}
	tests := []struct {
		name          string
		id            string
		width, height int
		wantW, wantH  int
	}{
		{"above max", "a", 10, 10, 4, 3},
		{"below min", "a", 0, 0, 2, 1},
		{"within bounds", "a", 3, 2, 3, 2},
		{"column cap", "edge", 5, 1, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Resize(in, tt.id, tt.width, tt.height, PackingOff)
			if err != nil {
				t.Fatal(err)
			}
			w := mustFind(t, got, tt.id)
			if w.Width != tt.wantW || w.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", w.Width, w.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizePushesColliderBelow(t *testing.T) {
	in := Layout{
		{ID: "a", X: 0, Y: 0, Width: 2, Height: 2},
		{ID: "b", X: 0, Y: 2, Width: 2, Height: 2},
	}
	got, err := NewEngine(nil).Resize(in, "a", 2, 4, PackingOn)
	if err != nil {
		t.Fatal(err)
	}
	if a := mustFind(t, got, "a"); a.Height != 4 {
		t.Errorf("a.Height = %d, want 4", a.Height)
	}
	if b := mustFind(t, got, "b"); b.Y != 4 {
		t.Errorf("b.Y = %d, want 4", b.Y)
	}
	assertNoOverlap(t, got)
}

func TestResizeUnknownWidget(t *testing.T) {
	in := Layout{{ID: "a", X: 0, Y: 0, Width: 2, Height: 2}}
	got, err := NewEngine(nil).Resize(in, "nope", 4, 4, PackingOn)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, in) {
		t.Errorf("layout changed: %v", got)
	}
}

func TestRemoveClosesGap(t *testing.T) {
	in := Layout{
		{ID: "a", X: 0, Y: 0, Width: 4, Height: 2},
		{ID: "b", X: 0, Y: 2, Width: 4, Height: 3},
		{ID: "c", X: 0, Y: 5, Width: 4, Height: 1},
	}
	e := NewEngine(nil)

	got, err := e.Remove(in, "b", PackingOn)
	if err != nil {
		t.Fatal(err)
	}
	if ids := got.IDs(); !slices.Equal(ids, []string{"a", "c"}) {
		t.Errorf("ids = %v, want [a c]", ids)
	}
	if c := mustFind(t, got, "c"); c.Y != 2 {
		t.Errorf("c.Y = %d, want 2", c.Y)
	}

	got, err = e.Remove(in, "b", PackingOff)
	if err != nil {
		t.Fatal(err)
	}
	if c := mustFind(t, got, "c"); c.Y != 5 {
		t.Errorf("without packing c.Y = %d, want 5", c.Y)
	}
}

func TestClampSize(t *testing.T) {
	w := Widget{ID: "a"}
	if gotW, gotH := ClampSize(w, 0, -1, 12); gotW != 1 || gotH != 1 {
		t.Errorf("ClampSize minimum = %dx%d, want 1x1", gotW, gotH)
	}
	if gotW, _ := ClampSize(w, 40, 1, 12); gotW != 12 {
		t.Errorf("ClampSize column cap = %d, want 12", gotW)
	}
	if gotW, _ := ClampSize(w, 40, 1, 0); gotW != 40 {
		t.Errorf("ClampSize without cap = %d, want 40", gotW)
	}
}
