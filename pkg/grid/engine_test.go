package grid

import (
	"slices"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

func mustFind(t *testing.T, l Layout, id string) Widget {
	t.Helper()
	w, ok := l.Find(id)
	if !ok {
		t.Fatalf("widget %q missing from layout %v", id, l.IDs())
	}
	return w
}

func assertNoOverlap(t *testing.T, l Layout) {
	t.Helper()
	for i := range l {
		for j := i + 1; j < len(l); j++ {
			if Collides(l[i], l[j]) {
				t.Errorf("widgets %q and %q overlap: %+v %+v", l[i].ID, l[j].ID, l[i], l[j])
			}
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name  string
		in    Layout
		wantY map[string]int
	}{
		{
			name:  "closes gap at the top",
			in:    Layout{{ID: "a", X: 0, Y: 5, Width: 2, Height: 1}},
			wantY: map[string]int{"a": 0},
		},
		{
			name: "stacks under the widget above",
			in: Layout{
				{ID: "a", X: 0, Y: 0, Width: 4, Height: 2},
				{ID: "b", X: 0, Y: 5, Width: 4, Height: 2},
			},
			wantY: map[string]int{"a": 0, "b": 2},
		},
		{
			name: "settles below a fixed widget",
			in: Layout{
				{ID: "f", X: 0, Y: 0, Width: 4, Height: 2, Fixed: true},
				{ID: "n", X: 0, Y: 5, Width: 4, Height: 1},
			},
			wantY: map[string]int{"f": 0, "n": 2},
		},
		{
			name: "free columns reach the top beside a fixed widget",
			in: Layout{
				{ID: "f", X: 0, Y: 0, Width: 4, Height: 2, Fixed: true},
				{ID: "n", X: 4, Y: 5, Width: 4, Height: 1},
			},
			wantY: map[string]int{"f": 0, "n": 0},
		},
		{
			name: "fixed widgets keep their gap",
			in: Layout{
				{ID: "f", X: 0, Y: 3, Width: 4, Height: 2, Fixed: true},
				{ID: "n", X: 0, Y: 6, Width: 4, Height: 1},
			},
			wantY: map[string]int{"f": 3, "n": 5},
		},
		{
			name: "widgets above a fixed widget rise past it",
			in: Layout{
				{ID: "n", X: 0, Y: 1, Width: 4, Height: 1},
				{ID: "f", X: 0, Y: 3, Width: 4, Height: 2, Fixed: true},
			},
			wantY: map[string]int{"f": 3, "n": 0},
		},
		{
			name:  "negative rows are clamped",
			in:    Layout{{ID: "a", X: 0, Y: -3, Width: 2, Height: 1}},
			wantY: map[string]int{"a": 0},
		},
		{
			name: "overlaps are pushed apart",
			in: Layout{
				{ID: "a", X: 0, Y: 0, Width: 4, Height: 3},
				{ID: "b", X: 2, Y: 1, Width: 4, Height: 1},
			},
			wantY: map[string]int{"a": 0, "b": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compact(tt.in)
			if err != nil {
				t.Fatalf("Compact: %v", err)
			}
			for id, y := range tt.wantY {
				if w := mustFind(t, got, id); w.Y != y {
					t.Errorf("%s.Y = %d, want %d", id, w.Y, y)
				}
			}
			assertNoOverlap(t, got)
		})
	}
}

func TestCompactPreservesInputOrder(t *testing.T) {
	in := Layout{
		{ID: "b", X: 0, Y: 5, Width: 4, Height: 2},
		{ID: "a", X: 0, Y: 0, Width: 4, Height: 2},
	}
	got, err := Compact(in)
	if err != nil {
		t.Fatal(err)
	}
	if ids := got.IDs(); !slices.Equal(ids, []string{"b", "a"}) {
		t.Errorf("order = %v, want [b a]", ids)
	}
	if got[0].Y != 2 {
		t.Errorf("b.Y = %d, want 2", got[0].Y)
	}
	if in[0].Y != 5 {
		t.Error("Compact mutated its input")
	}
}

func TestCompactIdempotent(t *testing.T) {
	in := Layout{
		{ID: "a", X: 0, Y: 4, Width: 3, Height: 2},
		{ID: "b", X: 2, Y: 9, Width: 4, Height: 1},
		{ID: "c", X: 6, Y: 1, Width: 6, Height: 3},
		{ID: "f", X: 3, Y: 2, Width: 2, Height: 2, Fixed: true},
		{ID: "d", X: 0, Y: 12, Width: 12, Height: 1},
	}
	once, err := Compact(in)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Compact(once)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(once, twice) {
		t.Errorf("Compact is not idempotent:\n%v\n%v", once, twice)
	}
	if f := mustFind(t, once, "f"); f.X != 3 || f.Y != 2 {
		t.Errorf("fixed widget moved to (%d,%d)", f.X, f.Y)
	}
	assertNoOverlap(t, once)
}

func TestCompactBelowAutoHeight(t *testing.T) {
	in := Layout{
		{ID: "p", X: 0, Y: 0, Width: 4, AutoHeight: true},
		{ID: "n", X: 0, Y: 3, Width: 4, Height: 1},
	}
	got, err := Compact(in)
	if !errors.Is(err, errors.ErrCodeUnplaceable) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeUnplaceable)
	}
	if !slices.Equal(got, in) {
		t.Errorf("layout changed on error: %v", got)
	}
}

func TestCompactAutoHeightBeside(t *testing.T) {
	in := Layout{
		{ID: "p", X: 0, Y: 2, Width: 4, AutoHeight: true},
		{ID: "n", X: 4, Y: 3, Width: 4, Height: 1},
	}
	got, err := Compact(in)
	if err != nil {
		t.Fatal(err)
	}
	if p := mustFind(t, got, "p"); p.Y != 0 {
		t.Errorf("p.Y = %d, want 0", p.Y)
	}
	if n := mustFind(t, got, "n"); n.Y != 0 {
		t.Errorf("n.Y = %d, want 0", n.Y)
	}
}
