package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

func newTestPlayModel(t *testing.T) playModel {
	t.Helper()
	b := board.New(config.Grid{Columns: 12, RowHeight: 100, Packing: true})
	if _, err := b.SetWidgets(grid.Layout{
		{ID: "a", X: 0, Y: 0, Width: 2, Height: 2},
		{ID: "b", X: 0, Y: 2, Width: 2, Height: 1},
	}); err != nil {
		t.Fatal(err)
	}
	return newPlayModel(b, "board.json")
}

func press(t *testing.T, m playModel, msgs ...tea.KeyMsg) playModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(playModel)
		if m.err != nil {
			t.Fatalf("key %q: %v", msg.String(), m.err)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlaySelection(t *testing.T) {
	m := newTestPlayModel(t)
	if m.selected != "a" {
		t.Fatalf("initial selection = %q, want a", m.selected)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != "b" {
		t.Errorf("after tab = %q, want b", m.selected)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != "a" {
		t.Errorf("tab should wrap around, got %q", m.selected)
	}
	m = press(t, m, runes("p"))
	if m.selected != "b" {
		t.Errorf("after p = %q, want b", m.selected)
	}
}

func TestPlayDragAndResize(t *testing.T) {
	m := newTestPlayModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	a, _ := m.board.Layout().Find("a")
	if a.X != 1 || a.Y != 0 {
		t.Errorf("after right a = (%d,%d), want (1,0)", a.X, a.Y)
	}

	m = press(t, m, runes("L"))
	a, _ = m.board.Layout().Find("a")
	if a.Width != 3 {
		t.Errorf("after L a.Width = %d, want 3", a.Width)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	a, _ = m.board.Layout().Find("a")
	if a.X != 0 {
		t.Errorf("left past the edge a.X = %d, want 0", a.X)
	}
}

func TestPlayRemove(t *testing.T) {
	m := newTestPlayModel(t)

	m = press(t, m, runes("d"))
	if _, ok := m.board.Layout().Find("a"); ok {
		t.Error("a should be removed")
	}
	if m.selected != "b" {
		t.Errorf("selection after remove = %q, want b", m.selected)
	}
	if b, _ := m.board.Layout().Find("b"); b.Y != 0 {
		t.Errorf("b.Y = %d, want 0 after compaction", b.Y)
	}

	m = press(t, m, runes("d"))
	if m.selected != "" {
		t.Errorf("selection on empty board = %q, want none", m.selected)
	}
}

func TestPlayQuit(t *testing.T) {
	m := newTestPlayModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPlayView(t *testing.T) {
	m := newTestPlayModel(t)
	view := m.View()
	for _, want := range []string{"board.json", "12 columns", "▸ a", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPlayHelpToggle(t *testing.T) {
	m := newTestPlayModel(t)
	short := m.View()

	m = press(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("? should expand the help")
	}
	if full := m.View(); !strings.Contains(full, "taller") || strings.Contains(short, "taller") {
		t.Error("only the full help should list every resize key")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if w := next.(playModel).help.Width; w != 40 {
		t.Errorf("help width = %d, want 40", w)
	}
}
