package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
	"github.com/matzehuels/dashgrid/pkg/render"
)

var (
	playSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	playKeyStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	playHelpStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	playErrorStyle    = lipgloss.NewStyle().Foreground(colorRemoved)
)

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	var g gridFlags
	cmd := &cobra.Command{
		Use:   "play [layout]",
		Short: "Move and resize widgets interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.gridConfig(cmd, &g)
			if err != nil {
				return err
			}
			l, err := layoutio.ReadFile(args[0])
			if err != nil {
				return err
			}

			b := board.New(cfg.Grid, board.WithLogger(c.Logger))
			if _, err := b.SetWidgets(l); err != nil {
				return err
			}

			final, err := tea.NewProgram(newPlayModel(b, args[0]), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run board: %w", err)
			}
			if m, ok := final.(playModel); ok && m.saved {
				printSuccess("Saved %s", args[0])
			}
			return nil
		},
	}
	g.register(cmd)
	return cmd
}

// playKeys is the keymap of the interactive board. It doubles as the
// help.KeyMap for the footer.
type playKeys struct {
	Next, Prev                        key.Binding
	Left, Right, Up, Down             key.Binding
	Narrow, Widen, Shorter, Taller    key.Binding
	Remove, Compact, Save, Help, Quit key.Binding
}

func newPlayKeys() playKeys {
	return playKeys{
		Next:    key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "p"), key.WithHelp("shift+tab", "previous")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Narrow:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "narrower")),
		Widen:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "wider")),
		Shorter: key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "shorter")),
		Taller:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "taller")),
		Remove:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		Compact: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k playKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Widen, k.Remove, k.Save, k.Help, k.Quit}
}

func (k playKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Narrow, k.Widen, k.Shorter, k.Taller},
		{k.Remove, k.Compact, k.Save, k.Quit},
	}
}

// playModel is the bubbletea model for the interactive board. Arrow keys
// drag the selected widget one cell, shifted keys resize it.
type playModel struct {
	board    *board.Board
	path     string
	keys     playKeys
	help     help.Model
	selected string
	status   string
	err      error
	saved    bool
}

func newPlayModel(b *board.Board, path string) playModel {
	h := help.New()
	h.Styles.ShortKey = playKeyStyle
	h.Styles.FullKey = playKeyStyle
	h.Styles.ShortDesc = playHelpStyle
	h.Styles.FullDesc = playHelpStyle

	m := playModel{board: b, path: path, keys: newPlayKeys(), help: h}
	if ids := b.Layout().IDs(); len(ids) > 0 {
		m.selected = ids[0]
	}
	return m
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.selected = m.cycle(1)
	case key.Matches(msg, m.keys.Prev):
		m.selected = m.cycle(-1)
	case key.Matches(msg, m.keys.Left):
		m.err = m.drag(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.err = m.drag(1, 0)
	case key.Matches(msg, m.keys.Up):
		m.err = m.drag(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.err = m.drag(0, 1)
	case key.Matches(msg, m.keys.Narrow):
		m.err = m.resize(-1, 0)
	case key.Matches(msg, m.keys.Widen):
		m.err = m.resize(1, 0)
	case key.Matches(msg, m.keys.Shorter):
		m.err = m.resize(0, -1)
	case key.Matches(msg, m.keys.Taller):
		m.err = m.resize(0, 1)
	case key.Matches(msg, m.keys.Remove):
		if m.selected != "" {
			removed := m.selected
			next := m.cycle(1)
			m.err = m.board.Remove(removed)
			if next == removed {
				next = ""
			}
			m.selected = next
			m.status = "removed " + removed
		}
	case key.Matches(msg, m.keys.Compact):
		m.err = m.compact()
	case key.Matches(msg, m.keys.Save):
		if err := layoutio.WriteFile(m.path, m.board.Layout()); err != nil {
			m.err = err
		} else {
			m.saved = true
			m.status = "saved " + m.path
		}
	}
	return m, nil
}

// cycle returns the id step positions away from the selection.
func (m playModel) cycle(step int) string {
	ids := m.board.Layout().IDs()
	if len(ids) == 0 {
		return ""
	}
	i := slices.Index(ids, m.selected)
	if i < 0 {
		return ids[0]
	}
	return ids[((i+step)%len(ids)+len(ids))%len(ids)]
}

func (m playModel) drag(dx, dy int) error {
	w, ok := m.board.Layout().Find(m.selected)
	if !ok {
		return nil
	}
	if err := m.board.Drag(board.PhaseStart, board.Area{ID: w.ID, X: w.X, Y: w.Y}); err != nil {
		return err
	}
	return m.board.Drag(board.PhaseEnd, board.Area{ID: w.ID, X: w.X + dx, Y: w.Y + dy})
}

func (m playModel) resize(dw, dh int) error {
	w, ok := m.board.Layout().Find(m.selected)
	if !ok {
		return nil
	}
	a := board.Area{ID: w.ID, X: w.X, Y: w.Y, Width: w.Width + dw, Height: w.Height + dh}
	if err := m.board.Resize(board.PhaseStart, a); err != nil {
		return err
	}
	return m.board.Resize(board.PhaseEnd, a)
}

// compact compacts even when packing is off.
func (m playModel) compact() error {
	l, err := grid.NewEngine(nil).Compact(m.board.Layout())
	if err != nil {
		return err
	}
	_, err = m.board.SetWidgets(l)
	return err
}

func (m playModel) View() string {
	var b strings.Builder

	cfg := m.board.Config()
	b.WriteString(StyleTitle.Render("dashgrid"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %d columns · packing %v", m.path, cfg.Columns, cfg.Packing)))
	b.WriteString("\n\n")

	l := m.board.Layout()
	b.WriteString(render.Text(l, cfg.Columns, render.TextOptions{Color: true}))
	b.WriteString("\n")

	if w, ok := l.Find(m.selected); ok {
		b.WriteString(playSelectedStyle.Render("▸ " + w.ID))
		b.WriteString(StyleDim.Render("  " + cell(w)))
		if w.Fixed {
			b.WriteString(StyleDim.Render("  fixed"))
		}
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(playErrorStyle.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(StyleSuccess.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
