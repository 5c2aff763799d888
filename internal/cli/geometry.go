package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
)

// geometryOutput is the JSON output of the geometry command.
type geometryOutput struct {
	ColumnWidth float64       `json:"column_width"`
	Height      float64       `json:"height"`
	Widgets     []widgetPixel `json:"widgets"`
}

type widgetPixel struct {
	ID string `json:"id"`
	grid.Rect
}

// geometryCommand creates the geometry command.
func (c *CLI) geometryCommand() *cobra.Command {
	var (
		g      gridFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "geometry [layout]",
		Short: "Print the pixel rectangle of every widget",
		Long: `Print the pixel rectangle of every widget for the configured container
width, row height and margin, along with the container height.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.gridConfig(cmd, &g)
			if err != nil {
				return err
			}
			l, err := layoutio.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := grid.Validate(l, cfg.Grid.Columns); err != nil {
				return err
			}

			m := cfg.Grid.Metrics()
			out := geometryOutput{
				ColumnWidth: m.ColumnWidth,
				Height:      grid.ContainerHeight(l, m.RowHeight, m.Padding),
				Widgets:     make([]widgetPixel, len(l)),
			}
			for i, w := range l {
				out.Widgets[i] = widgetPixel{ID: w.ID, Rect: m.WidgetRect(w)}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printGeometry(l, out)
			return nil
		},
	}
	g.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the geometry as JSON")
	return cmd
}

func printGeometry(l grid.Layout, out geometryOutput) {
	printKeyValue("column width", fmt.Sprintf("%.2fpx", out.ColumnWidth))
	printKeyValue("container height", fmt.Sprintf("%.0fpx", out.Height))
	printNewline()

	rows := make([][]string, len(l))
	for i, w := range l {
		r := out.Widgets[i].Rect
		h := fmt.Sprint(r.Height)
		if r.UnboundedHeight {
			h = "auto"
		}
		rows[i] = []string{w.ID, cell(w), fmt.Sprintf("%d,%d", r.X, r.Y), fmt.Sprintf("%dx%s", r.Width, h)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Widget", "Cell", "Pixel", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorAccent)
			}
			return lipgloss.NewStyle().Foreground(colorValue)
		})
	fmt.Fprintln(stdout, t.Render())
}
