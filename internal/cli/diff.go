package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// layoutDiff is the JSON output of the diff command.
type layoutDiff struct {
	Added   grid.Layout `json:"added"`
	Removed grid.Layout `json:"removed"`
	Changed []string    `json:"changed"`
}

func diffLayouts(a, b grid.Layout) layoutDiff {
	d := layoutDiff{
		Added:   grid.Added(a, b),
		Removed: grid.Removed(a, b),
		Changed: pipeline.Changed(a, b),
	}
	if d.Added == nil {
		d.Added = grid.Layout{}
	}
	if d.Removed == nil {
		d.Removed = grid.Layout{}
	}
	if d.Changed == nil {
		d.Changed = []string{}
	}
	return d
}

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "diff [old] [new]",
		Short: "Show widgets added, removed or repositioned between two layouts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := layoutio.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := layoutio.ReadFile(args[1])
			if err != nil {
				return err
			}
			d := diffLayouts(a, b)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			printDiff(d, a, b)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the diff as JSON")
	return cmd
}

func printDiff(d layoutDiff, a, b grid.Layout) {
	if len(d.Added)+len(d.Removed)+len(d.Changed) == 0 {
		printInfo("Layouts are identical")
		return
	}
	for _, w := range d.Added {
		fmt.Fprintln(stdout, StyleSuccess.Render("+ "+w.ID)+" "+StyleDim.Render(cell(w)))
	}
	for _, w := range d.Removed {
		fmt.Fprintln(stdout, StyleError.Render("- "+w.ID)+" "+StyleDim.Render(cell(w)))
	}
	for _, id := range d.Changed {
		from, _ := a.Find(id)
		to, _ := b.Find(id)
		fmt.Fprintln(stdout, StyleWarning.Render("~ "+id)+" "+StyleDim.Render(cell(from)+" "+iconArrow+" "+cell(to)))
	}
}

// cell formats a widget's grid rectangle as "x,y wxh".
func cell(w grid.Widget) string {
	if w.AutoHeight {
		return fmt.Sprintf("%d,%d %dxauto", w.X, w.Y, w.Width)
	}
	return fmt.Sprintf("%d,%d %dx%d", w.X, w.Y, w.Width, w.Height)
}
