package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// overlap is a pair of colliding widgets.
type overlap struct{ a, b string }

// overlaps lists every colliding pair in layout order.
func overlaps(l grid.Layout) []overlap {
	var out []overlap
	for i, w := range l {
		for _, o := range grid.AllCollisions(l[i+1:], w) {
			out = append(out, overlap{w.ID, o.ID})
		}
	}
	return out
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		g      gridFlags
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "Check a layout for structural errors and overlaps",
		Long: `Check that widget ids are unique, positions are non-negative, sizes are
positive and every widget fits in the grid. Overlapping widgets and
widgets that compaction would move are reported as warnings; with
--strict they fail validation.`,
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
				printError("%s", errors.UserMessage(err))
				return err
			}

			problems := 0
			for _, o := range overlaps(l) {
				printWarning("%s overlaps %s", o.a, o.b)
				problems++
			}
			if cfg.Grid.Packing {
				compacted, err := grid.NewEngine(c.Logger).Compact(l)
				if err != nil {
					printWarning("%s", errors.UserMessage(err))
					problems++
				} else if moved := pipeline.Changed(l, compacted); len(moved) > 0 {
					printWarning("not compact: %d widgets would move", len(moved))
					printDetail("%v", moved)
				}
			}

			if strict && problems > 0 {
				return errors.New(errors.ErrCodeInvalidLayout, "%s: %d problems", args[0], problems)
			}
			printSuccess("%s is valid (%d widgets, %d rows)", args[0], len(l), grid.Bottom(l))
			return nil
		},
	}
	g.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "treat overlaps and unplaceable widgets as errors")
	return cmd
}
