package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layoutio"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// opFlags are shared by the layout operation commands.
type opFlags struct {
	grid    gridFlags
	output  string
	to      string
	inPlace bool
	noCache bool
	refresh bool
}

func (o *opFlags) register(cmd *cobra.Command) {
	o.grid.register(cmd)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&o.to, "to", "", "layout format for stdout: json or yaml (default: the input's format)")
	cmd.Flags().BoolVarP(&o.inPlace, "write", "w", false, "write the result back to the input file")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.MarkFlagsMutuallyExclusive("output", "write")
}

// compactCommand creates the compact command.
func (c *CLI) compactCommand() *cobra.Command {
	var f opFlags
	cmd := &cobra.Command{
		Use:   "compact [layout]",
		Short: "Move every widget up as far as it can go",
		Long: `Compact a layout: widgets are visited top to bottom and moved up until
they touch a fixed widget, a settled widget or the top edge. Overlapping
widgets are pushed down until they fit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOperation(cmd, args[0], &f, pipeline.Options{Operation: pipeline.OpCompact})
		},
	}
	f.register(cmd)
	return cmd
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		f              opFlags
		id             string
		x, y           int
		noUserAction   bool
		allowCollision bool
	)
	cmd := &cobra.Command{
		Use:   "move [layout]",
		Short: "Move a widget and push colliding widgets out of the way",
		Long: `Move one widget to a new cell. Widgets it lands on are displaced,
and the displacement cascades until nothing overlaps. With packing the
result is compacted.

Examples:
  dashgrid move board.yaml --id chart --x 4
  dashgrid move board.yaml --id chart --x 0 --y 3 --packing=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Operation:      pipeline.OpMove,
				WidgetID:       id,
				AllowCollision: allowCollision,
			}
			if cmd.Flags().Changed("x") {
				opts.X = &x
			}
			if cmd.Flags().Changed("y") {
				opts.Y = &y
			}
			if noUserAction {
				opts.UserAction = grid.Bool(false)
			}
			return c.runOperation(cmd, args[0], &f, opts)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "widget to move")
	cmd.Flags().IntVar(&x, "x", 0, "target column")
	cmd.Flags().IntVar(&y, "y", 0, "target row")
	cmd.Flags().BoolVar(&noUserAction, "no-user-action", false, "treat the move as programmatic (displaced widgets never swap above)")
	cmd.Flags().BoolVar(&allowCollision, "allow-collision", false, "without packing, allow the widget to overlap others")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		f    opFlags
		id   string
		w, h int
	)
	cmd := &cobra.Command{
		Use:   "resize [layout]",
		Short: "Resize a widget within its size bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOperation(cmd, args[0], &f, pipeline.Options{
				Operation: pipeline.OpResize,
				WidgetID:  id,
				Width:     w,
				Height:    h,
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "widget to resize")
	cmd.Flags().IntVar(&w, "w", 0, "new width in columns")
	cmd.Flags().IntVar(&h, "h", 0, "new height in rows")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("w")
	_ = cmd.MarkFlagRequired("h")
	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	var (
		f  opFlags
		id string
	)
	cmd := &cobra.Command{
		Use:   "remove [layout]",
		Short: "Remove a widget and close the gap it leaves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOperation(cmd, args[0], &f, pipeline.Options{
				Operation: pipeline.OpRemove,
				WidgetID:  id,
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "widget to remove")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// runOperation loads input, applies opts and writes the result.
func (c *CLI) runOperation(cmd *cobra.Command, input string, f *opFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	format := layoutio.FormatFromPath(input)
	if f.to != "" {
		var err error
		if format, err = layoutio.ParseFormat(f.to); err != nil {
			return err
		}
	}
	cfg, err := c.gridConfig(cmd, &f.grid)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	opts.Grid = cfg.Grid
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	res, err := runner.Execute(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("%s %s: %w", opts.Operation, input, err)
	}

	output := f.output
	if f.inPlace {
		output = input
	}
	if output == "" {
		return layoutio.Write(cmd.OutOrStdout(), res.Layout, format)
	}
	if err := layoutio.WriteFile(output, res.Layout); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("%s complete", strings.ToUpper(opts.Operation[:1])+opts.Operation[1:])
	printFile(output)
	printStats(res.Stats.Widgets, res.Stats.Changed, res.CacheInfo.LayoutHit)
	if len(res.Changed) > 0 {
		printDetail("moved: %s", strings.Join(res.Changed, ", "))
	}
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
