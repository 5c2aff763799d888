package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/pipeline"
	"github.com/matzehuels/dashgrid/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		g        gridFlags
		formats  string
		output   string
		compact  bool
		noCache  bool
		refresh  bool
		toStdout bool
	)
	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a layout as SVG, text, DOT or a collision graph",
		Long: `Render a layout to one or more formats:

  svg    widget rectangles at the configured pixel geometry
  txt    a character grid, one cell per grid unit
  json   the layout as JSON
  yaml   the layout as YAML
  dot    the support graph (which widget rests on which) in DOT
  graph  the support graph rendered to SVG by Graphviz

Overlapping widgets are highlighted in every visual format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := parseFormats(formats)
			if err := render.ValidateFormats(fs); err != nil {
				return err
			}
			if toStdout && len(fs) != 1 {
				return fmt.Errorf("--stdout needs exactly one format, got %d", len(fs))
			}

			ctx := cmd.Context()
			cfg, err := c.gridConfig(cmd, &g)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			l, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			op := pipeline.OpNone
			if compact {
				op = pipeline.OpCompact
			}
			spinner := newSpinnerWithContext(ctx, "Rendering "+args[0]+"...")
			spinner.Start()
			res, err := runner.Execute(ctx, l, pipeline.Options{
				Operation: op,
				Grid:      cfg.Grid,
				Formats:   fs,
				Refresh:   refresh,
				Logger:    c.Logger,
			})
			if spinner.Cancelled() {
				spinner.Stop()
				return ctx.Err()
			}
			if err != nil {
				spinner.Stop()
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			if toStdout {
				spinner.Stop()
				_, err := cmd.OutOrStdout().Write(res.Artifacts[fs[0]])
				return err
			}

			base := basePath(output, args[0])
			spinner.SetMessage(fmt.Sprintf("Writing %d files...", len(fs)))
			for _, f := range fs {
				if err := writeArtifact(base+render.Extension(f), res.Artifacts[f]); err != nil {
					spinner.Stop()
					return err
				}
			}
			spinner.StopWithSuccess("Rendered " + args[0])
			for _, f := range fs {
				printFile(base + render.Extension(f))
			}
			printStats(res.Stats.Widgets, res.Stats.Changed, res.CacheInfo.RenderHit)
			return nil
		},
	}

	g.register(cmd)
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), txt, json, yaml, dot, graph (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().BoolVar(&compact, "compact", false, "compact the layout before rendering")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when a cached result exists")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the single requested format to stdout")
	return cmd
}

// basePath derives the base output path from the output and input paths.
// Known render extensions are stripped from output so "board.svg" and
// "board" name the same files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if ext := render.Extension(render.FormatGraph); strings.HasSuffix(output, ext) {
		return strings.TrimSuffix(output, ext)
	}
	for _, f := range render.Formats {
		if ext := render.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeArtifact writes rendered output to path.
func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
