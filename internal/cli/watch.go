package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
	"github.com/matzehuels/dashgrid/pkg/render"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		g       gridFlags
		formats string
		output  string
		op      string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "watch [layout]",
		Short: "Re-render a layout whenever the file changes",
		Long: `Watch a layout file and re-run an operation (compact by default) and the
requested renders every time it is saved. Errors are reported and the
watch continues. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]
			fs := parseFormats(formats)
			if err := render.ValidateFormats(fs); err != nil {
				return err
			}
			if op != pipeline.OpCompact && op != pipeline.OpNone {
				return errors.New(errors.ErrCodeInvalidInput, "watch supports --op compact or none, got %q", op)
			}
			if _, err := os.Stat(input); err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", input)
			}

			cfg, err := c.gridConfig(cmd, &g)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			base := basePath(output, input)
			build := func() {
				prog := newProgress(c.Logger)
				l, err := runner.Load(ctx, input)
				if err == nil {
					var res *pipeline.Result
					res, err = runner.Execute(ctx, l, pipeline.Options{
						Operation: op,
						Grid:      cfg.Grid,
						Formats:   fs,
						Logger:    c.Logger,
					})
					for _, f := range fs {
						if err != nil {
							break
						}
						err = writeArtifact(base+render.Extension(f), res.Artifacts[f])
					}
				}
				if err != nil {
					printError("%s", errors.UserMessage(err))
					return
				}
				prog.done("rebuilt", "input", input, "formats", fs)
			}

			printInfo("Watching %s", input)
			return watchFile(ctx, input, watchDebounce, c.Logger, build)
		},
	}
	g.register(cmd)
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), txt, json, yaml, dot, graph (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVar(&op, "op", pipeline.OpCompact, "operation to run before rendering: compact or none")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// watchFile calls onChange once immediately and again after every write,
// create or rename of path, until ctx is cancelled. The parent directory is
// watched so editors that replace the file on save are followed.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	onChange()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("layout changed", "path", path, "op", event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
