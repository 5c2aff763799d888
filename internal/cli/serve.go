package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		g       gridFlags
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout operations as an HTTP JSON API",
		Long: `Serve the layout operations over HTTP:

  POST /v1/compact, /v1/move, /v1/resize, /v1/remove, /v1/diff, /v1/geometry
  GET  /healthz

Grid flags set the default grid for requests that do not carry one.
Set OTEL_EXPORTER_OTLP_ENDPOINT to export traces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.gridConfig(cmd, &g)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			shutdown, err := setupTracing(ctx)
			if err != nil {
				return fmt.Errorf("set up tracing: %w", err)
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(flushCtx); err != nil {
					c.Logger.Warn("flush traces", "error", err)
				}
			}()

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			printDetail("%d columns, packing %v, cache %s", cfg.Grid.Columns, cfg.Grid.Packing, cfg.Cache.Backend)
			return server.New(runner, cfg.Grid, c.Logger).ListenAndServe(ctx, addr)
		},
	}
	g.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
