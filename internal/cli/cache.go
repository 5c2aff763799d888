package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and render",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Clearing "+cfg.Cache.Backend+" cache...")
			spinner.Start()
			ch, err := c.openCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				spinner.StopWithError("Could not open cache")
				return err
			}
			defer ch.Close()

			if err := cache.Clear(cmd.Context(), ch); err != nil {
				spinner.StopWithError("Clear failed")
				return fmt.Errorf("clear cache: %w", err)
			}
			spinner.StopWithSuccess("Cleared " + cfg.Cache.Backend + " cache")
			printDetail("%s", cacheLocation(cfg.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.Cache))
			return nil
		},
	}
}

// cacheLocation describes the backend: a directory, an address or a URI.
func cacheLocation(cfg config.Cache) string {
	switch cfg.Backend {
	case config.BackendRedis:
		return "redis://" + cfg.RedisAddr
	case config.BackendMongo:
		return cfg.MongoURI + "/" + cfg.MongoDatabase
	case config.BackendNone:
		return "none"
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}
