package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/buildinfo"
	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

const appName = "dashgrid"

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New returns a CLI logging to w at info level, or debug level once
// --verbose is parsed.
func New(w io.Writer) *CLI {
	return &CLI{Logger: newLogger(w, log.InfoLevel)}
}

// RootCommand returns the root command with every subcommand attached.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Dashgrid lays out dashboard widgets on a grid",
		Long: `Dashgrid is a layout engine for grid dashboards. It compacts widgets
upward, moves and resizes them with collision cascades, and renders layouts
as SVG, text or collision graphs.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dashgrid/config.toml)")

	root.AddCommand(c.compactCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.geometryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file, or the default one if present.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns)
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		runner.TTL = cfg.Cache.TTL.Duration
	}
	return runner, nil
}

// openCache opens the configured cache backend. A file cache that cannot
// be created degrades to no caching.
func (c *CLI) openCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, fmt.Errorf("open mongo cache: %w", err)
		}
		return mc, nil
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns cfg.Dir, or the XDG cache directory (~/.cache/dashgrid/).
func cacheDir(cfg config.Cache) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// gridFlags are the grid settings every layout command accepts. Flags
// that were not set leave the config value alone.
type gridFlags struct {
	columns   int
	rowHeight float64
	margin    []float64
	width     float64
	packing   bool
	maxDepth  int
}

func (g *gridFlags) register(cmd *cobra.Command) {
	def := config.Default().Grid
	f := cmd.Flags()
	f.IntVar(&g.columns, "columns", def.Columns, "number of grid columns")
	f.Float64Var(&g.rowHeight, "row-height", def.RowHeight, "row height in pixels")
	f.Float64SliceVar(&g.margin, "margin", def.Margin[:], "horizontal and vertical margin in pixels")
	f.Float64Var(&g.width, "width", def.ContainerWidth, "container width in pixels")
	f.BoolVar(&g.packing, "packing", def.Packing, "compact widgets upward after every operation")
	f.IntVar(&g.maxDepth, "max-cascade-depth", def.MaxCascadeDepth, "abort placements that cascade deeper than this")
}

// apply overrides cfg with the flags the user set.
func (g *gridFlags) apply(cmd *cobra.Command, cfg *config.Grid) error {
	f := cmd.Flags()
	if f.Changed("columns") {
		cfg.Columns = g.columns
	}
	if f.Changed("row-height") {
		cfg.RowHeight = g.rowHeight
	}
	if f.Changed("margin") {
		switch len(g.margin) {
		case 1:
			cfg.Margin = [2]float64{g.margin[0], g.margin[0]}
		case 2:
			cfg.Margin = [2]float64{g.margin[0], g.margin[1]}
		default:
			return fmt.Errorf("--margin takes one or two values, got %d", len(g.margin))
		}
	}
	if f.Changed("width") {
		cfg.ContainerWidth = g.width
	}
	if f.Changed("packing") {
		cfg.Packing = g.packing
	}
	if f.Changed("max-cascade-depth") {
		cfg.MaxCascadeDepth = g.maxDepth
	}
	return config.Config{Grid: *cfg, Cache: config.Default().Cache}.Validate()
}

// gridConfig loads the config file and applies grid flags on top.
func (c *CLI) gridConfig(cmd *cobra.Command, g *gridFlags) (config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := g.apply(cmd, &cfg.Grid); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}
