// Package config loads dashgrid settings from a TOML file.
//
// A config file has three optional tables:
//
//	[grid]
//	columns = 24
//	row_height = 100
//	margin = [10, 10]
//	container_width = 1200
//	packing = true
//	max_cascade_depth = 1024
//
//	[cache]
//	backend = "file"   # file, redis, mongo or none
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "dashgrid"
//	namespace = "ops"  # optional key prefix on a shared backend
//
//	[server]
//	addr = ":8080"
//
// Keys that are absent keep their [Default] values. Unknown keys are
// rejected so typos surface early.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

const appName = "dashgrid"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full settings file.
type Config struct {
	Grid   Grid   `toml:"grid"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Grid holds the dashboard grid settings.
type Grid struct {
	Columns         int        `toml:"columns" json:"columns"`
	RowHeight       float64    `toml:"row_height" json:"row_height,omitempty"`
	Margin          [2]float64 `toml:"margin" json:"margin"`
	ContainerWidth  float64    `toml:"container_width" json:"container_width,omitempty"`
	Packing         bool       `toml:"packing" json:"packing"`
	MaxCascadeDepth int        `toml:"max_cascade_depth" json:"max_cascade_depth,omitempty"`
}

// Cache selects and configures the layout cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir,omitempty"`
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
	MongoURI      string   `toml:"mongo_uri,omitempty"`
	MongoDatabase string   `toml:"mongo_database,omitempty"`
	Namespace     string   `toml:"namespace,omitempty"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Grid: Grid{
			Columns:         24,
			RowHeight:       100,
			Margin:          [2]float64{10, 10},
			ContainerWidth:  1200,
			Packing:         true,
			MaxCascadeDepth: grid.DefaultMaxCascadeDepth,
		},
		Cache: Cache{
			Backend:       BackendFile,
			TTL:           Duration{24 * time.Hour},
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dashgrid/config.toml, falling back
// to ~/.config/dashgrid/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path. An empty path means [DefaultPath], which
// may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a config from r on top of [Default] and validates it.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks value ranges and the cache backend name.
func (c Config) Validate() error {
	g := c.Grid
	switch {
	case g.Columns < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "grid.columns must be at least 1, got %d", g.Columns)
	case g.RowHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "grid.row_height must be positive, got %v", g.RowHeight)
	case g.Margin[0] < 0 || g.Margin[1] < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "grid.margin must not be negative, got %v", g.Margin)
	case g.ContainerWidth < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "grid.container_width must not be negative, got %v", g.ContainerWidth)
	case g.MaxCascadeDepth < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "grid.max_cascade_depth must not be negative, got %d", g.MaxCascadeDepth)
	}

	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, mongo, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// PackingMode maps the packing switch to a [grid.Packing].
func (g Grid) PackingMode() grid.Packing {
	return grid.PackingFor(g.Packing)
}

// Metrics returns the pixel metrics for the configured container width.
func (g Grid) Metrics() grid.Metrics {
	return grid.Metrics{
		ColumnWidth: grid.ColumnWidth(g.ContainerWidth, g.Columns, g.Margin),
		RowHeight:   g.RowHeight,
		Padding:     g.Margin,
		Columns:     g.Columns,
	}
}
