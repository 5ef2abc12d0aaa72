// Package config loads roomgrid settings from a TOML file.
//
// A missing file is not an error: every field has a default. An example with
// all defaults spelled out:
//
//	[grid]
//	columns = 60
//	rows = 40
//	snap = true
//
//	[viewport]
//	width = 1280
//	height = 800
//	width_factor = 0.7
//	height_factor = 0.8
//
//	[catalog]
//	source = "items.json"     # file path, http(s) URL or mongodb:// URI
//	ttl = "24h"               # cache lifetime of fetched catalogs
//	mongo_database = "roomgrid"
//	mongo_collection = "items"
//
//	[cache]
//	backend = "file"          # file, redis or none
//	dir = ""                  # defaults to $XDG_CACHE_HOME/roomgrid
//	redis_addr = "localhost:6379"
//	redis_prefix = "roomgrid:"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "2h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
	"github.com/matzehuels/roomgrid/pkg/layout"
	"github.com/matzehuels/roomgrid/pkg/session"
)

// AppName names the config and cache directories.
const AppName = "roomgrid"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Duration is a time.Duration written as a string ("90m", "24h") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full set of settings.
type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Viewport ViewportConfig `toml:"viewport"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// GridConfig sets the initial grid.
type GridConfig struct {
	Columns int  `toml:"columns"`
	Rows    int  `toml:"rows"`
	Snap    bool `toml:"snap"`
}

// ViewportConfig sets the default viewport and the canvas budget.
type ViewportConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	WidthFactor  float64 `toml:"width_factor"`
	HeightFactor float64 `toml:"height_factor"`
}

// CatalogConfig locates the item catalog.
type CatalogConfig struct {
	Source          string   `toml:"source"`
	TTL             Duration `toml:"ttl"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
}

// CacheConfig selects the cache backend for fetched catalogs.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Grid: GridConfig{Columns: grid.DefaultColumns, Rows: grid.DefaultRows, Snap: true},
		Viewport: ViewportConfig{
			Width:        layout.DefaultViewport.WidthPx,
			Height:       layout.DefaultViewport.HeightPx,
			WidthFactor:  grid.DefaultWidthFactor,
			HeightFactor: grid.DefaultHeightFactor,
		},
		Catalog: CatalogConfig{
			Source:          "items.json",
			TTL:             Duration{24 * time.Hour},
			MongoDatabase:   catalog.DefaultMongoDatabase,
			MongoCollection: catalog.DefaultMongoCollection,
		},
		Cache: CacheConfig{
			Backend:     CacheFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: AppName + ":",
		},
		Server: ServerConfig{Addr: ":8080", SessionTTL: Duration{session.DefaultTTL}},
	}
}

// Load reads path on top of the defaults. If path is empty, the default
// location is used and a missing file yields the defaults. An explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfiguration, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := errors.ValidateGridDimensions(c.Grid.Columns, c.Grid.Rows); err != nil {
		return err
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.Configuration("viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.WidthFactor <= 0 || c.Viewport.WidthFactor > 1 ||
		c.Viewport.HeightFactor <= 0 || c.Viewport.HeightFactor > 1 {
		return errors.Configuration("viewport factors must be in (0, 1], got %v and %v",
			c.Viewport.WidthFactor, c.Viewport.HeightFactor)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.Configuration("cache backend redis needs redis_addr")
		}
	default:
		return errors.Configuration("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Catalog.TTL.Duration < 0 {
		return errors.Configuration("catalog ttl must not be negative")
	}
	if c.Server.SessionTTL.Duration < 0 {
		return errors.Configuration("session ttl must not be negative")
	}
	return nil
}

// LayoutOptions converts the grid and viewport sections for package layout.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Columns:  c.Grid.Columns,
		Rows:     c.Grid.Rows,
		Viewport: grid.Viewport{WidthPx: c.Viewport.Width, HeightPx: c.Viewport.Height},
		Budget:   grid.Budget{WidthFactor: c.Viewport.WidthFactor, HeightFactor: c.Viewport.HeightFactor},
		Snap:     c.Grid.Snap,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/roomgrid/config.toml, falling back to
// ~/.config/roomgrid/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or
// $XDG_CACHE_HOME/roomgrid (~/.cache/roomgrid) when unset.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
