// Package cli implements the roomgrid command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrid/pkg/buildinfo"
	"github.com/matzehuels/roomgrid/pkg/cache"
	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/config"
	"github.com/matzehuels/roomgrid/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "roomgrid lays out furniture on a snapping grid",
		Long:         `roomgrid places catalog items of fixed cell size on a resizable grid canvas, snaps them to cells, and reports how much of the grid they cover.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/roomgrid/config.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.coverageCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Collaborators
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("Loaded config", "path", c.configPath, "source", cfg.Catalog.Source, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// newCache opens the configured cache backend. Failures to create the file
// cache degrade to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   cfg.Cache.RedisPrefix,
		})
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("No cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// loaderOpts are the shared catalog flags.
type loaderOpts struct {
	source  string // overrides [catalog] source
	noCache bool   // bypass the catalog cache
}

func (o *loaderOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.source, "catalog", "", "catalog file, http(s) URL or mongodb:// URI")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "do not cache fetched catalogs")
}

// newLoader builds a catalog loader from config and flags. The returned
// cache must be closed by the caller.
func (c *CLI) newLoader(ctx context.Context, cfg config.Config, opts loaderOpts) (*catalog.Loader, cache.Cache, error) {
	location := cfg.Catalog.Source
	if opts.source != "" {
		location = opts.source
	}

	ch, err := c.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeConfiguration, err, "open %s cache", cfg.Cache.Backend)
	}

	src, err := catalog.NewSource(location, catalog.SourceOptions{
		Cache:      ch,
		Keyer:      cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName),
		TTL:        cfg.Catalog.TTL.Duration,
		Database:   cfg.Catalog.MongoDatabase,
		Collection: cfg.Catalog.MongoCollection,
	})
	if err != nil {
		ch.Close()
		return nil, nil, err
	}
	return catalog.NewLoader(src, loggerFromContext(ctx)), ch, nil
}
