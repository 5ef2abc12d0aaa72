package catalog

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgrid/pkg/observability"
)

// Loader reads a catalog from a source and validates its records.
type Loader struct {
	Source Source
	Logger *log.Logger
}

// NewLoader creates a loader. If logger is nil, log.Default() is used.
func NewLoader(src Source, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{Source: src, Logger: logger}
}

// Load reads the catalog, using cached data where the source supports it.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	return l.load(ctx, false)
}

// Reload reads the catalog again, bypassing any cache.
func (l *Loader) Reload(ctx context.Context) (*Catalog, error) {
	return l.load(ctx, true)
}

// LoadOrEmpty is Load, except that failures are logged and an empty catalog
// is returned.
func (l *Loader) LoadOrEmpty(ctx context.Context) *Catalog {
	return l.orEmpty(l.Load(ctx))
}

// ReloadOrEmpty is Reload with the LoadOrEmpty failure policy.
func (l *Loader) ReloadOrEmpty(ctx context.Context) *Catalog {
	return l.orEmpty(l.Reload(ctx))
}

func (l *Loader) orEmpty(c *Catalog, err error) *Catalog {
	if err != nil {
		l.Logger.Error("Error fetching items", "source", l.Source, "err", err)
		return Empty()
	}
	return c
}

func (l *Loader) load(ctx context.Context, refresh bool) (*Catalog, error) {
	src := l.Source.String()
	hooks := observability.Catalog()
	hooks.OnLoadStart(ctx, src)
	start := time.Now()

	records, err := l.Source.Records(ctx, refresh)
	if err != nil {
		hooks.OnLoadComplete(ctx, src, 0, time.Since(start), err)
		return nil, err
	}

	items := make([]Item, 0, len(records))
	for i, r := range records {
		it, err := r.Item()
		if err != nil {
			l.Logger.Warn("Skipping catalog record", "index", i, "err", err)
			continue
		}
		items = append(items, it)
	}

	c := New(items)
	if c.Len() < len(items) {
		l.Logger.Warn("Duplicate item names in catalog", "kept", c.Len(), "records", len(items))
	}
	l.Logger.Debug("Loaded catalog", "source", src, "items", c.Len(), "elapsed", time.Since(start).Round(time.Millisecond))
	hooks.OnLoadComplete(ctx, src, c.Len(), time.Since(start), nil)
	return c, nil
}
