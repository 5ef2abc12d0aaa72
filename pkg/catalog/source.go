package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/roomgrid/pkg/cache"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/httputil"
	"github.com/matzehuels/roomgrid/pkg/observability"
)

// Source yields catalog records.
type Source interface {
	// Records reads the catalog. When refresh is true, any cached copy is
	// bypassed.
	Records(ctx context.Context, refresh bool) ([]Record, error)

	// String describes the source for logs.
	String() string
}

// SourceOptions configures sources built by [NewSource].
type SourceOptions struct {
	// Cache stores fetched HTTP catalogs. Nil disables caching.
	Cache cache.Cache
	// Keyer builds cache keys. Nil uses the default keyer.
	Keyer cache.Keyer
	// TTL is the lifetime of cached HTTP catalogs.
	TTL time.Duration
	// Client fetches HTTP catalogs. Nil uses a default client.
	Client *httputil.Client

	// Database and Collection locate records for mongodb:// sources.
	Database   string
	Collection string
}

// NewSource picks a source for location: an http(s) URL, a mongodb:// URI,
// or a local file path.
func NewSource(location string, opts SourceOptions) (Source, error) {
	switch {
	case location == "":
		return nil, errors.Configuration("catalog source is empty")
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, opts), nil
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		return NewMongoSource(location, opts.Database, opts.Collection), nil
	default:
		return FileSource{Path: location}, nil
	}
}

// FileSource reads a local catalog file.
type FileSource struct {
	Path string
}

// Records implements Source.
func (s FileSource) Records(ctx context.Context, refresh bool) ([]Record, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "catalog file %s", s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Decode(data, FormatFromPath(s.Path))
}

func (s FileSource) String() string { return s.Path }

// HTTPSource fetches a catalog over HTTP, retrying transient failures and
// caching the raw body.
type HTTPSource struct {
	URL    string
	client *httputil.Client
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
}

// NewHTTPSource creates an HTTP source.
func NewHTTPSource(url string, opts SourceOptions) *HTTPSource {
	s := &HTTPSource{URL: url, client: opts.Client, cache: opts.Cache, keyer: opts.Keyer, ttl: opts.TTL}
	if s.client == nil {
		s.client = httputil.NewClient(map[string]string{"Accept": "application/json, application/yaml, application/toml, */*"})
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	return s
}

// Records implements Source.
func (s *HTTPSource) Records(ctx context.Context, refresh bool) ([]Record, error) {
	data, err := s.fetch(ctx, refresh)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatFromPath(s.URL))
}

func (s *HTTPSource) fetch(ctx context.Context, refresh bool) ([]byte, error) {
	key := s.keyer.CatalogKey(s.URL)
	hooks := observability.Cache()

	if !refresh {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			hooks.OnCacheHit(ctx, "catalog")
			return data, nil
		}
		hooks.OnCacheMiss(ctx, "catalog")
	}

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.URL)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(fetchErrorCode(err), err, "fetch catalog %s", s.URL)
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err == nil {
		hooks.OnCacheSet(ctx, "catalog", len(data))
	}
	return data, nil
}

func (s *HTTPSource) String() string { return s.URL }

func fetchErrorCode(err error) errors.Code {
	switch {
	case httputil.IsNotFound(err):
		return errors.ErrCodeNotFound
	case httputil.IsTimeout(err):
		return errors.ErrCodeTimeout
	default:
		return errors.ErrCodeNetwork
	}
}
