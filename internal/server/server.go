// Package server exposes layout workspaces over a JSON HTTP API.
//
// Each workspace is a [session.Session] holding one layout.State. Requests
// against the same workspace are serialized by the session; different
// workspaces proceed in parallel. The item catalog is shared by all
// workspaces and can be reloaded at runtime.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/layout"
	"github.com/matzehuels/roomgrid/pkg/session"
)

const (
	// shutdownTimeout bounds graceful shutdown once the run context ends.
	shutdownTimeout = 10 * time.Second
	// janitorInterval is how often expired workspaces are swept.
	janitorInterval = time.Minute
	// maxBodyBytes caps request bodies.
	maxBodyBytes = 1 << 20
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Defaults configures new workspaces.
	Defaults layout.Options
	// Store holds workspaces. Nil uses an in-memory store with the default TTL.
	Store session.Store
	// Loader provides the item catalog. Nil serves an empty catalog.
	Loader *catalog.Loader
	// Logger receives request and lifecycle logs. Nil uses log.Default().
	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	store  session.Store
	logger *log.Logger
	router chi.Router

	mu      sync.RWMutex
	catalog *catalog.Catalog
}

// New creates a Server. The catalog is loaded on first use.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore(session.DefaultTTL)
	}
	s := &Server{opts: opts, store: opts.Store, logger: opts.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the API's root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/catalog/reload", s.handleCatalogReload)
		r.Post("/map", s.handleMap)

		r.Post("/workspaces", s.handleCreateWorkspace)
		r.Route("/workspaces/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWorkspace)
			r.Delete("/", s.handleDeleteWorkspace)
			r.Put("/grid", s.handleSetGrid)
			r.Put("/viewport", s.handleSetViewport)
			r.Put("/snap", s.handleSetSnap)
			r.Get("/coverage", s.handleCoverage)
			r.Post("/placements", s.handleDrop)
			r.Patch("/placements/{pid}", s.handleMove)
			r.Delete("/placements/{pid}", s.handleRemove)
		})
	})
	return r
}

// requestLogger logs one line per request at debug level, and at warn level
// for server errors.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logf := s.logger.Debug
		if status >= http.StatusInternalServerError {
			logf = s.logger.Warn
		}
		logf("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// currentCatalog returns the loaded catalog, loading it on first use.
func (s *Server) currentCatalog(ctx context.Context) *catalog.Catalog {
	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()
	if c != nil {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		s.catalog = s.fetchCatalog(ctx, false)
	}
	return s.catalog
}

// reloadCatalog replaces the catalog with a fresh copy from the source.
func (s *Server) reloadCatalog(ctx context.Context) *catalog.Catalog {
	c := s.fetchCatalog(ctx, true)
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
	return c
}

func (s *Server) fetchCatalog(ctx context.Context, refresh bool) *catalog.Catalog {
	if s.opts.Loader == nil {
		return catalog.Empty()
	}
	if refresh {
		return s.opts.Loader.ReloadOrEmpty(ctx)
	}
	return s.opts.Loader.LoadOrEmpty(ctx)
}

// Run serves on opts.Addr until ctx is canceled, then shuts down
// gracefully. The catalog is loaded before the listener starts.
func (s *Server) Run(ctx context.Context) error {
	c := s.currentCatalog(ctx)

	if ms, ok := s.store.(*session.MemoryStore); ok {
		go ms.Janitor(ctx, janitorInterval, func(n int) {
			s.logger.Debug("Expired workspaces removed", "count", n)
		})
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.opts.Addr, "items", c.Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
