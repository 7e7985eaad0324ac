// Package server exposes the batch trigger, map data, enrichment, exports and
// the live stream over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/batch.go -pkg mocks -skip-ensure -fmt goimports . Batch
//go:generate moq -out mocks/analyst.go -pkg mocks -skip-ensure -fmt goimports . Analyst

// Store is the read and enrichment side of the conflicts store
type Store interface {
	List(ctx context.Context, f domain.ConflictFilter) ([]domain.Conflict, error)
	Get(ctx context.Context, id int64) (*domain.Conflict, error)
	SaveEnrichment(ctx context.Context, id int64, e domain.Enrichment) error
	Related(ctx context.Context, c domain.Conflict, radiusKm float64, window time.Duration, limit int) ([]domain.RelatedReport, error)
	Count(ctx context.Context) (int64, error)
}

// Batch triggers ingestion on demand
type Batch interface {
	Trigger(ctx context.Context) (domain.BatchSummary, error)
	Last() (domain.BatchSummary, bool)
}

// Analyst produces on-demand enrichments of a record
type Analyst interface {
	Analyze(ctx context.Context, c domain.Conflict) (*domain.AIAnalysis, error)
	Narrate(ctx context.Context, c domain.Conflict, related []domain.RelatedReport) (*domain.Narrative, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params holds server dependencies. Analyst, Live and Metrics are optional.
type Params struct {
	Config         ConfigProvider
	Store          Store
	Batch          Batch
	Analyst        Analyst
	Feeds          []domain.Feed
	Live           http.Handler
	Metrics        prometheus.Gatherer
	BaseURL        string
	AllowedOrigins []string
	Version        string
	Debug          bool
}

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	store    Store
	batch    Batch
	analyst  Analyst
	feeds    []domain.Feed
	live     http.Handler
	metrics  prometheus.Gatherer
	feedsGen *feed.Generator
	origins  []string
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:   p.Config,
		store:    p.Store,
		batch:    p.Batch,
		analyst:  p.Analyst,
		feeds:    p.Feeds,
		live:     p.Live,
		metrics:  p.Metrics,
		feedsGen: feed.NewGenerator(p.BaseURL),
		origins:  p.AllowedOrigins,
		version:  p.Version,
		debug:    p.Debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("mappin", "mappin-app", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(log.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
	s.router.Use(s.cors)
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /batch", s.batchHandler)
		r.HandleFunc("/batch", methodNotAllowed(http.MethodPost))
		r.HandleFunc("GET /conflicts", s.listConflictsHandler)
		r.HandleFunc("GET /conflicts/new", s.newConflictsHandler)
		r.HandleFunc("GET /conflicts/{id}", s.getConflictHandler)
		r.HandleFunc("GET /conflicts/{id}/analysis", s.analysisHandler)
		r.HandleFunc("POST /conflicts/{id}/narrative", s.narrativeHandler)
		r.HandleFunc("/conflicts/{id}/narrative", methodNotAllowed(http.MethodPost))
		r.HandleFunc("GET /feeds", s.feedsHandler)
		if s.live != nil {
			r.Handle("GET /live", s.live)
		}
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /feeds.opml", s.opmlHandler)
	if s.metrics != nil {
		s.router.Handle("GET /metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
}

// cors allows browser map clients from configured origins
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(s.origins, "*") || slices.Contains(s.origins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Add("Vary", "Origin")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// methodNotAllowed answers 405 on a path registered for the allowed methods only
func methodNotAllowed(allowed ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		renderError(w, r, fmt.Errorf("method %s not allowed", r.Method), http.StatusMethodNotAllowed)
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
