package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"golang.org/x/sync/singleflight"

	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/notify"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/pipeline.go -pkg mocks -skip-ensure -fmt goimports . Pipeline
//go:generate moq -out mocks/reporter.go -pkg mocks -skip-ensure -fmt goimports . Reporter
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . History

const defaultMaxItems = 50

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	pipeline  Pipeline
	cache     Cache
	reporter  Reporter
	notifier  Notifier
	scheduler Scheduler
	history   History
	baseURL   string
	maxItems  int
	version   string
	debug     bool

	runs singleflight.Group

	lock       sync.Mutex
	httpServer *http.Server
	baseCtx    context.Context
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Pipeline runs collection, classification and digest
type Pipeline interface {
	RunFullPipeline(ctx context.Context, maxItems int) domain.PipelineResult
}

// Cache keeps the latest pipeline result
type Cache interface {
	Get(ctx context.Context) (domain.PipelineResult, bool)
	Set(ctx context.Context, res domain.PipelineResult) error
}

// Reporter renders exports
type Reporter interface {
	JSON(ctx context.Context, items []domain.NewsItem) ([]byte, error)
	PDF(ctx context.Context, items []domain.NewsItem, title string) ([]byte, error)
	Email(items []domain.NewsItem) (domain.EmailDigest, error)
}

// Notifier manages subscribers and deliveries
type Notifier interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	Unsubscribe(ctx context.Context, email string) (bool, error)
	SendTest(ctx context.Context) error
	Status(ctx context.Context) notify.Status
}

// Scheduler controls daily notifications
type Scheduler interface {
	Start(ctx context.Context) error
	Stop()
	Running() bool
	NextRun() time.Time
	Spec() string
}

// History provides past pipeline runs
type History interface {
	Recent(ctx context.Context, limit int) ([]domain.RunSummary, error)
	Get(ctx context.Context, runID string) (domain.PipelineResult, error)
}

// Params holds server dependencies
type Params struct {
	Config    ConfigProvider
	Pipeline  Pipeline
	Cache     Cache
	Reporter  Reporter
	Notifier  Notifier
	Scheduler Scheduler
	History   History // optional, history endpoints are not registered when nil
	BaseURL   string  // used in rss links
	MaxItems  int     // items per pipeline run triggered by the api
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(params Params) *Server {
	if params.MaxItems <= 0 {
		params.MaxItems = defaultMaxItems
	}
	s := &Server{
		config:    params.Config,
		pipeline:  params.Pipeline,
		cache:     params.Cache,
		reporter:  params.Reporter,
		notifier:  params.Notifier,
		scheduler: params.Scheduler,
		history:   params.History,
		baseURL:   params.BaseURL,
		maxItems:  params.MaxItems,
		version:   params.Version,
		debug:     params.Debug,
		baseCtx:   context.Background(),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.baseCtx = ctx
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// pipeline runs and pdf exports take longer than regular reads
		WriteTimeout: 10 * timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("cybernews", "cybernews-agent", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /news", s.newsHandler)
		r.HandleFunc("GET /search", s.searchHandler)
		r.HandleFunc("GET /digest", s.digestHandler)
		r.HandleFunc("POST /refresh", s.refreshHandler)

		r.HandleFunc("POST /subscribe", s.subscribeHandler)
		r.HandleFunc("POST /unsubscribe", s.unsubscribeHandler)
		r.HandleFunc("GET /notifications", s.notificationsHandler)
		r.HandleFunc("POST /notifications/test", s.testNotificationHandler)
		r.HandleFunc("POST /notifications/start", s.startNotificationsHandler)
		r.HandleFunc("POST /notifications/stop", s.stopNotificationsHandler)

		if s.history != nil {
			r.HandleFunc("GET /history", s.historyHandler)
			r.HandleFunc("GET /history/{id}", s.historyRunHandler)
		}
	})

	s.router.Mount("/export").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /json", s.exportJSONHandler)
		r.HandleFunc("GET /pdf", s.exportPDFHandler)
		r.HandleFunc("GET /email", s.exportEmailHandler)
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
}

// latest returns the cached result, a miss runs the pipeline and caches its result.
// Concurrent misses share a single run.
func (s *Server) latest(ctx context.Context) domain.PipelineResult {
	if res, ok := s.cache.Get(ctx); ok {
		return res
	}
	return s.refresh(ctx)
}

// refresh runs the pipeline and replaces the cached result. The run is shared by all
// waiting readers, so it is bound to the server lifetime rather than to the request that
// started it, and a run cut short by shutdown is not cached.
func (s *Server) refresh(_ context.Context) domain.PipelineResult {
	v, _, _ := s.runs.Do("pipeline", func() (any, error) {
		runCtx := s.serverCtx()
		res := s.pipeline.RunFullPipeline(runCtx, s.maxItems)
		if runCtx.Err() != nil {
			log.Printf("[WARN] pipeline run %s interrupted, result not cached", res.RunID)
			return res, nil
		}
		if err := s.cache.Set(runCtx, res); err != nil {
			log.Printf("[WARN] failed to cache pipeline result: %v", err)
		}
		return res, nil
	})
	return v.(domain.PipelineResult)
}

func (s *Server) serverCtx() context.Context {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.baseCtx
}
