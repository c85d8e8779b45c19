// Package api exposes the dashboard over HTTP: raw summaries, enriched
// indicators, health score, correlation patterns, action plans, trends and
// series administration, plus liveness/readiness probes.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/config"
	"github.com/apetrov/econ-tracker/internal/adapters/database"
	redisAdapter "github.com/apetrov/econ-tracker/internal/adapters/redis"
	"github.com/apetrov/econ-tracker/internal/correlation"
	"github.com/apetrov/econ-tracker/internal/dashboard"
	"github.com/apetrov/econ-tracker/internal/interpret"
	"github.com/apetrov/econ-tracker/internal/recommend"
	"github.com/apetrov/econ-tracker/internal/series"
	"github.com/apetrov/econ-tracker/pkg/logger"
)

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	cfg        *config.ServerConfig

	db    *database.DB
	redis *redisAdapter.Client

	dashboard   *dashboard.Service
	interpret   *interpret.Service
	correlation *correlation.Engine
	recommend   *recommend.Engine
	seriesRepo  *series.Repository

	ready     bool
	readyMu   sync.RWMutex
	startTime time.Time
}

// NewServer creates a configured API server with all routes and middleware.
// redis may be nil when caching is disabled.
func NewServer(
	cfg *config.ServerConfig,
	db *database.DB,
	redisClient *redisAdapter.Client,
	dashboardSvc *dashboard.Service,
	interpretSvc *interpret.Service,
	correlationEngine *correlation.Engine,
	recommendEngine *recommend.Engine,
	seriesRepo *series.Repository,
) *Server {
	s := &Server{
		cfg:         cfg,
		db:          db,
		redis:       redisClient,
		dashboard:   dashboardSvc,
		interpret:   interpretSvc,
		correlation: correlationEngine,
		recommend:   recommendEngine,
		seriesRepo:  seriesRepo,
		startTime:   time.Now(),
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.buildRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.Info("api server starting",
		zap.String("addr", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping api server...")
	return s.httpServer.Shutdown(ctx)
}

// SetReady marks the service as ready
func (s *Server) SetReady(ready bool) {
	s.readyMu.Lock()
	defer s.readyMu.Unlock()
	s.ready = ready

	if ready {
		logger.Info("✅ service marked as READY")
	} else {
		logger.Warn("⚠️ service marked as NOT READY")
	}
}

// buildRouter configures all routes and middleware
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// K8s probes
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReadiness)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Get("/enriched", s.handleEnriched)
			r.Get("/health", s.handleEconomicHealth)
			r.Get("/correlations", s.handleCorrelations)
			r.Get("/actions", s.handleActions)
			r.Get("/trends", s.handleTrends)
		})

		r.Route("/series", func(r chi.Router) {
			r.Get("/", s.handleListSeries)
			r.Get("/{id}/observations", s.handleObservations)
			r.Put("/{id}/enabled", s.handleSetEnabled)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
