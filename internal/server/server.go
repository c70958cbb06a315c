// Package server provides the HTTP REST API for the resume pagination engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonathan/resume-paginator/internal/config"
	"github.com/jonathan/resume-paginator/internal/db"
	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/jonathan/resume-paginator/internal/server/middleware"
	"github.com/jonathan/resume-paginator/internal/server/ratelimit"
)

// DocumentStore holds document snapshots and their pagination runs
type DocumentStore interface {
	CreateDocument(ctx context.Context, userID uuid.UUID, content any) (uuid.UUID, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*db.DocumentRecord, error)
	SavePaginationRun(ctx context.Context, run *db.PaginationRun) error
	GetLatestPaginationRun(ctx context.Context, documentID uuid.UUID) (*db.PaginationRun, error)
	ListPaginationRuns(ctx context.Context, documentID uuid.UUID, limit int) ([]db.PaginationRun, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       DocumentStore
	closeStore  func()
	budget      pagination.LayoutBudget
	topology    pagination.Topology
	engines     map[pagination.Topology]*pagination.Engine
	tracker     *pagination.RunTracker
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      *log.Logger
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Topology    pagination.Topology
	Budget      pagination.LayoutBudget
	RateLimit   *ratelimit.Config
	Logger      *log.Logger
}

// New creates a new server instance. Document routes are served only when a
// database is configured; POST /paginate works without one.
func New(cfg Config) (*Server, error) {
	var (
		store      DocumentStore
		jwtService *JWTService
		closeStore func()
	)

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}

		store = database
		closeStore = database.Close
		jwtService = NewJWTService(jwtConfig)
	}

	s, err := newServer(cfg, store, jwtService)
	if err != nil {
		if closeStore != nil {
			closeStore()
		}
		return nil, err
	}
	s.closeStore = closeStore
	return s, nil
}

func newServer(cfg Config, store DocumentStore, jwtService *JWTService) (*Server, error) {
	if cfg.Budget == (pagination.LayoutBudget{}) {
		cfg.Budget = pagination.DefaultBudget()
	}
	if cfg.Topology == "" {
		cfg.Topology = pagination.TopologySidebar
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr)
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       store,
		budget:      cfg.Budget,
		topology:    cfg.Topology,
		engines:     make(map[pagination.Topology]*pagination.Engine),
		tracker:     pagination.NewRunTracker(),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:  jwtService,
		logger:      cfg.Logger,
	}

	for _, t := range []pagination.Topology{pagination.TopologySidebar, pagination.TopologySingleColumn} {
		engine, err := pagination.NewEngine(t, cfg.Budget)
		if err != nil {
			s.rateLimiter.Stop()
			return nil, fmt.Errorf("failed to create %s engine: %w", t, err)
		}
		s.engines[t] = engine
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /paginate", s.handlePaginate)
	mux.HandleFunc("GET /health", s.handleHealth)

	if store != nil && jwtService != nil {
		auth := middleware.RequireBearer(jwtService.AsTokenValidator())
		mux.Handle("POST /documents", auth(http.HandlerFunc(s.handleCreateDocument)))
		mux.Handle("GET /documents/{id}/pages", auth(http.HandlerFunc(s.handleDocumentPages)))
		mux.Handle("GET /documents/{id}/preview.pdf", auth(http.HandlerFunc(s.handleDocumentPreview)))
		mux.Handle("GET /documents/{id}/runs", auth(http.HandlerFunc(s.handleListRuns)))
		mux.Handle("GET /documents/{id}/runs/latest", auth(http.HandlerFunc(s.handleLatestRun)))
	}

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens for requests until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr, "documents", s.store != nil)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the database pool
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeStore != nil {
		s.closeStore()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their per-route budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)

		if !allowed {
			s.logger.Warn("rate limit exceeded", "client", clientID, "path", r.URL.Path, "limit", info.Limit)
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"elapsed", time.Since(start))
	})
}

// extractClientID uses the IP from RemoteAddr
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		seconds := int(math.Ceil(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "err", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
