// Package api exposes the scoring engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/nogg-truth/internal/config"
	"github.com/yourusername/nogg-truth/internal/metrics"
	"github.com/yourusername/nogg-truth/internal/models"
)

// DecisionEngine is the subset of the engine served over HTTP.
type DecisionEngine interface {
	Evaluate(ctx context.Context, rec models.OddsRecord) models.Evaluation
	Decide(ctx context.Context, recs []models.OddsRecord) (*models.Decision, error)
	RecordOutcome(ctx context.Context, fingerprint, result string) (*models.PatternRecord, error)
	Lookup(ctx context.Context, fingerprint string) (models.HistoryLookup, error)
	Pattern(ctx context.Context, fingerprint string) (*models.PatternRecord, error)
	ClearAll(ctx context.Context, requestedBy string) (int, error)
	Stats(ctx context.Context) (models.PatternStats, error)
}

// Server is the HTTP API server
type Server struct {
	engine  DecisionEngine
	cfg     config.APIConfig
	metrics config.MetricsConfig
	logger  *logrus.Entry
	server  *http.Server
}

// NewServer creates a new API server
func NewServer(engine DecisionEngine, apiCfg config.APIConfig, metricsCfg config.MetricsConfig, logger *logrus.Logger) *Server {
	return &Server{
		engine:  engine,
		cfg:     apiCfg,
		metrics: metricsCfg,
		logger:  logger.WithField("component", "api"),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.metrics.Enabled {
		path := s.metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))

		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/decide", s.handleDecide)
		r.Post("/outcomes", s.handleRecordOutcome)
		r.Get("/patterns/{fingerprint}", s.handleLookup)
		r.Get("/patterns/{fingerprint}/record", s.handlePattern)
		r.Delete("/patterns", s.handleClearAll)
		r.Get("/stats", s.handleStats)
	})

	return r
}

// Start binds the API port and serves in the background until ctx is
// cancelled. A port that cannot be bound is returned as an error.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind API server on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithField("addr", ln.Addr().String()).Info("API server starting")
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("API server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
