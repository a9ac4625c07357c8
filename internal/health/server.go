// Package health serves liveness and readiness endpoints for nogg-truth.
// Readiness reflects the pattern store: scoring keeps working without it, so a
// failing store marks the service degraded rather than unready.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/scoring"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusNotReady = "not_ready"

	defaultPort  = "8091"
	checkTimeout = 3 * time.Second
)

// PatternSource is the view of the pattern store readiness depends on.
type PatternSource interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (models.PatternStats, error)
}

// LiveResponse is the body of /health.
type LiveResponse struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	Version           string `json:"version,omitempty"`
	Commit            string `json:"commit,omitempty"`
	FingerprintScheme int    `json:"fingerprint_scheme"`
	Uptime            string `json:"uptime"`
}

// ReadyResponse is the body of /ready.
type ReadyResponse struct {
	Status   string               `json:"status"`
	Service  string               `json:"service"`
	Checks   map[string]string    `json:"checks"`
	Patterns *models.PatternStats `json:"patterns,omitempty"`
	Duration string               `json:"duration"`
}

// Config holds the health server settings.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	Patterns    PatternSource
}

// Server answers container health checks.
type Server struct {
	cfg     Config
	started time.Time
	logger  *logrus.Entry
	server  *http.Server

	mu    sync.RWMutex
	ready bool
}

// NewServer creates a health server. The service starts out not ready.
func NewServer(cfg Config) *Server {
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg:     cfg,
		started: time.Now(),
		logger:  log.WithField("component", "health"),
	}
}

// SetReady flips the service readiness.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports the readiness set by SetReady.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler returns the health routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/health", s.handleLive)
	r.Get("/ready", s.handleReady)
	return r
}

// Start binds the health port and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := ":" + s.cfg.Port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind health server on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.WithField("addr", ln.Addr().String()).Info("Health server starting")
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("Health server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown stops the health server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LiveResponse{
		Status:            StatusOK,
		Service:           s.cfg.ServiceName,
		Version:           s.cfg.Version,
		Commit:            s.cfg.Commit,
		FingerprintScheme: scoring.FingerprintScheme,
		Uptime:            time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady answers 503 only when the service itself is not ready. A store
// that cannot be reached or read downgrades the status to degraded, since
// decisions are still served with history treated as unknown.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := ReadyResponse{
		Status:  StatusOK,
		Service: s.cfg.ServiceName,
		Checks:  map[string]string{"service": StatusOK},
	}

	if s.cfg.Patterns != nil {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		if stats, err := s.checkPatterns(ctx); err != nil {
			resp.Status = StatusDegraded
			resp.Checks["pattern_store"] = "error: " + err.Error()
		} else {
			resp.Checks["pattern_store"] = StatusOK
			resp.Patterns = &stats
		}
	}

	status := http.StatusOK
	if !s.IsReady() {
		resp.Status = StatusNotReady
		resp.Checks["service"] = StatusNotReady
		status = http.StatusServiceUnavailable
	}

	resp.Duration = time.Since(start).String()
	writeJSON(w, status, resp)
}

func (s *Server) checkPatterns(ctx context.Context) (models.PatternStats, error) {
	if err := s.cfg.Patterns.Ping(ctx); err != nil {
		return models.PatternStats{}, err
	}
	return s.cfg.Patterns.Stats(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
