package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/store"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DecideRequest is the body of POST /v1/decide.
type DecideRequest struct {
	Matches []models.OddsRecord `json:"matches"`
}

// OutcomeRequest is the body of POST /v1/outcomes.
type OutcomeRequest struct {
	Fingerprint string `json:"fingerprint"`
	Result      string `json:"result"`
}

// ClearResponse is the body of a successful DELETE /v1/patterns.
type ClearResponse struct {
	PatternsRemoved int `json:"patterns_removed"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var rec models.OddsRecord
	if err := decodeBody(w, r, &rec); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, s.engine.Evaluate(r.Context(), rec))
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := s.engine.Decide(r.Context(), req.Matches)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, decision)
}

func (s *Server) handleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req OutcomeRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.engine.RecordOutcome(r.Context(), req.Fingerprint, req.Result)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	fingerprint, err := url.PathUnescape(chi.URLParam(r, "fingerprint"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fingerprint")
		return
	}

	lookup, err := s.engine.Lookup(r.Context(), fingerprint)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lookup)
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	fingerprint, err := url.PathUnescape(chi.URLParam(r, "fingerprint"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fingerprint")
		return
	}

	rec, err := s.engine.Pattern(r.Context(), fingerprint)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, http.StatusBadRequest, "clearing pattern history requires confirm=true")
		return
	}

	removed, err := s.engine.ClearAll(r.Context(), "api:"+r.RemoteAddr)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ClearResponse{PatternsRemoved: removed})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats(r.Context())
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// respondEngineError maps engine and store errors onto HTTP status codes.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidResult),
		errors.Is(err, models.ErrInvalidFingerprint),
		errors.Is(err, models.ErrBatchTooLarge):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrPersistence):
		s.logger.WithError(err).Warn("Pattern store unavailable")
		respondError(w, http.StatusServiceUnavailable, "pattern store unavailable")
	default:
		s.logger.WithError(err).Error("Request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
