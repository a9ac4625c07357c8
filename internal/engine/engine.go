// Package engine runs decision runs: it scores a batch of matches, consults the
// pattern history, ranks the batch and records outcome feedback.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/nogg-truth/internal/logger"
	"github.com/yourusername/nogg-truth/internal/metrics"
	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/scoring"
)

// PatternHistory is the outcome memory consulted and updated by the engine.
type PatternHistory interface {
	Lookup(ctx context.Context, fingerprint string) (models.HistoryLookup, error)
	Get(ctx context.Context, fingerprint string) (*models.PatternRecord, error)
	RecordOutcome(ctx context.Context, fingerprint string, result models.Result) (*models.PatternRecord, error)
	ClearAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) (models.PatternStats, error)
	Ping(ctx context.Context) error
}

// Engine scores, classifies and ranks matches against a pattern history
type Engine struct {
	cfg          scoring.Config
	maxBatchSize int
	history      PatternHistory
	log          *logger.EngineLogger
	audit        *logger.AuditLogger
	now          func() time.Time
}

// New creates an engine. maxBatchSize <= 0 disables the batch cap.
func New(cfg scoring.Config, maxBatchSize int, history PatternHistory, log *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return &Engine{
		cfg:          cfg,
		maxBatchSize: maxBatchSize,
		history:      history,
		log:          logger.NewEngineLogger(log),
		audit:        logger.NewAuditLogger(log),
		now:          time.Now,
	}, nil
}

// Config returns the scoring policy in use.
func (e *Engine) Config() scoring.Config {
	return e.cfg
}

// Evaluate scores one match and attaches its pattern history. A history
// failure never fails the evaluation; the pattern is treated as unknown.
func (e *Engine) Evaluate(ctx context.Context, rec models.OddsRecord) models.Evaluation {
	eval := scoring.Score(rec, e.cfg)

	lookup, err := e.history.Lookup(ctx, eval.Fingerprint)
	if err != nil {
		metrics.RecordStoreError("lookup")
		e.log.LogHistoryDegraded(eval.Fingerprint, err)
		lookup = models.HistoryLookup{}
	}
	eval.History = lookup

	metrics.RecordEvaluation(eval.Confidence, eval.DataQuality)
	e.log.LogEvaluation(eval.Fingerprint, eval.DerivedProbability, eval.BookieProbability,
		eval.DataQuality, eval.Confidence, eval.ValidFields, lookup.Confirmed)

	return eval
}

// EvaluateBatch evaluates every record in submission order.
func (e *Engine) EvaluateBatch(ctx context.Context, recs []models.OddsRecord) []models.Evaluation {
	evals := make([]models.Evaluation, len(recs))
	for i, rec := range recs {
		evals[i] = e.Evaluate(ctx, rec)
	}
	return evals
}

// RankBatch classifies and orders already evaluated matches.
func (e *Engine) RankBatch(evals []models.Evaluation) []models.ClassifiedMatch {
	return scoring.RankBatch(evals, e.cfg)
}

// Decide runs a full decision over a batch of odds records.
func (e *Engine) Decide(ctx context.Context, recs []models.OddsRecord) (*models.Decision, error) {
	if e.maxBatchSize > 0 && len(recs) > e.maxBatchSize {
		return nil, fmt.Errorf("%w: %d matches, limit %d", models.ErrBatchTooLarge, len(recs), e.maxBatchSize)
	}

	start := time.Now()
	runID := uuid.New()

	matches := e.RankBatch(e.EvaluateBatch(ctx, recs))
	decision := &models.Decision{
		RunID:     runID,
		DecidedAt: e.now().UTC(),
		Matches:   matches,
		Summary:   scoring.Summarize(matches),
	}

	for _, m := range matches {
		metrics.RecordClassification(string(m.Status))
		e.log.LogClassification(runID.String(), m.Fingerprint, string(m.Status), m.Confidence, m.RankScore, m.Rank)
	}

	elapsed := time.Since(start)
	metrics.RecordDecisionRun(elapsed.Seconds())
	e.log.LogDecision(runID.String(), decision.Summary.Total, decision.Summary.Accept,
		decision.Summary.Warn, decision.Summary.Exclude, float64(elapsed.Microseconds())/1000)

	return decision, nil
}

// RecordOutcome stores a win or loss for fingerprint.
func (e *Engine) RecordOutcome(ctx context.Context, fingerprint, result string) (*models.PatternRecord, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, models.ErrInvalidFingerprint
	}
	r, err := models.ParseResult(result)
	if err != nil {
		return nil, err
	}

	rec, err := e.history.RecordOutcome(ctx, fingerprint, r)
	if err != nil {
		metrics.RecordStoreError("record_outcome")
		e.audit.LogOutcomeFailed(fingerprint, string(r), err)
		return nil, err
	}

	metrics.RecordOutcome(string(r))
	e.audit.LogOutcomeRecorded(fingerprint, string(r), rec.TotalSeen, rec.Wins, rec.Losses)
	return rec, nil
}

// Lookup returns the history view of a fingerprint, reporting storage failures.
func (e *Engine) Lookup(ctx context.Context, fingerprint string) (models.HistoryLookup, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return models.HistoryLookup{}, models.ErrInvalidFingerprint
	}
	lookup, err := e.history.Lookup(ctx, fingerprint)
	if err != nil {
		metrics.RecordStoreError("lookup")
		return models.HistoryLookup{}, err
	}
	return lookup, nil
}

// Pattern returns the full stored record of a fingerprint.
func (e *Engine) Pattern(ctx context.Context, fingerprint string) (*models.PatternRecord, error) {
	return e.history.Get(ctx, strings.TrimSpace(fingerprint))
}

// ClearAll wipes the pattern history. It is never called by the scoring path.
func (e *Engine) ClearAll(ctx context.Context, requestedBy string) (int, error) {
	removed, err := e.history.ClearAll(ctx)
	if err != nil {
		metrics.RecordStoreError("clear")
		return 0, err
	}
	metrics.RecordHistoryClear()
	e.audit.LogHistoryCleared(requestedBy, removed)
	return removed, nil
}

// Stats summarizes the pattern history.
func (e *Engine) Stats(ctx context.Context) (models.PatternStats, error) {
	stats, err := e.history.Stats(ctx)
	if err != nil {
		metrics.RecordStoreError("stats")
		return models.PatternStats{}, err
	}
	return stats, nil
}

// Ping checks the pattern history backend.
func (e *Engine) Ping(ctx context.Context) error {
	return e.history.Ping(ctx)
}
