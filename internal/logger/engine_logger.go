// Package logger provides engine-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EngineLogger provides dedicated logging for scoring and ranking.
type EngineLogger struct {
	*logrus.Entry
}

// NewEngineLogger creates a new engine logger.
func NewEngineLogger(baseLogger *logrus.Logger) *EngineLogger {
	return &EngineLogger{
		Entry: baseLogger.WithField("component", "engine"),
	}
}

// LogEvaluation logs the scoring of a single match.
func (el *EngineLogger) LogEvaluation(fingerprint string, derived, bookie, quality, confidence float64, validFields int, historyConfirmed bool) {
	el.WithFields(logrus.Fields{
		"fingerprint":         fingerprint,
		"derived_probability": derived,
		"bookie_probability":  bookie,
		"data_quality":        quality,
		"confidence":          confidence,
		"valid_fields":        validFields,
		"history_confirmed":   historyConfirmed,
	}).Debug("Match evaluated")
}

// LogClassification logs the status and rank of a match within a run.
func (el *EngineLogger) LogClassification(runID, fingerprint, status string, confidence, rankScore float64, rank int) {
	el.WithFields(logrus.Fields{
		"run_id":      runID,
		"fingerprint": fingerprint,
		"status":      status,
		"confidence":  confidence,
		"rank_score":  rankScore,
		"rank":        rank,
	}).Debug("Match classified")
}

// LogDecision logs the summary of a batch decision run.
func (el *EngineLogger) LogDecision(runID string, total, accepted, warned, excluded int, durationMs float64) {
	el.WithFields(logrus.Fields{
		"run_id":      runID,
		"matches":     total,
		"accepted":    accepted,
		"warned":      warned,
		"excluded":    excluded,
		"duration_ms": durationMs,
	}).Info("Decision run completed")
}

// LogHistoryDegraded logs a pattern lookup that fell back to an unknown pattern.
func (el *EngineLogger) LogHistoryDegraded(fingerprint string, err error) {
	el.WithError(err).WithField("fingerprint", fingerprint).Warn("Pattern history unavailable, treating as unknown")
}
