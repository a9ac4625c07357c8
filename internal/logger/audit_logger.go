// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for pattern history changes.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogOutcomeRecorded logs a stored win/loss outcome.
func (al *AuditLogger) LogOutcomeRecorded(fingerprint, result string, totalSeen, wins, losses int) {
	al.WithFields(logrus.Fields{
		"fingerprint": fingerprint,
		"result":      result,
		"total_seen":  totalSeen,
		"wins":        wins,
		"losses":      losses,
	}).Info("Outcome recorded")
}

// LogOutcomeFailed logs an outcome that could not be persisted.
func (al *AuditLogger) LogOutcomeFailed(fingerprint, result string, err error) {
	al.WithError(err).WithFields(logrus.Fields{
		"fingerprint": fingerprint,
		"result":      result,
	}).Error("Outcome not recorded")
}

// LogHistoryCleared logs an explicit wipe of all pattern history.
func (al *AuditLogger) LogHistoryCleared(requestedBy string, patternsRemoved int) {
	al.WithFields(logrus.Fields{
		"requested_by":     requestedBy,
		"patterns_removed": patternsRemoved,
	}).Warn("Pattern history cleared")
}
