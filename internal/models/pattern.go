package models

import (
	"fmt"
	"strings"
	"time"
)

// Result is the user-reported outcome of a match.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// ParseResult normalizes a user supplied outcome string.
func ParseResult(s string) (Result, error) {
	switch Result(strings.ToLower(strings.TrimSpace(s))) {
	case ResultWin:
		return ResultWin, nil
	case ResultLoss:
		return ResultLoss, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResult, s)
	}
}

// PatternRecord is the persisted outcome history of one fingerprint.
// Invariant: Wins+Losses <= TotalSeen.
type PatternRecord struct {
	Scheme        int       `json:"scheme"`
	TotalSeen     int       `json:"total_seen"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	LastResult    *Result   `json:"last_result,omitempty"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// Decided returns the number of recorded outcomes.
func (p *PatternRecord) Decided() int {
	return p.Wins + p.Losses
}

// WinRate returns wins over recorded outcomes, or 0 when none were recorded.
func (p *PatternRecord) WinRate() float64 {
	decided := p.Decided()
	if decided == 0 {
		return 0
	}
	return float64(p.Wins) / float64(decided)
}

// HistoryLookup is the pattern store's view of a fingerprint at decision time.
type HistoryLookup struct {
	Exists    bool    `json:"exists"`
	TotalSeen int     `json:"total_seen,omitempty"`
	Wins      int     `json:"wins,omitempty"`
	Losses    int     `json:"losses,omitempty"`
	WinRate   float64 `json:"win_rate"`
	Confirmed bool    `json:"confirmed"`
}

// PatternStats summarizes the whole pattern store.
type PatternStats struct {
	Patterns          int `json:"patterns"`
	ConfirmedPatterns int `json:"confirmed_patterns"`
	RecordedOutcomes  int `json:"recorded_outcomes"`
	Wins              int `json:"wins"`
	Losses            int `json:"losses"`
}
