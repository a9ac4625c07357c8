package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the action tier assigned to a match.
type Status string

const (
	StatusAccept  Status = "accept"
	StatusWarn    Status = "warn"
	StatusExclude Status = "exclude"
)

// Pillar identifies one partial signal of the derived probability.
type Pillar string

const (
	PillarTeamFail   Pillar = "team_fail"
	PillarUnderGoals Pillar = "under_goals"
	PillarCleanSheet Pillar = "clean_sheet"
	PillarRawMarket  Pillar = "raw_market"
	PillarHandicap   Pillar = "handicap"
)

// PillarScore is one pillar's contribution to a derived probability.
type PillarScore struct {
	Pillar Pillar  `json:"pillar"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
	Active bool    `json:"active"`
	// EffectiveWeight is Weight renormalized over the active pillars.
	EffectiveWeight float64 `json:"effective_weight"`
}

// Evaluation is the scoring of a single match before ranking.
type Evaluation struct {
	Odds               OddsRecord    `json:"odds"`
	Pillars            []PillarScore `json:"pillars"`
	DerivedProbability float64       `json:"derived_probability"`
	BookieProbability  float64       `json:"bookie_probability"`
	HasBookie          bool          `json:"has_bookie"`
	ValidFields        int           `json:"valid_fields"`
	DataQuality        float64       `json:"data_quality"`
	Edge               float64       `json:"edge"`
	Confidence         float64       `json:"confidence"`
	Fingerprint        string        `json:"fingerprint"`
	History            HistoryLookup `json:"history"`
}

// ClassifiedMatch is an evaluation with its status and batch rank.
// Rank is 0 for excluded matches.
type ClassifiedMatch struct {
	Evaluation
	Index            int     `json:"index"`
	Status           Status  `json:"status"`
	RankScore        float64 `json:"rank_score"`
	HistoryConfirmed bool    `json:"history_confirmed"`
	Rank             int     `json:"rank,omitempty"`
}

// Ranked reports whether the match received a rank.
func (c *ClassifiedMatch) Ranked() bool {
	return c.Rank > 0
}

// Summary counts matches per status.
type Summary struct {
	Total   int `json:"total"`
	Accept  int `json:"accept"`
	Warn    int `json:"warn"`
	Exclude int `json:"exclude"`
}

// Decision is the result of one decision run over a batch.
type Decision struct {
	RunID     uuid.UUID         `json:"run_id"`
	DecidedAt time.Time         `json:"decided_at"`
	Matches   []ClassifiedMatch `json:"matches"`
	Summary   Summary           `json:"summary"`
}
