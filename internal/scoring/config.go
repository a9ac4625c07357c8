// Package scoring turns an odds record into a derived probability, an edge signal
// and an action tier, and ranks batches of scored matches.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/nogg-truth/internal/models"
)

const weightTolerance = 1e-6

// Weights are the design weights of the five pillars. They must sum to 1.0.
type Weights struct {
	TeamFail   float64 `json:"team_fail"`
	UnderGoals float64 `json:"under_goals"`
	CleanSheet float64 `json:"clean_sheet"`
	RawMarket  float64 `json:"raw_market"`
	Handicap   float64 `json:"handicap"`
}

// Sum returns the total of all pillar weights.
func (w Weights) Sum() float64 {
	return w.TeamFail + w.UnderGoals + w.CleanSheet + w.RawMarket + w.Handicap
}

// For returns the weight of a pillar.
func (w Weights) For(p models.Pillar) float64 {
	switch p {
	case models.PillarTeamFail:
		return w.TeamFail
	case models.PillarUnderGoals:
		return w.UnderGoals
	case models.PillarCleanSheet:
		return w.CleanSheet
	case models.PillarRawMarket:
		return w.RawMarket
	case models.PillarHandicap:
		return w.Handicap
	default:
		return 0
	}
}

// QualityStep maps a minimum count of valid fields to a quality score.
type QualityStep struct {
	MinFields int     `json:"min_fields"`
	Score     float64 `json:"score"`
}

// HistoryPolicy decides when a fingerprint's recorded outcomes confirm it.
type HistoryPolicy struct {
	MinSamples int     `json:"min_samples"`
	MinWinRate float64 `json:"min_win_rate"`
}

// Confirmed reports whether a pattern has enough recorded outcomes at a high
// enough win rate.
func (h HistoryPolicy) Confirmed(rec *models.PatternRecord) bool {
	if rec == nil {
		return false
	}
	return rec.Decided() >= h.MinSamples && rec.WinRate() >= h.MinWinRate
}

// Config is the tunable policy of the scoring engine.
type Config struct {
	Weights      Weights
	QualitySteps []QualityStep
	// ExcludeBelow and AcceptAt bound the warn tier: [ExcludeBelow, AcceptAt).
	ExcludeBelow float64
	AcceptAt     float64
	History      HistoryPolicy
	// HistoryBoost is added to the rank score of confirmed, non-excluded matches.
	HistoryBoost float64
}

// DefaultConfig returns the stock policy.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			TeamFail:   0.30,
			UnderGoals: 0.25,
			CleanSheet: 0.15,
			RawMarket:  0.20,
			Handicap:   0.10,
		},
		QualitySteps: []QualityStep{
			{MinFields: 6, Score: 1.0},
			{MinFields: 4, Score: 0.7},
			{MinFields: 1, Score: 0.4},
		},
		ExcludeBelow: 0.04,
		AcceptAt:     0.08,
		History: HistoryPolicy{
			MinSamples: 3,
			MinWinRate: 0.60,
		},
		HistoryBoost: 0.10,
	}
}

// Validate checks the policy for internal consistency.
func (c Config) Validate() error {
	for _, p := range pillarOrder {
		w := c.Weights.For(p)
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("weight for %s must be non-negative", p)
		}
	}
	if math.Abs(c.Weights.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("pillar weights must sum to 1.0, got %.6f", c.Weights.Sum())
	}

	if len(c.QualitySteps) == 0 {
		return fmt.Errorf("at least one quality step is required")
	}
	steps := c.sortedSteps()
	for i, s := range steps {
		if s.MinFields < 1 || s.MinFields > len(models.OddsFields) {
			return fmt.Errorf("quality step min_fields must be between 1 and %d, got %d", len(models.OddsFields), s.MinFields)
		}
		if s.Score < 0 || s.Score > 1 {
			return fmt.Errorf("quality step score must be between 0 and 1, got %v", s.Score)
		}
		if i > 0 {
			if s.MinFields == steps[i-1].MinFields {
				return fmt.Errorf("duplicate quality step for %d fields", s.MinFields)
			}
			if s.Score > steps[i-1].Score {
				return fmt.Errorf("quality must not decrease as valid fields increase")
			}
		}
	}

	if c.ExcludeBelow >= c.AcceptAt {
		return fmt.Errorf("exclude threshold %v must be below accept threshold %v", c.ExcludeBelow, c.AcceptAt)
	}
	if c.History.MinSamples < 1 {
		return fmt.Errorf("history min samples must be at least 1")
	}
	if c.History.MinWinRate < 0 || c.History.MinWinRate > 1 {
		return fmt.Errorf("history min win rate must be between 0 and 1")
	}
	if c.HistoryBoost < 0 {
		return fmt.Errorf("history boost must be non-negative")
	}
	return nil
}

// sortedSteps returns the quality steps ordered by MinFields descending.
func (c Config) sortedSteps() []QualityStep {
	steps := make([]QualityStep, len(c.QualitySteps))
	copy(steps, c.QualitySteps)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].MinFields > steps[j].MinFields
	})
	return steps
}
