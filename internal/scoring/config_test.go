package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/nogg-truth/internal/models"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-12)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "weights do not sum to one", mutate: func(c *Config) { c.Weights.Handicap = 0.2 }},
		{name: "negative weight", mutate: func(c *Config) { c.Weights.Handicap = -0.1; c.Weights.TeamFail = 0.5 }},
		{name: "thresholds inverted", mutate: func(c *Config) { c.ExcludeBelow = 0.1 }},
		{name: "no quality steps", mutate: func(c *Config) { c.QualitySteps = nil }},
		{name: "quality decreases with more fields", mutate: func(c *Config) {
			c.QualitySteps = []QualityStep{{MinFields: 6, Score: 0.5}, {MinFields: 2, Score: 0.8}}
		}},
		{name: "quality step out of range", mutate: func(c *Config) {
			c.QualitySteps = []QualityStep{{MinFields: 9, Score: 1}}
		}},
		{name: "zero history samples", mutate: func(c *Config) { c.History.MinSamples = 0 }},
		{name: "win rate above one", mutate: func(c *Config) { c.History.MinWinRate = 1.5 }},
		{name: "negative boost", mutate: func(c *Config) { c.HistoryBoost = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHistoryPolicyConfirmed(t *testing.T) {
	policy := DefaultConfig().History
	tests := []struct {
		name     string
		record   *models.PatternRecord
		expected bool
	}{
		{name: "nil record", record: nil, expected: false},
		{name: "too few samples", record: &models.PatternRecord{TotalSeen: 2, Wins: 2}, expected: false},
		{name: "three wins one loss", record: &models.PatternRecord{TotalSeen: 4, Wins: 3, Losses: 1}, expected: true},
		{name: "exactly at rate", record: &models.PatternRecord{TotalSeen: 5, Wins: 3, Losses: 2}, expected: true},
		{name: "below rate", record: &models.PatternRecord{TotalSeen: 5, Wins: 2, Losses: 3}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Confirmed(tt.record))
		})
	}
}
