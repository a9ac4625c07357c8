package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/nogg-truth/internal/models"
)

func evalWithConfidence(c float64, confirmed bool) models.Evaluation {
	return models.Evaluation{
		Confidence: c,
		History:    models.HistoryLookup{Exists: confirmed, Confirmed: confirmed},
	}
}

func TestClassifyThresholds(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		confidence float64
		expected   models.Status
	}{
		{confidence: -0.2, expected: models.StatusExclude},
		{confidence: 0, expected: models.StatusExclude},
		{confidence: 0.0399, expected: models.StatusExclude},
		{confidence: 0.04, expected: models.StatusWarn},
		{confidence: 0.0799, expected: models.StatusWarn},
		{confidence: 0.08, expected: models.StatusAccept},
		{confidence: 0.5, expected: models.StatusAccept},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.confidence, cfg), "confidence %v", tt.confidence)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	tier := map[models.Status]int{models.StatusExclude: 0, models.StatusWarn: 1, models.StatusAccept: 2}

	previous := 0
	for c := -0.1; c <= 0.3; c += 0.005 {
		current := tier[Classify(c, cfg)]
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}

func TestRankBatchExample(t *testing.T) {
	evals := []models.Evaluation{
		evalWithConfidence(0.09, false),
		evalWithConfidence(0.05, false),
		evalWithConfidence(0.02, false),
	}

	ranked := RankBatch(evals, DefaultConfig())
	require.Len(t, ranked, 3)

	assert.Equal(t, 0, ranked[0].Index)
	assert.Equal(t, models.StatusAccept, ranked[0].Status)
	assert.Equal(t, 1, ranked[0].Rank)

	assert.Equal(t, 1, ranked[1].Index)
	assert.Equal(t, models.StatusWarn, ranked[1].Status)
	assert.Equal(t, 2, ranked[1].Rank)

	assert.Equal(t, 2, ranked[2].Index)
	assert.Equal(t, models.StatusExclude, ranked[2].Status)
	assert.False(t, ranked[2].Ranked())
}

func TestRankBatchHistoryBoost(t *testing.T) {
	cfg := DefaultConfig()
	evals := []models.Evaluation{
		evalWithConfidence(0.12, false),
		evalWithConfidence(0.05, true),
		evalWithConfidence(0.01, true),
	}

	ranked := RankBatch(evals, cfg)

	assert.Equal(t, 1, ranked[0].Index)
	assert.InDelta(t, 0.05+cfg.HistoryBoost, ranked[0].RankScore, 1e-12)
	assert.Equal(t, models.StatusWarn, ranked[0].Status)
	assert.True(t, ranked[0].HistoryConfirmed)
	assert.Equal(t, 1, ranked[0].Rank)

	assert.Equal(t, 0, ranked[1].Index)
	assert.Equal(t, 2, ranked[1].Rank)

	// excluded matches are not boosted
	assert.Equal(t, 2, ranked[2].Index)
	assert.InDelta(t, 0.01, ranked[2].RankScore, 1e-12)
	assert.Equal(t, 0, ranked[2].Rank)
}

func TestRankBatchStableTieBreak(t *testing.T) {
	evals := []models.Evaluation{
		evalWithConfidence(0.06, false),
		evalWithConfidence(0.10, false),
		evalWithConfidence(0.06, false),
		evalWithConfidence(0.06, false),
	}

	first := RankBatch(evals, DefaultConfig())
	second := RankBatch(evals, DefaultConfig())
	assert.Equal(t, first, second)

	order := make([]int, len(first))
	for i, m := range first {
		order[i] = m.Index
	}
	assert.Equal(t, []int{1, 0, 2, 3}, order)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{first[0].Rank, first[1].Rank, first[2].Rank, first[3].Rank})
}

func TestRankBatchEmpty(t *testing.T) {
	assert.Empty(t, RankBatch(nil, DefaultConfig()))
}

func TestSummarize(t *testing.T) {
	ranked := RankBatch([]models.Evaluation{
		evalWithConfidence(0.09, false),
		evalWithConfidence(0.10, false),
		evalWithConfidence(0.05, false),
		evalWithConfidence(0.00, false),
	}, DefaultConfig())

	assert.Equal(t, models.Summary{Total: 4, Accept: 2, Warn: 1, Exclude: 1}, Summarize(ranked))
}
