package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/nogg-truth/internal/models"
)

func TestScoreRawMarketOnly(t *testing.T) {
	cfg := DefaultConfig()
	e := Score(models.OddsRecord{BTTSNoOdd: models.Odd(1.80)}, cfg)

	assert.Equal(t, 1, e.ValidFields)
	assert.Equal(t, 0.4, e.DataQuality)
	assert.InDelta(t, 0.5556, e.DerivedProbability, 1e-4)
	assert.InDelta(t, e.BookieProbability, e.DerivedProbability, 1e-12)
	assert.InDelta(t, 0, e.Confidence, 1e-12)
	assert.Equal(t, models.StatusExclude, Classify(e.Confidence, cfg))
	assert.Equal(t, "1.80-0-0-0", e.Fingerprint)
}

func TestScoreWithoutBookiePrice(t *testing.T) {
	rec := fullRecord()
	rec.BTTSNoOdd = nil

	e := Score(rec, DefaultConfig())
	assert.False(t, e.HasBookie)
	assert.Greater(t, e.DerivedProbability, 0.0)
	assert.Equal(t, 0.0, e.Confidence)
	assert.Equal(t, 0.0, e.Edge)
}

func TestScoreEmptyRecord(t *testing.T) {
	e := Score(models.OddsRecord{}, DefaultConfig())

	assert.Equal(t, 0.0, e.DerivedProbability)
	assert.Equal(t, 0.0, e.DataQuality)
	assert.Equal(t, 0.0, e.Confidence)
}

func TestScoreStatusMonotonicInDerivedProbability(t *testing.T) {
	cfg := DefaultConfig()
	tier := map[models.Status]int{models.StatusExclude: 0, models.StatusWarn: 1, models.StatusAccept: 2}

	previous := 0
	for odd := 3.0; odd >= 1.05; odd -= 0.05 {
		rec := models.OddsRecord{
			BTTSNoOdd:   models.Odd(2.10),
			Under25Odd:  models.Odd(odd),
			Under15Odd:  models.Odd(odd),
			HandicapOdd: models.Odd(2.10),
		}
		e := Score(rec, cfg)
		current := tier[Classify(e.Confidence, cfg)]
		assert.GreaterOrEqual(t, current, previous, "under odd %v", odd)
		previous = current
	}
}
