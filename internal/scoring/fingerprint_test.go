package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/nogg-truth/internal/models"
)

func TestFingerprintFormat(t *testing.T) {
	rec := models.OddsRecord{
		BTTSNoOdd:   models.Odd(1.81),
		Under25Odd:  models.Odd(1.57),
		HandicapOdd: models.Odd(2.04),
	}

	assert.Equal(t, "1.80-1.55-0-2.05", Fingerprint(&rec))
	assert.Equal(t, "0-0-0-0", Fingerprint(&models.OddsRecord{}))
	assert.Equal(t, "0-0-0-0", Fingerprint(nil))
}

func TestFingerprintDeterministic(t *testing.T) {
	rec := fullRecord()
	assert.Equal(t, Fingerprint(&rec), Fingerprint(&rec))
}

func TestFingerprintIgnoresUnfingerprintedFields(t *testing.T) {
	a := fullRecord()
	b := fullRecord()
	b.HomeToScoreOdd = models.Odd(3.75)
	b.AwayCleanSheetOdd = nil
	b.Label = "other match"

	assert.Equal(t, Fingerprint(&a), Fingerprint(&b))
}

func TestFingerprintGroupsByRounding(t *testing.T) {
	a := models.OddsRecord{BTTSNoOdd: models.Odd(1.79), Under25Odd: models.Odd(1.61)}
	b := models.OddsRecord{BTTSNoOdd: models.Odd(1.81), Under25Odd: models.Odd(1.59)}
	c := models.OddsRecord{BTTSNoOdd: models.Odd(1.90), Under25Odd: models.Odd(1.60)}

	assert.Equal(t, Fingerprint(&a), Fingerprint(&b))
	assert.NotEqual(t, Fingerprint(&a), Fingerprint(&c))
}

func TestFingerprintTreatsInvalidAsAbsent(t *testing.T) {
	a := models.OddsRecord{BTTSNoOdd: models.Odd(1.0), Under25Odd: models.Odd(1.6)}
	b := models.OddsRecord{Under25Odd: models.Odd(1.6)}

	assert.Equal(t, Fingerprint(&a), Fingerprint(&b))
}
