package scoring

import (
	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/odds"
)

// CountValidFields returns how many of the record's markets hold a valid odd.
func CountValidFields(rec *models.OddsRecord) int {
	n := 0
	for _, f := range models.OddsFields {
		if odds.IsValid(rec.Get(f)) {
			n++
		}
	}
	return n
}

// DataQuality maps the number of valid fields to a score in [0,1] using the
// configured step function. Zero valid fields always score 0.
func DataQuality(rec *models.OddsRecord, steps []QualityStep) (float64, int) {
	filled := CountValidFields(rec)
	return qualityFor(filled, steps), filled
}

func qualityFor(filled int, steps []QualityStep) float64 {
	if filled == 0 {
		return 0
	}
	best := 0.0
	for _, s := range steps {
		if filled >= s.MinFields && s.Score > best {
			best = s.Score
		}
	}
	return best
}
