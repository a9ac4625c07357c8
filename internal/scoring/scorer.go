package scoring

import (
	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/odds"
)

// Score runs the pure part of an evaluation: aggregation, data quality,
// confidence and fingerprint. History is left for the caller to fill in.
func Score(rec models.OddsRecord, cfg Config) models.Evaluation {
	derived, pillars := Aggregate(&rec, cfg.Weights)
	quality, filled := DataQuality(&rec, cfg.QualitySteps)
	bookie := odds.ImpliedProbability(rec.BTTSNoOdd)

	return models.Evaluation{
		Odds:               rec,
		Pillars:            pillars,
		DerivedProbability: derived,
		BookieProbability:  bookie,
		HasBookie:          bookie > 0,
		ValidFields:        filled,
		DataQuality:        quality,
		Edge:               edge(derived, bookie),
		Confidence:         Confidence(derived, rec.BTTSNoOdd, quality),
		Fingerprint:        Fingerprint(&rec),
	}
}

func edge(derived, bookie float64) float64 {
	if bookie == 0 {
		return 0
	}
	return derived - bookie
}
