package scoring

import (
	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/odds"
)

var pillarOrder = []models.Pillar{
	models.PillarTeamFail,
	models.PillarUnderGoals,
	models.PillarCleanSheet,
	models.PillarRawMarket,
	models.PillarHandicap,
}

// pillarValue averages the probabilities of a pillar's valid inputs.
// The second return value is false when no input was valid.
func pillarValue(rec *models.OddsRecord, p models.Pillar) (float64, bool) {
	var probs []float64
	add := func(odd *float64, fail bool) {
		if !odds.IsValid(odd) {
			return
		}
		prob := odds.ImpliedProbability(odd)
		if fail {
			prob = 1 - prob
		}
		probs = append(probs, prob)
	}

	switch p {
	case models.PillarTeamFail:
		add(rec.HomeToScoreOdd, true)
		add(rec.AwayToScoreOdd, true)
	case models.PillarUnderGoals:
		add(rec.Under25Odd, false)
		add(rec.Under15Odd, false)
	case models.PillarCleanSheet:
		add(rec.HomeCleanSheetOdd, false)
		add(rec.AwayCleanSheetOdd, false)
	case models.PillarRawMarket:
		add(rec.BTTSNoOdd, false)
	case models.PillarHandicap:
		add(rec.HandicapOdd, false)
	}

	if len(probs) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range probs {
		sum += v
	}
	return sum / float64(len(probs)), true
}

// Aggregate computes the derived probability of the defensive outcome.
// Pillars without valid inputs are dropped from both the weighted sum and the
// normalizing denominator. A record with no valid pillar yields 0.
func Aggregate(rec *models.OddsRecord, w Weights) (float64, []models.PillarScore) {
	if rec == nil {
		rec = &models.OddsRecord{}
	}

	scores := make([]models.PillarScore, 0, len(pillarOrder))
	var weighted, activeWeight float64
	for _, p := range pillarOrder {
		value, ok := pillarValue(rec, p)
		score := models.PillarScore{Pillar: p, Value: value, Weight: w.For(p), Active: ok}
		if ok {
			weighted += value * score.Weight
			activeWeight += score.Weight
		}
		scores = append(scores, score)
	}

	if activeWeight <= 0 {
		return 0, scores
	}
	for i := range scores {
		if scores[i].Active {
			scores[i].EffectiveWeight = scores[i].Weight / activeWeight
		}
	}
	return clamp01(weighted / activeWeight), scores
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
