package scoring

import (
	"sort"

	"github.com/yourusername/nogg-truth/internal/models"
)

// Classify assigns the action tier for a confidence value.
func Classify(confidence float64, cfg Config) models.Status {
	switch {
	case confidence >= cfg.AcceptAt:
		return models.StatusAccept
	case confidence >= cfg.ExcludeBelow:
		return models.StatusWarn
	default:
		return models.StatusExclude
	}
}

// RankScore is the sort key of a match. Only confirmed, non-excluded matches get
// the history boost.
func RankScore(confidence float64, status models.Status, confirmed bool, cfg Config) float64 {
	if confirmed && status != models.StatusExclude {
		return confidence + cfg.HistoryBoost
	}
	return confidence
}

// Classified builds the unranked classification of one evaluation.
func Classified(e models.Evaluation, index int, cfg Config) models.ClassifiedMatch {
	status := Classify(e.Confidence, cfg)
	return models.ClassifiedMatch{
		Evaluation:       e,
		Index:            index,
		Status:           status,
		HistoryConfirmed: e.History.Confirmed,
		RankScore:        RankScore(e.Confidence, status, e.History.Confirmed, cfg),
	}
}

// RankBatch classifies a batch and orders it by rank score, highest first.
// Ranks 1..K go to the non-excluded matches in that order; excluded matches keep
// rank 0. Equal scores keep submission order.
func RankBatch(evals []models.Evaluation, cfg Config) []models.ClassifiedMatch {
	matches := make([]models.ClassifiedMatch, len(evals))
	for i, e := range evals {
		matches[i] = Classified(e, i, cfg)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RankScore > matches[j].RankScore
	})

	rank := 0
	for i := range matches {
		if matches[i].Status == models.StatusExclude {
			continue
		}
		rank++
		matches[i].Rank = rank
	}
	return matches
}

// Summarize counts matches per status.
func Summarize(matches []models.ClassifiedMatch) models.Summary {
	s := models.Summary{Total: len(matches)}
	for _, m := range matches {
		switch m.Status {
		case models.StatusAccept:
			s.Accept++
		case models.StatusWarn:
			s.Warn++
		case models.StatusExclude:
			s.Exclude++
		}
	}
	return s
}
