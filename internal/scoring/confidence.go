package scoring

import "github.com/yourusername/nogg-truth/internal/odds"

// Confidence returns the quality-discounted edge of the derived probability over
// the bookmaker's implied probability. No bookmaker price or zero quality means
// no signal.
func Confidence(derived float64, bookieOdd *float64, quality float64) float64 {
	bookie := odds.ImpliedProbability(bookieOdd)
	if bookie == 0 || quality == 0 {
		return 0
	}
	return (derived - bookie) * quality
}
