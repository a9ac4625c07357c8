package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/nogg-truth/internal/models"
)

func TestConfidenceNoSignal(t *testing.T) {
	for _, derived := range []float64{0, 0.3, 0.55, 0.9, 1} {
		assert.Equal(t, 0.0, Confidence(derived, nil, 1.0))
		assert.Equal(t, 0.0, Confidence(derived, models.Odd(1.0), 1.0))
		assert.Equal(t, 0.0, Confidence(derived, models.Odd(1.8), 0))
	}
}

func TestConfidenceDiscountsEdgeByQuality(t *testing.T) {
	bookie := 1 / 2.0

	assert.InDelta(t, (0.62-bookie)*0.7, Confidence(0.62, models.Odd(2.0), 0.7), 1e-12)
	assert.InDelta(t, (0.40-bookie)*1.0, Confidence(0.40, models.Odd(2.0), 1.0), 1e-12)
}
