package odds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 {
	return &v
}

func TestImpliedProbabilityInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		odd  *float64
	}{
		{name: "absent", odd: nil},
		{name: "exactly one", odd: ptr(1.0)},
		{name: "below one", odd: ptr(0.5)},
		{name: "zero", odd: ptr(0)},
		{name: "negative", odd: ptr(-2.5)},
		{name: "nan", odd: ptr(math.NaN())},
		{name: "positive infinity", odd: ptr(math.Inf(1))},
		{name: "negative infinity", odd: ptr(math.Inf(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsValid(tt.odd))
			assert.Equal(t, 0.0, ImpliedProbability(tt.odd))
		})
	}
}

func TestImpliedProbabilityValidOdds(t *testing.T) {
	for _, odd := range []float64{1.01, 1.5, 1.8, 2.0, 3.25, 10, 1000} {
		p := ImpliedProbability(ptr(odd))
		assert.InDelta(t, 1/odd, p, 1e-12)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		odd      float64
		expected string
	}{
		{odd: 1.80, expected: "1.80"},
		{odd: 1.82, expected: "1.80"},
		{odd: 1.83, expected: "1.85"},
		{odd: 1.874, expected: "1.85"},
		{odd: 1.876, expected: "1.90"},
		{odd: 2.025, expected: "2.05"},
		{odd: 1.01, expected: "1.00"},
		{odd: 12.345, expected: "12.35"},
	}

	for _, tt := range tests {
		d, ok := Round(ptr(tt.odd))
		assert.True(t, ok)
		assert.Equal(t, tt.expected, Format(d), "odd %v", tt.odd)
	}
}

func TestRoundInvalid(t *testing.T) {
	_, ok := Round(nil)
	assert.False(t, ok)

	_, ok = Round(ptr(1.0))
	assert.False(t, ok)
}
