// Package odds converts decimal odds into implied probabilities.
package odds

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundingSteps is the number of 0.05 increments per unit of odds.
var roundingSteps = decimal.NewFromInt(20)

// IsValid reports whether odd is a usable decimal odd: present, finite and above 1.0.
func IsValid(odd *float64) bool {
	if odd == nil {
		return false
	}
	v := *odd
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v > 1.0
}

// ImpliedProbability returns 1/odd for a valid odd and 0 otherwise.
// Invalid and absent odds are "no information", never an error.
func ImpliedProbability(odd *float64) float64 {
	if !IsValid(odd) {
		return 0
	}
	return 1.0 / *odd
}

// Round snaps a valid odd to the nearest 0.05. The second return value is false
// when the odd is absent or invalid.
func Round(odd *float64) (decimal.Decimal, bool) {
	if !IsValid(odd) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(*odd).Mul(roundingSteps).Round(0).Div(roundingSteps), true
}

// Format renders a rounded odd with two decimals, e.g. "1.85".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
