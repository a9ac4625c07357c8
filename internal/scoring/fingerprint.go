package scoring

import (
	"strings"

	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/odds"
)

// FingerprintScheme versions the fingerprint format. Bump it whenever the field
// set, rounding or rendering below changes.
const FingerprintScheme = 1

const (
	fingerprintSeparator = "-"
	fingerprintAbsent    = "0"
)

// fingerprintFields are the price-stable markets that identify a pattern.
var fingerprintFields = []models.OddsField{
	models.FieldBTTSNo,
	models.FieldUnder25,
	models.FieldUnder15,
	models.FieldHandicap,
}

// Fingerprint groups similar odds records under one key, e.g. "1.80-1.55-0-2.05".
// Records that round to the same values on the fingerprinted markets share a key
// whatever their other markets hold.
func Fingerprint(rec *models.OddsRecord) string {
	parts := make([]string, len(fingerprintFields))
	for i, f := range fingerprintFields {
		var odd *float64
		if rec != nil {
			odd = rec.Get(f)
		}
		if d, ok := odds.Round(odd); ok {
			parts[i] = odds.Format(d)
		} else {
			parts[i] = fingerprintAbsent
		}
	}
	return strings.Join(parts, fingerprintSeparator)
}
