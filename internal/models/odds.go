package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OddsField names one market of an OddsRecord.
type OddsField string

const (
	FieldBTTSNo         OddsField = "btts_no"
	FieldUnder25        OddsField = "under_2_5"
	FieldUnder15        OddsField = "under_1_5"
	FieldHomeToScore    OddsField = "home_to_score"
	FieldAwayToScore    OddsField = "away_to_score"
	FieldHomeCleanSheet OddsField = "home_clean_sheet"
	FieldAwayCleanSheet OddsField = "away_clean_sheet"
	FieldHandicap       OddsField = "handicap"
)

// OddsFields lists every market in canonical order.
var OddsFields = []OddsField{
	FieldBTTSNo,
	FieldUnder25,
	FieldUnder15,
	FieldHomeToScore,
	FieldAwayToScore,
	FieldHomeCleanSheet,
	FieldAwayCleanSheet,
	FieldHandicap,
}

// OddsRecord holds the decimal odds entered for a single match.
// A nil field means the market was not offered or not entered.
type OddsRecord struct {
	MatchID           string   `json:"match_id,omitempty" yaml:"match_id,omitempty"`
	Label             string   `json:"label,omitempty" yaml:"label,omitempty"`
	BTTSNoOdd         *float64 `json:"btts_no,omitempty" yaml:"btts_no,omitempty"`
	Under25Odd        *float64 `json:"under_2_5,omitempty" yaml:"under_2_5,omitempty"`
	Under15Odd        *float64 `json:"under_1_5,omitempty" yaml:"under_1_5,omitempty"`
	HomeToScoreOdd    *float64 `json:"home_to_score,omitempty" yaml:"home_to_score,omitempty"`
	AwayToScoreOdd    *float64 `json:"away_to_score,omitempty" yaml:"away_to_score,omitempty"`
	HomeCleanSheetOdd *float64 `json:"home_clean_sheet,omitempty" yaml:"home_clean_sheet,omitempty"`
	AwayCleanSheetOdd *float64 `json:"away_clean_sheet,omitempty" yaml:"away_clean_sheet,omitempty"`
	HandicapOdd       *float64 `json:"handicap,omitempty" yaml:"handicap,omitempty"`
}

// Get returns the raw odd for a field, or nil when absent.
func (o *OddsRecord) Get(field OddsField) *float64 {
	if o == nil {
		return nil
	}
	switch field {
	case FieldBTTSNo:
		return o.BTTSNoOdd
	case FieldUnder25:
		return o.Under25Odd
	case FieldUnder15:
		return o.Under15Odd
	case FieldHomeToScore:
		return o.HomeToScoreOdd
	case FieldAwayToScore:
		return o.AwayToScoreOdd
	case FieldHomeCleanSheet:
		return o.HomeCleanSheetOdd
	case FieldAwayCleanSheet:
		return o.AwayCleanSheetOdd
	case FieldHandicap:
		return o.HandicapOdd
	default:
		return nil
	}
}

// Set replaces the raw odd of a field. Unknown fields are ignored.
func (o *OddsRecord) Set(field OddsField, v *float64) {
	switch field {
	case FieldBTTSNo:
		o.BTTSNoOdd = v
	case FieldUnder25:
		o.Under25Odd = v
	case FieldUnder15:
		o.Under15Odd = v
	case FieldHomeToScore:
		o.HomeToScoreOdd = v
	case FieldAwayToScore:
		o.AwayToScoreOdd = v
	case FieldHomeCleanSheet:
		o.HomeCleanSheetOdd = v
	case FieldAwayCleanSheet:
		o.AwayCleanSheetOdd = v
	case FieldHandicap:
		o.HandicapOdd = v
	}
}

// Odd returns a pointer to v, for building records in code.
func Odd(v float64) *float64 {
	return &v
}

// ParseOdd converts a loosely typed odds value into a raw odd. Numbers and
// numeric strings are kept; anything else, including "" and null, is absent.
func ParseOdd(v interface{}) *float64 {
	switch x := v.(type) {
	case int:
		return Odd(float64(x))
	case int64:
		return Odd(float64(x))
	case uint64:
		return Odd(float64(x))
	case float64:
		return Odd(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return Odd(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		return Odd(f)
	default:
		return nil
	}
}

// OddsRecordFromMap builds a record from a decoded document. Unknown keys
// are ignored and odds go through ParseOdd.
func OddsRecordFromMap(m map[string]interface{}) OddsRecord {
	var rec OddsRecord
	rec.MatchID = textValue(m["match_id"])
	rec.Label = textValue(m["label"])
	for _, field := range OddsFields {
		rec.Set(field, ParseOdd(m[string(field)]))
	}
	return rec
}

// UnmarshalJSON decodes a match leniently: an odds value that is not a
// number leaves the market absent instead of failing the whole batch.
func (o *OddsRecord) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*o = OddsRecordFromMap(m)
	return nil
}

func textValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
