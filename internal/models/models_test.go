package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOddsRecordGetSet(t *testing.T) {
	var rec OddsRecord
	for i, field := range OddsFields {
		rec.Set(field, Odd(float64(i)+1.5))
	}

	for i, field := range OddsFields {
		require.NotNil(t, rec.Get(field), field)
		assert.Equal(t, float64(i)+1.5, *rec.Get(field), field)
	}

	rec.Set(FieldHandicap, nil)
	assert.Nil(t, rec.HandicapOdd)
	assert.Nil(t, rec.Get(OddsField("corners")))

	var nilRec *OddsRecord
	assert.Nil(t, nilRec.Get(FieldBTTSNo))
}

func TestParseOdd(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  *float64
	}{
		{"float", 1.85, Odd(1.85)},
		{"int", 2, Odd(2)},
		{"numeric string", " 1.95 ", Odd(1.95)},
		{"json number", json.Number("2.10"), Odd(2.10)},
		{"empty string", "", nil},
		{"text", "abc", nil},
		{"nil", nil, nil},
		{"bool", true, nil},
		{"list", []interface{}{1.5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOdd(tt.input))
		})
	}
}

func TestOddsRecordUnmarshalJSONIsLenient(t *testing.T) {
	var recs []OddsRecord
	err := json.Unmarshal([]byte(`[
		{"match_id": 42, "btts_no": 1.80, "under_2_5": "1.55", "handicap": "abc"},
		{"label": "Derby", "btts_no": "", "under_1_5": null, "corners": 9.5}
	]`), &recs)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "42", recs[0].MatchID)
	assert.Equal(t, Odd(1.80), recs[0].BTTSNoOdd)
	assert.Equal(t, Odd(1.55), recs[0].Under25Odd)
	assert.Nil(t, recs[0].HandicapOdd)

	assert.Equal(t, "Derby", recs[1].Label)
	assert.Empty(t, recs[1].MatchID)
	assert.Nil(t, recs[1].BTTSNoOdd)
	assert.Nil(t, recs[1].Under15Odd)

	var rec OddsRecord
	assert.Error(t, json.Unmarshal([]byte(`"1.80"`), &rec))
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		input   string
		want    Result
		wantErr bool
	}{
		{"win", ResultWin, false},
		{" WIN ", ResultWin, false},
		{"Loss", ResultLoss, false},
		{"draw", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResult(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResult)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternRecordWinRate(t *testing.T) {
	rec := PatternRecord{TotalSeen: 4, Wins: 3, Losses: 1, LastUpdatedAt: time.Now()}
	assert.Equal(t, 4, rec.Decided())
	assert.InDelta(t, 0.75, rec.WinRate(), 1e-12)

	empty := PatternRecord{}
	assert.Equal(t, 0.0, empty.WinRate())
}

func TestClassifiedMatchRanked(t *testing.T) {
	m := ClassifiedMatch{Status: StatusExclude}
	assert.False(t, m.Ranked())
	m.Rank = 1
	assert.True(t, m.Ranked())
}
