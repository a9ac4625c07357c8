package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nogg-truth/internal/models"
	"github.com/yourusername/nogg-truth/internal/store"
)

func TestParseMatchesWrapped(t *testing.T) {
	data, err := os.ReadFile("testdata/matches.yaml")
	require.NoError(t, err)

	matches, err := parseMatches(data)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "Rovers v United", matches[0].Label)
	require.NotNil(t, matches[0].HandicapOdd)
	assert.Equal(t, 1.80, *matches[0].HandicapOdd)

	assert.Equal(t, "thin", matches[1].MatchID)
	require.NotNil(t, matches[1].BTTSNoOdd)
	assert.Equal(t, 1.80, *matches[1].BTTSNoOdd)
	assert.Nil(t, matches[1].Under25Odd)
}

func TestParseMatchesJSONList(t *testing.T) {
	matches, err := parseMatches([]byte(`[{"btts_no": 2, "handicap": 1.95}, {}]`))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 2.0, *matches[0].BTTSNoOdd)
	assert.Equal(t, 1.95, *matches[0].HandicapOdd)
	assert.Nil(t, matches[1].BTTSNoOdd)
}

func TestParseMatchesRejectsScalar(t *testing.T) {
	_, err := parseMatches([]byte(`42`))
	assert.Error(t, err)

	matches, err := parseMatches(nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPrintDecision(t *testing.T) {
	d := &models.Decision{
		Matches: []models.ClassifiedMatch{
			{
				Evaluation: models.Evaluation{
					Odds:        models.OddsRecord{Label: "Rovers v United"},
					Confidence:  0.1424,
					Fingerprint: "2.50-1.40-2.00-1.80",
					History:     models.HistoryLookup{Exists: true, Wins: 3, Losses: 1, Confirmed: true},
				},
				Status: models.StatusAccept,
				Rank:   1,
			},
			{
				Evaluation: models.Evaluation{Fingerprint: "1.80-0-0-0"},
				Index:      1,
				Status:     models.StatusExclude,
			},
		},
		Summary: models.Summary{Total: 2, Accept: 1, Exclude: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, printDecision(&buf, d))

	out := buf.String()
	assert.Contains(t, out, "Rovers v United")
	assert.Contains(t, out, "confirmed 3/4")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "2 matches: 1 accept, 0 warn, 1 exclude")

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.True(t, strings.HasPrefix(lines[2], "- "))
}

func TestDecideCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("app:\n  log_level: error\nstore:\n  backend: memory\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"decide", "-c", cfgPath, "-f", "testdata/matches.yaml", "--json"})
	require.NoError(t, rootCmd.Execute())

	var decision models.Decision
	require.NoError(t, json.Unmarshal(out.Bytes(), &decision))
	require.Len(t, decision.Matches, 2)
	assert.Equal(t, "strong", decision.Matches[0].Odds.MatchID)
	assert.Equal(t, models.StatusAccept, decision.Matches[0].Status)
	assert.Equal(t, models.StatusExclude, decision.Matches[1].Status)
}

func TestDecideWithUnusableStore(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfgPath := filepath.Join(dir, "config.yaml")
	cfgBody := "app:\n  log_level: error\nstore:\n  backend: file\n  file_dir: " + filepath.Join(blocker, "data") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"decide", "-c", cfgPath, "-f", "testdata/matches.yaml", "--json"})
	require.NoError(t, rootCmd.Execute())

	var decision models.Decision
	require.NoError(t, json.Unmarshal(out.Bytes(), &decision))
	require.Len(t, decision.Matches, 2)
	assert.Equal(t, "strong", decision.Matches[0].Odds.MatchID)
	assert.Equal(t, models.StatusAccept, decision.Matches[0].Status)
	assert.False(t, decision.Matches[0].History.Exists)

	out.Reset()
	rootCmd.SetArgs([]string{"outcome", "-c", cfgPath, decision.Matches[0].Fingerprint, "win"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrPersistence)
}

func TestLookupFullRecord(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgBody := "app:\n  log_level: error\nstore:\n  backend: file\n  file_dir: " + filepath.Join(dir, "data") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"outcome", "-c", cfgPath, "1.80-0-0-0", "loss"})
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	defer func() { fullRecord = false }()
	rootCmd.SetArgs([]string{"lookup", "-c", cfgPath, "--full", "1.80-0-0-0"})
	require.NoError(t, rootCmd.Execute())

	var rec models.PatternRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, 1, rec.Losses)
	require.NotNil(t, rec.LastResult)
	assert.Equal(t, models.ResultLoss, *rec.LastResult)
	assert.False(t, rec.LastUpdatedAt.IsZero())
}

func TestExplicitConfigMustExist(t *testing.T) {
	rootCmd.SetArgs([]string{"stats", "-c", filepath.Join(t.TempDir(), "missing.yaml")})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}
