package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/nogg-truth/internal/models"
)

var (
	matchesFile string
	jsonOutput  bool
)

func init() {
	decideCmd.Flags().StringVarP(&matchesFile, "file", "f", "", "YAML or JSON file with the matches to rank (- for stdin)")
	decideCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the decision as JSON")
	_ = decideCmd.MarkFlagRequired("file")
}

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Score and rank a batch of matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(matchesFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		matches, err := parseMatches(data)
		if err != nil {
			return err
		}

		eng, _, closeFn, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		decision, err := eng.Decide(cmd.Context(), matches)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(decision)
		}
		return printDecision(cmd.OutOrStdout(), decision)
	},
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matches file: %w", err)
	}
	return data, nil
}

// parseMatches accepts either a top-level list of matches or a document with
// a "matches" list. JSON is valid YAML, so both formats go through yaml.v3.
// Odds values that are not numbers are treated as absent.
func parseMatches(data []byte) ([]models.OddsRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse matches: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var raw []map[string]interface{}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode matches: %w", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Matches []map[string]interface{} `yaml:"matches"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode matches: %w", err)
		}
		raw = wrapper.Matches
	default:
		return nil, fmt.Errorf("matches must be a list or a document with a matches list")
	}

	records := make([]models.OddsRecord, len(raw))
	for i, m := range raw {
		records[i] = models.OddsRecordFromMap(m)
	}
	return records, nil
}

func printDecision(w io.Writer, d *models.Decision) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tMATCH\tSTATUS\tCONFIDENCE\tEDGE\tQUALITY\tHISTORY\tFINGERPRINT")
	for _, m := range d.Matches {
		rank := "-"
		if m.Ranked() {
			rank = strconv.Itoa(m.Rank)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%+.4f\t%.1f\t%s\t%s\n",
			rank, matchName(m), m.Status, m.Confidence, m.Edge, m.DataQuality, historyLabel(m), m.Fingerprint)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := d.Summary
	_, err := fmt.Fprintf(w, "\n%d matches: %d accept, %d warn, %d exclude (run %s)\n",
		s.Total, s.Accept, s.Warn, s.Exclude, d.RunID)
	return err
}

func matchName(m models.ClassifiedMatch) string {
	switch {
	case m.Odds.Label != "":
		return m.Odds.Label
	case m.Odds.MatchID != "":
		return m.Odds.MatchID
	default:
		return fmt.Sprintf("#%d", m.Index+1)
	}
}

func historyLabel(m models.ClassifiedMatch) string {
	h := m.History
	switch {
	case !h.Exists:
		return "new"
	case h.Confirmed:
		return fmt.Sprintf("confirmed %d/%d", h.Wins, h.Wins+h.Losses)
	default:
		return fmt.Sprintf("seen %d/%d", h.Wins, h.Wins+h.Losses)
	}
}
