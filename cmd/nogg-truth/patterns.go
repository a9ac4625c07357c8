package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	confirmClear bool
	fullRecord   bool
)

func init() {
	lookupCmd.Flags().BoolVar(&fullRecord, "full", false, "Print the stored record including the last result")
	clearCmd.Flags().BoolVar(&confirmClear, "yes", false, "Confirm deleting all pattern history")
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <fingerprint>",
	Short: "Show the recorded history of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, closeFn, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		if fullRecord {
			rec, err := eng.Pattern(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		}

		lookup, err := eng.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, lookup)
	},
}

var outcomeCmd = &cobra.Command{
	Use:   "outcome <fingerprint> <win|loss>",
	Short: "Record the result of a match against its pattern",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, closeFn, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		rec, err := eng.RecordOutcome(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d seen, %d wins, %d losses (win rate %.2f)\n",
			args[0], rec.TotalSeen, rec.Wins, rec.Losses, rec.WinRate())
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all pattern history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmClear {
			return fmt.Errorf("refusing to clear pattern history without --yes")
		}

		eng, _, closeFn, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		removed, err := eng.ClearAll(cmd.Context(), "cli")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d patterns\n", removed)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the pattern history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, history, closeFn, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		entries, err := history.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		stats, err := history.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]interface{}{
			"stats":    stats,
			"patterns": entries,
		})
	},
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
