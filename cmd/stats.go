package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/catalog"
	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/ui/components"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <setId>",
		Short: "Show average answer times for a question set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID := args[0]
			if err := catalog.ValidateSetID(setID); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			cat, client := services(cfg, log)

			version, _ := cmd.Flags().GetInt("version")
			if version <= 0 {
				set, err := cat.LoadSet(cmd.Context(), setID)
				if err != nil {
					return fmt.Errorf("resolve version: %w", err)
				}
				version = set.Version
			}

			stats, err := client.FetchStats(cmd.Context(), setID, version)
			if err != nil {
				return fmt.Errorf("fetch stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s v%d: %d submissions\n", stats.SetID, stats.Version, stats.Submissions)
			if len(stats.QuestionStats) == 0 {
				fmt.Fprintln(out, "No answers recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(stats.QuestionStats))
			for _, q := range stats.QuestionStats {
				rows = append(rows, []string{q.QuestionID, results.FormatMs(q.AvgElapsedMs), strconv.Itoa(q.Samples)})
			}
			_, err = lipgloss.Fprintln(out, components.Table([]string{"Question", "Average", "Players"}, rows))
			return err
		},
	}
	cmd.Flags().Int("version", 0, "Set version (default: the current version from the set source)")
	return cmd
}
