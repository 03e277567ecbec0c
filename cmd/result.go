package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/ui/components"
)

func newResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Fetch a submitted result from the aggregation service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			_, client := services(cfg, log)

			res, err := client.FetchResult(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch result %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Result %s: %s v%d\n", res.ID, res.SetID, res.SetVersion)
			fmt.Fprintf(out, "Started %s, finished %s\n", res.StartedAt, res.FinishedAt)

			var total int64
			rows := make([][]string, 0, len(res.Answers))
			for i, a := range res.Answers {
				total += a.ElapsedMs
				mark := "✓"
				if !a.IsCorrect {
					mark = "✗"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1), a.QuestionID, a.Entered, mark, results.FormatMs(float64(a.ElapsedMs)),
				})
			}
			if _, err := lipgloss.Fprintln(out, components.Table([]string{"#", "Question", "Entered", "", "Time"}, rows)); err != nil {
				return err
			}
			fmt.Fprintf(out, "Total time %s\n", results.FormatMs(float64(total)))
			return nil
		},
	}
}
