package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/ui/components"
)

func newSetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List the available question sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			cat, _ := services(cfg, log)

			sets, err := cat.Manifest(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sets from %s: %w", cat.Source().Location(), err)
			}
			if len(sets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No question sets found.")
				return nil
			}

			rows := make([][]string, 0, len(sets))
			for _, s := range sets {
				rows = append(rows, []string{
					s.DisplayIcon() + " " + s.ID,
					s.Title,
					strconv.Itoa(s.QuestionCount),
					"v" + strconv.Itoa(s.Version),
				})
			}
			_, err = lipgloss.Fprintln(cmd.OutOrStdout(), components.Table([]string{"Set", "Title", "Questions", "Version"}, rows))
			return err
		},
	}
	cmd.AddCommand(newSetsShowCmd())
	return cmd
}

func newSetsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <setId>",
		Short: "Print the questions of one set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withAnswers, _ := cmd.Flags().GetBool("answers")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			cat, _ := services(cfg, log)

			set, err := cat.LoadSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			title := set.Title
			if title == "" {
				title = set.ID
			}
			fmt.Fprintf(out, "%s (v%d, %d questions)\n", title, set.Version, len(set.Questions))
			if set.Description != "" {
				fmt.Fprintln(out, set.Description)
			}

			headers := []string{"#", "ID", "Question"}
			if withAnswers {
				headers = append(headers, "Answer")
			}
			rows := make([][]string, 0, len(set.Questions))
			for i, q := range set.Questions {
				row := []string{strconv.Itoa(i + 1), q.ID, q.Text}
				if withAnswers {
					row = append(row, q.Answer)
				}
				rows = append(rows, row)
			}
			_, err = lipgloss.Fprintln(out, components.Table(headers, rows))
			return err
		},
	}
	cmd.Flags().Bool("answers", false, "Include the expected answers")
	return cmd
}
