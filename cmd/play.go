package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/catalog"
	"github.com/mondai-quiz/mondai/internal/screens/selectset"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <setId>",
		Short: "Start a quiz on one question set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.ValidateSetID(args[0]); err != nil {
				return err
			}
			return runApp(cmd, selectset.QuizPath(args[0]))
		},
	}
}
