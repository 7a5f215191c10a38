package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/matchr/score"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <query> <candidate>",
		Short: "Print the fuzzy score (0-100) of candidate against query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), score.Score(args[0], args[1]))
			return err
		},
	}
}
