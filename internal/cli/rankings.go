package cli

import (
	"github.com/spf13/cobra"
)

func newRankingsCmd() *cobra.Command {
	var category int

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show the league standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := requireCredential()
			if err != nil {
				return err
			}

			entries, err := app.Client.Rankings(cmd.Context(), cred, category)
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&category, "category", 0, "Restrict to one category id")

	return cmd
}
