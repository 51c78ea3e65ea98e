package cli

import (
	"github.com/spf13/cobra"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch the full profile from the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.Session.RefreshProfile(cmd.Context(), "")
			if err != nil {
				return err
			}
			if profile == nil {
				// Either signed out to begin with, or the backend
				// rejected the credential and the session was cleared
				return model.ErrNotSignedIn
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(profile)
			return nil
		},
	}
}
