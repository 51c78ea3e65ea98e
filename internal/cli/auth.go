package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resp, err := app.Client.Login(ctx, user, pass)
			if err != nil {
				return err
			}

			if err := app.Session.SignIn(ctx, resp.User, resp.JWT); err != nil {
				return fmt.Errorf("failed to establish session: %w", err)
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(app.Session.Snapshot().Profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username or email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var user, email, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resp, err := app.Client.Register(ctx, user, email, pass)
			if err != nil {
				return err
			}

			if err := app.Session.SignIn(ctx, resp.User, resp.JWT); err != nil {
				return fmt.Errorf("failed to establish session: %w", err)
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(app.Session.Snapshot().Profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.SignOut(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.PrintMessage("signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Session.Snapshot()
			if !snap.SignedIn() || snap.Profile == nil {
				return model.ErrNotSignedIn
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(snap.Profile)
			return nil
		},
	}
}
