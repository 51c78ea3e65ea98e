package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

func newMatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Match dashboard commands",
	}

	cmd.AddCommand(newMatchesListCmd())
	cmd.AddCommand(newMatchesShowCmd())
	cmd.AddCommand(newMatchesResultCmd())

	return cmd
}

// requireCredential returns the active credential or ErrNotSignedIn
func requireCredential() (string, error) {
	snap := app.Session.Snapshot()
	if !snap.SignedIn() {
		return "", model.ErrNotSignedIn
	}
	return snap.Credential, nil
}

func newMatchesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := requireCredential()
			if err != nil {
				return err
			}

			matches, err := app.Client.Matches(cmd.Context(), cred)
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(matches)
			return nil
		},
	}
}

func newMatchesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := requireCredential()
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid match id %q", args[0])
			}

			match, err := app.Client.Match(cmd.Context(), cred, model.MatchID(id))
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(match)
			return nil
		},
	}
}

func newMatchesResultCmd() *cobra.Command {
	var sets []string
	var winner int

	cmd := &cobra.Command{
		Use:   "result <match-id>",
		Short: "Record the result of a played match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := requireCredential()
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid match id %q", args[0])
			}

			result := model.MatchResult{WinnerTeamID: winner}
			for _, set := range sets {
				score, err := parseSetScore(set)
				if err != nil {
					return err
				}
				result.Sets = append(result.Sets, score)
			}
			if len(result.Sets) == 0 {
				return fmt.Errorf("at least one --set is required")
			}

			match, err := app.Client.SubmitResult(cmd.Context(), cred, model.MatchID(id), result)
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(match)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set score as HOME-AWAY, repeatable (e.g. --set 6-3 --set 4-6)")
	cmd.Flags().IntVar(&winner, "winner", 0, "Winning team id")

	return cmd
}

// parseSetScore parses a "6-3" style set score
func parseSetScore(s string) (model.SetScore, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return model.SetScore{}, fmt.Errorf("invalid set score %q, expected HOME-AWAY", s)
	}

	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.SetScore{}, fmt.Errorf("invalid set score %q: %w", s, err)
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.SetScore{}, fmt.Errorf("invalid set score %q: %w", s, err)
	}

	return model.SetScore{Home: home, Away: away}, nil
}
