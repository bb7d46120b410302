package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	MatchesOnly bool
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete match results and players",
		Long: `Delete every match result, then every player. With --matches-only the
players stay registered and start again from zero wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, opts.RootOptions)
			st, err := openStore(opts.RootOptions)
			if err != nil {
				return out.Fail("failed to open database", err)
			}
			defer closeStore(st)

			if err := st.DeleteMatches(cmd.Context()); err != nil {
				return out.Fail("failed to delete matches", err)
			}
			slog.Info("matches deleted")
			if opts.MatchesOnly {
				return out.Success("Deleted all matches")
			}

			if err := st.DeletePlayers(cmd.Context()); err != nil {
				return out.Fail("failed to delete players", err)
			}
			slog.Info("players deleted")
			return out.Success("Deleted all matches and players")
		},
	}

	cmd.Flags().BoolVar(&opts.MatchesOnly, "matches-only", false, "keep registered players")

	return cmd
}
