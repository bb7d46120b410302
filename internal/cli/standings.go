package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStandingsCommand creates the standings command.
func NewStandingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show players ranked by wins",
		Long: `Show every registered player ranked by wins. Ties keep registration
order. Players without matches are listed with zero wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, rootOpts)
			st, err := openStore(rootOpts)
			if err != nil {
				return out.Fail("failed to open database", err)
			}
			defer closeStore(st)

			standings, err := st.Standings(cmd.Context())
			if err != nil {
				return out.Fail("failed to read standings", err)
			}
			if out.JSON() {
				return out.Success(standings)
			}

			tw := tabwriter.NewWriter(out.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tID\tNAME\tWINS\tMATCHES")
			for i, s := range standings {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\n", i+1, s.PlayerID, s.Name, s.Wins, s.Matches)
			}
			return tw.Flush()
		},
	}
}
