package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	At string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <winner-id> <loser-id>",
		Short: "Record the result of a match",
		Long: `Record that the first player beat the second.

--at accepts most date formats ("2024-03-05 19:30", "March 5 2024",
"03/05/2024"). Without it the current time is used.

Example:
  swiss report 1 2
  swiss report 3 4 --at "2024-03-05 19:30"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportMatch(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "when the match was played")

	return cmd
}

func reportMatch(opts *ReportOptions, args []string, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)

	winner, err := parsePlayerID(args[0])
	if err != nil {
		return out.Fail("invalid winner", err)
	}
	loser, err := parsePlayerID(args[1])
	if err != nil {
		return out.Fail("invalid loser", err)
	}
	playedAt, err := parsePlayedAt(opts.At)
	if err != nil {
		return out.Fail("invalid --at", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return out.Fail("failed to open database", err)
	}
	defer closeStore(st)

	m, err := st.ReportMatch(cmd.Context(), winner, loser, playedAt)
	if err != nil {
		return out.Fail("failed to report match", err)
	}
	slog.Info("match reported", "id", m.ID, "winner", m.WinnerID, "loser", m.LoserID)

	if out.JSON() {
		return out.Success(m)
	}
	return out.Success(fmt.Sprintf("Recorded match #%d: #%d beat #%d", m.ID, m.WinnerID, m.LoserID))
}

func parsePlayerID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("player id must be a positive integer, got %q", s)
	}
	return id, nil
}

// parsePlayedAt returns the zero time for an empty string, which the store
// replaces with the current time.
func parsePlayedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NewMatchesCommand creates the matches command.
func NewMatchesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "List recorded match results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, rootOpts)
			st, err := openStore(rootOpts)
			if err != nil {
				return out.Fail("failed to open database", err)
			}
			defer closeStore(st)

			matches, err := st.Matches(cmd.Context())
			if err != nil {
				return out.Fail("failed to list matches", err)
			}
			if out.JSON() {
				return out.Success(matches)
			}

			tw := tabwriter.NewWriter(out.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MATCH\tWINNER\tLOSER\tPLAYED")
			for _, m := range matches {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", m.ID, m.WinnerID, m.LoserID, m.PlayedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}
