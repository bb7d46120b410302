package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/swiss/internal/store"
)

// openStore opens the database named by the global --db flag.
func openStore(opts *RootOptions) (*store.Store, error) {
	slog.Debug("opening database", "path", opts.Database)
	return store.Open(opts.Database)
}

// closeStore closes st, logging rather than returning a close failure.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register <name>...",
		Short: "Register one or more players",
		Long: `Register players in the given order. Registration order breaks ties in
the standings. Names need not be unique; each player gets a new ID.
Registration is all or nothing: if any name is blank, no one is registered.

Example:
  swiss register "Ada Lovelace" "Alan Turing"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return registerPlayers(rootOpts, args, cmd)
		},
	}
}

func registerPlayers(opts *RootOptions, names []string, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts)
	st, err := openStore(opts)
	if err != nil {
		return out.Fail("failed to open database", err)
	}
	defer closeStore(st)

	players, err := st.RegisterPlayers(cmd.Context(), names)
	if err != nil {
		return out.Fail("failed to register players", err)
	}
	for _, p := range players {
		slog.Info("player registered", "id", p.ID, "name", p.Name)
	}

	if out.JSON() {
		return out.Success(players)
	}
	for _, p := range players {
		fmt.Fprintf(out.Writer, "Registered #%d %s\n", p.ID, p.Name)
	}
	return nil
}

// NewPlayersCommand creates the players command.
func NewPlayersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List registered players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, rootOpts)
			st, err := openStore(rootOpts)
			if err != nil {
				return out.Fail("failed to open database", err)
			}
			defer closeStore(st)

			players, err := st.Players(cmd.Context())
			if err != nil {
				return out.Fail("failed to list players", err)
			}
			if out.JSON() {
				return out.Success(players)
			}

			tw := tabwriter.NewWriter(out.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tREGISTERED")
			for _, p := range players {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of registered players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd, rootOpts)
			st, err := openStore(rootOpts)
			if err != nil {
				return out.Fail("failed to open database", err)
			}
			defer closeStore(st)

			n, err := st.CountPlayers(cmd.Context())
			if err != nil {
				return out.Fail("failed to count players", err)
			}
			if out.JSON() {
				return out.Success(map[string]int{"players": n})
			}
			return out.Success(strconv.Itoa(n))
		},
	}
}
