package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/swiss/internal/pairing"
	"github.com/roach88/swiss/internal/tournament"
)

// PairingsOptions holds flags for the pairings command.
type PairingsOptions struct {
	*RootOptions
	Strategy string
	MaxSteps int
}

// NewPairingsCommand creates the pairings command.
func NewPairingsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PairingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pairings",
		Short: "Pair the next round",
		Long: `Pair every player with the nearest-ranked player they have not played.

The greedy strategy fails when the last players left have already met.
The backtrack strategy searches for another rematch-free round first,
giving up after --max-steps attempts.

Exit codes:
  0 - Pairings printed
  1 - No valid pairing (odd player count, or every option is a rematch)
  2 - Command error

Examples:
  swiss pairings
  swiss pairings --strategy backtrack --max-steps 5000
  swiss pairings --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPairings(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "pairing strategy (greedy|backtrack) (default $SWISS_STRATEGY or greedy)")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "backtrack step limit (default $SWISS_MAX_STEPS or 100000)")

	return cmd
}

// pairingOptions merges the command flags over the environment settings.
func (o *PairingsOptions) pairingOptions(cmd *cobra.Command) (pairing.Options, error) {
	popts, err := o.Config.PairingOptions()
	if err != nil {
		return pairing.Options{}, err
	}
	if cmd.Flags().Changed("strategy") {
		if popts.Strategy, err = pairing.ParseStrategy(o.Strategy); err != nil {
			return pairing.Options{}, err
		}
	}
	if cmd.Flags().Changed("max-steps") {
		if o.MaxSteps < 0 {
			return pairing.Options{}, fmt.Errorf("max steps must not be negative, got %d", o.MaxSteps)
		}
		popts.MaxSteps = o.MaxSteps
	}
	return popts, nil
}

func runPairings(opts *PairingsOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)

	popts, err := opts.pairingOptions(cmd)
	if err != nil {
		return out.Fail("invalid pairing options", err)
	}

	out.VerboseLog("strategy=%s max_steps=%d", popts.Strategy, popts.MaxSteps)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return out.Fail("failed to open database", err)
	}
	defer closeStore(st)

	svc := tournament.NewService(st, popts, slog.Default().With("trace_id", out.TraceID))
	pairings, err := svc.SwissPairings(cmd.Context())
	if err != nil {
		return out.Fail("failed to pair next round", err)
	}

	if out.JSON() {
		return out.Success(pairings)
	}
	for i, p := range pairings {
		fmt.Fprintf(out.Writer, "Board %d: %s (#%d) vs. %s (#%d)\n",
			i+1, p.Name1, p.PlayerID1, p.Name2, p.PlayerID2)
	}
	return nil
}
