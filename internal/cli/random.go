package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/patienceviz/internal/input"
)

// newRandomCommand creates the "random" subcommand that prints a valid random array.
func newRandomCommand(opts *Options) *cobra.Command {
	var (
		minLength int
		maxLength int
		maxValue  int
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random array accepted by the visualizer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			ro := configFromContext(cmd.Context()).Random
			if cmd.Flags().Changed("min-length") {
				ro.MinLength = minLength
			}
			if cmd.Flags().Changed("max-length") {
				ro.MaxLength = maxLength
			}
			if cmd.Flags().Changed("max-value") {
				ro.MaxValue = maxValue
			}

			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			values, err := input.Random(rng, ro)
			if err != nil {
				return err
			}
			logger.Debug("random array generated", "elements", len(values))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), input.Format(values))
			return err
		},
	}

	cmd.Flags().IntVar(&minLength, "min-length", 0, "Minimum array length (at least 10)")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Maximum array length")
	cmd.Flags().IntVar(&maxValue, "max-value", 0, "Largest element value")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible output")
	return cmd
}
