package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/patienceviz/internal/controller"
	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/render"
)

const (
	traceFormatTable = "table"
	traceFormatYAML  = "yaml"
)

// newTraceCommand creates the "trace" subcommand that steps a run manually to completion
// and prints every recorded event.
func newTraceCommand(opts *Options) *cobra.Command {
	var (
		flags  runFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Step a run to completion and print every transition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			if format != traceFormatTable && format != traceFormatYAML {
				return fmt.Errorf("unknown format %q (expected %s or %s)", format, traceFormatTable, traceFormatYAML)
			}
			setup, err := requireArray(configFromContext(cmd.Context()), &flags)
			if err != nil {
				return err
			}

			events, steps, err := traceRun(setup)
			if err != nil {
				return err
			}
			last := events[len(events)-1].Snapshot
			logger.Debug("trace recorded", "run_id", last.RunID, "events", len(events))

			if err := writeTrace(cmd.OutOrStdout(), format, events); err != nil {
				return err
			}
			return publishOutputs(logger, last, steps)
		},
	}

	addRunFlags(cmd, &flags)
	cmd.Flags().StringVarP(&format, "format", "f", traceFormatTable, "Output format (table, yaml)")
	return cmd
}

// traceRun advances a fresh controller until the sorted result is shown and reports the
// recorded events and the number of transitions taken.
func traceRun(setup runSetup) ([]hooks.Event, int, error) {
	rec := hooks.NewRecorder()
	ctrl := controller.New(controller.Options{
		Presenter: rec,
		Delays:    setup.Delays,
		Speed:     setup.Speed,
	})
	if err := ctrl.SetArray(setup.Array); err != nil {
		return nil, 0, err
	}
	// Three transitions per element plus completion and reconstruction.
	limit := 3*len(setup.Array) + 2
	steps := 0
	for steps < limit && !ctrl.Snapshot().Terminal() {
		if !ctrl.Advance() {
			break
		}
		steps++
	}
	if !ctrl.Snapshot().Terminal() {
		return nil, steps, fmt.Errorf("trace did not finish within %d steps", limit)
	}
	return rec.Events(), steps, nil
}

func writeTrace(w io.Writer, format string, events []hooks.Event) error {
	if format == traceFormatYAML {
		return render.WriteTraceYAML(w, events)
	}
	_, err := fmt.Fprintln(w, render.TraceTable(events))
	return err
}
