package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/patienceviz/internal/controller"
	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/logging"
	"github.com/codex-k8s/patienceviz/internal/render"
)

// newRunCommand creates the "run" subcommand that auto-plays a run on real timers.
func newRunCommand(opts *Options) *cobra.Command {
	var (
		flags     runFlags
		piles     bool
		logStatus bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Auto-play a run headlessly, printing one status line per step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			setup, err := requireArray(configFromContext(cmd.Context()), &flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var out io.Writer = cmd.OutOrStdout()
			if logStatus {
				out = logging.NewWriter(logger, "command", "run")
			}
			printer := render.NewStatusPrinter(out, render.PrinterOptions{
				NoColor:   logStatus || colorDisabled(noColor),
				ShowPiles: piles,
			})

			done := make(chan struct{})
			var once sync.Once
			steps := 0
			finished := hooks.Func(func(ev hooks.Event) {
				if ev.Kind == hooks.KindStep {
					steps++
				}
				if ev.Kind == hooks.KindReconstructed {
					once.Do(func() { close(done) })
				}
			})

			ctrl := controller.New(controller.Options{
				Scheduler: controller.TimerScheduler{},
				Presenter: hooks.Fanout{printer, finished},
				Logger:    logger,
				Delays:    setup.Delays,
				Speed:     setup.Speed,
			})
			if err := ctrl.SetArray(setup.Array); err != nil {
				return err
			}
			if err := ctrl.Start(); err != nil {
				return err
			}

			select {
			case <-done:
			case <-ctx.Done():
				ctrl.Reset()
				return fmt.Errorf("run interrupted: %w", context.Cause(ctx))
			}

			snap := ctrl.Snapshot()
			logger.Info("run finished", "run_id", snap.RunID, "piles", len(snap.Piles), "steps", steps)
			return publishOutputs(logger, snap, steps)
		},
	}

	addRunFlags(cmd, &flags)
	cmd.Flags().BoolVar(&piles, "piles", false, "Print the piles table after each placement")
	cmd.Flags().BoolVar(&logStatus, "log-status", false, "Send status lines to the logger instead of stdout")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}
