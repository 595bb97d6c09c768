package cli

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/codex-k8s/patienceviz/internal/tui"
)

// newTUICommand creates the "tui" subcommand that starts the interactive visualizer.
func newTUICommand(opts *Options) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Step through patience sort interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts, &flags)
		},
	}
	addRunFlags(cmd, &flags)
	return cmd
}

func runTUI(cmd *cobra.Command, opts *Options, flags *runFlags) error {
	logger := LoggerFromContext(cmd.Context())
	cfg := configFromContext(cmd.Context())

	setup, err := resolveRun(cfg, flags)
	if err != nil {
		return err
	}

	// The UI owns the terminal; logs only go somewhere when a log file was given.
	uiLogger := slog.New(slog.DiscardHandler)
	if opts.LogFile != "" {
		uiLogger = logger
	}
	logger.Debug("starting ui", "elements", len(setup.Array), "speed", setup.Speed.String())

	return tui.Run(cmd.Context(), tui.Options{
		Array:  setup.Array,
		Speed:  setup.Speed,
		Delays: setup.Delays,
		Random: cfg.Random,
		Logger: uiLogger,
	}, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
}
