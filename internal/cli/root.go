// Package cli defines the command-line interface for patienceviz.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/patienceviz/internal/config"
	"github.com/codex-k8s/patienceviz/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	LogLevel   logging.Level
	LogFile    string

	logCloser io.Closer
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: config.DefaultPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.WithValue(context.Background(), loggerKey{}, logger))
	rootOpts.closeLog()
	return err
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
// Without a subcommand it starts the interactive UI.
func newRootCommand(opts *Options) *cobra.Command {
	var uiFlags runFlags

	cmd := &cobra.Command{
		Use:           "patienceviz",
		Short:         "patienceviz steps through patience sort in the terminal",
		Long:          "patienceviz builds patience-sort piles one element at a time and reconstructs the sorted sequence, either interactively, as a timed headless run or as a full trace.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts, &uiFlags)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath, "Path to patienceviz.yaml configuration file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	addRunFlags(cmd, &uiFlags)

	cmd.AddCommand(
		newTUICommand(opts),
		newRunCommand(opts),
		newTraceCommand(opts),
		newRandomCommand(opts),
	)

	return cmd
}

// prepare resolves the config path, loads the configuration and installs the logger and
// config into the command context.
func (o *Options) prepare(cmd *cobra.Command) error {
	var base baseEnv
	if err := parseEnv(&base); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	required := cmd.Flags().Changed("config")
	if !required && base.ConfigPath != "" {
		o.ConfigPath = base.ConfigPath
		required = true
	}

	cfg, err := config.Load(o.ConfigPath, config.LoadOptions{Required: required})
	if err != nil {
		return err
	}

	level := cfg.Level()
	if cmd.Flags().Changed("log-level") {
		level, err = logging.ParseLevelStrict(cmd.Flag("log-level").Value.String())
		if err != nil {
			return err
		}
	}
	o.LogLevel = level

	logger := logging.NewLogger(cmd.ErrOrStderr(), level)
	if o.LogFile != "" {
		fileLogger, closer, err := logging.OpenFile(o.LogFile, level)
		if err != nil {
			return err
		}
		logger = fileLogger
		o.logCloser = closer
	}

	ctx := context.WithValue(cmd.Context(), loggerKey{}, logger)
	ctx = context.WithValue(ctx, configKey{}, cfg)
	cmd.SetContext(ctx)
	logger.Debug("logger initialized", "level", level, "config", o.ConfigPath)
	return nil
}

func (o *Options) closeLog() {
	if o.logCloser != nil {
		_ = o.logCloser.Close()
		o.logCloser = nil
	}
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// configKey is a private context key used to store the loaded configuration.
type configKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

// configFromContext returns the configuration loaded by the root command, or defaults.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok && c != nil {
			return c
		}
	}
	return config.Default()
}
