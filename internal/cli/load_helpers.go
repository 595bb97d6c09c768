package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/patienceviz/internal/config"
	"github.com/codex-k8s/patienceviz/internal/input"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// errNoArray is returned by commands that need an input sequence when none was given.
var errNoArray = errors.New("no array given: pass --array, --random or set array in the config file")

// runFlags are the input and pacing flags shared by tui, run and trace.
type runFlags struct {
	array  string
	random bool
	speed  string
}

// runSetup is the resolved input of a run after applying flags over the configuration.
type runSetup struct {
	Array  []int
	Speed  state.Speed
	Delays state.Delays
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVar(&f.array, "array", "", "Comma-separated input sequence (at least 10 positive integers)")
	cmd.Flags().BoolVar(&f.random, "random", false, "Generate a random input sequence")
	cmd.Flags().StringVar(&f.speed, "speed", "", "Auto-run speed (slow, normal, fast)")
	cmd.MarkFlagsMutuallyExclusive("array", "random")
}

// resolveRun applies flags over cfg. Flags win over environment overrides, which the
// config loader has already applied over the file.
func resolveRun(cfg *config.Config, f *runFlags) (runSetup, error) {
	var setup runSetup

	switch {
	case strings.TrimSpace(f.array) != "":
		values, err := input.ParseAndValidate(f.array)
		if err != nil {
			return runSetup{}, fmt.Errorf("--array: %w", err)
		}
		setup.Array = values
	case f.random:
		values, err := input.Random(nil, cfg.Random)
		if err != nil {
			return runSetup{}, fmt.Errorf("random array: %w", err)
		}
		setup.Array = values
	case len(cfg.Array) > 0:
		setup.Array = append([]int(nil), cfg.Array...)
	}

	speed, err := cfg.SpeedLevel()
	if err != nil {
		return runSetup{}, err
	}
	if f.speed != "" {
		speed, err = state.ParseSpeed(f.speed)
		if err != nil {
			return runSetup{}, fmt.Errorf("--speed: %w", err)
		}
	}
	setup.Speed = speed

	delays, err := cfg.DelayTable()
	if err != nil {
		return runSetup{}, err
	}
	setup.Delays = delays
	return setup, nil
}

// requireArray is resolveRun for commands that cannot start without input.
func requireArray(cfg *config.Config, f *runFlags) (runSetup, error) {
	setup, err := resolveRun(cfg, f)
	if err != nil {
		return runSetup{}, err
	}
	if len(setup.Array) == 0 {
		return runSetup{}, errNoArray
	}
	return setup, nil
}
