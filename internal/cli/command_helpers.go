package cli

import (
	"fmt"
	"log/slog"

	"github.com/codex-k8s/patienceviz/internal/ghoutput"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// colorDisabled reports whether colored output was turned off by flag or NO_COLOR.
func colorDisabled(flag bool) bool {
	return flag || envPresent("NO_COLOR")
}

// publishOutputs writes the run summary to GITHUB_OUTPUT when running inside GitHub Actions.
func publishOutputs(logger *slog.Logger, snap state.Snapshot, steps int) error {
	path := ghoutput.Path()
	if path == "" {
		return nil
	}
	if err := ghoutput.Write(path, ghoutput.Values(snap, steps)); err != nil {
		return fmt.Errorf("publish step outputs: %w", err)
	}
	logger.Debug("step outputs written", "path", path)
	return nil
}
