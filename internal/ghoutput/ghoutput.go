// Package ghoutput publishes run results as GitHub Actions step outputs.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/codex-k8s/patienceviz/internal/state"
)

// EnvVar names the file GitHub Actions collects step outputs from.
const EnvVar = "GITHUB_OUTPUT"

// Path returns the output file from the environment, or "" outside GitHub Actions.
func Path() string {
	return strings.TrimSpace(os.Getenv(EnvVar))
}

// Values summarises a finished run.
func Values(snap state.Snapshot, steps int) map[string]string {
	sorted := make([]string, len(snap.Sorted))
	for i, v := range snap.Sorted {
		sorted[i] = strconv.Itoa(v)
	}
	return map[string]string{
		"run_id": snap.RunID,
		"length": strconv.Itoa(len(snap.Input)),
		"piles":  strconv.Itoa(len(snap.Piles)),
		"steps":  strconv.Itoa(steps),
		"sorted": strings.Join(sorted, ","),
	}
}

// Write appends values as key=value lines to path. An empty path or map is a no-op.
func Write(path string, values map[string]string) error {
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open step outputs: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, sanitize(values[key])); err != nil {
			return fmt.Errorf("write step output %q: %w", key, err)
		}
	}
	return nil
}

func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\r", "%0D")
	return strings.ReplaceAll(value, "\n", "%0A")
}
