package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/patienceviz/internal/env"
	"github.com/codex-k8s/patienceviz/internal/input"
	"github.com/codex-k8s/patienceviz/internal/logging"
	"github.com/codex-k8s/patienceviz/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingOptionalFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), LoadOptions{Environ: env.Vars{}})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"), LoadOptions{Required: true, Environ: env.Vars{}})
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
speed: fast
array: [5, 3, 8, 2, 9, 1, 7, 4, 6, 10]
random:
  maxValue: 50
delays:
  fast: 100ms
`)
	cfg, err := Load(path, LoadOptions{Environ: env.Vars{}})
	require.NoError(t, err)

	assert.Equal(t, logging.LevelDebug, cfg.Level())
	speed, err := cfg.SpeedLevel()
	require.NoError(t, err)
	assert.Equal(t, state.SpeedFast, speed)
	assert.Equal(t, []int{5, 3, 8, 2, 9, 1, 7, 4, 6, 10}, cfg.Array)
	assert.Equal(t, input.RandomOptions{MinLength: 10, MaxLength: 20, MaxValue: 50}, cfg.Random)

	delays, err := cfg.DelayTable()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, delays.For(state.SpeedFast))
	assert.Equal(t, 1500*time.Millisecond, delays.For(state.SpeedNormal))
}

func TestLoadTemplateAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
speed: '{{ envOr "VIZ_SPEED" "slow" }}'
logLevel: '{{ default "" "warn" }}'
`)
	cfg, err := Load(path, LoadOptions{Environ: env.Vars{"VIZ_SPEED": "fast"}})
	require.NoError(t, err)
	assert.Equal(t, "fast", cfg.Speed)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = Load(path, LoadOptions{Environ: env.Vars{
		"PATIENCEVIZ_SPEED":     "normal",
		"PATIENCEVIZ_LOG_LEVEL": "error",
		"PATIENCEVIZ_ARRAY":     "4,4,4,4,4,4,4,4,4,4",
	}})
	require.NoError(t, err)
	assert.Equal(t, "normal", cfg.Speed)
	assert.Equal(t, logging.LevelError, cfg.Level())
	assert.Len(t, cfg.Array, 10)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viz.env"), []byte("PATIENCEVIZ_SPEED=slow\n"), 0o600))
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("envFiles: [viz.env]\nspeed: fast\n"), 0o600))

	cfg, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "slow", cfg.Speed, ".env override beats the file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"unknown field": "colour: red\n",
		"bad speed":     "speed: warp\n",
		"bad level":     "logLevel: loud\n",
		"bad delay":     "delays: {fast: soon}\n",
		"zero delay":    "delays: {fast: 0s}\n",
		"short array":   "array: [1, 2, 3]\n",
		"bad random":    "random: {minLength: 3}\n",
		"bad template":  "speed: {{ .Missing\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), LoadOptions{Environ: env.Vars{}})
			require.Error(t, err)
		})
	}

	_, err := Load(writeConfig(t, "array: [1, 2, 3]\n"), LoadOptions{Environ: env.Vars{}})
	assert.True(t, input.IsValidationError(err))

	_, err = Load(writeConfig(t, ""), LoadOptions{Environ: env.Vars{"PATIENCEVIZ_ARRAY": "1,x"}})
	assert.True(t, input.IsValidationError(err))
}
