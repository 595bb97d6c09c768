package cli

import (
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from PATIENCEVIZ_* env vars. Level, speed and
// array overrides are applied by the config loader.
type baseEnv struct {
	// ConfigPath is the patienceviz.yaml path from PATIENCEVIZ_CONFIG.
	ConfigPath string `env:"PATIENCEVIZ_CONFIG"`
}

// parseEnv fills target from env vars via caarlos0/env.
func parseEnv(target any) error {
	return envparse.Parse(target)
}

// envPresent reports whether a non-empty env var exists.
func envPresent(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
