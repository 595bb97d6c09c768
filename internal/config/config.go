// Package config contains the loader and strongly typed model for patienceviz.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/patienceviz/internal/env"
	"github.com/codex-k8s/patienceviz/internal/input"
	"github.com/codex-k8s/patienceviz/internal/logging"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "patienceviz.yaml"

// Config is the visualizer configuration after template rendering.
type Config struct {
	// EnvFiles lists .env files loaded before environment overrides are applied.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel,omitempty"`
	// Speed is the initial auto-run speed (slow, normal, fast).
	Speed string `yaml:"speed,omitempty"`
	// Array is an optional input sequence set on startup.
	Array []int `yaml:"array,omitempty,flow"`
	// Random bounds generated arrays.
	Random input.RandomOptions `yaml:"random,omitempty"`
	// Delays overrides the pause between auto-run steps per speed.
	Delays DelaysConfig `yaml:"delays,omitempty"`
}

// DelaysConfig holds duration strings such as "800ms" per speed level.
// Empty values fall back to the built-in delays.
type DelaysConfig struct {
	Slow   string `yaml:"slow,omitempty"`
	Normal string `yaml:"normal,omitempty"`
	Fast   string `yaml:"fast,omitempty"`
}

// overrides are read from PATIENCEVIZ_* variables and take precedence over the file.
type overrides struct {
	// LogLevel comes from PATIENCEVIZ_LOG_LEVEL.
	LogLevel string `env:"PATIENCEVIZ_LOG_LEVEL"`
	// Speed comes from PATIENCEVIZ_SPEED.
	Speed string `env:"PATIENCEVIZ_SPEED"`
	// Array is a comma-separated list from PATIENCEVIZ_ARRAY.
	Array string `env:"PATIENCEVIZ_ARRAY"`
}

// rawHeader is a minimal struct used to extract top-level fields before templating.
type rawHeader struct {
	EnvFiles []string `yaml:"envFiles"`
}

// LoadOptions controls how Load treats the configuration file.
type LoadOptions struct {
	// Required makes a missing file an error. When false a missing file yields defaults.
	Required bool
	// Environ replaces the process environment and .env files when non-nil (tests).
	Environ env.Vars
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: logging.LevelInfo.String(),
		Speed:    state.SpeedNormal.String(),
		Random:   input.DefaultRandomOptions(),
	}
}

// Load reads path, renders it as a template, applies PATIENCEVIZ_* overrides and validates
// the result.
func Load(path string, opts LoadOptions) (*Config, error) {
	cfg := Default()
	baseDir := "."
	var raw []byte

	if strings.TrimSpace(path) != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		raw, err = os.ReadFile(absPath)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !opts.Required:
			raw = nil
		case err != nil:
			return nil, fmt.Errorf("read config %q: %w", absPath, err)
		default:
			baseDir = filepath.Dir(absPath)
		}
	}

	var header rawHeader
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("parse top-level config fields: %w", err)
	}

	vars := opts.Environ
	if vars == nil {
		resolved, err := env.Resolve(baseDir, header.EnvFiles)
		if err != nil {
			return nil, err
		}
		vars = resolved
	}

	if len(bytes.TrimSpace(raw)) > 0 {
		rendered, err := RenderTemplate(DefaultPath, raw, vars)
		if err != nil {
			return nil, err
		}
		if err := decodeStrict(rendered, cfg); err != nil {
			return nil, fmt.Errorf("parse rendered config: %w", err)
		}
	}

	if err := cfg.applyEnv(vars); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeStrict unmarshals YAML rejecting unknown fields.
func decodeStrict(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(vars env.Vars) error {
	var o overrides
	if err := envparse.ParseWithOptions(&o, envparse.Options{Environment: vars.WithPrefix("PATIENCEVIZ_")}); err != nil {
		return fmt.Errorf("parse PATIENCEVIZ_* environment: %w", err)
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Speed != "" {
		c.Speed = o.Speed
	}
	if strings.TrimSpace(o.Array) != "" {
		values, err := input.Parse(o.Array)
		if err != nil {
			return fmt.Errorf("PATIENCEVIZ_ARRAY: %w", err)
		}
		c.Array = values
	}
	return nil
}

// Validate checks every field and fills defaults for the random bounds.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevelStrict(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	if _, err := c.SpeedLevel(); err != nil {
		return fmt.Errorf("speed: %w", err)
	}
	if _, err := c.DelayTable(); err != nil {
		return err
	}
	random, err := c.Random.Normalize()
	if err != nil {
		return err
	}
	c.Random = random
	if len(c.Array) > 0 {
		if err := input.Validate(c.Array); err != nil {
			return fmt.Errorf("array: %w", err)
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// SpeedLevel returns the parsed speed; an empty value is normal.
func (c *Config) SpeedLevel() (state.Speed, error) {
	if strings.TrimSpace(c.Speed) == "" {
		return state.SpeedNormal, nil
	}
	return state.ParseSpeed(c.Speed)
}

// DelayTable parses the configured delays.
func (c *Config) DelayTable() (state.Delays, error) {
	var d state.Delays
	for _, item := range []struct {
		name  string
		value string
		out   *time.Duration
	}{
		{"delays.slow", c.Delays.Slow, &d.Slow},
		{"delays.normal", c.Delays.Normal, &d.Normal},
		{"delays.fast", c.Delays.Fast, &d.Fast},
	} {
		if strings.TrimSpace(item.value) == "" {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(item.value))
		if err != nil {
			return state.Delays{}, fmt.Errorf("%s: %w", item.name, err)
		}
		if parsed <= 0 {
			return state.Delays{}, fmt.Errorf("%s must be positive, got %s", item.name, item.value)
		}
		*item.out = parsed
	}
	return d, nil
}

// RenderTemplate renders configuration text with the template helpers.
func RenderTemplate(name string, raw []byte, vars env.Vars) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(buildFuncMap(vars)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"Env": vars}); err != nil {
		return nil, fmt.Errorf("execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// buildFuncMap constructs the template functions available in patienceviz.yaml.
func buildFuncMap(vars env.Vars) template.FuncMap {
	return template.FuncMap{
		"default": funcDef,
		"envOr":   funcEnvOr(vars),
		"toLower": strings.ToLower,
	}
}

// funcDef returns def when value is empty or whitespace, otherwise value.
func funcDef(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// funcEnvOr returns a function that looks up a key in vars and falls back to def.
func funcEnvOr(vars env.Vars) func(key, def string) string {
	return func(key, def string) string {
		if v, ok := vars[key]; ok && v != "" {
			return v
		}
		return def
	}
}
