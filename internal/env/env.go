// Package env loads environment variables from the process and from .env files.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Vars is a set of environment variables.
type Vars map[string]string

// FromOS returns the current process environment.
func FromOS() Vars {
	out := make(Vars)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}

// Merge combines sets; keys in later sets win.
func Merge(sets ...Vars) Vars {
	out := make(Vars)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// WithPrefix returns only the variables whose name starts with prefix.
func (v Vars) WithPrefix(prefix string) Vars {
	out := make(Vars)
	for k, val := range v {
		if strings.HasPrefix(k, prefix) {
			out[k] = val
		}
	}
	return out
}

// LoadFile parses a single .env file.
func LoadFile(path string) (Vars, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	parsed, err := godotenv.Parse(f)
	if err != nil {
		return nil, err
	}
	return Vars(parsed), nil
}

// LoadFiles parses .env files relative to baseDir and merges them in order.
// Missing files are an error; empty names are skipped.
func LoadFiles(baseDir string, files []string) (Vars, error) {
	result := make(Vars)
	for _, name := range files {
		if strings.TrimSpace(name) == "" {
			continue
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, name)
		}
		vars, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load env file %q: %w", path, err)
		}
		result = Merge(result, vars)
	}
	return result, nil
}

// Resolve returns the variables visible to configuration: .env files first,
// overridden by the process environment.
func Resolve(baseDir string, files []string) (Vars, error) {
	fileVars, err := LoadFiles(baseDir, files)
	if err != nil {
		return nil, err
	}
	return Merge(fileVars, FromOS()), nil
}
