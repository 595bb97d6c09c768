package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// traceStep is the YAML shape of one recorded event.
type traceStep struct {
	Step     int            `yaml:"step"`
	Event    hooks.Kind     `yaml:"event"`
	Snapshot state.Snapshot `yaml:"snapshot"`
}

// WriteTraceYAML encodes events as a YAML sequence of steps.
func WriteTraceYAML(w io.Writer, events []hooks.Event) error {
	steps := make([]traceStep, len(events))
	for i, ev := range events {
		steps[i] = traceStep{Step: i + 1, Event: ev.Kind, Snapshot: ev.Snapshot}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(steps); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize trace: %w", err)
	}
	return nil
}
