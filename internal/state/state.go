// Package state defines the observable data model of a patience-sort run: phases,
// speed levels, run flags and the read-only snapshots handed to presenters.
package state

import (
	"fmt"
	"strings"
	"time"
)

// Phase identifies the active stage of the step state machine.
type Phase int

const (
	// PhaseIdle is the resting phase before a run, after pile building and after reconstruction.
	PhaseIdle Phase = iota
	// PhaseHighlight selects the next input element.
	PhaseHighlight
	// PhaseFindPile searches the piles for the selected element.
	PhaseFindPile
	// PhasePlace puts the element on its pile.
	PhasePlace
	// PhaseReconstruct merges the piles into the sorted result.
	PhaseReconstruct
)

var phaseNames = [...]string{"idle", "highlight", "find_pile", "place", "reconstruct"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Speed is the auto-run pace. The zero value is unset and behaves as SpeedNormal.
type Speed int

const (
	// SpeedSlow waits longest between steps.
	SpeedSlow Speed = iota + 1
	// SpeedNormal is the default pace.
	SpeedNormal
	// SpeedFast waits the shortest time between steps.
	SpeedFast
)

var speedNames = [...]string{"slow", "normal", "fast"}

func (s Speed) String() string {
	if s < SpeedSlow || s > SpeedFast {
		return fmt.Sprintf("speed(%d)", int(s))
	}
	return speedNames[s-1]
}

// MarshalText encodes the speed by name.
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Next cycles slow -> normal -> fast -> slow.
func (s Speed) Next() Speed {
	if s < SpeedSlow || s >= SpeedFast {
		return SpeedSlow
	}
	return s + 1
}

// ParseSpeed converts a case-insensitive speed name into a Speed.
func ParseSpeed(value string) (Speed, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for i, name := range speedNames {
		if v == name {
			return Speed(i + 1), nil
		}
	}
	return SpeedNormal, fmt.Errorf("unknown speed %q (expected slow, normal or fast)", value)
}

// Delays maps each speed level to the pause between auto-run steps.
type Delays struct {
	Slow   time.Duration
	Normal time.Duration
	Fast   time.Duration
}

// DefaultDelays returns 2.5s, 1.5s and 0.8s.
func DefaultDelays() Delays {
	return Delays{
		Slow:   2500 * time.Millisecond,
		Normal: 1500 * time.Millisecond,
		Fast:   800 * time.Millisecond,
	}
}

// For returns the delay configured for s, falling back to the defaults for unset values.
func (d Delays) For(s Speed) time.Duration {
	def := DefaultDelays()
	pick := func(v, fallback time.Duration) time.Duration {
		if v > 0 {
			return v
		}
		return fallback
	}
	switch s {
	case SpeedSlow:
		return pick(d.Slow, def.Slow)
	case SpeedFast:
		return pick(d.Fast, def.Fast)
	default:
		return pick(d.Normal, def.Normal)
	}
}

// RunState holds the progress counters and flags of a run.
type RunState struct {
	// CurrentIndex is the number of elements already placed.
	CurrentIndex int `yaml:"currentIndex"`
	// CurrentElement is the element under inspection.
	CurrentElement int `yaml:"currentElement"`
	// TargetPile is the pile chosen for CurrentElement, or -1.
	TargetPile int `yaml:"targetPile"`
	Running    bool `yaml:"running"`
	Paused     bool `yaml:"paused"`
	// Completed is set once every element has been placed.
	Completed bool `yaml:"completed"`
	// ShowSorted is set once the sorted result has been reconstructed.
	ShowSorted bool `yaml:"showSorted"`
}

// EmptyRunState is the state after a reset.
func EmptyRunState() RunState {
	return RunState{TargetPile: -1}
}

// Snapshot is a read-only copy of everything a presenter may display.
// Slices are owned by the snapshot; changing them does not affect the run.
type Snapshot struct {
	// Seq increases with every emitted event.
	Seq uint64 `yaml:"seq"`
	// RunID identifies the array the run was started from; empty before SetArray.
	RunID    string   `yaml:"runId,omitempty"`
	Phase    Phase    `yaml:"phase"`
	State    RunState `yaml:"state"`
	Input    []int    `yaml:"input,flow"`
	Piles    [][]int  `yaml:"piles,flow"`
	Sorted   []int    `yaml:"sorted,flow,omitempty"`
	Speed    Speed    `yaml:"speed"`
	Status   string   `yaml:"status"`
	CodeLine int      `yaml:"codeLine"`
}

// HasArray reports whether an input sequence is loaded.
func (s Snapshot) HasArray() bool {
	return len(s.Input) > 0
}

// Terminal reports whether the run has reconstructed its result.
func (s Snapshot) Terminal() bool {
	return s.State.ShowSorted
}
