// Package hooks is the boundary between the step controller and whatever renders it.
// Presenters receive one Event per transition and must never call back into the controller
// from Present.
package hooks

import (
	"sync"

	"github.com/codex-k8s/patienceviz/internal/state"
)

// Kind classifies an Event.
type Kind string

const (
	KindArraySet       Kind = "array_set"
	KindStarted        Kind = "started"
	KindStep           Kind = "step"
	KindPhase1Complete Kind = "phase1_complete"
	KindReconstructing Kind = "reconstructing"
	KindReconstructed  Kind = "reconstructed"
	KindPaused         Kind = "paused"
	KindResumed        Kind = "resumed"
	KindReset          Kind = "reset"
	KindSpeedChanged   Kind = "speed_changed"
	// KindNotice carries a status message that did not change the run, such as
	// a step requested before any array was set.
	KindNotice Kind = "notice"
)

// Event is a single notification emitted by the controller.
type Event struct {
	Kind     Kind
	Status   string
	Snapshot state.Snapshot
}

// Presenter renders controller events.
type Presenter interface {
	Present(Event)
}

// Func adapts a plain function to Presenter.
type Func func(Event)

// Present calls f(ev).
func (f Func) Present(ev Event) {
	if f != nil {
		f(ev)
	}
}

// Discard is a Presenter that ignores every event.
var Discard Presenter = Func(nil)

// Fanout forwards each event to every presenter in order.
type Fanout []Presenter

// Present delivers ev to each non-nil presenter.
func (f Fanout) Present(ev Event) {
	for _, p := range f {
		if p != nil {
			p.Present(ev)
		}
	}
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Present appends ev.
func (r *Recorder) Present(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the most recent event and whether there was one.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

// Clear drops the recorded events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
