// Package controller sequences the patience-sort engine into discrete, observable steps.
// It owns the run state, drives the auto-play loop through a Scheduler and reports every
// transition to a hooks.Presenter.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/codex-k8s/patienceviz/internal/engine"
	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/input"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// ErrNoArray is returned by Start when no input sequence has been set.
var ErrNoArray = errors.New("no array set")

const (
	statusReady    = "Ready to start! Enter an array (min 10 elements) and set it to begin."
	statusNoArray  = "Please set an array first!"
	statusFinished = "Algorithm already complete. Reset to run it again."
)

// Options configures a Controller. Zero values select defaults.
type Options struct {
	// Scheduler drives the auto-run loop; TimerScheduler when nil.
	Scheduler Scheduler
	// Presenter receives every event; hooks.Discard when nil.
	Presenter hooks.Presenter
	// Logger receives debug traces of each transition.
	Logger *slog.Logger
	// Delays maps speed levels to auto-run delays.
	Delays state.Delays
	// Speed is the initial speed level.
	Speed state.Speed
	// NewRunID mints run identifiers; uuid.NewString when nil.
	NewRunID func() string
}

// Controller is the single sequencing authority of a run. All methods are safe for
// concurrent use; presenter events are delivered after the internal lock is released,
// in emission order.
type Controller struct {
	mu         sync.Mutex
	dispatchMu sync.Mutex

	engine    *engine.Engine
	scheduler Scheduler
	presenter hooks.Presenter
	logger    *slog.Logger
	delays    state.Delays
	newRunID  func() string

	runID     string
	phase     state.Phase
	speed     state.Speed
	running   bool
	paused    bool
	completed bool
	status    string
	codeLine  int

	// generation invalidates scheduled ticks; cancel stops the pending one.
	generation uint64
	cancel     func()

	seq    uint64
	outbox []hooks.Event
}

// New constructs an idle Controller with no array.
func New(opts Options) *Controller {
	c := &Controller{
		engine:    engine.New(),
		scheduler: opts.Scheduler,
		presenter: opts.Presenter,
		logger:    opts.Logger,
		delays:    opts.Delays,
		newRunID:  opts.NewRunID,
		speed:     opts.Speed,
		status:    statusReady,
		codeLine:  state.LineNone,
	}
	if c.speed == 0 {
		c.speed = state.SpeedNormal
	}
	if c.scheduler == nil {
		c.scheduler = TimerScheduler{}
	}
	if c.presenter == nil {
		c.presenter = hooks.Discard
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.newRunID == nil {
		c.newRunID = uuid.NewString
	}
	return c
}

// SetArray validates values and, when valid, loads them and resets the run.
// On a validation error nothing changes and a *input.ValidationError is returned.
func (c *Controller) SetArray(values []int) error {
	if err := input.Validate(values); err != nil {
		return err
	}
	c.locked(func() {
		c.stopLoopLocked()
		c.engine.Load(values)
		c.clearFlagsLocked()
		c.runID = c.newRunID()
		c.logger.Info("array set", "run_id", c.runID, "elements", len(values))
		c.emitLocked(hooks.KindArraySet,
			fmt.Sprintf("Array set successfully! %d elements ready for sorting.", len(values)), state.LineNone)
	})
	return nil
}

// Start begins auto-play, resumes a paused run, or schedules the pending reconstruction.
// It returns ErrNoArray, after emitting a notice, when no array is set.
func (c *Controller) Start() error {
	var err error
	c.locked(func() {
		switch {
		case !c.engine.Loaded():
			c.emitLocked(hooks.KindNotice, statusNoArray, c.codeLine)
			err = ErrNoArray
		case c.engine.Reconstructed():
			c.emitLocked(hooks.KindNotice, statusFinished, c.codeLine)
		case c.running && c.paused:
			c.resumeLocked()
		case c.running:
		default:
			c.running = true
			c.paused = false
			if c.phase == state.PhaseIdle && !c.completed {
				c.phase = state.PhaseHighlight
			}
			c.logger.Debug("auto-run started", "run_id", c.runID, "speed", c.speed.String())
			c.emitLocked(hooks.KindStarted, fmt.Sprintf("Auto-run started at %s speed.", c.speed), state.LineLoop)
			c.tickLocked()
		}
	})
	return err
}

// Pause suspends auto-play. It reports whether the run was paused.
func (c *Controller) Pause() bool {
	var ok bool
	c.locked(func() { ok = c.pauseLocked() })
	return ok
}

// Resume continues a paused auto-play with an immediate step. It reports whether the run resumed.
func (c *Controller) Resume() bool {
	var ok bool
	c.locked(func() { ok = c.resumeLocked() })
	return ok
}

// TogglePause pauses a running run or resumes a paused one.
func (c *Controller) TogglePause() bool {
	var ok bool
	c.locked(func() {
		if c.paused {
			ok = c.resumeLocked()
		} else {
			ok = c.pauseLocked()
		}
	})
	return ok
}

// Reset aborts any pending tick and returns the run to its initial state, keeping the array.
func (c *Controller) Reset() {
	c.locked(func() {
		c.stopLoopLocked()
		c.engine.Reset()
		c.clearFlagsLocked()
		status := statusReady
		if c.engine.Loaded() {
			status = fmt.Sprintf("Algorithm reset! Array with %d elements ready. Start to begin.", c.engine.Len())
		}
		c.logger.Debug("run reset", "run_id", c.runID)
		c.emitLocked(hooks.KindReset, status, state.LineNone)
	})
}

// Advance performs one transition of the state machine. It reports whether anything
// changed; requests without an array or after reconstruction are no-ops.
func (c *Controller) Advance() bool {
	var advanced bool
	c.locked(func() { advanced = c.advanceLocked() })
	return advanced
}

// SetSpeed changes the delay used for subsequently scheduled ticks.
func (c *Controller) SetSpeed(s state.Speed) {
	c.locked(func() {
		c.speed = s
		c.emitLocked(hooks.KindSpeedChanged, fmt.Sprintf("Speed set to %s.", s), c.codeLine)
	})
}

// Snapshot returns a read-only copy of the current state.
func (c *Controller) Snapshot() state.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// locked runs fn under the state lock and then dispatches the events it emitted.
func (c *Controller) locked(fn func()) {
	c.mu.Lock()
	fn()
	events := c.outbox
	c.outbox = nil
	// Taking dispatchMu before releasing mu keeps delivery in emission order.
	c.dispatchMu.Lock()
	c.mu.Unlock()
	defer c.dispatchMu.Unlock()
	for _, ev := range events {
		c.presenter.Present(ev)
	}
}

func (c *Controller) advanceLocked() bool {
	if !c.engine.Loaded() {
		c.emitLocked(hooks.KindNotice, statusNoArray, c.codeLine)
		return false
	}
	if c.engine.Reconstructed() {
		return false
	}
	if c.completed {
		c.reconstructLocked()
		return true
	}

	n := c.engine.Len()
	switch c.phase {
	case state.PhaseFindPile:
		target := c.engine.FindPile()
		c.phase = state.PhasePlace
		el := c.engine.Current()
		status := fmt.Sprintf("Found suitable pile %d for element %d.", target+1, el)
		if target == -1 {
			status = fmt.Sprintf("No suitable pile found for %d. Creating new pile.", el)
		}
		c.logger.Debug("pile searched", "run_id", c.runID, "element", el, "target", target)
		c.emitLocked(hooks.KindStep, status, state.LineBranch)

	case state.PhasePlace:
		pl := c.engine.Place()
		line := state.LineAppend
		status := fmt.Sprintf("Placed %d on pile %d.", pl.Element, pl.Pile+1)
		if pl.Created {
			line = state.LineNewPile
			status = fmt.Sprintf("Started pile %d with %d.", pl.Pile+1, pl.Element)
		}
		c.logger.Debug("element placed", "run_id", c.runID, "element", pl.Element, "pile", pl.Pile,
			"created", pl.Created, "index", c.engine.Index(), "monotone", engine.Monotone(c.engine.Piles()))
		if c.engine.Done() {
			c.finishPilesLocked(line)
			return true
		}
		c.phase = state.PhaseHighlight
		c.emitLocked(hooks.KindStep, status, line)

	default:
		el := c.engine.Highlight()
		c.phase = state.PhaseFindPile
		c.logger.Debug("element highlighted", "run_id", c.runID, "index", c.engine.Index(), "element", el)
		c.emitLocked(hooks.KindStep,
			fmt.Sprintf("Step %d/%d: Processing element %d", c.engine.Index()+1, n, el), state.LineSearch)
	}
	return true
}

func (c *Controller) finishPilesLocked(line int) {
	c.completed = true
	c.phase = state.PhaseIdle
	piles := len(c.engine.Piles())
	c.logger.Info("piles built", "run_id", c.runID, "piles", piles)
	c.emitLocked(hooks.KindPhase1Complete,
		fmt.Sprintf("Phase 1 complete! All elements placed in %d piles. Step again to reconstruct the sorted array.", piles),
		line)
}

func (c *Controller) reconstructLocked() {
	c.phase = state.PhaseReconstruct
	c.emitLocked(hooks.KindReconstructing,
		"Reconstructing sorted sequence by taking smallest top elements...", state.LineReturn)

	sorted := c.engine.Reconstruct()
	c.stopLoopLocked()
	c.running = false
	c.paused = false
	c.phase = state.PhaseIdle
	c.logger.Info("sorted result reconstructed", "run_id", c.runID, "elements", len(sorted))
	c.emitLocked(hooks.KindReconstructed,
		"Algorithm complete! Sorted array has been reconstructed from the piles.", state.LineReturn)
}

func (c *Controller) pauseLocked() bool {
	if !c.running || c.completed || c.paused {
		return false
	}
	c.paused = true
	c.stopLoopLocked()
	c.emitLocked(hooks.KindPaused, "Paused. Resume to continue or step manually.", c.codeLine)
	return true
}

func (c *Controller) resumeLocked() bool {
	if !c.running || c.completed || !c.paused {
		return false
	}
	c.paused = false
	c.emitLocked(hooks.KindResumed, "Resumed.", c.codeLine)
	c.tickLocked()
	return true
}

// tickLocked is one iteration of the auto-run loop: advance, then schedule the next tick
// while the run is still going. Reconstruction ends the loop because it clears running.
func (c *Controller) tickLocked() {
	if !c.running || c.paused || c.engine.Reconstructed() {
		return
	}
	c.advanceLocked()
	if c.running && !c.paused && !c.engine.Reconstructed() {
		c.scheduleLocked()
	}
}

func (c *Controller) scheduleLocked() {
	c.stopLoopLocked()
	gen := c.generation
	delay := c.delays.For(c.speed)
	c.cancel = c.scheduler.Schedule(delay, func() {
		c.locked(func() {
			if gen != c.generation {
				return
			}
			c.cancel = nil
			c.tickLocked()
		})
	})
}

func (c *Controller) stopLoopLocked() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) clearFlagsLocked() {
	c.phase = state.PhaseIdle
	c.running = false
	c.paused = false
	c.completed = false
	c.codeLine = state.LineNone
}

func (c *Controller) emitLocked(kind hooks.Kind, status string, line int) {
	c.seq++
	c.status = status
	c.codeLine = line
	c.outbox = append(c.outbox, hooks.Event{
		Kind:     kind,
		Status:   status,
		Snapshot: c.snapshotLocked(),
	})
}

func (c *Controller) snapshotLocked() state.Snapshot {
	return state.Snapshot{
		Seq:   c.seq,
		RunID: c.runID,
		Phase: c.phase,
		State: state.RunState{
			CurrentIndex:   c.engine.Index(),
			CurrentElement: c.engine.Current(),
			TargetPile:     c.engine.Target(),
			Running:        c.running,
			Paused:         c.paused,
			Completed:      c.completed,
			ShowSorted:     c.engine.Reconstructed(),
		},
		Input:    c.engine.Input(),
		Piles:    c.engine.Piles().Ints(),
		Sorted:   c.engine.Sorted(),
		Speed:    c.speed,
		Status:   c.status,
		CodeLine: c.codeLine,
	}
}
