package controller

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/patienceviz/internal/engine"
	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/input"
	"github.com/codex-k8s/patienceviz/internal/state"
)

var sample = []int{5, 3, 8, 2, 9, 1, 7, 4, 6, 10}

// manualScheduler queues scheduled calls until the test fires them.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*scheduledCall
}

type scheduledCall struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (s *manualScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	call := &scheduledCall{delay: delay, fn: fn}
	s.pending = append(s.pending, call)
	return func() {
		s.mu.Lock()
		call.cancelled = true
		s.mu.Unlock()
	}
}

// take removes and returns the queued calls.
func (s *manualScheduler) take() []*scheduledCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := s.pending
	s.pending = nil
	return calls
}

// fire runs every queued call that was not cancelled and returns how many ran.
func (s *manualScheduler) fire() int {
	n := 0
	for _, call := range s.take() {
		s.mu.Lock()
		cancelled := call.cancelled
		s.mu.Unlock()
		if !cancelled {
			call.fn()
			n++
		}
	}
	return n
}

// fireAll runs every queued call, cancelled or not, as a timer that raced its cancellation would.
func (s *manualScheduler) fireAll() int {
	calls := s.take()
	for _, call := range calls {
		call.fn()
	}
	return len(calls)
}

func (s *manualScheduler) lastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return 0
	}
	return s.pending[len(s.pending)-1].delay
}

func newTestController(t *testing.T) (*Controller, *manualScheduler, *hooks.Recorder) {
	t.Helper()
	sched := &manualScheduler{}
	rec := hooks.NewRecorder()
	c := New(Options{
		Scheduler: sched,
		Presenter: rec,
		NewRunID:  func() string { return "run-1" },
	})
	return c, sched, rec
}

func countKind(events []hooks.Event, kind hooks.Kind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestAdvanceWithoutArrayIsNoop(t *testing.T) {
	c, _, rec := newTestController(t)

	assert.False(t, c.Advance())
	snap := c.Snapshot()
	assert.Equal(t, state.EmptyRunState(), snap.State)
	assert.Equal(t, state.PhaseIdle, snap.Phase)
	assert.Equal(t, statusNoArray, snap.Status)
	assert.Equal(t, []hooks.Kind{hooks.KindNotice}, rec.Kinds())

	assert.ErrorIs(t, c.Start(), ErrNoArray)
	assert.False(t, c.Snapshot().State.Running)
}

func TestSetArrayRejectsInvalidInputWithoutMutation(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	require.True(t, c.Advance())
	before := c.Snapshot()
	rec.Clear()

	err := c.SetArray([]int{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.True(t, input.IsValidationError(err))
	err = c.SetArray([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0})
	require.True(t, input.IsValidationError(err))

	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Fatalf("snapshot changed after rejected input (-before +after):\n%s", diff)
	}
	assert.Empty(t, rec.Events())
}

func TestSetArrayMintsRunID(t *testing.T) {
	ids := []string{"a", "b"}
	c := New(Options{Scheduler: &manualScheduler{}, NewRunID: func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}})
	require.NoError(t, c.SetArray(sample))
	assert.Equal(t, "a", c.Snapshot().RunID)
	c.Reset()
	assert.Equal(t, "a", c.Snapshot().RunID)
	require.NoError(t, c.SetArray(sample))
	assert.Equal(t, "b", c.Snapshot().RunID)
}

func TestManualSteppingFollowsPhaseCycle(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))

	require.True(t, c.Advance())
	snap := c.Snapshot()
	assert.Equal(t, state.PhaseFindPile, snap.Phase)
	assert.Equal(t, 5, snap.State.CurrentElement)
	assert.Equal(t, 0, snap.State.CurrentIndex)
	assert.Equal(t, "Step 1/10: Processing element 5", snap.Status)
	assert.Equal(t, state.LineSearch, snap.CodeLine)

	require.True(t, c.Advance())
	snap = c.Snapshot()
	assert.Equal(t, state.PhasePlace, snap.Phase)
	assert.Equal(t, -1, snap.State.TargetPile)
	assert.Equal(t, "No suitable pile found for 5. Creating new pile.", snap.Status)
	assert.Equal(t, state.LineBranch, snap.CodeLine)

	require.True(t, c.Advance())
	snap = c.Snapshot()
	assert.Equal(t, state.PhaseHighlight, snap.Phase)
	assert.Equal(t, 1, snap.State.CurrentIndex)
	assert.Equal(t, [][]int{{5}}, snap.Piles)
	assert.Equal(t, state.LineNewPile, snap.CodeLine)

	// Element 3 lands on pile 1.
	c.Advance()
	c.Advance()
	snap = c.Snapshot()
	assert.Equal(t, 0, snap.State.TargetPile)
	assert.Equal(t, "Found suitable pile 1 for element 3.", snap.Status)
	c.Advance()
	assert.Equal(t, [][]int{{5, 3}}, c.Snapshot().Piles)
	assert.Equal(t, state.LineAppend, c.Snapshot().CodeLine)

	assert.Equal(t, 6, countKind(rec.Events(), hooks.KindStep))
}

func TestFullManualRun(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))

	steps := 0
	for !c.Snapshot().State.Completed {
		require.True(t, c.Advance())
		steps++
		require.Less(t, steps, 100)
	}
	assert.Equal(t, 3*len(sample), steps)

	snap := c.Snapshot()
	assert.Equal(t, state.PhaseIdle, snap.Phase)
	assert.False(t, snap.State.ShowSorted)
	assert.Nil(t, snap.Sorted)
	assert.Equal(t, len(sample), snap.State.CurrentIndex)
	assert.Equal(t, [][]int{{5, 3, 2, 1}, {8, 7, 4}, {9, 6}, {10}}, snap.Piles)
	last, _ := rec.Last()
	assert.Equal(t, hooks.KindPhase1Complete, last.Kind)

	require.True(t, c.Advance())
	snap = c.Snapshot()
	assert.True(t, snap.State.ShowSorted)
	assert.Equal(t, state.PhaseIdle, snap.Phase)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, snap.Sorted)
	assert.Equal(t, [][]int{{5, 3, 2, 1}, {8, 7, 4}, {9, 6}, {10}}, snap.Piles, "piles stay inspectable")

	events := rec.Events()
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, hooks.KindReconstructing, events[len(events)-2].Kind)
	assert.Equal(t, state.PhaseReconstruct, events[len(events)-2].Snapshot.Phase)
	assert.Equal(t, hooks.KindReconstructed, events[len(events)-1].Kind)
}

func TestTerminalStability(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray([]int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4}))
	for c.Advance() {
	}
	final := c.Snapshot()
	require.True(t, final.State.ShowSorted)
	assert.Equal(t, [][]int{{4, 4, 4, 4, 4, 4, 4, 4, 4, 4}}, final.Piles)
	assert.Equal(t, []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, final.Sorted)

	n := len(rec.Events())
	for i := 0; i < 5; i++ {
		assert.False(t, c.Advance())
	}
	if diff := cmp.Diff(final, c.Snapshot()); diff != "" {
		t.Fatalf("terminal snapshot changed (-want +got):\n%s", diff)
	}
	assert.Len(t, rec.Events(), n)
}

func TestPileInvariantHoldsInEveryEvent(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray([]int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7}))
	for c.Advance() {
	}
	for _, ev := range rec.Events() {
		piles := make(engine.Piles, len(ev.Snapshot.Piles))
		for i, p := range ev.Snapshot.Piles {
			piles[i] = engine.Pile(p)
		}
		require.True(t, engine.Monotone(piles), "event %d: %v", ev.Snapshot.Seq, ev.Snapshot.Piles)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	ignoreSeq := cmpopts.IgnoreFields(state.Snapshot{}, "Seq")

	c, _, _ := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	c.Reset()
	reference := c.Snapshot()
	assert.Equal(t, state.EmptyRunState(), reference.State)
	assert.Empty(t, reference.Piles)
	assert.Nil(t, reference.Sorted)
	assert.Equal(t, sample, reference.Input)

	for _, steps := range []int{0, 1, 2, 3, 17, 30, 31, 40} {
		for i := 0; i < steps; i++ {
			c.Advance()
		}
		c.Reset()
		c.Reset()
		if diff := cmp.Diff(reference, c.Snapshot(), ignoreSeq); diff != "" {
			t.Fatalf("reset after %d steps differs (-want +got):\n%s", steps, diff)
		}
	}
}

func TestAutoRunToCompletion(t *testing.T) {
	c, sched, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	require.NoError(t, c.Start())

	snap := c.Snapshot()
	assert.True(t, snap.State.Running)
	assert.Equal(t, state.PhaseFindPile, snap.Phase, "start performs the first step immediately")
	assert.Equal(t, 1500*time.Millisecond, sched.lastDelay())

	ticks := 0
	for sched.fire() > 0 {
		ticks++
		require.Less(t, ticks, 100)
	}

	snap = c.Snapshot()
	assert.True(t, snap.State.ShowSorted)
	assert.False(t, snap.State.Running)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, snap.Sorted)
	// One immediate step plus 29 ticks build the piles, one more tick reconstructs.
	assert.Equal(t, 3*len(sample), ticks)
	assert.Equal(t, 1, countKind(rec.Events(), hooks.KindReconstructed))
	assert.Equal(t, 0, sched.fire(), "loop stops after reconstruction")
}

func TestStaleTickAfterResetIsIgnored(t *testing.T) {
	c, sched, _ := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	require.NoError(t, c.Start())
	c.Reset()
	want := c.Snapshot()

	require.Equal(t, 1, sched.fireAll())
	assert.Equal(t, want, c.Snapshot())
}

func TestPauseResumeDoesNotDoubleStep(t *testing.T) {
	c, sched, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	require.NoError(t, c.Start())
	require.True(t, c.Pause())
	assert.True(t, c.Snapshot().State.Paused)
	assert.False(t, c.Pause(), "already paused")

	require.True(t, c.Resume())
	assert.False(t, c.Snapshot().State.Paused)
	assert.Equal(t, state.PhasePlace, c.Snapshot().Phase, "resume steps immediately")

	// The tick queued before the pause must not run; only the fresh one may.
	steps := countKind(rec.Events(), hooks.KindStep)
	sched.fireAll()
	assert.Equal(t, steps+1, countKind(rec.Events(), hooks.KindStep))
	assert.Equal(t, state.PhaseHighlight, c.Snapshot().Phase)
}

func TestPausedRunIgnoresTicks(t *testing.T) {
	c, sched, _ := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	require.NoError(t, c.Start())
	require.True(t, c.TogglePause())
	before := c.Snapshot()
	sched.fireAll()
	assert.Equal(t, before, c.Snapshot())

	// Manual stepping still works while paused.
	require.True(t, c.Advance())
	assert.True(t, c.Snapshot().State.Paused)

	require.True(t, c.TogglePause())
	assert.False(t, c.Snapshot().State.Paused)
}

func TestPauseResumeGuards(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.False(t, c.Pause())
	assert.False(t, c.Resume())

	require.NoError(t, c.SetArray(sample))
	assert.False(t, c.Pause(), "not running")
	assert.False(t, c.Resume(), "not running")

	require.NoError(t, c.Start())
	assert.False(t, c.Resume(), "not paused")
	for !c.Snapshot().State.Completed {
		c.Advance()
	}
	assert.False(t, c.Pause(), "completed")
}

func TestStartResumesPausedRun(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	require.NoError(t, c.Start())
	require.True(t, c.Pause())
	require.NoError(t, c.Start())
	assert.False(t, c.Snapshot().State.Paused)
	assert.Equal(t, 1, countKind(rec.Events(), hooks.KindResumed))
	assert.Equal(t, 1, countKind(rec.Events(), hooks.KindStarted))
}

func TestStartAfterManualPhaseOneReconstructs(t *testing.T) {
	c, sched, _ := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	for !c.Snapshot().State.Completed {
		c.Advance()
	}
	require.NoError(t, c.Start())
	snap := c.Snapshot()
	assert.True(t, snap.State.ShowSorted)
	assert.False(t, snap.State.Running)
	assert.Equal(t, 0, sched.fire())

	rec := hooks.NewRecorder()
	c.presenter = rec
	require.NoError(t, c.Start())
	assert.Equal(t, []hooks.Kind{hooks.KindNotice}, rec.Kinds())
}

func TestSetSpeedChangesNextDelay(t *testing.T) {
	sched := &manualScheduler{}
	c := New(Options{Scheduler: sched, Delays: state.Delays{Fast: 5 * time.Millisecond}})
	require.NoError(t, c.SetArray(sample))
	c.SetSpeed(state.SpeedFast)
	assert.Equal(t, state.SpeedFast, c.Snapshot().Speed)

	require.NoError(t, c.Start())
	assert.Equal(t, 5*time.Millisecond, sched.lastDelay())

	c.SetSpeed(state.SpeedSlow)
	sched.fire()
	assert.Equal(t, 2500*time.Millisecond, sched.lastDelay())
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	for i := 0; i < 9; i++ {
		c.Advance()
	}
	snap := c.Snapshot()
	snap.Piles[0][0] = 1000
	snap.Input[0] = 1000
	fresh := c.Snapshot()
	assert.Equal(t, 5, fresh.Piles[0][0])
	assert.Equal(t, 5, fresh.Input[0])
}

func TestEventSequenceNumbersIncrease(t *testing.T) {
	c, _, rec := newTestController(t)
	require.NoError(t, c.SetArray(sample))
	for c.Advance() {
	}
	var last uint64
	for _, ev := range rec.Events() {
		require.Greater(t, ev.Snapshot.Seq, last)
		last = ev.Snapshot.Seq
	}
}
