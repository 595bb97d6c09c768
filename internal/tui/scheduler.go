package tui

import (
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg delivers a scheduled controller tick on the UI loop.
type tickMsg struct {
	id uint64
}

type pendingTick struct {
	id    uint64
	delay time.Duration
}

// teaScheduler implements controller.Scheduler on top of tea.Tick. Schedule only records
// the request; the model drains new requests into commands after each Update, and the
// callback runs when the matching tickMsg comes back through Update.
type teaScheduler struct {
	mu      sync.Mutex
	nextID  uint64
	pending []pendingTick
	live    map[uint64]func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[uint64]func())}
}

// Schedule implements controller.Scheduler.
func (s *teaScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.live[id] = fn
	s.pending = append(s.pending, pendingTick{id: id, delay: delay})
	return func() {
		s.mu.Lock()
		delete(s.live, id)
		s.mu.Unlock()
	}
}

// drain converts the ticks scheduled since the last call into commands.
func (s *teaScheduler) drain() tea.Cmd {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, p := range pending {
		id := p.id
		cmds = append(cmds, tea.Tick(p.delay, func(time.Time) tea.Msg {
			return tickMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

// fire runs the callback for id unless it was cancelled or already ran.
func (s *teaScheduler) fire(id uint64) bool {
	s.mu.Lock()
	fn, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

// liveIDs returns the outstanding tick ids in scheduling order.
func (s *teaScheduler) liveIDs() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
