package tui

import (
	"log/slog"

	"github.com/codex-k8s/patienceviz/internal/hooks"
)

const historySize = 5

// feed is the presenter wired into the controller. It keeps the most recent events for the
// status history; the view reads everything else from controller snapshots.
type feed struct {
	logger  *slog.Logger
	history []hooks.Event
}

func (f *feed) Present(ev hooks.Event) {
	f.history = append(f.history, ev)
	if len(f.history) > historySize {
		f.history = f.history[len(f.history)-historySize:]
	}
	f.logger.Debug("ui event", "kind", ev.Kind, "seq", ev.Snapshot.Seq, "phase", ev.Snapshot.Phase)
}
