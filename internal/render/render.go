// Package render turns controller events into terminal text for the headless commands:
// colored status lines, pile tables and step traces.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// PrinterOptions configures a StatusPrinter.
type PrinterOptions struct {
	// NoColor disables ANSI colors.
	NoColor bool
	// ShowPiles prints the pile table after every placement and at the end.
	ShowPiles bool
}

// StatusPrinter is a hooks.Presenter that writes one line per event.
type StatusPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	opts PrinterOptions
}

// NewStatusPrinter constructs a StatusPrinter writing to w.
func NewStatusPrinter(w io.Writer, opts PrinterOptions) *StatusPrinter {
	return &StatusPrinter{w: w, opts: opts}
}

// Present implements hooks.Presenter.
func (p *StatusPrinter) Present(ev hooks.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := colorFor(ev.Kind)
	if p.opts.NoColor {
		c.DisableColor()
	}
	_, _ = c.Fprintf(p.w, "%-12s %s\n", "["+ev.Snapshot.Phase.String()+"]", ev.Status)

	if !p.opts.ShowPiles {
		return
	}
	switch ev.Kind {
	case hooks.KindPhase1Complete, hooks.KindReconstructed:
		_, _ = fmt.Fprintln(p.w, PilesTable(ev.Snapshot))
	case hooks.KindStep:
		if ev.Snapshot.Phase == state.PhaseHighlight {
			_, _ = fmt.Fprintln(p.w, PilesTable(ev.Snapshot))
		}
	}
	if ev.Kind == hooks.KindReconstructed {
		_, _ = fmt.Fprintf(p.w, "sorted: %s\n", FormatInts(ev.Snapshot.Sorted))
	}
}

func colorFor(kind hooks.Kind) *color.Color {
	switch kind {
	case hooks.KindReconstructed:
		return color.New(color.FgGreen, color.Bold)
	case hooks.KindPhase1Complete, hooks.KindReconstructing:
		return color.New(color.FgMagenta)
	case hooks.KindNotice:
		return color.New(color.FgYellow)
	case hooks.KindPaused, hooks.KindResumed, hooks.KindSpeedChanged:
		return color.New(color.FgBlue)
	case hooks.KindStep:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Reset)
	}
}

// PilesTable renders the piles as columns, bottom row first, with the sorted result as a
// footer once available.
func PilesTable(snap state.Snapshot) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if len(snap.Piles) == 0 {
		t.AppendHeader(table.Row{"piles"})
		t.AppendRow(table.Row{"(none)"})
		return t.Render()
	}

	header := make(table.Row, len(snap.Piles))
	height := 0
	for i, p := range snap.Piles {
		header[i] = "Pile " + strconv.Itoa(i+1)
		height = max(height, len(p))
	}
	t.AppendHeader(header)
	for level := 0; level < height; level++ {
		row := make(table.Row, len(snap.Piles))
		for i, p := range snap.Piles {
			if level < len(p) {
				row[i] = p[level]
			} else {
				row[i] = ""
			}
		}
		t.AppendRow(row)
	}
	return t.Render()
}

// TraceTable renders one row per event.
func TraceTable(events []hooks.Event) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Event", "Phase", "Index", "Element", "Target", "Piles", "Status"})
	for i, ev := range events {
		s := ev.Snapshot
		target := "-"
		if s.State.TargetPile >= 0 {
			target = strconv.Itoa(s.State.TargetPile + 1)
		}
		t.AppendRow(table.Row{
			i + 1,
			string(ev.Kind),
			s.Phase.String(),
			s.State.CurrentIndex,
			s.State.CurrentElement,
			target,
			FormatPiles(s.Piles),
			ev.Status,
		})
	}
	if n := len(events); n > 0 {
		if sorted := events[n-1].Snapshot.Sorted; sorted != nil {
			t.AppendFooter(table.Row{"", "", "", "", "", "", "sorted", FormatInts(sorted)})
		}
	}
	return t.Render()
}

// FormatInts renders values as "1 2 3".
func FormatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// FormatPiles renders piles as "[5 3] [8]".
func FormatPiles(piles [][]int) string {
	parts := make([]string, len(piles))
	for i, p := range piles {
		parts[i] = "[" + FormatInts(p) + "]"
	}
	return strings.Join(parts, " ")
}
