package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codex-k8s/patienceviz/internal/hooks"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// View implements tea.Model.
func (m Model) View() string {
	snap := m.ctrl.Snapshot()

	sections := []string{
		titleStyle.Render("Patience Sort Visualizer"),
		m.renderInputRow(snap),
		m.renderPiles(snap),
		m.renderSortedRow(snap),
		m.renderCode(snap),
		m.renderStatus(snap),
	}
	if m.editing {
		sections = append(sections, m.editor.View())
	}
	if m.inputErr != "" {
		sections = append(sections, errorStyle.Render(m.inputErr))
	}
	if m.editing {
		sections = append(sections, m.help.View(editorKeyMap{keys: m.keys}))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderInputRow(snap state.Snapshot) string {
	if !snap.HasArray() {
		return labelStyle.Render("input") + noticeStyle.Render("no array set")
	}
	active := -1
	switch snap.Phase {
	case state.PhaseHighlight, state.PhaseFindPile, state.PhasePlace:
		active = snap.State.CurrentIndex
	}
	cells := make([]string, len(snap.Input))
	for i, v := range snap.Input {
		style := cellStyle
		switch {
		case i == active:
			style = currentCellStyle
		case i < snap.State.CurrentIndex:
			style = placedCellStyle
		}
		cells[i] = style.Render(strconv.Itoa(v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("input"), strings.Join(cells, ""))
}

func (m Model) renderPiles(snap state.Snapshot) string {
	if len(snap.Piles) == 0 {
		return labelStyle.Render("piles") + historyStyle.Render("(empty)")
	}
	target := -1
	if snap.Phase == state.PhaseFindPile || snap.Phase == state.PhasePlace {
		target = snap.State.TargetPile
	}
	cols := make([]string, 0, len(snap.Piles))
	for i, pile := range snap.Piles {
		lines := make([]string, 0, len(pile)+1)
		lines = append(lines, historyStyle.Render(fmt.Sprintf("P%d", i+1)))
		for j, v := range pile {
			text := strconv.Itoa(v)
			if j == len(pile)-1 {
				text = pileTopStyle.Render(text)
			}
			lines = append(lines, text)
		}
		style := pileStyle
		if i == target {
			style = targetPileStyle
		}
		cols = append(cols, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("piles"), lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func (m Model) renderSortedRow(snap state.Snapshot) string {
	if len(snap.Sorted) == 0 {
		return ""
	}
	cells := make([]string, len(snap.Sorted))
	for i, v := range snap.Sorted {
		cells[i] = sortedCellStyle.Render(strconv.Itoa(v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("sorted"), strings.Join(cells, ""))
}

func (m Model) renderCode(snap state.Snapshot) string {
	lines := make([]string, len(state.Listing))
	for i, text := range state.Listing {
		line := fmt.Sprintf("%2d  %s", i+1, strings.ReplaceAll(text, "\t", "  "))
		if i == snap.CodeLine {
			lines[i] = codeActiveStyle.Render(line)
		} else {
			lines[i] = codeLineStyle.Render(line)
		}
	}
	return codeStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus(snap state.Snapshot) string {
	run := snap.State
	mode := "idle"
	switch {
	case run.ShowSorted:
		mode = "done"
	case run.Running && run.Paused:
		mode = "paused"
	case run.Running:
		mode = "running"
	case run.Completed:
		mode = "piles built"
	}
	flags := flagStyle.Render(fmt.Sprintf("[%s | speed %s | %d/%d placed]", mode, snap.Speed, run.CurrentIndex, len(snap.Input)))
	rows := []string{flags + " " + statusStyle.Render(snap.Status)}

	for i := 0; i < len(m.feed.history)-1; i++ {
		ev := m.feed.history[i]
		style := historyStyle
		if ev.Kind == hooks.KindNotice {
			style = noticeStyle
		}
		rows = append(rows, style.Render("  "+ev.Status))
	}
	return strings.Join(rows, "\n")
}
