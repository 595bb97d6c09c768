// Package tui is the interactive terminal front end: a bubbletea program that drives a
// controller.Controller from key presses and renders its snapshots.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codex-k8s/patienceviz/internal/controller"
	"github.com/codex-k8s/patienceviz/internal/input"
	"github.com/codex-k8s/patienceviz/internal/state"
)

// Options configures the interactive UI.
type Options struct {
	// Array is loaded before the program starts when non-empty.
	Array  []int
	Speed  state.Speed
	Delays state.Delays
	Random input.RandomOptions
	// Rand feeds the random array generator; the package generator when nil.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Model is the bubbletea model of the visualizer.
type Model struct {
	ctrl   *controller.Controller
	sched  *teaScheduler
	feed   *feed
	keys   keyMap
	help   help.Model
	editor textinput.Model

	editing  bool
	inputErr string
	random   input.RandomOptions
	rng      *rand.Rand
	logger   *slog.Logger
	width    int
}

// New builds a model around a fresh controller. An invalid opts.Array is reported as an error.
func New(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	random, err := opts.Random.Normalize()
	if err != nil {
		return Model{}, fmt.Errorf("random options: %w", err)
	}

	sched := newTeaScheduler()
	f := &feed{logger: logger}
	ctrl := controller.New(controller.Options{
		Scheduler: sched,
		Presenter: f,
		Logger:    logger,
		Delays:    opts.Delays,
		Speed:     opts.Speed,
	})

	editor := textinput.New()
	editor.Prompt = "array> "
	editor.Placeholder = "5,3,8,2,9,1,7,4,6,10"
	editor.CharLimit = 512

	m := Model{
		ctrl:   ctrl,
		sched:  sched,
		feed:   f,
		keys:   defaultKeyMap(),
		help:   help.New(),
		editor: editor,
		random: random,
		rng:    opts.Rand,
		logger: logger,
	}
	if len(opts.Array) > 0 {
		if err := ctrl.SetArray(opts.Array); err != nil {
			return Model{}, fmt.Errorf("initial array: %w", err)
		}
		m.editor.SetValue(input.Format(opts.Array))
	} else {
		m.editing = true
		m.editor.Focus()
	}
	return m, nil
}

// Controller exposes the controller driven by the model.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.editing {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.editor.Width = max(msg.Width-len(m.editor.Prompt)-1, 10)
	case tickMsg:
		m.sched.fire(msg.id)
	case tea.KeyMsg:
		if m.editing {
			m, cmd = m.updateEditor(msg)
		} else {
			m, cmd = m.handleKey(msg)
		}
	}
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if !m.ctrl.Snapshot().HasArray() {
			return m, nil
		}
		m.editing = false
		m.inputErr = ""
		m.editor.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		values, err := input.Parse(m.editor.Value())
		if err == nil {
			err = m.ctrl.SetArray(values)
		}
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.editing = false
		m.inputErr = ""
		m.editor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Reset()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.inputErr = ""
		m.editor.SetValue(input.Format(m.ctrl.Snapshot().Input))
		m.editor.CursorEnd()
		return m, m.editor.Focus()
	case key.Matches(msg, m.keys.Random):
		values, err := input.Random(m.rng, m.random)
		if err == nil {
			err = m.ctrl.SetArray(values)
		}
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.inputErr = ""
		m.editor.SetValue(input.Format(values))
	case key.Matches(msg, m.keys.Toggle):
		run := m.ctrl.Snapshot().State
		if run.Running && !run.Completed {
			m.ctrl.TogglePause()
			return m, nil
		}
		if err := m.ctrl.Start(); err != nil && !errors.Is(err, controller.ErrNoArray) {
			m.logger.Warn("start failed", "err", err)
		}
	case key.Matches(msg, m.keys.Step):
		m.ctrl.Advance()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Speed):
		m.ctrl.SetSpeed(m.ctrl.Snapshot().Speed.Next())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// Run starts the interactive program and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	all := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	final, err := tea.NewProgram(m, all...).Run()
	if fm, ok := final.(Model); ok {
		fm.ctrl.Reset()
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
