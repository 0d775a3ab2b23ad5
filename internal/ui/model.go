// Package ui is the terminal front end of the switcher. It owns no state of
// its own beyond layout; everything else lives in core.Engine, which the
// bubbletea program drives one message at a time.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/whereami/internal/config"
	"github.com/chess10kp/whereami/internal/core"
	"github.com/chess10kp/whereami/internal/cursor"
	"github.com/chess10kp/whereami/internal/logger"
)

const (
	// bordered query box
	headerLines = 3
	// status and help
	footerLines = 2
)

type tickMsg time.Time

type Model struct {
	ctx      context.Context
	engine   *core.Engine
	runner   *core.Runner
	keys     KeyMap
	styles   Styles
	input    textinput.Model
	help     help.Model
	title    string
	interval time.Duration

	width  int
	height int
	offset int
}

func New(ctx context.Context, engine *core.Engine, runner *core.Runner, cfg *config.Config) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Search windows"
	input.Focus()

	return Model{
		ctx:      ctx,
		engine:   engine,
		runner:   runner,
		keys:     NewKeyMap(cfg.Keys),
		styles:   NewStyles(cfg.Colors),
		input:    input,
		help:     help.New(),
		title:    cfg.Window.Title,
		interval: cfg.RefreshInterval(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.title),
		textinput.Blink,
		m.commands(m.engine.Init()),
		m.tick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.help.Width = msg.Width
		}
		if w := msg.Width - 8; w > 0 {
			m.input.Width = w
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.syncOffset()
		return m, nil
	case tickMsg:
		cmd := m.apply(core.Tick{})
		return m, tea.Batch(cmd, m.tick())
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case core.Event:
		return m.send(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.send(core.Quit{})
	case key.Matches(msg, m.keys.Up):
		return m.send(core.Navigate{Dir: cursor.Up})
	case key.Matches(msg, m.keys.Down):
		return m.send(core.Navigate{Dir: cursor.Down})
	case key.Matches(msg, m.keys.Select):
		return m.send(core.Select{})
	case key.Matches(msg, m.keys.Close):
		return m.send(core.CloseSelected{})
	case !m.input.Focused() && key.Matches(msg, m.keys.FocusSearch):
		cmd := m.input.Focus()
		return m, cmd
	}

	if !m.input.Focused() {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != before {
		applied := m.apply(core.QueryChanged{Query: query})
		return m, tea.Batch(cmd, applied)
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.send(core.Navigate{Dir: cursor.Up})
	case tea.MouseButtonWheelDown:
		return m.send(core.Navigate{Dir: cursor.Down})
	}

	idx, ok := m.rowAt(msg.Y)
	if !ok {
		return m, nil
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		return m.send(core.Hover{Index: idx})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.send(core.SelectAndFocus{Index: idx})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonMiddle,
		msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		return m.send(core.SelectAndClose{Index: idx})
	}
	return m, nil
}

func (m Model) send(ev core.Event) (tea.Model, tea.Cmd) {
	cmd := m.apply(ev)
	return m, cmd
}

// apply feeds ev to the engine and turns the resulting effects into
// commands.
func (m *Model) apply(ev core.Event) tea.Cmd {
	effects := m.engine.Update(ev)
	m.syncOffset()
	return m.commands(effects)
}

func (m Model) commands(effects []core.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.command(eff))
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m Model) command(eff core.Effect) tea.Cmd {
	if _, ok := eff.(core.QuitEffect); ok {
		log := logger.Component("ui")
		log.Debug().Msg("quitting")
		return tea.Quit
	}
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return runner.Run(ctx, eff)
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Engine exposes the underlying state, mainly for tests.
func (m Model) Engine() *core.Engine {
	return m.engine
}
