package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	bcursor "github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess10kp/whereami/internal/config"
	"github.com/chess10kp/whereami/internal/core"
	"github.com/chess10kp/whereami/internal/dispatch"
	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/hypr/hyprtest"
	"github.com/chess10kp/whereami/internal/registry"
	"github.com/chess10kp/whereami/internal/search"
)

func newTestModel(t *testing.T, cfg *config.Config, clients ...hypr.Client) (Model, *hyprtest.Commander) {
	t.Helper()
	fake := hyprtest.New()
	fake.SetClients(clients)
	wm := hypr.NewHyprctl(fake)

	ranker, err := search.NewRanker(search.Options{}, 0)
	require.NoError(t, err)
	engine := core.NewEngine(ranker, core.Options{WrapNavigation: cfg.Behavior.WrapNavigation})
	runner := core.NewRunner(
		registry.NewPoller(wm, registry.Options{SelfTitle: cfg.Window.Title}),
		dispatch.New(wm, dispatch.FocusWorkspace),
	)

	m := New(context.Background(), engine, runner, cfg)
	// a blinking cursor would hand drain a timer command per keystroke
	m.input.Cursor.SetMode(bcursor.CursorStatic)
	m = send(t, m, core.RefreshEffect{})
	return m, fake
}

// send runs eff directly and feeds its event back, draining follow-ups.
func send(t *testing.T, m Model, eff core.Effect) Model {
	t.Helper()
	ev := m.runner.Run(context.Background(), eff)
	require.NotNil(t, ev)
	next, cmd := m.Update(ev)
	return drain(t, next.(Model), cmd)
}

// drain executes cmd and every command it leads to, stopping at quit.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return m
		case core.Event:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func typeText(text string) []tea.KeyMsg {
	out := make([]tea.KeyMsg, 0, len(text))
	for _, r := range text {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func clients() []hypr.Client {
	return []hypr.Client{
		hyprtest.Client("0x1", "Browser", 1),
		hyprtest.Client("0x2", "Terminal", 2),
		hyprtest.Client("0x3", "browser-dev", -98),
	}
}

func selectedAddress(t *testing.T, m Model) string {
	t.Helper()
	entry, ok := m.Engine().Selected()
	require.True(t, ok)
	return entry.Client.Address
}

func TestModel_TypingFilters(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), clients()...)

	m = press(t, m, typeText("brow")...)

	assert.Equal(t, "brow", m.Engine().Query())
	assert.Equal(t, 2, m.Engine().List().Len())
	view := m.View()
	assert.Contains(t, view, "@Workspace: Special Workspace")
	assert.NotContains(t, view, "Terminal")
}

func TestModel_BackspaceWidensAndResetsCursor(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), clients()...)

	m = press(t, m, typeText("r")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	idx, _ := m.Engine().Cursor().Index()
	require.Equal(t, 1, idx)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", m.Engine().Query())
	assert.Equal(t, 3, m.Engine().List().Len())
	assert.Equal(t, "0x1", selectedAddress(t, m))
}

func TestModel_NavigationKeys(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), clients()...)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "0x2", selectedAddress(t, m))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, "0x3", selectedAddress(t, m))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "0x1", selectedAddress(t, m))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "0x3", selectedAddress(t, m))
}

func TestModel_EnterFocusesAndQuits(t *testing.T) {
	m, fake := newTestModel(t, config.Default(), clients()...)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"dispatch workspace 2"}, fake.Starts())
	assert.True(t, m.Engine().Done())
}

func TestModel_DeleteClosesAndRefreshes(t *testing.T) {
	cs := clients()
	m, fake := newTestModel(t, config.Default(), cs...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "0x3", selectedAddress(t, m))

	fake.SetClients(cs[:2])
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDelete})

	assert.Equal(t, []string{"dispatch closewindow address:0x3"}, fake.Starts())
	assert.Equal(t, 2, m.Engine().List().Len())
	assert.Equal(t, "0x2", selectedAddress(t, m))
	assert.False(t, m.Engine().Done())
}

func TestModel_EscQuitsWithoutDispatch(t *testing.T) {
	m, fake := newTestModel(t, config.Default(), clients()...)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).Engine().Done())
	assert.Empty(t, fake.Starts())
}

func TestModel_DispatchFailureShownInStatus(t *testing.T) {
	m, fake := newTestModel(t, config.Default(), clients()...)
	fake.SetStartErr(errors.New("fork/exec hyprctl: no such file"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Engine().Done())
	assert.Contains(t, m.View(), "no such file")
}

func TestModel_StaleIndicator(t *testing.T) {
	m, fake := newTestModel(t, config.Default(), clients()...)
	fake.SetOutput([]byte("not json"), nil)

	m = send(t, m, core.RefreshEffect{})

	assert.True(t, m.Engine().Stale())
	assert.Contains(t, m.View(), "(stale)")
	assert.Contains(t, m.View(), "Browser")
}

func TestModel_CustomKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Down = []string{"tab"}
	m, _ := newTestModel(t, cfg, clients()...)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "0x2", selectedAddress(t, m))

	// no longer bound, so it lands in the query box instead
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "0x2", selectedAddress(t, m))
}

func TestModel_CommaIsTypedWhileSearching(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), clients()...)

	m = press(t, m, typeText(",")...)
	assert.Equal(t, ",", m.Engine().Query())
}

func TestModel_MouseHoverAndClick(t *testing.T) {
	m, fake := newTestModel(t, config.Default(), clients()...)

	next, cmd := m.Update(tea.MouseMsg{Y: headerLines + 2, Action: tea.MouseActionMotion})
	m = drain(t, next.(Model), cmd)
	assert.Equal(t, "0x3", selectedAddress(t, m))
	assert.True(t, m.input.Focused())

	next, cmd = m.Update(tea.MouseMsg{Y: headerLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = drain(t, next.(Model), cmd)
	assert.Equal(t, []string{"dispatch workspace 1"}, fake.Starts())
	assert.True(t, m.Engine().Done())
}

func TestModel_TypingAfterHoverStillFilters(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), clients()...)

	next, cmd := m.Update(tea.MouseMsg{Y: headerLines + 1, Action: tea.MouseActionMotion})
	m = drain(t, next.(Model), cmd)
	require.Equal(t, "0x2", selectedAddress(t, m))

	m = press(t, m, typeText("brow,")...)
	assert.Equal(t, "brow,", m.Engine().Query())
	assert.Equal(t, 0, m.Engine().List().Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "brow", m.Engine().Query())
	assert.Equal(t, 2, m.Engine().List().Len())
	assert.Equal(t, "0x1", selectedAddress(t, m))
}

func TestModel_ClickOutsideListIgnored(t *testing.T) {
	m, fake := newTestModel(t, config.Default(), clients()...)

	next, cmd := m.Update(tea.MouseMsg{Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
	next, cmd = next.(Model).Update(tea.MouseMsg{Y: headerLines + 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
	assert.Empty(t, fake.Starts())
	assert.False(t, next.(Model).Engine().Done())
}

func TestModel_ScrollKeepsCursorVisible(t *testing.T) {
	var many []hypr.Client
	for i := 0; i < 30; i++ {
		many = append(many, hyprtest.Client(strings.Repeat("a", i+1), "win"+strings.Repeat("x", i), i))
	}
	m, _ := newTestModel(t, config.Default(), many...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	m = next.(Model)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	idx, _ := m.Engine().Cursor().Index()
	require.Equal(t, 29, idx)
	assert.Equal(t, 29-m.visibleRows()+1, m.offset)
	assert.Contains(t, m.View(), "win"+strings.Repeat("x", 29))
}

func TestHighlight_ByteOffsets(t *testing.T) {
	base := NewStyles(config.Default().Colors).Text
	match := NewStyles(config.Default().Colors).Match

	out := highlight("Brö", []int{0, 2}, base, match)
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "ö")
	assert.Equal(t, base.Render("plain"), highlight("plain", nil, base, match))
}

func TestKeyMap_Help(t *testing.T) {
	km := NewKeyMap(config.Default().Keys)
	assert.Len(t, km.ShortHelp(), 5)
	assert.Equal(t, "enter", km.Select.Help().Key)
	assert.Equal(t, ",", km.FocusSearch.Help().Key)
}
