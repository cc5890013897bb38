package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/picker"
	"github.com/MikeBiancalana/calpick/internal/sync"
	"github.com/MikeBiancalana/calpick/internal/tui/components"
)

// The host model owns the event bus the picker publishes to. Listeners run
// synchronously inside Update, so they cannot return commands themselves;
// they queue them on m.pending and Update drains the queue.
//
// Async Closure Capture Pattern
// ==============================
// When using tea.Cmd (async functions), Go closures capture variables by
// REFERENCE. Capture the values a command needs BEFORE returning the closure:
//
//	capturedWatcher := m.watcher
//	return func() tea.Msg {
//	    return optionsChangedMsg{event: <-capturedWatcher.Changes()}
//	}

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 16
)

const defaultTitle = "calpick"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}).
	Bold(true)

// Result is what a session produced.
type Result struct {
	Value     event.ChangeDetail `json:"value"`
	Formatted string             `json:"formattedValue"`
	Accepted  bool               `json:"accepted"`
	Cancelled bool               `json:"cancelled"`
}

// Config customises a Model.
type Config struct {
	Options calendar.Options
	// Watcher, when set, reconfigures the picker as the options file changes.
	Watcher *sync.Watcher
	Toasts  *components.ToastManager
	Keys    *components.KeyMap
	Now     func() time.Time
	Title   string
}

// Model represents the main TUI state
type Model struct {
	bus        *event.Bus
	picker     *picker.Picker
	datePicker *components.DatePicker
	statusBar  *components.StatusBar
	toasts     *components.ToastManager
	keys       components.KeyMap
	watcher    *sync.Watcher
	now        func() time.Time
	title      string

	width  int
	height int
	layout Layout

	helpMode         bool
	terminalTooSmall bool
	quitting         bool

	result      Result
	pending     []tea.Cmd
	unsubscribe func()
}

// NewModel creates the host for one date picker.
func NewModel(cfg Config) *Model {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	keys := components.DefaultKeyMap()
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}
	toasts := cfg.Toasts
	if toasts == nil {
		toasts = components.NewToastManager(components.DefaultToastLimit, components.DefaultToastTTL, components.ToastBottomRight)
	}
	title := cfg.Title
	if title == "" {
		title = defaultTitle
	}

	bus := event.NewBus()
	m := &Model{
		bus:       bus,
		statusBar: components.NewStatusBar(keys),
		toasts:    toasts,
		keys:      keys,
		watcher:   cfg.Watcher,
		now:       now,
		title:     title,
	}
	m.unsubscribe = bus.Subscribe("", m.onEvent)

	m.picker = picker.NewWithClock(cfg.Options, bus, now)
	m.datePicker = components.NewDatePicker(m.picker, keys)
	m.result.Value = m.picker.Value()
	m.result.Formatted = m.picker.FormattedValue()
	m.refreshStatus()

	m.datePicker.Show()
	return m
}

// Bus returns the host event bus. Every picker and calendar event reaches it.
func (m *Model) Bus() *event.Bus {
	return m.bus
}

// DatePicker returns the picker component.
func (m *Model) DatePicker() *components.DatePicker {
	return m.datePicker
}

// Result returns the selection state at the time of the call.
func (m *Model) Result() Result {
	return m.result
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.watcher.Start(); err != nil {
		return m.toasts.Error(fmt.Sprintf("Not watching %s: %v", m.watcher.Path(), err))
	}
	return m.waitForOptionsChange()
}

// Update handles messages and updates the model
// This function is a simple dispatcher that routes messages to
// dedicated handler methods organized in handlers.go and keyboard.go
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.dispatch(msg)
	if pending := m.takePending(); len(pending) > 0 {
		return model, tea.Batch(append([]tea.Cmd{cmd}, pending...)...)
	}
	return model, cmd
}

func (m *Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case components.AutoCloseMsg:
		return m.handleAutoClose(msg)

	case components.ToastExpiredMsg:
		m.toasts.Update(msg)
		return m, nil

	case optionsChangedMsg:
		return m.handleOptionsChanged(msg)

	case acceptedMsg:
		return m.handleQuit()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	default:
		return m, nil
	}
}

// takePending returns and clears the commands queued by event listeners.
func (m *Model) takePending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}
	if m.helpMode {
		return m.helpView()
	}

	indent := lipgloss.NewStyle().PaddingLeft(m.layout.PickerX)
	body := titleStyle.Render(m.title) + "\n\n" + indent.Render(m.datePicker.View())

	bodyHeight := m.height - m.layout.StatusHeight
	return m.toasts.Overlay(body, m.width, bodyHeight) + "\n" + m.statusBar.View()
}

func (m *Model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Help - Key Bindings"))
	b.WriteString("\n\n")
	b.WriteString(m.statusBar.FullHelpView())
	b.WriteString("\n\nesc closes the calendar. Press ? to exit help.")
	return b.String() + "\n\n" + m.statusBar.View()
}

// terminalTooSmallView renders the message when terminal is too small
func (m *Model) terminalTooSmallView() string {
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Align(lipgloss.Center, lipgloss.Center)

	content := fmt.Sprintf(
		"Terminal Too Small\n\nCurrent: %dx%d\n\nRequired: %dx%d or larger",
		m.width, m.height, MinTerminalWidth, MinTerminalHeight,
	)
	return style.Render(content)
}

// refreshStatus shows the current value and a relative description of it.
func (m *Model) refreshStatus() {
	m.statusBar.SetValue(m.result.Formatted)
	m.statusBar.SetMessage(describeValue(m.result.Value, m.now()))
}

// describeValue summarises a selection relative to today.
func describeValue(d event.ChangeDetail, now time.Time) string {
	switch d.Variant {
	case string(calendar.VariantMultiple):
		switch n := len(d.Dates); n {
		case 0:
			return ""
		case 1:
			return "1 date"
		default:
			return fmt.Sprintf("%d dates", n)
		}
	case string(calendar.VariantRange):
		start, ok := dates.Parse(d.Start)
		if !ok {
			return ""
		}
		end, ok := dates.Parse(d.End)
		if !ok {
			return "from " + dates.Describe(start, now)
		}
		return fmt.Sprintf("%d days", int(end.Time().Sub(start.Time()).Hours()/24)+1)
	default:
		day, ok := dates.Parse(d.Date)
		if !ok {
			return ""
		}
		return dates.Describe(day, now)
	}
}

// Message type definitions
type optionsChangedMsg struct {
	event sync.OptionsChangeEvent
}

type acceptedMsg struct{}
