package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/logger"
	"github.com/MikeBiancalana/calpick/internal/tui/components"
)

// Message Handlers
//
// These methods handle specific message types, keeping the main Update()
// function clean and focused. Each handler follows the pattern:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)
//
// This makes handlers testable in isolation and easy to understand.

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Check if terminal meets minimum dimensions
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	m.statusBar.SetWidth(msg.Width)
	m.relayout()
	return m, nil
}

// relayout positions the picker for the current terminal size.
func (m *Model) relayout() {
	dropdown := m.datePicker.CalendarView().Width() + 4
	m.layout = CalculateLayout(m.width, m.height, dropdown)
	m.datePicker.SetWidth(m.layout.PickerWidth)
	m.datePicker.SetOrigin(m.layout.PickerX, m.layout.PickerY)
}

// handleAutoClose forwards the delayed close of a completed selection.
func (m *Model) handleAutoClose(msg components.AutoCloseMsg) (tea.Model, tea.Cmd) {
	_, cmd := m.datePicker.Update(msg)
	return m, cmd
}

// handleMouse forwards clicks and wheel events to the picker.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.helpMode || m.terminalTooSmall {
		return m, nil
	}
	_, cmd := m.datePicker.Update(msg)
	return m, cmd
}

// handleOptionsChanged applies a reloaded options file and waits for the next.
func (m *Model) handleOptionsChanged(msg optionsChangedMsg) (tea.Model, tea.Cmd) {
	wait := m.waitForOptionsChange()
	if msg.event.Err != nil {
		logger.Warn("tui: options reload failed", "path", msg.event.FilePath, "error", msg.event.Err)
		return m, tea.Batch(wait, m.toasts.Error(fmt.Sprintf("Options not reloaded: %v", msg.event.Err)))
	}

	logger.Info("tui: applying reloaded options", "path", msg.event.FilePath)
	m.datePicker.Reconfigure(msg.event.Options)
	m.result.Value = m.picker.Value()
	m.result.Formatted = m.picker.FormattedValue()
	m.refreshStatus()
	m.relayout()
	return m, tea.Batch(wait, m.toasts.Info("Options reloaded"))
}

// onEvent receives every event published on the host bus.
func (m *Model) onEvent(e event.Event) {
	logger.Debug("tui: event", "name", e.Name, "source", e.Source)

	switch detail := e.Detail.(type) {
	case event.PickerChangeDetail:
		m.result.Value = detail.ChangeDetail
		m.result.Formatted = detail.FormattedValue
		m.result.Accepted = false
		m.result.Cancelled = false
		m.refreshStatus()

	case event.MonthDetail:
		m.statusBar.SetMessage(fmt.Sprintf("%s %d", detail.MonthName, detail.Year))
	}

	switch e.Name {
	case event.CalendarAccept:
		m.result.Accepted = true
		// Quit after the current dispatch finishes, not from inside it.
		m.pending = append(m.pending, func() tea.Msg { return acceptedMsg{} })

	case event.CalendarCancel:
		m.result.Cancelled = true
		m.pending = append(m.pending, m.toasts.Info("Selection cancelled"))
	}
}
