package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/calpick/internal/logger"
)

// Command Builders
//
// These methods create tea.Cmd functions for async operations.
// They follow the async closure capture pattern to avoid bugs
// where model state changes between closure creation and execution.
//
// Key principle: Capture all needed values BEFORE returning the closure.

// waitForOptionsChange waits for reload events from the watcher.
// This is a non-blocking async command - it returns immediately and the
// closure waits for the watcher channel to signal changes.
func (m *Model) waitForOptionsChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	capturedWatcher := m.watcher
	return func() tea.Msg {
		event, ok := <-capturedWatcher.Changes()
		if !ok {
			return nil
		}
		return optionsChangedMsg{event: event}
	}
}

// quit releases the picker and watcher and ends the program. It is safe to
// call more than once.
func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		if m.watcher != nil {
			m.watcher.Stop()
		}

		cal := m.picker.Calendar()
		cal.GridStats().LogStats()
		m.datePicker.CalendarView().RenderStats().LogStats()

		m.picker.Teardown()
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		logger.Info("tui: session ended",
			"accepted", m.result.Accepted,
			"cancelled", m.result.Cancelled,
			"value", m.result.Formatted)
	}
	return tea.Quit
}
