package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Keyboard Handlers
//
// handleKeyPress routes keys by mode: help first, then the keys the host
// owns, then the picker.

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	if m.helpMode {
		if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Help) {
			return m.handleToggleHelp()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		return m.handleToggleHelp()
	case msg.Type == tea.KeyEsc:
		return m.handleEscape()
	}

	if m.terminalTooSmall {
		return m, nil
	}
	_, cmd := m.datePicker.Update(msg)
	return m, cmd
}

// handleQuit handles quit operations
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	return m, m.quit()
}

// handleToggleHelp toggles the full key binding list
func (m *Model) handleToggleHelp() (tea.Model, tea.Cmd) {
	m.helpMode = !m.helpMode
	return m, nil
}

// handleEscape closes the open dropdown.
func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	if m.datePicker.IsVisible() {
		m.datePicker.Hide()
	}
	return m, nil
}
