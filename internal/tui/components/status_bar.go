package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "238", Dark: "241"}).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"}).
			Padding(0, 1)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)
)

// StatusBar shows the current value and the key hints.
type StatusBar struct {
	width   int
	value   string
	message string
	keys    KeyMap
	help    help.Model
}

// NewStatusBar creates a new status bar
func NewStatusBar(keys KeyMap) *StatusBar {
	return &StatusBar{keys: keys, help: help.New()}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
	sb.help.Width = width
}

// SetValue sets the selection summary shown on the left.
func (sb *StatusBar) SetValue(value string) {
	sb.value = value
}

// SetMessage sets a transient message such as the last event.
func (sb *StatusBar) SetMessage(message string) {
	sb.message = message
}

// View renders the status bar
func (sb *StatusBar) View() string {
	left := ""
	if sb.value != "" {
		left = statusValueStyle.Render(sb.value) + "  "
	}
	if sb.message != "" {
		left += sb.message + "  "
	}

	sb.help.Width = sb.width - lipgloss.Width(left) - 2
	hints := sb.help.ShortHelpView(sb.keys.ShortHelp())
	if sb.width <= 0 {
		return statusBarStyle.Render(left + hints)
	}
	return statusBarStyle.Width(sb.width).MaxWidth(sb.width).Render(left + hints)
}

// FullHelpView renders every key binding.
func (sb *StatusBar) FullHelpView() string {
	return sb.help.FullHelpView(sb.keys.FullHelp())
}
