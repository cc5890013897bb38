package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors pick the light or dark variant from the terminal
// background, which stands in for a system dark-mode listener.
var (
	accentColor  = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "248", Dark: "240"}
	subtleColor  = lipgloss.AdaptiveColor{Light: "252", Dark: "237"}
	textColor    = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	selectedFg   = lipgloss.AdaptiveColor{Light: "231", Dark: "232"}
	rangeColor   = lipgloss.AdaptiveColor{Light: "153", Dark: "24"}
	todayColor   = lipgloss.AdaptiveColor{Light: "166", Dark: "214"}
	disabledFg   = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
	errorColor   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	successColor = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
)

var (
	calendarHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)

	calendarArrowStyle = lipgloss.NewStyle().
				Foreground(accentColor)

	calendarWeekdayStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	dayStyle = lipgloss.NewStyle().
			Foreground(textColor)

	dayOutsideStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	dayDisabledStyle = lipgloss.NewStyle().
				Foreground(disabledFg).
				Strikethrough(true)

	dayTodayStyle = lipgloss.NewStyle().
			Foreground(todayColor).
			Bold(true)

	daySelectedStyle = lipgloss.NewStyle().
				Foreground(selectedFg).
				Background(accentColor).
				Bold(true)

	dayInRangeStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(rangeColor)

	dayPreviewStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Underline(true)

	dayFocusedStyle = lipgloss.NewStyle().
			Reverse(true)

	calendarButtonStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	pickerInputStyle = lipgloss.NewStyle().
				Foreground(textColor)

	pickerPlaceholderStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)

	pickerTriggerStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	pickerDisabledStyle = lipgloss.NewStyle().
				Foreground(disabledFg)

	pickerDropdownStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor).
				Padding(0, 1)
)
