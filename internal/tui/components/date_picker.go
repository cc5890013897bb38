package components

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/picker"
)

const (
	defaultPickerWidth = 32
	// Offset of the calendar inside the dropdown's border and padding.
	dropdownInsetX = 2
	dropdownInsetY = 1
)

// AutoCloseMsg is delivered AutoCloseDelay after a completed selection.
type AutoCloseMsg struct {
	PickerID string
}

// DatePicker renders a picker.Picker: a read-only input with a trigger
// button and, when open, a dropdown holding the calendar.
type DatePicker struct {
	picker *picker.Picker
	view   *CalendarView
	input  textinput.Model
	keys   KeyMap
	width  int

	originX int
	originY int
}

// NewDatePicker creates the component for p.
func NewDatePicker(p *picker.Picker, keys KeyMap) *DatePicker {
	ti := textinput.New()
	ti.Prompt = ""

	dp := &DatePicker{
		picker: p,
		view:   NewCalendarView(p.Calendar(), keys),
		input:  ti,
		keys:   keys,
		width:  defaultPickerWidth,
	}
	dp.sync()
	return dp
}

// Picker returns the headless picker.
func (dp *DatePicker) Picker() *picker.Picker {
	return dp.picker
}

// CalendarView returns the dropdown's calendar view.
func (dp *DatePicker) CalendarView() *CalendarView {
	return dp.view
}

// Show opens the dropdown.
func (dp *DatePicker) Show() {
	dp.picker.Open()
}

// Hide closes the dropdown.
func (dp *DatePicker) Hide() {
	dp.picker.Close()
}

// IsVisible returns whether the dropdown is open.
func (dp *DatePicker) IsVisible() bool {
	return dp.picker.IsOpen()
}

// GetValue returns the formatted display value.
func (dp *DatePicker) GetValue() string {
	return dp.picker.FormattedValue()
}

// SetWidth sets the width of the input line.
func (dp *DatePicker) SetWidth(width int) {
	dp.width = width
	dp.sync()
}

// SetOrigin records where the component is drawn on screen.
func (dp *DatePicker) SetOrigin(x, y int) {
	dp.originX, dp.originY = x, y
	dp.view.SetOrigin(x+dropdownInsetX, y+1+dropdownInsetY)
}

// Reconfigure rebuilds the picker's calendar from opts.
func (dp *DatePicker) Reconfigure(opts calendar.Options) {
	dp.picker.Reconfigure(opts)
	dp.view.SetCalendar(dp.picker.Calendar())
	dp.sync()
}

// inputColumns is the width of the input box, leaving room for the trigger.
func (dp *DatePicker) inputColumns() int {
	if cols := dp.width - 2; cols > 0 {
		return cols
	}
	return 1
}

// sync copies the picker's display value into the input.
func (dp *DatePicker) sync() {
	dp.input.Width = dp.inputColumns()
	dp.input.Placeholder = dp.picker.Placeholder()
	dp.input.SetValue(dp.picker.FormattedValue())
}

// Update handles Bubble Tea messages.
func (dp *DatePicker) Update(msg tea.Msg) (*DatePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case AutoCloseMsg:
		if msg.PickerID == dp.picker.ID() {
			dp.picker.AutoClose()
		}
		return dp, nil

	case tea.KeyMsg:
		dp.handleKey(msg)

	case tea.MouseMsg:
		dp.handleMouse(msg)
	}

	dp.sync()
	return dp, dp.autoCloseCmd()
}

func (dp *DatePicker) handleKey(msg tea.KeyMsg) {
	if key.Matches(msg, dp.keys.Toggle) {
		dp.picker.Toggle()
		return
	}
	if !dp.picker.IsOpen() {
		if key.Matches(msg, dp.keys.Select) {
			dp.picker.ActivateInput()
		}
		return
	}
	dp.view.Update(msg)
}

func (dp *DatePicker) handleMouse(msg tea.MouseMsg) {
	if dp.picker.IsOpen() && dp.view.Update(msg) {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	x, y := msg.X-dp.originX, msg.Y-dp.originY
	switch {
	case y == 0 && x >= 0 && x < dp.inputColumns():
		dp.picker.ActivateInput()
	case y == 0 && x == dp.inputColumns()+1:
		dp.picker.Toggle()
	case dp.picker.IsOpen() && dp.insideDropdown(x, y):
		// Border or padding of the dropdown.
	default:
		dp.picker.ClickOutside()
	}
}

func (dp *DatePicker) insideDropdown(x, y int) bool {
	w := dp.view.Width() + 2*dropdownInsetX
	h := dp.view.Height() + 2*dropdownInsetY
	return x >= 0 && x < w && y >= 1 && y < 1+h
}

// autoCloseCmd schedules the close requested by a completed selection.
func (dp *DatePicker) autoCloseCmd() tea.Cmd {
	if !dp.picker.TakeAutoClose() {
		return nil
	}
	id := dp.picker.ID()
	return tea.Tick(picker.AutoCloseDelay, func(time.Time) tea.Msg {
		return AutoCloseMsg{PickerID: id}
	})
}

// View renders the input line and, when open, the dropdown below it.
func (dp *DatePicker) View() string {
	inputBox := lipgloss.NewStyle().Width(dp.inputColumns()).MaxWidth(dp.inputColumns())

	var field string
	switch {
	case dp.picker.Options().Disabled:
		field = pickerDisabledStyle.Inherit(inputBox).Render(dp.displayText())
	case dp.picker.FormattedValue() == "":
		field = pickerPlaceholderStyle.Inherit(inputBox).Render(dp.picker.Placeholder())
	default:
		field = pickerInputStyle.Inherit(inputBox).Render(dp.input.View())
	}

	trigger := "▾"
	if dp.picker.IsOpen() {
		trigger = "▴"
	}
	line := field + " " + pickerTriggerStyle.Render(trigger)

	if !dp.picker.IsOpen() {
		return line
	}
	return line + "\n" + pickerDropdownStyle.Render(dp.view.View())
}

func (dp *DatePicker) displayText() string {
	if v := dp.picker.FormattedValue(); v != "" {
		return v
	}
	return dp.picker.Placeholder()
}
