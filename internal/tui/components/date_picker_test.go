package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/picker"
)

const (
	testOriginX = 4
	testOriginY = 2
)

func newTestDatePicker(t *testing.T, opts calendar.Options) (*DatePicker, *[]event.Event) {
	t.Helper()
	bus := event.NewBus()
	var events []event.Event
	bus.Subscribe("", func(e event.Event) { events = append(events, e) })

	p := picker.NewWithClock(opts, bus, february2024)
	t.Cleanup(p.Teardown)

	dp := NewDatePicker(p, DefaultKeyMap())
	dp.SetOrigin(testOriginX, testOriginY)
	return dp, &events
}

// dayClick clicks a day of the dropdown calendar given in view coordinates.
func dayClick(x, y int) tea.MouseMsg {
	return leftClick(testOriginX+dropdownInsetX+x, testOriginY+1+dropdownInsetY+y)
}

func TestNewDatePicker(t *testing.T) {
	dp, events := newTestDatePicker(t, calendar.Options{Locale: "en"})

	assert.False(t, dp.IsVisible())
	assert.Empty(t, dp.GetValue())
	assert.Contains(t, dp.View(), "Select a date")
	assert.Empty(t, *events)
}

func TestDatePickerToggleKey(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{Locale: "en"})

	dp.Update(keyRunes("o"))
	assert.True(t, dp.IsVisible())
	assert.Contains(t, dp.View(), "February 2024")

	dp.Update(keyRunes("o"))
	assert.False(t, dp.IsVisible())
}

func TestDatePickerEnterOpensWhenClosed(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{Locale: "en"})

	dp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, dp.IsVisible())

	// While open the key goes to the calendar and selects the focused day.
	_, cmd := dp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "02/01/2024", dp.GetValue())
	assert.NotNil(t, cmd)
}

func TestDatePickerReadOnlyInput(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{ReadOnly: true})

	dp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, dp.IsVisible())

	dp.Update(keyRunes("o"))
	assert.True(t, dp.IsVisible(), "the trigger still opens a read-only picker")
}

func TestDatePickerDisabled(t *testing.T) {
	dp, events := newTestDatePicker(t, calendar.Options{Disabled: true})

	dp.Update(keyRunes("o"))
	dp.Update(leftClick(testOriginX, testOriginY))
	dp.Update(leftClick(testOriginX+dp.inputColumns()+1, testOriginY))

	assert.False(t, dp.IsVisible())
	assert.Empty(t, *events)
}

func TestDatePickerMouseInputAndTrigger(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{Locale: "en"})
	trigger := testOriginX + dp.inputColumns() + 1

	dp.Update(leftClick(testOriginX+3, testOriginY))
	assert.True(t, dp.IsVisible())

	dp.Update(leftClick(trigger, testOriginY))
	assert.False(t, dp.IsVisible())

	dp.Update(leftClick(trigger, testOriginY))
	assert.True(t, dp.IsVisible())
}

func TestDatePickerClickOutside(t *testing.T) {
	dp, events := newTestDatePicker(t, calendar.Options{Locale: "en"})
	dp.Show()

	// The dropdown border keeps the picker open.
	dp.Update(leftClick(testOriginX, testOriginY+1))
	assert.True(t, dp.IsVisible())

	dp.Update(leftClick(testOriginX+80, testOriginY+20))
	assert.False(t, dp.IsVisible())

	e, ok := lastNamed(*events, event.DatePickerClose)
	require.True(t, ok)
	assert.Equal(t, event.VisibilityDetail{Open: false}, e.Detail)
}

func TestDatePickerSingleSelectionAutoCloses(t *testing.T) {
	dp, events := newTestDatePicker(t, calendar.Options{Locale: "en"})
	dp.Show()

	_, cmd := dp.Update(dayClick(13, 4))
	require.NotNil(t, cmd)
	assert.Equal(t, "02/14/2024", dp.GetValue())
	assert.True(t, dp.IsVisible(), "closing waits for the tick")

	e, ok := lastNamed(*events, event.DatePickerChange)
	require.True(t, ok)
	detail := e.Detail.(event.PickerChangeDetail)
	assert.Equal(t, []string{"2024-02-14"}, detail.Value)
	assert.Equal(t, "02/14/2024", detail.FormattedValue)

	// A tick for another picker is ignored.
	dp.Update(AutoCloseMsg{PickerID: "other"})
	assert.True(t, dp.IsVisible())

	dp.Update(AutoCloseMsg{PickerID: dp.Picker().ID()})
	assert.False(t, dp.IsVisible())
}

func TestDatePickerMultipleStaysOpen(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{Locale: "en", Variant: "multiple"})
	dp.Show()

	_, cmd := dp.Update(dayClick(13, 4))
	assert.Nil(t, cmd)
	_, cmd = dp.Update(dayClick(1, 3))
	assert.Nil(t, cmd)

	assert.True(t, dp.IsVisible())
	assert.Equal(t, "02/04/2024, 02/14/2024", dp.GetValue())
}

func TestDatePickerAutoCloseAfterTeardown(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{Locale: "en"})
	dp.Show()

	_, cmd := dp.Update(dayClick(13, 4))
	require.NotNil(t, cmd)

	dp.Picker().Teardown()
	dp.Update(AutoCloseMsg{PickerID: dp.Picker().ID()})
	assert.True(t, dp.IsVisible())
}

func TestDatePickerReconfigure(t *testing.T) {
	dp, _ := newTestDatePicker(t, calendar.Options{Locale: "en"})
	dp.Show()

	dp.Reconfigure(calendar.Options{Locale: "es", SelectedDate: "2024-03-05"})
	assert.Equal(t, "05/03/2024", dp.GetValue())
	assert.Same(t, dp.Picker().Calendar(), dp.CalendarView().Calendar())
	assert.Contains(t, dp.View(), "Marzo 2024")
}
