package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/calpick/internal/event"
)

// recorder collects every event published on a bus.
type recorder struct {
	events []event.Event
}

func newRecorder(bus *event.Bus) *recorder {
	r := &recorder{}
	bus.Subscribe("", func(e event.Event) { r.events = append(r.events, e) })
	return r
}

func (r *recorder) named(name event.Name) []event.Event {
	var out []event.Event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func clockAt(iso string) func() time.Time {
	t, err := time.Parse("2006-01-02 15:04", iso+" 09:30")
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newTestCalendar(t *testing.T, opts Options, today string) (*Calendar, *recorder) {
	t.Helper()
	bus := event.NewBus()
	rec := newRecorder(bus)
	cal := NewWithClock(opts, bus, clockAt(today))
	require.NotEmpty(t, cal.ID())
	return cal, rec
}

func TestCalendarInitialViewport(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want Viewport
	}{
		{"today", Options{}, NewViewport(2024, time.June)},
		{"single selection", Options{SelectedDate: "2023-11-02"}, NewViewport(2023, time.November)},
		{"range start", Options{Variant: "range", RangeStart: "2025-02-01", RangeEnd: "2025-03-01"}, NewViewport(2025, time.February)},
		{"earliest of multiple", Options{Variant: "multiple", SelectedDates: []string{"2024-09-09", "2024-08-01"}}, NewViewport(2024, time.August)},
		{"malformed selection", Options{SelectedDate: "2024-99-01"}, NewViewport(2024, time.June)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, rec := newTestCalendar(t, tt.opts, "2024-06-15")
			assert.Equal(t, tt.want, cal.Viewport())
			assert.Empty(t, rec.events, "construction publishes nothing")
		})
	}
}

func TestCalendarSingleWithBounds(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{
		Locale:  "es",
		MinDate: "2024-01-10",
		MaxDate: "2024-01-20",
	}, "2024-01-05")

	assert.False(t, cal.Activate(mustDate(t, "2024-01-05")))
	assert.Empty(t, rec.events)
	assert.True(t, cal.Selection().IsEmpty())

	assert.True(t, cal.Activate(mustDate(t, "2024-01-15")))

	changes := rec.named(event.DateChange)
	require.Len(t, changes, 1)
	assert.Equal(t, event.ChangeDetail{Variant: "single", Date: "2024-01-15"}, changes[0].Detail)
	assert.Equal(t, cal.ID(), changes[0].Source)

	selects := rec.named(event.DateSelect)
	require.Len(t, selects, 1)
	sel := selects[0].Detail.(event.SelectDetail)
	assert.Equal(t, "2024-01-15", sel.Date)
	assert.Equal(t, mustDate(t, "2024-01-15").UnixMilli(), sel.Timestamp)

	assert.Len(t, rec.named(event.CalendarChange), 1)
}

func TestCalendarRangeReversedClicks(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{Variant: "range"}, "2024-02-01")

	require.True(t, cal.Activate(mustDate(t, "2024-02-20")))
	assert.Empty(t, rec.named(event.DateChange), "first click only starts the range")
	assert.Len(t, rec.named(event.DateSelect), 1)

	require.True(t, cal.Activate(mustDate(t, "2024-02-10")))

	changes := rec.named(event.DateChange)
	require.Len(t, changes, 1)
	assert.Equal(t, event.ChangeDetail{Variant: "range", Start: "2024-02-10", End: "2024-02-20"}, changes[0].Detail)

	start, end := cal.Selection().Range()
	assert.Equal(t, "2024-02-10", start.String())
	assert.Equal(t, "2024-02-20", end.String())
}

func TestCalendarSingleSameDayTwice(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{}, "2024-01-01")

	cal.Activate(mustDate(t, "2024-01-15"))
	cal.Activate(mustDate(t, "2024-01-15"))

	assert.Equal(t, "2024-01-15", cal.Selection().Date().String())
	for _, e := range rec.named(event.DateChange) {
		assert.Equal(t, event.ChangeDetail{Variant: "single", Date: "2024-01-15"}, e.Detail)
	}
}

func TestCalendarMultipleToggle(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{Variant: "multiple"}, "2024-03-01")

	cal.Activate(mustDate(t, "2024-03-05"))
	cal.Activate(mustDate(t, "2024-03-02"))
	cal.Activate(mustDate(t, "2024-03-05"))

	changes := rec.named(event.DateChange)
	require.Len(t, changes, 3)
	assert.Equal(t, []string{"2024-03-02", "2024-03-05"}, changes[1].Detail.(event.ChangeDetail).Dates)
	assert.Equal(t, []string{"2024-03-02"}, changes[2].Detail.(event.ChangeDetail).Dates)
}

func TestCalendarDisabledDaysAreInert(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{
		Variant:       "multiple",
		DisabledDates: []string{"2024-01-12"},
		DisabledRule:  "FREQ=WEEKLY;BYDAY=SA,SU",
	}, "2024-01-01")

	before := cal.Selection().Dates()
	assert.False(t, cal.Activate(mustDate(t, "2024-01-12")))
	assert.False(t, cal.Activate(mustDate(t, "2024-01-13")), "weekend")
	assert.False(t, cal.Activate(mustDate(t, "2024-02-01")), "outside the displayed month")
	assert.False(t, cal.ActivateAt(0, 0), "outside-month cell")
	assert.False(t, cal.ActivateAt(3, 10), "no such panel")

	assert.Empty(t, rec.events)
	assert.Equal(t, before, cal.Selection().Dates())
}

func TestCalendarSeededSelectionOnDisabledDay(t *testing.T) {
	cal, _ := newTestCalendar(t, Options{
		SelectedDate:  "2024-01-12",
		DisabledDates: []string{"2024-01-12"},
	}, "2024-01-01")

	cells := cal.Panels()[0].Cells
	cell := cells[12]
	require.Equal(t, "2024-01-12", cell.Date.String())
	assert.True(t, cell.IsSelected)
	assert.True(t, cell.IsDisabled)
	assert.Equal(t, "2024-01-01", cal.Focused().String(), "focus falls back to the first enabled day")
}

func TestCalendarMonthNavigation(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{Locale: "es", SelectedDate: "2024-01-15"}, "2024-01-01")

	cal.NextMonth()
	months := rec.named(event.MonthChange)
	require.Len(t, months, 1)
	assert.Equal(t, event.MonthDetail{Month: 1, Year: 2024, MonthName: "Febrero"}, months[0].Detail)
	payload, err := json.Marshal(months[0].Detail)
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":1,"year":2024,"monthName":"Febrero"}`, string(payload))
	assert.Equal(t, "2024-01-15", cal.Selection().Date().String(), "navigation never changes the selection")

	cal.PrevMonth()
	cal.PrevMonth()
	assert.Equal(t, NewViewport(2023, time.December), cal.Viewport())

	cal.SetMonth(time.December)
	assert.Len(t, rec.named(event.MonthChange), 3, "no event when the month is unchanged")

	cal.SetYear(2030)
	assert.Equal(t, NewViewport(2030, time.December), cal.Viewport())
	assert.Empty(t, rec.named(event.DateChange))
}

func TestCalendarKeyboard(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{MinDate: "2024-01-10", MaxDate: "2024-01-20"}, "2024-01-01")

	assert.Equal(t, "2024-01-10", cal.Focused().String())

	assert.True(t, cal.HandleKey(KeyLeft))
	assert.Equal(t, "2024-01-10", cal.Focused().String(), "no movement before the first enabled day")

	cal.HandleKey(KeyRight)
	cal.HandleKey(KeyDown)
	assert.Equal(t, "2024-01-18", cal.Focused().String())

	cal.HandleKey(KeyEnd)
	assert.Equal(t, "2024-01-20", cal.Focused().String())
	cal.HandleKey(KeyHome)
	assert.Equal(t, "2024-01-10", cal.Focused().String())

	assert.True(t, cal.HandleKey(KeyEnter))
	assert.Equal(t, "2024-01-10", cal.Selection().Date().String())
	assert.Len(t, rec.named(event.DateChange), 1)

	_, index, ok := cal.FocusedCell()
	require.True(t, ok)
	assert.True(t, cal.Panels()[0].Cells[index].IsFocused)

	assert.False(t, cal.HandleKey(KeyTab), "tab leaves a single-panel calendar")
}

func TestCalendarPageKeysReseatFocus(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{}, "2024-01-17")

	assert.True(t, cal.HandleKey(KeyPageDown))
	assert.Equal(t, NewViewport(2024, time.February), cal.Viewport())
	assert.Equal(t, "2024-02-01", cal.Focused().String())
	assert.Len(t, rec.named(event.MonthChange), 1)

	assert.True(t, cal.HandleKey(KeyPageUp))
	assert.Equal(t, NewViewport(2024, time.January), cal.Viewport())
}

func TestCalendarDoublePanel(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{Variant: "range", ShowDouble: true}, "2024-12-10")

	require.True(t, cal.IsDouble())
	panels := cal.Panels()
	require.Len(t, panels, 2)
	assert.Equal(t, NewViewport(2024, time.December), panels[0].Viewport)
	assert.Equal(t, NewViewport(2025, time.January), panels[1].Viewport)

	cal.Activate(mustDate(t, "2024-12-28"))
	cal.Activate(mustDate(t, "2025-01-03"))
	changes := rec.named(event.DateChange)
	require.Len(t, changes, 1)
	assert.Equal(t, event.ChangeDetail{Variant: "range", Start: "2024-12-28", End: "2025-01-03"}, changes[0].Detail)

	// Days in range show on both panels.
	for _, p := range cal.Panels() {
		for _, c := range p.Cells {
			if c.Date.String() == "2024-12-31" && !c.IsOutsideMonth {
				assert.True(t, c.IsInRange)
			}
			if c.Date.String() == "2025-01-02" && !c.IsOutsideMonth {
				assert.True(t, c.IsInRange)
			}
		}
	}

	assert.True(t, cal.HandleKey(KeyTab))
	panel, _, ok := cal.FocusedCell()
	require.True(t, ok)
	assert.Equal(t, 0, panel, "the range start in December is the first panel's tab stop")
}

func TestCalendarDoublePanelFocusSkipsDisabledMonth(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{Variant: "range", ShowDouble: true, MinDate: "2024-02-05"}, "2024-01-15")

	require.Equal(t, NewViewport(2024, time.January), cal.Viewport())
	assert.Equal(t, "2024-02-05", cal.Focused().String())
	panel, index, ok := cal.FocusedCell()
	require.True(t, ok)
	assert.Equal(t, 1, panel)
	assert.True(t, cal.Panels()[1].Cells[index].IsFocused)

	assert.True(t, cal.HandleKey(KeyRight))
	assert.Equal(t, "2024-02-06", cal.Focused().String())

	assert.True(t, cal.HandleKey(KeyTab), "tab is consumed even when the other panel has no tab stop")
	assert.Equal(t, "2024-02-06", cal.Focused().String())

	assert.True(t, cal.HandleKey(KeyEnter))
	start, _ := cal.Selection().Range()
	assert.Equal(t, "2024-02-06", start.String())
	assert.Len(t, rec.named(event.DateSelect), 1)
}

func TestCalendarDoubleRequiresRange(t *testing.T) {
	cal, _ := newTestCalendar(t, Options{Variant: "single", ShowDouble: true}, "2024-12-10")
	assert.False(t, cal.IsDouble())
	assert.Len(t, cal.Panels(), 1)
}

func TestCalendarPanelsAreSnapshots(t *testing.T) {
	cal, _ := newTestCalendar(t, Options{}, "2024-01-01")
	before := cal.Panels()

	cal.NextMonth()
	assert.Equal(t, NewViewport(2024, time.January), before[0].Viewport)
	assert.Equal(t, NewViewport(2024, time.February), cal.Panels()[0].Viewport)
}

func TestCalendarAcceptCancel(t *testing.T) {
	cal, rec := newTestCalendar(t, Options{SelectedDate: "2024-04-04", ShowFooter: true}, "2024-04-01")

	cal.Accept()
	cal.Cancel()

	accepts := rec.named(event.CalendarAccept)
	require.Len(t, accepts, 1)
	assert.Equal(t, event.ChangeDetail{Variant: "single", Date: "2024-04-04"}, accepts[0].Detail)
	assert.Len(t, rec.named(event.CalendarCancel), 1)
	assert.Equal(t, "2024-04-04", cal.Selection().Date().String())
}

func TestCalendarWithoutBus(t *testing.T) {
	cal := NewWithClock(Options{}, nil, clockAt("2024-01-01"))
	assert.NotPanics(t, func() {
		cal.Activate(mustDate(t, "2024-01-02"))
		cal.NextMonth()
		cal.Accept()
	})
}

func TestCalendarTodayMarker(t *testing.T) {
	cal, _ := newTestCalendar(t, Options{}, "2024-01-17")
	today := 0
	for _, c := range cal.Panels()[0].Cells {
		if c.IsToday {
			today++
			assert.Equal(t, "2024-01-17", c.Date.String())
		}
	}
	assert.Equal(t, 1, today)
	assert.Positive(t, cal.GridStats().Stats().Count)
}
