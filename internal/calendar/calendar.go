package calendar

import (
	"time"

	"github.com/rs/xid"

	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/locale"
	"github.com/MikeBiancalana/calpick/internal/logger"
	"github.com/MikeBiancalana/calpick/internal/perf"
)

// slowGridThreshold is the grid build time past which a build counts as slow.
const slowGridThreshold = 5 * time.Millisecond

// Panel is one displayed month with its annotated cells.
type Panel struct {
	Viewport Viewport
	Cells    []DayCell
}

// Calendar owns a viewport and a selection and publishes what happens to
// them. All mutations go through setState, which rebuilds the panels before
// returning, so readers always see a view consistent with the state.
type Calendar struct {
	id          string
	opts        Options
	variant     Variant
	loc         *locale.Config
	constraints Constraints
	selection   *Selection
	viewport    Viewport
	double      bool
	focus       dates.Date
	panels      []Panel
	bus         *event.Bus
	now         func() time.Time
	gridStats   *perf.Recorder
}

// New creates a calendar publishing to bus (which may be nil).
func New(opts Options, bus *event.Bus) *Calendar {
	return NewWithClock(opts, bus, time.Now)
}

// NewWithClock is New with an injectable clock for "today" and for the
// default viewport.
func NewWithClock(opts Options, bus *event.Bus, now func() time.Time) *Calendar {
	variant := ParseVariant(opts.Variant)
	c := &Calendar{
		id:          xid.New().String(),
		opts:        opts,
		variant:     variant,
		loc:         locale.Lookup(opts.Locale),
		constraints: NewConstraints(opts.MinDate, opts.MaxDate, opts.DisabledDates, opts.DisabledRule),
		selection:   seedSelection(variant, opts),
		double:      variant == VariantRange && opts.ShowDouble,
		bus:         bus,
		now:         now,
		gridStats:   perf.NewRecorder("calendar.grid", logger.GetLogger(), slowGridThreshold),
	}

	c.setState(func() {
		c.viewport = ViewportOf(c.initialDate())
	})

	logger.Debug("calendar: created", "id", c.id, "variant", c.variant, "locale", c.loc.Code,
		"month", int(c.viewport.Month), "year", c.viewport.Year)
	return c
}

// initialDate picks the day whose month is shown first.
func (c *Calendar) initialDate() dates.Date {
	switch c.variant {
	case VariantSingle:
		if d := c.selection.Date(); !d.IsZero() {
			return d
		}
	case VariantMultiple:
		if list := c.selection.Dates(); len(list) > 0 {
			return list[0]
		}
	case VariantRange:
		if start, _ := c.selection.Range(); !start.IsZero() {
			return start
		}
	}
	return dates.TodayAt(c.now())
}

// setState applies mutate and synchronously rebuilds the derived view.
func (c *Calendar) setState(mutate func()) {
	mutate()
	c.gridStats.Time(c.rebuild)
}

func (c *Calendar) rebuild() {
	today := dates.TodayAt(c.now())
	viewports := []Viewport{c.viewport}
	if c.double {
		viewports = append(viewports, c.viewport.Next())
	}

	build := func() {
		panels := make([]Panel, 0, len(viewports))
		for _, vp := range viewports {
			panels = append(panels, Panel{
				Viewport: vp,
				Cells: BuildGrid(GridInput{
					Viewport:    vp,
					Selection:   c.selection,
					Constraints: c.constraints,
					Today:       today,
					Focus:       c.focus,
				}),
			})
		}
		c.panels = panels
	}
	build()

	// Focus must rest on an enabled in-month cell; otherwise move it to the
	// tab stop of the first panel that has one and annotate again.
	if _, _, ok := c.locate(c.focus); !ok {
		c.focus = dates.Date{}
		for _, p := range c.panels {
			if i := TabStop(p.Cells); i >= 0 {
				c.focus = p.Cells[i].Date
				break
			}
		}
		build()
	}
}

// locate finds the enabled in-month cell showing d.
func (c *Calendar) locate(d dates.Date) (panel, index int, ok bool) {
	if d.IsZero() {
		return 0, 0, false
	}
	for p, panel := range c.panels {
		for i, cell := range panel.Cells {
			if !cell.IsOutsideMonth && dates.SameDay(cell.Date, d) {
				return p, i, cell.Enabled()
			}
		}
	}
	return 0, 0, false
}

// ID returns the instance id carried by published events.
func (c *Calendar) ID() string { return c.id }

// Options returns the configuration the calendar was built from.
func (c *Calendar) Options() Options { return c.opts }

// Variant returns the selection mode.
func (c *Calendar) Variant() Variant { return c.variant }

// Locale returns the resolved locale.
func (c *Calendar) Locale() *locale.Config { return c.loc }

// Constraints returns the constraint set.
func (c *Calendar) Constraints() Constraints { return c.constraints }

// Viewport returns the month shown in the first panel.
func (c *Calendar) Viewport() Viewport { return c.viewport }

// IsDouble reports whether two panels are shown.
func (c *Calendar) IsDouble() bool { return c.double }

// Panels returns the displayed months. Each state change produces a new
// slice; the returned one must not be modified.
func (c *Calendar) Panels() []Panel { return c.panels }

// Selection returns a copy of the current selection.
func (c *Calendar) Selection() *Selection { return c.selection.Clone() }

// Focused returns the roving focus date, zero when nothing can be focused.
func (c *Calendar) Focused() dates.Date { return c.focus }

// FocusedCell returns the panel and index of the focused cell.
func (c *Calendar) FocusedCell() (panel, index int, ok bool) {
	return c.locate(c.focus)
}

// GridStats returns timing statistics of grid builds.
func (c *Calendar) GridStats() *perf.Recorder { return c.gridStats }

// PrevMonth shows the previous month.
func (c *Calendar) PrevMonth() {
	c.GoTo(c.viewport.Prev())
}

// NextMonth shows the next month.
func (c *Calendar) NextMonth() {
	c.GoTo(c.viewport.Next())
}

// SetMonth shows month m of the current year, as a month dropdown would.
func (c *Calendar) SetMonth(m time.Month) {
	c.GoTo(NewViewport(c.viewport.Year, m))
}

// SetYear shows the current month of year y, as a year dropdown would.
func (c *Calendar) SetYear(y int) {
	c.GoTo(NewViewport(y, c.viewport.Month))
}

// GoTo shows viewport v in the first panel. The selection is untouched.
// A month-change event is published only when the viewport changes.
func (c *Calendar) GoTo(v Viewport) {
	v = NewViewport(v.Year, v.Month)
	if v == c.viewport {
		return
	}
	c.setState(func() {
		c.viewport = v
	})

	c.publish(event.MonthChange, event.MonthDetail{
		Month:     int(v.Month) - 1,
		Year:      v.Year,
		MonthName: c.loc.MonthTitle(v.Month),
	})
}

// Activate handles a click on day d. Days that are disabled, outside every
// displayed month, or rejected by the constraint set are ignored and nothing
// is published. It reports whether the click was accepted.
func (c *Calendar) Activate(d dates.Date) bool {
	if _, _, ok := c.locate(d); !ok {
		logger.Debug("calendar: ignoring activation", "id", c.id, "date", d.String())
		return false
	}
	if c.constraints.IsDisabled(d) {
		return false
	}

	var changed bool
	c.setState(func() {
		changed = c.selection.Activate(d)
		c.focus = d
	})

	c.publish(event.DateSelect, event.SelectDetail{
		Date:      d.String(),
		Timestamp: d.UnixMilli(),
	})

	if changed {
		detail := c.selection.Detail()
		c.publish(event.DateChange, detail)
		c.publish(event.CalendarChange, detail)
	}
	return true
}

// ActivateAt activates the cell at index of panel, as a pointer click does.
func (c *Calendar) ActivateAt(panel, index int) bool {
	if panel < 0 || panel >= len(c.panels) {
		return false
	}
	cells := c.panels[panel].Cells
	if index < 0 || index >= len(cells) || !cells[index].Enabled() {
		return false
	}
	return c.Activate(cells[index].Date)
}

// HandleKey applies keyboard navigation or activation to the focused cell.
// It reports whether the key was consumed.
func (c *Calendar) HandleKey(k Key) bool {
	switch k {
	case KeyPageUp:
		c.PrevMonth()
		return true
	case KeyPageDown:
		c.NextMonth()
		return true
	}

	panel, index, ok := c.locate(c.focus)
	if !ok {
		return false
	}

	switch k {
	case KeyEnter, KeySpace:
		return c.Activate(c.focus)

	case KeyTab:
		if !c.double {
			return false
		}
		other := c.panels[1-panel].Cells
		if i := TabStop(other); i >= 0 {
			c.setState(func() { c.focus = other[i].Date })
		}
		return true

	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd:
		cells := c.panels[panel].Cells
		next := Navigate(cells, index, k)
		if next != index {
			c.setState(func() { c.focus = cells[next].Date })
		}
		return true
	}
	return false
}

// Accept publishes the current selection as the host's confirmed value.
func (c *Calendar) Accept() {
	c.publish(event.CalendarAccept, c.selection.Detail())
}

// Cancel tells the host the user dismissed the calendar. The selection is
// left as is.
func (c *Calendar) Cancel() {
	c.publish(event.CalendarCancel, event.CancelDetail{})
}

func (c *Calendar) publish(name event.Name, detail any) {
	c.bus.Publish(event.Event{Name: name, Source: c.id, Detail: detail})
}
