// Package picker implements the DatePicker policy on top of a Calendar: the
// open flag, the formatted display value and the auto-close rule. Rendering
// lives in the tui components.
package picker

import (
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/locale"
	"github.com/MikeBiancalana/calpick/internal/logger"
)

// AutoCloseDelay is how long a picker stays open after a completed single
// or range selection.
const AutoCloseDelay = 300 * time.Millisecond

// Picker wraps a calendar in an openable dropdown. Calendar events are
// forwarded to the host bus, followed by the picker's own events.
type Picker struct {
	id   string
	opts calendar.Options
	now  func() time.Time

	cal    *calendar.Calendar
	calBus *event.Bus
	host   *event.Bus
	unsubs []func()

	open      bool
	value     event.ChangeDetail
	formatted string

	closePending bool
	tornDown     bool
}

// New creates a closed picker publishing to host (which may be nil).
func New(opts calendar.Options, host *event.Bus) *Picker {
	return NewWithClock(opts, host, time.Now)
}

// NewWithClock is New with an injectable clock passed to the calendar.
func NewWithClock(opts calendar.Options, host *event.Bus, now func() time.Time) *Picker {
	p := &Picker{
		id:   xid.New().String(),
		host: host,
		now:  now,
	}
	p.attach(opts)
	logger.Debug("picker: created", "id", p.id, "variant", p.cal.Variant())
	return p
}

// attach builds a calendar for opts and subscribes to it.
func (p *Picker) attach(opts calendar.Options) {
	p.opts = opts
	p.calBus = event.NewBus()
	p.cal = calendar.NewWithClock(opts, p.calBus, p.now)

	p.unsubs = append(p.unsubs,
		p.calBus.Subscribe("", p.forward),
		p.calBus.Subscribe(event.CalendarChange, p.onCalendarChange),
		p.calBus.Subscribe(event.CalendarAccept, func(event.Event) { p.Close() }),
		p.calBus.Subscribe(event.CalendarCancel, func(event.Event) { p.Close() }),
	)

	p.value = event.ChangeDetail{Variant: string(p.cal.Variant())}
	p.formatted = ""
	if sel := p.cal.Selection(); !sel.IsEmpty() {
		p.value = sel.Detail()
		p.formatted = Format(p.cal.Locale(), p.value)
	}
}

func (p *Picker) detach() {
	for _, unsubscribe := range p.unsubs {
		unsubscribe()
	}
	p.unsubs = nil
}

// forward re-publishes calendar events on the host bus.
func (p *Picker) forward(e event.Event) {
	p.host.Publish(e)
}

func (p *Picker) onCalendarChange(e event.Event) {
	detail, ok := e.Detail.(event.ChangeDetail)
	if !ok {
		return
	}

	p.value = detail
	p.formatted = Format(p.cal.Locale(), detail)

	p.publish(event.DatePickerChange, event.PickerChangeDetail{
		Value:          detail.Values(),
		FormattedValue: p.formatted,
		ChangeDetail:   detail,
	})

	if completes(detail) {
		p.closePending = true
	}
}

// completes reports whether a change ends the interaction: any single pick
// or a range with both ends. Multiple selection keeps the picker open.
func completes(d event.ChangeDetail) bool {
	switch calendar.Variant(d.Variant) {
	case calendar.VariantSingle:
		return d.Date != ""
	case calendar.VariantRange:
		return d.Start != "" && d.End != ""
	default:
		return false
	}
}

// Format renders a selection for the display input.
func Format(loc *locale.Config, d event.ChangeDetail) string {
	format := func(iso string) string {
		if date, ok := dates.Parse(iso); ok {
			return loc.FormatDate(date)
		}
		return iso
	}

	switch calendar.Variant(d.Variant) {
	case calendar.VariantRange:
		switch {
		case d.Start != "" && d.End != "":
			return format(d.Start) + loc.Strings.RangeSeparator + format(d.End)
		case d.Start != "":
			return format(d.Start)
		}
		return ""
	case calendar.VariantMultiple:
		parts := make([]string, 0, len(d.Dates))
		for _, iso := range d.Dates {
			parts = append(parts, format(iso))
		}
		return strings.Join(parts, loc.Strings.ListSeparator)
	default:
		if d.Date == "" {
			return ""
		}
		return format(d.Date)
	}
}

// ID returns the instance id carried by picker events.
func (p *Picker) ID() string { return p.id }

// Calendar returns the hosted calendar.
func (p *Picker) Calendar() *calendar.Calendar { return p.cal }

// Options returns the configuration the picker was built from.
func (p *Picker) Options() calendar.Options { return p.opts }

// IsOpen reports whether the dropdown is shown.
func (p *Picker) IsOpen() bool { return p.open }

// Value returns the last committed selection.
func (p *Picker) Value() event.ChangeDetail { return p.value }

// FormattedValue returns the display string, empty when nothing is selected.
func (p *Picker) FormattedValue() string { return p.formatted }

// Placeholder returns the hint shown while nothing is selected.
func (p *Picker) Placeholder() string {
	return p.cal.Locale().Placeholder(string(p.cal.Variant()))
}

// Interactive reports whether the input may open the dropdown.
func (p *Picker) Interactive() bool {
	return !p.opts.Disabled && !p.opts.ReadOnly
}

// Toggle flips the dropdown, as a click on the trigger button does.
// A disabled picker never opens.
func (p *Picker) Toggle() {
	if p.open {
		p.Close()
		return
	}
	if p.opts.Disabled {
		return
	}
	p.Open()
}

// ActivateInput opens the dropdown from a click on the input, unless the
// picker is disabled or read-only.
func (p *Picker) ActivateInput() {
	if !p.Interactive() {
		return
	}
	p.Open()
}

// ClickOutside handles a pointer press outside the picker. It only closes.
func (p *Picker) ClickOutside() {
	p.Close()
}

// Open shows the dropdown.
func (p *Picker) Open() {
	if p.open || p.tornDown {
		return
	}
	p.open = true
	p.publish(event.DatePickerOpen, event.VisibilityDetail{Open: true})
}

// Close hides the dropdown.
func (p *Picker) Close() {
	if !p.open {
		return
	}
	p.open = false
	p.closePending = false
	p.publish(event.DatePickerClose, event.VisibilityDetail{Open: false})
}

// TakeAutoClose reports, once, that a completed selection asked for the
// dropdown to close after AutoCloseDelay. The host schedules the timer and
// calls AutoClose when it fires.
func (p *Picker) TakeAutoClose() bool {
	pending := p.closePending && p.open && !p.tornDown
	p.closePending = false
	return pending
}

// AutoClose closes the dropdown when the delay elapses. A timer that fires
// after Teardown is ignored.
func (p *Picker) AutoClose() {
	if p.tornDown {
		logger.Debug("picker: ignoring auto-close after teardown", "id", p.id)
		return
	}
	p.Close()
}

// Reconfigure replaces the calendar with one built from opts, keeping the
// open state.
func (p *Picker) Reconfigure(opts calendar.Options) {
	if p.tornDown {
		return
	}
	p.detach()
	p.attach(opts)
	if p.open && opts.Disabled {
		p.Close()
	}
	logger.Info("picker: reconfigured", "id", p.id, "variant", p.cal.Variant(), "locale", p.cal.Locale().Code)
}

// Teardown removes every listener the picker registered. Pending auto-close
// timers become no-ops. It is safe to call more than once.
func (p *Picker) Teardown() {
	if p.tornDown {
		return
	}
	p.detach()
	p.tornDown = true
	p.closePending = false
	logger.Debug("picker: torn down", "id", p.id)
}

func (p *Picker) publish(name event.Name, detail any) {
	if p.tornDown {
		return
	}
	p.host.Publish(event.Event{Name: name, Source: p.id, Detail: detail})
}
