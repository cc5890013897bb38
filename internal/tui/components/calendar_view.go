package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/logger"
	"github.com/MikeBiancalana/calpick/internal/perf"
)

const (
	// panelGap is the number of blank columns between two month panels.
	panelGap = 2
	// gridTop is the row of the first week, below the header and weekdays.
	gridTop = 2

	slowRenderThreshold = 10 * time.Millisecond
)

// CellWidth returns the column width of one day cell for a size.
func CellWidth(size calendar.Size) int {
	switch size {
	case calendar.SizeSmall:
		return 3
	case calendar.SizeLarge:
		return 5
	default:
		return 4
	}
}

// HitKind classifies a position inside a CalendarView.
type HitKind int

const (
	HitNone HitKind = iota
	HitPrevMonth
	HitNextMonth
	HitDay
	HitAccept
	HitCancel
)

// Hit is the result of a hit test.
type Hit struct {
	Kind  HitKind
	Panel int
	Index int
}

// CalendarView renders a Calendar and feeds it keys and mouse clicks.
type CalendarView struct {
	cal       *calendar.Calendar
	keys      KeyMap
	cellWidth int
	focused   bool
	originX   int
	originY   int

	renderStats *perf.Recorder
}

// NewCalendarView creates a view of cal.
func NewCalendarView(cal *calendar.Calendar, keys KeyMap) *CalendarView {
	v := &CalendarView{
		keys:        keys,
		focused:     true,
		renderStats: perf.NewRecorder("calendar.render", logger.GetLogger(), slowRenderThreshold),
	}
	v.SetCalendar(cal)
	return v
}

// SetCalendar swaps the displayed calendar.
func (v *CalendarView) SetCalendar(cal *calendar.Calendar) {
	v.cal = cal
	v.cellWidth = CellWidth(calendar.ParseSize(cal.Options().Size))
}

// Calendar returns the displayed calendar.
func (v *CalendarView) Calendar() *calendar.Calendar {
	return v.cal
}

// SetFocused controls whether the focused day is highlighted.
func (v *CalendarView) SetFocused(focused bool) {
	v.focused = focused
}

// SetOrigin records where the view is drawn on screen, so mouse
// coordinates can be translated.
func (v *CalendarView) SetOrigin(x, y int) {
	v.originX, v.originY = x, y
}

// RenderStats returns timing statistics of View.
func (v *CalendarView) RenderStats() *perf.Recorder {
	return v.renderStats
}

func (v *CalendarView) panelWidth() int {
	return v.cellWidth * 7
}

// Width returns the rendered width in columns.
func (v *CalendarView) Width() int {
	n := len(v.cal.Panels())
	return n*v.panelWidth() + (n-1)*panelGap
}

// Height returns the rendered height in rows.
func (v *CalendarView) Height() int {
	rows := 0
	for _, p := range v.cal.Panels() {
		if weeks := len(p.Cells) / 7; weeks > rows {
			rows = weeks
		}
	}
	h := gridTop + rows
	if v.cal.Options().ShowFooter {
		h += 2
	}
	return h
}

// Update applies a key or mouse message. It reports whether the message
// was consumed.
func (v *CalendarView) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.MouseMsg:
		return v.handleMouse(msg)
	}
	return false
}

func (v *CalendarView) handleKey(msg tea.KeyMsg) bool {
	if v.cal.Options().ShowFooter {
		switch {
		case key.Matches(msg, v.keys.Accept):
			v.cal.Accept()
			return true
		case key.Matches(msg, v.keys.Cancel):
			v.cal.Cancel()
			return true
		}
	}

	k := v.keys.CalendarKey(msg)
	if k == calendar.KeyNone {
		return false
	}
	return v.cal.HandleKey(k)
}

func (v *CalendarView) handleMouse(msg tea.MouseMsg) bool {
	x, y := msg.X-v.originX, msg.Y-v.originY

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if !v.Contains(x, y) {
			return false
		}
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.cal.PrevMonth()
		return true
	case tea.MouseButtonWheelDown:
		v.cal.NextMonth()
		return true
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}

	hit := v.HitTest(x, y)
	switch hit.Kind {
	case HitPrevMonth:
		v.cal.PrevMonth()
	case HitNextMonth:
		v.cal.NextMonth()
	case HitDay:
		v.cal.ActivateAt(hit.Panel, hit.Index)
	case HitAccept:
		v.cal.Accept()
	case HitCancel:
		v.cal.Cancel()
	default:
		return false
	}
	return true
}

// Contains reports whether view-relative (x, y) lies inside the view.
func (v *CalendarView) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.Width() && y < v.Height()
}

// HitTest classifies view-relative (x, y).
func (v *CalendarView) HitTest(x, y int) Hit {
	if !v.Contains(x, y) {
		return Hit{}
	}

	if y == 0 {
		switch {
		case x < v.cellWidth:
			return Hit{Kind: HitPrevMonth}
		case x >= v.Width()-v.cellWidth:
			return Hit{Kind: HitNextMonth}
		}
		return Hit{}
	}

	if v.cal.Options().ShowFooter && y == v.Height()-1 {
		cancel, accept := v.footerLabels()
		cancelWidth := lipgloss.Width(cancel)
		switch {
		case x < cancelWidth:
			return Hit{Kind: HitCancel}
		case x > cancelWidth && x <= cancelWidth+lipgloss.Width(accept):
			return Hit{Kind: HitAccept}
		}
		return Hit{}
	}

	row := y - gridTop
	if row < 0 {
		return Hit{}
	}
	stride := v.panelWidth() + panelGap
	panel, within := x/stride, x%stride
	if within >= v.panelWidth() {
		return Hit{}
	}
	panels := v.cal.Panels()
	if panel >= len(panels) {
		return Hit{}
	}
	index := row*7 + within/v.cellWidth
	if index >= len(panels[panel].Cells) {
		return Hit{}
	}
	return Hit{Kind: HitDay, Panel: panel, Index: index}
}

// View renders the calendar.
func (v *CalendarView) View() string {
	var out string
	v.renderStats.Time(func() {
		out = v.render()
	})
	return out
}

func (v *CalendarView) render() string {
	panels := v.cal.Panels()
	views := make([]string, 0, len(panels)*2)
	for i, p := range panels {
		if i > 0 {
			views = append(views, strings.Repeat(" ", panelGap))
		}
		views = append(views, v.renderPanel(i, len(panels), p))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, views...)

	if !v.cal.Options().ShowFooter {
		return body
	}
	cancel, accept := v.footerLabels()
	footer := calendarButtonStyle.Render(cancel) + " " + calendarButtonStyle.Render(accept)
	return body + "\n\n" + footer
}

func (v *CalendarView) footerLabels() (cancel, accept string) {
	s := v.cal.Locale().Strings
	return "[" + s.Cancel + "]", "[" + s.Accept + "]"
}

func (v *CalendarView) renderPanel(i, count int, p calendar.Panel) string {
	loc := v.cal.Locale()
	width := v.panelWidth()

	prev := strings.Repeat(" ", v.cellWidth)
	if i == 0 {
		prev = calendarArrowStyle.Width(v.cellWidth).Align(lipgloss.Left).Render("‹")
	}
	next := strings.Repeat(" ", v.cellWidth)
	if i == count-1 {
		next = calendarArrowStyle.Width(v.cellWidth).Align(lipgloss.Right).Render("›")
	}
	titleWidth := width - 2*v.cellWidth
	title := fmt.Sprintf("%s %d", loc.MonthTitle(p.Viewport.Month), p.Viewport.Year)
	header := prev + calendarHeaderStyle.Width(titleWidth).MaxWidth(titleWidth).Align(lipgloss.Center).Render(title) + next

	var weekdays strings.Builder
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdays.WriteString(calendarWeekdayStyle.Width(v.cellWidth).Align(lipgloss.Center).Render(loc.WeekdayShort(d)))
	}

	lines := []string{header, weekdays.String()}
	for row := 0; row*7 < len(p.Cells); row++ {
		var line strings.Builder
		for _, cell := range p.Cells[row*7 : row*7+7] {
			line.WriteString(v.renderCell(cell))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func (v *CalendarView) renderCell(c calendar.DayCell) string {
	style := dayStyle
	switch {
	case c.IsOutsideMonth:
		style = dayOutsideStyle
	case c.IsSelected || c.IsRangeStart || c.IsRangeEnd:
		style = daySelectedStyle
		if c.IsDisabled {
			style = style.Strikethrough(true)
		}
	case c.IsDisabled:
		style = dayDisabledStyle
	case c.IsInRange:
		style = dayInRangeStyle
	case c.IsPreview:
		style = dayPreviewStyle
	case c.IsToday:
		style = dayTodayStyle
	}
	if c.IsFocused && v.focused {
		style = style.Inherit(dayFocusedStyle)
	}
	return style.Width(v.cellWidth).Align(lipgloss.Center).Render(fmt.Sprintf("%d", c.Date.Day()))
}
