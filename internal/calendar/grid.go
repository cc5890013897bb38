package calendar

import (
	"github.com/MikeBiancalana/calpick/internal/dates"
)

// DayCell is one annotated position of a month grid.
type DayCell struct {
	Date           dates.Date
	IsToday        bool
	IsSelected     bool
	IsInRange      bool
	IsRangeStart   bool
	IsRangeEnd     bool
	IsOutsideMonth bool
	IsDisabled     bool
	// IsPreview marks days between a pending range start and the focused day.
	IsPreview bool
	IsFocused bool
}

// Enabled reports whether the cell accepts activation.
func (c DayCell) Enabled() bool {
	return !c.IsDisabled && !c.IsOutsideMonth
}

// GridInput collects everything a grid depends on.
type GridInput struct {
	Viewport    Viewport
	Selection   *Selection
	Constraints Constraints
	Today       dates.Date
	// Focus is the roving focus date; it drives IsFocused and IsPreview.
	Focus dates.Date
}

// BuildGrid lays out the month as whole Sunday-first weeks: trailing days of
// the previous month fill the first row and leading days of the next month
// complete the last one. The result length is a multiple of 7.
func BuildGrid(in GridInput) []DayCell {
	first := in.Viewport.First()
	lead := int(first.Weekday())
	total := lead + in.Viewport.Days()
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	start := first.AddDays(-lead)
	end := start.AddDays(total - 1)
	isDisabled := in.Constraints.disabledSet(start, end)

	sel := in.Selection
	if sel == nil {
		sel = NewSelection(VariantSingle)
	}
	rangeStart, rangeEnd := sel.Range()
	pending := sel.Variant() == VariantRange && sel.RangeState() == RangePending

	cells := make([]DayCell, total)
	for i := range cells {
		d := start.AddDays(i)
		cell := DayCell{
			Date:           d,
			IsToday:        dates.SameDay(d, in.Today),
			IsSelected:     sel.Contains(d),
			IsOutsideMonth: !in.Viewport.Contains(d),
			IsDisabled:     isDisabled(d),
			IsFocused:      dates.SameDay(d, in.Focus),
		}

		if sel.Variant() == VariantRange {
			cell.IsRangeStart = dates.SameDay(d, rangeStart)
			cell.IsRangeEnd = dates.SameDay(d, rangeEnd)
			cell.IsInRange = dates.WithinOpenRange(d, rangeStart, rangeEnd)
			if pending && !in.Focus.IsZero() {
				lo, hi := rangeStart, in.Focus
				if hi.Before(lo) {
					lo, hi = hi, lo
				}
				cell.IsPreview = dates.WithinOpenRange(d, lo, hi)
			}
		}

		cells[i] = cell
	}
	return cells
}
