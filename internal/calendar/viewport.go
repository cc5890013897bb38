package calendar

import (
	"time"

	"github.com/MikeBiancalana/calpick/internal/dates"
)

// Viewport is the (month, year) a calendar panel displays.
type Viewport struct {
	Month time.Month
	Year  int
}

// NewViewport normalizes month overflow into the year, so month 0 is
// December of the previous year and month 13 January of the next.
func NewViewport(year int, month time.Month) Viewport {
	t := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	return Viewport{Month: t.Month(), Year: t.Year()}
}

// ViewportOf returns the viewport containing d.
func ViewportOf(d dates.Date) Viewport {
	return Viewport{Month: d.Month(), Year: d.Year()}
}

// Add returns the viewport n months away.
func (v Viewport) Add(months int) Viewport {
	return NewViewport(v.Year, v.Month+time.Month(months))
}

// Next returns the following month.
func (v Viewport) Next() Viewport {
	return v.Add(1)
}

// Prev returns the preceding month.
func (v Viewport) Prev() Viewport {
	return v.Add(-1)
}

// First returns the first day of the month.
func (v Viewport) First() dates.Date {
	return dates.New(v.Year, v.Month, 1)
}

// Days returns the number of days in the month.
func (v Viewport) Days() int {
	return dates.DaysIn(v.Year, v.Month)
}

// Contains reports whether d falls inside the month.
func (v Viewport) Contains(d dates.Date) bool {
	return !d.IsZero() && d.Year() == v.Year && d.Month() == v.Month
}
