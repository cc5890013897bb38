package dates

import (
	"strings"
	"time"
)

// ISOLayout is the only accepted wire format for dates.
const ISOLayout = "2006-01-02"

// noonHour pins every Date to the middle of the UTC day so that day-level
// comparisons survive any timezone or DST shift applied by a caller.
const noonHour = 12

// Date is a calendar day normalized to noon UTC.
// The zero value represents an absent date.
type Date struct {
	t time.Time
}

// New returns the date for year/month/day. Out of range values normalize the
// same way time.Date does (month 13 is January of the next year).
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, noonHour, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day t falls on in its own location.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

// TodayAt returns the UTC day of now.
func TodayAt(now time.Time) Date {
	return FromTime(now.UTC())
}

// Parse parses a strict YYYY-MM-DD string.
// It reports false for empty input, non-numeric components, wrong lengths and
// days that do not exist (2025-02-30).
func Parse(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if len(s) != len(ISOLayout) || s[4] != '-' || s[7] != '-' {
		return Date{}, false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return Date{}, false
		}
	}

	parsed, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, false
	}
	return New(parsed.Year(), parsed.Month(), parsed.Day()), true
}

// ParseList splits a comma-separated list and keeps only the valid dates,
// preserving their order.
func ParseList(s string) []Date {
	var out []Date
	for _, part := range strings.Split(s, ",") {
		if d, ok := Parse(part); ok {
			out = append(out, d)
		}
	}
	return out
}

// ParseAll parses each value as a comma-separated list and drops the
// malformed dates.
func ParseAll(values []string) []Date {
	out := make([]Date, 0, len(values))
	for _, v := range values {
		out = append(out, ParseList(v)...)
	}
	return out
}

// String formats the date as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ISOLayout)
}

// Format formats the date with a time layout.
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// Time returns the underlying instant (noon UTC).
func (d Date) Time() time.Time {
	return d.t
}

// UnixMilli returns the millisecond timestamp of the underlying instant.
func (d Date) UnixMilli() int64 {
	return d.t.UnixMilli()
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return New(d.Year(), d.Month(), d.Day()+n)
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// After reports whether d is a later day than o.
func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	return d.t.Compare(o.t)
}

// SameDay compares the UTC year, month and day of both dates.
// It is false when either date is absent.
func SameDay(a, b Date) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.t.Date()
	by, bm, bd := b.t.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether d is the current UTC day.
func IsToday(d Date) bool {
	return isTodayWithNow(d, time.Now())
}

func isTodayWithNow(d Date, now time.Time) bool {
	return SameDay(d, TodayAt(now))
}

// WithinOpenRange reports start < d < end. Endpoints are excluded.
func WithinOpenRange(d, start, end Date) bool {
	if d.IsZero() || start.IsZero() || end.IsZero() {
		return false
	}
	return start.Before(d) && d.Before(end)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
