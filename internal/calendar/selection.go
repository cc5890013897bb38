package calendar

import (
	"sort"

	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/event"
)

// RangeState is the progress of a range selection.
type RangeState int

const (
	RangeEmpty RangeState = iota
	RangePending
	RangeComplete
)

func (s RangeState) String() string {
	switch s {
	case RangePending:
		return "pending"
	case RangeComplete:
		return "complete"
	default:
		return "empty"
	}
}

// Selection holds the chosen date(s) for one variant.
type Selection struct {
	variant Variant
	date    dates.Date
	dates   []dates.Date
	start   dates.Date
	end     dates.Date
}

// NewSelection returns an empty selection.
func NewSelection(v Variant) *Selection {
	return &Selection{variant: v}
}

// seedSelection builds the initial selection from options. Malformed or
// incomplete values are dropped: a range end without a start is ignored.
func seedSelection(v Variant, opts Options) *Selection {
	s := NewSelection(v)

	switch v {
	case VariantSingle:
		if d, ok := dates.Parse(opts.SelectedDate); ok {
			s.date = d
		}
	case VariantMultiple:
		for _, d := range dates.ParseAll(opts.SelectedDates) {
			if !s.Contains(d) {
				s.dates = append(s.dates, d)
			}
		}
	case VariantRange:
		start, okStart := dates.Parse(opts.RangeStart)
		end, okEnd := dates.Parse(opts.RangeEnd)
		if okStart {
			s.start = start
			if okEnd {
				s.end = end
				if end.Before(start) {
					s.start, s.end = end, start
				}
			}
		}
	}
	return s
}

// Variant returns the selection mode.
func (s *Selection) Variant() Variant { return s.variant }

// Date returns the single-mode date.
func (s *Selection) Date() dates.Date { return s.date }

// Dates returns the multiple-mode dates in ascending order.
func (s *Selection) Dates() []dates.Date {
	out := make([]dates.Date, len(s.dates))
	copy(out, s.dates)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Range returns the range-mode endpoints; either may be zero.
func (s *Selection) Range() (start, end dates.Date) {
	return s.start, s.end
}

// RangeState reports how far a range selection has progressed.
func (s *Selection) RangeState() RangeState {
	switch {
	case s.start.IsZero():
		return RangeEmpty
	case s.end.IsZero():
		return RangePending
	default:
		return RangeComplete
	}
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	switch s.variant {
	case VariantMultiple:
		return len(s.dates) == 0
	case VariantRange:
		return s.start.IsZero()
	default:
		return s.date.IsZero()
	}
}

// Contains reports whether d is rendered as selected. For ranges only the
// endpoints count; interior days are "in range".
func (s *Selection) Contains(d dates.Date) bool {
	switch s.variant {
	case VariantMultiple:
		return s.indexOf(d) >= 0
	case VariantRange:
		return dates.SameDay(d, s.start) || dates.SameDay(d, s.end)
	default:
		return dates.SameDay(d, s.date)
	}
}

func (s *Selection) indexOf(d dates.Date) int {
	for i, existing := range s.dates {
		if dates.SameDay(existing, d) {
			return i
		}
	}
	return -1
}

// Activate applies a click on d and reports whether the selection reached a
// stable shape that warrants a change notification. The caller must have
// already rejected disabled and outside-month days.
func (s *Selection) Activate(d dates.Date) bool {
	switch s.variant {
	case VariantMultiple:
		if i := s.indexOf(d); i >= 0 {
			s.dates = append(s.dates[:i:i], s.dates[i+1:]...)
		} else {
			s.dates = append(s.dates, d)
		}
		return true

	case VariantRange:
		if s.RangeState() != RangePending {
			s.start = d
			s.end = dates.Date{}
			return false
		}
		if d.Before(s.start) {
			s.start, s.end = d, s.start
		} else {
			s.end = d
		}
		return true

	default:
		s.date = d
		return true
	}
}

// Detail returns the change payload for the current selection.
func (s *Selection) Detail() event.ChangeDetail {
	detail := event.ChangeDetail{Variant: string(s.variant)}
	switch s.variant {
	case VariantMultiple:
		list := s.Dates()
		detail.Dates = make([]string, len(list))
		for i, d := range list {
			detail.Dates[i] = d.String()
		}
	case VariantRange:
		detail.Start = s.start.String()
		detail.End = s.end.String()
	default:
		detail.Date = s.date.String()
	}
	return detail
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	c := *s
	c.dates = make([]dates.Date, len(s.dates))
	copy(c.dates, s.dates)
	return &c
}
