package calendar

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/logger"
)

// ruleAnchor is the DTSTART used for a disabled rule when neither the rule
// nor minDate provides one.
var ruleAnchor = dates.New(2000, time.January, 1)

// Constraints is the read-only set of bounds and disabled days.
// It does not validate itself: minDate after maxDate simply disables every
// day.
type Constraints struct {
	min      dates.Date
	max      dates.Date
	disabled map[string]struct{}
	rule     *rrule.RRule
}

// NewConstraints builds a constraint set from ISO strings. Malformed dates
// are ignored. rule is an optional RFC 5545 recurrence ("FREQ=WEEKLY;BYDAY=SA,SU")
// whose occurrences are disabled; a malformed rule is ignored.
func NewConstraints(minDate, maxDate string, disabled []string, rule string) Constraints {
	c := Constraints{disabled: make(map[string]struct{})}

	if d, ok := dates.Parse(minDate); ok {
		c.min = d
	} else if minDate != "" {
		logger.Debug("calendar: ignoring malformed minDate", "value", minDate)
	}
	if d, ok := dates.Parse(maxDate); ok {
		c.max = d
	} else if maxDate != "" {
		logger.Debug("calendar: ignoring malformed maxDate", "value", maxDate)
	}

	for _, raw := range SplitDateList(disabled) {
		if d, ok := dates.Parse(raw); ok {
			c.disabled[d.String()] = struct{}{}
		} else {
			logger.Debug("calendar: ignoring malformed disabled date", "value", raw)
		}
	}

	if rule = strings.TrimSpace(rule); rule != "" {
		r, err := parseRule(rule, c.min)
		if err != nil {
			logger.Warn("calendar: ignoring malformed disabled rule", "rule", rule, "error", err)
		} else {
			c.rule = r
		}
	}

	return c
}

func parseRule(text string, min dates.Date) (*rrule.RRule, error) {
	text = strings.TrimPrefix(text, "RRULE:")
	opt, err := rrule.StrToROption(text)
	if err != nil {
		return nil, err
	}
	if opt.Dtstart.IsZero() {
		anchor := ruleAnchor
		if !min.IsZero() {
			anchor = min
		}
		opt.Dtstart = anchor.Time()
	} else {
		// Keep occurrences at noon UTC like every other Date.
		opt.Dtstart = dates.FromTime(opt.Dtstart).Time()
	}
	return rrule.NewRRule(*opt)
}

// Min returns the lower bound, or the zero Date.
func (c Constraints) Min() dates.Date { return c.min }

// Max returns the upper bound, or the zero Date.
func (c Constraints) Max() dates.Date { return c.max }

// HasRule reports whether a recurring disabled rule is active.
func (c Constraints) HasRule() bool { return c.rule != nil }

// IsDisabled reports whether d may not be selected.
func (c Constraints) IsDisabled(d dates.Date) bool {
	if c.outOfBounds(d) {
		return true
	}
	if _, ok := c.disabled[d.String()]; ok {
		return true
	}
	if c.rule != nil {
		return len(c.rule.Between(d.Time(), d.Time(), true)) > 0
	}
	return false
}

func (c Constraints) outOfBounds(d dates.Date) bool {
	if !c.min.IsZero() && d.Before(c.min) {
		return true
	}
	if !c.max.IsZero() && d.After(c.max) {
		return true
	}
	return false
}

// disabledSet resolves every disabled day in [from, to] at once, which is
// cheaper than asking the recurrence rule day by day.
func (c Constraints) disabledSet(from, to dates.Date) func(dates.Date) bool {
	var ruleDays map[string]struct{}
	if c.rule != nil {
		ruleDays = make(map[string]struct{})
		for _, t := range c.rule.Between(from.Time(), to.Time(), true) {
			ruleDays[dates.FromTime(t).String()] = struct{}{}
		}
	}

	return func(d dates.Date) bool {
		if c.outOfBounds(d) {
			return true
		}
		key := d.String()
		if _, ok := c.disabled[key]; ok {
			return true
		}
		_, ok := ruleDays[key]
		return ok
	}
}
