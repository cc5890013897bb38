package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayShortcuts = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseRelative resolves a date expression against now. Supported forms:
//   - "t" or "today", "tm" or "tomorrow", "y" or "yesterday"
//   - "mon" ... "sun": the next occurrence of that weekday
//   - "+3d", "-2w", "+1m": an offset in days, weeks or months
//   - "YYYY-MM-DD": an absolute date
func ParseRelative(input string, now time.Time) (Date, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	today := TodayAt(now)

	if input == "" {
		return Date{}, fmt.Errorf("empty input")
	}

	if d, ok := Parse(input); ok {
		return d, nil
	}

	switch input {
	case "t", "today":
		return today, nil
	case "tm", "tomorrow":
		return today.AddDays(1), nil
	case "y", "yesterday":
		return today.AddDays(-1), nil
	}

	if wd, ok := weekdayShortcuts[input]; ok {
		return nextWeekday(today, wd), nil
	}

	if len(input) >= 3 && (input[0] == '+' || input[0] == '-') {
		return parseOffset(input, today)
	}

	return Date{}, fmt.Errorf("invalid date expression: %s", input)
}

func parseOffset(input string, today Date) (Date, error) {
	unit := input[len(input)-1]
	n, err := strconv.Atoi(input[1 : len(input)-1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid offset %q: %w", input, err)
	}
	if n < 0 {
		return Date{}, fmt.Errorf("invalid offset %q: sign goes before the number", input)
	}
	if input[0] == '-' {
		n = -n
	}

	switch unit {
	case 'd':
		return today.AddDays(n), nil
	case 'w':
		return today.AddDays(n * 7), nil
	case 'm':
		return FromTime(today.Time().AddDate(0, n, 0)), nil
	default:
		return Date{}, fmt.Errorf("invalid offset unit %q in %s", unit, input)
	}
}

// nextWeekday returns the next wd strictly after from.
func nextWeekday(from Date, wd time.Weekday) Date {
	days := int(wd - from.Weekday())
	if days <= 0 {
		days += 7
	}
	return from.AddDays(days)
}

// ResolveISO rewrites a date expression as an ISO date. Empty input stays
// empty; unresolvable input is returned unchanged so later parsing treats
// it as malformed.
func ResolveISO(input string, now time.Time) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	d, err := ParseRelative(input, now)
	if err != nil {
		return input
	}
	return d.String()
}

// Describe returns a short human description of d relative to now:
// "today", "tomorrow", "yesterday", a weekday name within the coming week,
// "in N weeks" within four weeks, "N days ago" for the past week, and the
// ISO date otherwise.
func Describe(d Date, now time.Time) string {
	if d.IsZero() {
		return ""
	}
	diff := int(d.Time().Sub(TodayAt(now).Time()).Hours() / 24)

	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "tomorrow"
	case diff == -1:
		return "yesterday"
	case diff >= 2 && diff <= 6:
		return d.Weekday().String()
	case diff >= 7 && diff < 28:
		if weeks := diff / 7; weeks > 1 {
			return fmt.Sprintf("in %d weeks", weeks)
		}
		return "in 1 week"
	case diff <= -2 && diff >= -6:
		return fmt.Sprintf("%d days ago", -diff)
	}
	return d.String()
}
