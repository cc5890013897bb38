// Package export writes a confirmed selection to other formats.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/logger"
)

const defaultProductID = "-//calpick//calpick//EN"

// ICSOptions controls calendar export.
type ICSOptions struct {
	Summary   string
	ProductID string
	// Now stamps DTSTAMP; zero means time.Now.
	Now time.Time
}

// Span is an inclusive run of days.
type Span struct {
	Start dates.Date
	End   dates.Date
}

// Spans converts a selection into day spans: one per picked date, or a
// single span for a complete range. A pending range yields nothing.
func Spans(d event.ChangeDetail) []Span {
	switch d.Variant {
	case "range":
		start, okStart := dates.Parse(d.Start)
		end, okEnd := dates.Parse(d.End)
		if !okStart || !okEnd {
			return nil
		}
		return []Span{{Start: start, End: end}}
	default:
		var out []Span
		for _, d := range dates.ParseAll(d.Values()) {
			out = append(out, Span{Start: d, End: d})
		}
		return out
	}
}

// WriteICS writes the selection as an iCalendar document of all-day events.
func WriteICS(w io.Writer, d event.ChangeDetail, opts ICSOptions) error {
	spans := Spans(d)
	if len(spans) == 0 {
		return fmt.Errorf("nothing to export: selection is empty")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	productID := opts.ProductID
	if productID == "" {
		productID = defaultProductID
	}
	summary := opts.Summary
	if summary == "" {
		summary = "calpick selection"
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, s := range spans {
		uid := fmt.Sprintf("%s-%s@calpick", s.Start.String(), s.End.String())
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now.UTC())
		ev.SetSummary(summary)
		ev.SetAllDayStartAt(s.Start.Time())
		// DTEND is exclusive for all-day events.
		ev.SetAllDayEndAt(s.End.AddDays(1).Time())
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}

	logger.Debug("export: wrote ics", "variant", d.Variant, "events", len(spans))
	return nil
}
