package event

// Name identifies an event kind. Values match the host-facing contract.
type Name string

const (
	DateSelect       Name = "date-select"
	DateChange       Name = "date-change"
	CalendarChange   Name = "calendar-change"
	MonthChange      Name = "month-change"
	CalendarAccept   Name = "calendar-accept"
	CalendarCancel   Name = "calendar-cancel"
	DatePickerChange Name = "datepicker-change"
	DatePickerOpen   Name = "datepicker-open"
	DatePickerClose  Name = "datepicker-close"
)

// Event is a published notification.
// Source is the id of the component instance that produced it.
type Event struct {
	Name   Name
	Source string
	Detail any
}

// SelectDetail is the payload of DateSelect.
type SelectDetail struct {
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

// ChangeDetail is the payload of DateChange, CalendarChange and CalendarAccept.
// Only the fields relevant to Variant are set.
type ChangeDetail struct {
	Variant string   `json:"variant"`
	Date    string   `json:"date,omitempty"`
	Dates   []string `json:"dates,omitempty"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
}

// Values returns the raw ISO values carried by the detail in a variant
// independent shape.
func (d ChangeDetail) Values() []string {
	switch d.Variant {
	case "multiple":
		out := make([]string, len(d.Dates))
		copy(out, d.Dates)
		return out
	case "range":
		var out []string
		if d.Start != "" {
			out = append(out, d.Start)
		}
		if d.End != "" {
			out = append(out, d.End)
		}
		return out
	default:
		if d.Date == "" {
			return nil
		}
		return []string{d.Date}
	}
}

// MonthDetail is the payload of MonthChange. Month is zero-based (January
// is 0), as hosts index month names.
type MonthDetail struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	MonthName string `json:"monthName"`
}

// CancelDetail is the payload of CalendarCancel.
type CancelDetail struct{}

// PickerChangeDetail is the payload of DatePickerChange.
type PickerChangeDetail struct {
	Value          []string `json:"value"`
	FormattedValue string   `json:"formattedValue"`
	ChangeDetail
}

// VisibilityDetail is the payload of DatePickerOpen and DatePickerClose.
type VisibilityDetail struct {
	Open bool `json:"open"`
}
