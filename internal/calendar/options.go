package calendar

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Variant is the selection mode of a calendar.
type Variant string

const (
	VariantSingle   Variant = "single"
	VariantRange    Variant = "range"
	VariantMultiple Variant = "multiple"
)

// ParseVariant maps a configuration string to a Variant. Unknown values fall
// back to single selection.
func ParseVariant(s string) Variant {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantRange:
		return VariantRange
	case VariantMultiple:
		return VariantMultiple
	default:
		return VariantSingle
	}
}

// Size is the visual scale of a rendered calendar. It has no effect on
// selection behavior.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ParseSize maps a configuration string to a Size, defaulting to medium.
func ParseSize(s string) Size {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall
	case SizeLarge:
		return SizeLarge
	default:
		return SizeMedium
	}
}

// Options is the host-facing configuration of a Calendar or DatePicker.
// Date fields are ISO strings; malformed values are treated as absent.
type Options struct {
	Variant       string   `yaml:"variant,omitempty" validate:"omitempty,oneof=single range multiple"`
	Locale        string   `yaml:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`
	MinDate       string   `yaml:"minDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaxDate       string   `yaml:"maxDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DisabledDates []string `yaml:"disabledDates,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
	DisabledRule  string   `yaml:"disabledRule,omitempty" validate:"omitempty,rrule"`
	SelectedDate  string   `yaml:"selectedDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SelectedDates []string `yaml:"selectedDates,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
	RangeStart    string   `yaml:"rangeStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RangeEnd      string   `yaml:"rangeEnd,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShowFooter    bool     `yaml:"showFooter,omitempty"`
	ShowDouble    bool     `yaml:"showDouble,omitempty"`
	Size          string   `yaml:"size,omitempty" validate:"omitempty,oneof=small medium large"`
	Disabled      bool     `yaml:"disabled,omitempty"`
	ReadOnly      bool     `yaml:"readonly,omitempty"`
}

// SplitDateList splits comma-separated attribute values into a list, the
// way disabledDates and selectedDates are written on the command line.
func SplitDateList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// UnmarshalYAML accepts date lists written as a sequence, as one
// comma-separated scalar, or as a mix of both.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i].Value, node.Content[i+1]
			if key != "disabledDates" && key != "selectedDates" {
				continue
			}
			if value.Kind == yaml.ScalarNode && value.ShortTag() != "!!null" {
				node.Content[i+1] = &yaml.Node{
					Kind:    yaml.SequenceNode,
					Tag:     "!!seq",
					Content: []*yaml.Node{value},
				}
			}
		}
	}

	type plain Options
	if err := node.Decode((*plain)(o)); err != nil {
		return err
	}
	o.DisabledDates = SplitDateList(o.DisabledDates)
	o.SelectedDates = SplitDateList(o.SelectedDates)
	return nil
}
