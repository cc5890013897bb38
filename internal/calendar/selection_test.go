package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleSelectionReplaces(t *testing.T) {
	sel := NewSelection(VariantSingle)
	assert.True(t, sel.IsEmpty())

	assert.True(t, sel.Activate(mustDate(t, "2024-01-15")))
	assert.True(t, sel.Activate(mustDate(t, "2024-01-16")))
	assert.Equal(t, "2024-01-16", sel.Date().String())

	// Clicking the same day again keeps it and still reports a change.
	assert.True(t, sel.Activate(mustDate(t, "2024-01-16")))
	assert.Equal(t, "2024-01-16", sel.Date().String())
}

func TestMultipleSelectionToggles(t *testing.T) {
	d := mustDate(t, "2024-03-05")
	other := mustDate(t, "2024-03-01")

	for clicks := 1; clicks <= 6; clicks++ {
		sel := NewSelection(VariantMultiple)
		sel.Activate(other)
		for i := 0; i < clicks; i++ {
			assert.True(t, sel.Activate(d))
		}

		count := 0
		for _, x := range sel.Dates() {
			if x == d {
				count++
			}
		}
		if clicks%2 == 0 {
			assert.Equal(t, 0, count, "%d clicks", clicks)
		} else {
			assert.Equal(t, 1, count, "%d clicks", clicks)
		}
		assert.True(t, sel.Contains(other), "other days are untouched")
	}
}

func TestMultipleSelectionDetailIsSorted(t *testing.T) {
	sel := NewSelection(VariantMultiple)
	sel.Activate(mustDate(t, "2024-03-09"))
	sel.Activate(mustDate(t, "2024-03-02"))
	sel.Activate(mustDate(t, "2024-03-05"))

	detail := sel.Detail()
	assert.Equal(t, "multiple", detail.Variant)
	assert.Equal(t, []string{"2024-03-02", "2024-03-05", "2024-03-09"}, detail.Dates)
}

func TestRangeSelectionOrdering(t *testing.T) {
	tests := []struct {
		name       string
		first      string
		second     string
		start, end string
	}{
		{"in order", "2024-02-10", "2024-02-20", "2024-02-10", "2024-02-20"},
		{"reversed", "2024-02-20", "2024-02-10", "2024-02-10", "2024-02-20"},
		{"same day", "2024-02-10", "2024-02-10", "2024-02-10", "2024-02-10"},
		{"across years", "2025-01-03", "2024-12-28", "2024-12-28", "2025-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(VariantRange)
			assert.Equal(t, RangeEmpty, sel.RangeState())

			assert.False(t, sel.Activate(mustDate(t, tt.first)), "starting a range is not a change")
			assert.Equal(t, RangePending, sel.RangeState())

			assert.True(t, sel.Activate(mustDate(t, tt.second)), "completing a range is a change")
			assert.Equal(t, RangeComplete, sel.RangeState())

			start, end := sel.Range()
			assert.Equal(t, tt.start, start.String())
			assert.Equal(t, tt.end, end.String())
			assert.False(t, end.Before(start))
		})
	}
}

func TestRangeSelectionRestartsAfterCompletion(t *testing.T) {
	sel := NewSelection(VariantRange)
	sel.Activate(mustDate(t, "2024-02-10"))
	sel.Activate(mustDate(t, "2024-02-20"))

	assert.False(t, sel.Activate(mustDate(t, "2024-02-25")))
	start, end := sel.Range()
	assert.Equal(t, "2024-02-25", start.String())
	assert.True(t, end.IsZero())
	assert.Equal(t, RangePending, sel.RangeState())
}

func TestSeedSelection(t *testing.T) {
	single := seedSelection(VariantSingle, Options{SelectedDate: "2024-05-01"})
	assert.Equal(t, "2024-05-01", single.Date().String())

	invalid := seedSelection(VariantSingle, Options{SelectedDate: "2024-05-40"})
	assert.True(t, invalid.IsEmpty())

	multiple := seedSelection(VariantMultiple, Options{SelectedDates: []string{"2024-05-03", "bad", "2024-05-01", "2024-05-03"}})
	assert.Equal(t, []string{"2024-05-01", "2024-05-03"}, multiple.Detail().Dates)

	swapped := seedSelection(VariantRange, Options{RangeStart: "2024-05-20", RangeEnd: "2024-05-10"})
	start, end := swapped.Range()
	assert.Equal(t, "2024-05-10", start.String())
	assert.Equal(t, "2024-05-20", end.String())

	joined := seedSelection(VariantMultiple, Options{SelectedDates: []string{"2024-05-09,2024-05-02"}})
	assert.Equal(t, []string{"2024-05-02", "2024-05-09"}, joined.Detail().Dates)

	endOnly := seedSelection(VariantRange, Options{RangeEnd: "2024-05-10"})
	assert.Equal(t, RangeEmpty, endOnly.RangeState())
}

func TestSelectionClone(t *testing.T) {
	sel := NewSelection(VariantMultiple)
	sel.Activate(mustDate(t, "2024-05-01"))

	clone := sel.Clone()
	clone.Activate(mustDate(t, "2024-05-02"))

	assert.Len(t, sel.Dates(), 1)
	assert.Len(t, clone.Dates(), 2)
}

func TestParseVariantAndSize(t *testing.T) {
	assert.Equal(t, VariantRange, ParseVariant("Range"))
	assert.Equal(t, VariantMultiple, ParseVariant(" multiple "))
	assert.Equal(t, VariantSingle, ParseVariant("weekly"))
	assert.Equal(t, SizeLarge, ParseSize("large"))
	assert.Equal(t, SizeMedium, ParseSize(""))
}

func TestSplitDateList(t *testing.T) {
	assert.Equal(t,
		[]string{"2024-01-01", "2024-01-02", "2024-01-03"},
		SplitDateList([]string{"2024-01-01, 2024-01-02", "", "2024-01-03"}))
}
