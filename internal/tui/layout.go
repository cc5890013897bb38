package tui

// Layout holds the screen positions of the TUI parts.
type Layout struct {
	// Title bar
	TitleHeight int // Fixed: 1 line plus a blank line

	// Picker origin, below the title and indented
	PickerX int
	PickerY int

	// Picker input line width
	PickerWidth int

	// Rows left for the dropdown and toasts
	BodyHeight int

	// Bottom bar
	StatusHeight int // Fixed: 1 line
	StatusY      int
}

// pickerIndent is the left margin of the picker.
const pickerIndent = 2

// CalculateLayout computes positions from the terminal size and the width
// the picker's dropdown needs.
func CalculateLayout(termWidth, termHeight, dropdownWidth int) Layout {
	l := Layout{
		TitleHeight:  2,
		StatusHeight: 1,
		PickerX:      pickerIndent,
	}
	l.PickerY = l.TitleHeight

	// Input line is as wide as the dropdown, capped by the terminal.
	l.PickerWidth = dropdownWidth
	if max := termWidth - 2*pickerIndent; l.PickerWidth > max {
		l.PickerWidth = max
	}
	if l.PickerWidth < 0 {
		l.PickerWidth = 0
	}

	l.StatusY = termHeight - l.StatusHeight
	if l.StatusY < 0 {
		l.StatusY = 0
	}

	l.BodyHeight = termHeight - l.TitleHeight - l.StatusHeight
	if l.BodyHeight < 0 {
		l.BodyHeight = 0
	}

	return l
}
