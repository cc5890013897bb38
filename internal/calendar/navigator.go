package calendar

// Key is a navigation or activation key understood by the calendar.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEnter
	KeySpace
	KeyPageUp
	KeyPageDown
	// KeyTab moves focus to the other panel of a dual-month calendar.
	KeyTab
)

const daysPerWeek = 7

// Navigate returns the index focus moves to from index from when key is
// pressed. Disabled and outside-month cells are skipped; movement stops at
// the grid boundary instead of wrapping. Keys that do not move focus return
// from unchanged. An invalid from is re-seated on the tab stop.
func Navigate(cells []DayCell, from int, key Key) int {
	if from < 0 || from >= len(cells) {
		return TabStop(cells)
	}

	switch key {
	case KeyLeft:
		return step(cells, from, -1)
	case KeyRight:
		return step(cells, from, 1)
	case KeyUp:
		return step(cells, from, -daysPerWeek)
	case KeyDown:
		return step(cells, from, daysPerWeek)
	case KeyHome:
		if i := FirstEnabled(cells); i >= 0 {
			return i
		}
	case KeyEnd:
		if i := LastEnabled(cells); i >= 0 {
			return i
		}
	}
	return from
}

// step walks by delta until it reaches an enabled cell or leaves the grid,
// in which case focus stays where it was.
func step(cells []DayCell, from, delta int) int {
	for i := from + delta; i >= 0 && i < len(cells); i += delta {
		if cells[i].Enabled() {
			return i
		}
	}
	return from
}

// FirstEnabled returns the index of the first enabled in-month cell, or -1.
func FirstEnabled(cells []DayCell) int {
	for i, c := range cells {
		if c.Enabled() {
			return i
		}
	}
	return -1
}

// LastEnabled returns the index of the last enabled in-month cell, or -1.
func LastEnabled(cells []DayCell) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].Enabled() {
			return i
		}
	}
	return -1
}

// TabStop returns the single tab-reachable cell: the first selected enabled
// cell when one exists, else the first enabled cell. It returns -1 when the
// grid has nothing to focus.
func TabStop(cells []DayCell) int {
	for i, c := range cells {
		if c.IsSelected && c.Enabled() {
			return i
		}
	}
	return FirstEnabled(cells)
}
