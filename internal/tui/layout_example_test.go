package tui_test

import (
	"fmt"

	"github.com/MikeBiancalana/calpick/internal/tui"
)

// ExampleCalculateLayout demonstrates basic usage of the layout manager
func ExampleCalculateLayout() {
	// A medium single-month dropdown is 32 columns wide
	l := tui.CalculateLayout(80, 24, 32)

	fmt.Printf("Picker at (%d,%d), width %d\n", l.PickerX, l.PickerY, l.PickerWidth)
	fmt.Printf("Body height: %d\n", l.BodyHeight)
	fmt.Printf("Status bar at row %d\n", l.StatusY)

	// Output:
	// Picker at (2,2), width 32
	// Body height: 21
	// Status bar at row 23
}
