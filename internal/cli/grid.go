package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/tui/components"
)

func newGridCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grid [YYYY-MM]",
		Short: "Print a month grid to stdout",
		Long: `Prints the calendar as the picker would draw it, without starting the
interactive UI. The month defaults to the one the options would open on.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := ro.resolveOptions(cmd)
			if err != nil {
				return err
			}

			cal := calendar.NewWithClock(opts, nil, ro.now)
			if len(args) == 1 {
				month, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("invalid month %q (expected YYYY-MM): %w", args[0], err)
				}
				cal.GoTo(calendar.NewViewport(month.Year(), month.Month()))
			}

			view := components.NewCalendarView(cal, components.DefaultKeyMap())
			view.SetFocused(false)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), view.View())
			return err
		},
	}
}
