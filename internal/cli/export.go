package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/export"
)

func newExportCmd(ro *rootOptions) *cobra.Command {
	var outputPath string
	var summary string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured selection as iCalendar",
		Long: `Writes the selection given by the options (selectedDate, selectedDates or
rangeStart/rangeEnd) as all-day iCalendar events, without starting the
interactive UI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := ro.resolveOptions(cmd)
			if err != nil {
				return err
			}

			detail := calendar.NewWithClock(opts, nil, ro.now).Selection().Detail()
			icsOpts := export.ICSOptions{Summary: summary, Now: ro.now()}
			if outputPath != "" {
				return writeICSFile(outputPath, detail, icsOpts)
			}

			if err := export.WriteICS(cmd.OutOrStdout(), detail, icsOpts); err != nil {
				return fmt.Errorf("failed to export selection: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&summary, "summary", "", "Event summary")
	return cmd
}
