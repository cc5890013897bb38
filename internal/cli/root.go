package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/config"
	"github.com/MikeBiancalana/calpick/internal/export"
	"github.com/MikeBiancalana/calpick/internal/logger"
	"github.com/MikeBiancalana/calpick/internal/sync"
	"github.com/MikeBiancalana/calpick/internal/tui"
)

// rootOptions holds the flag values of one command tree.
type rootOptions struct {
	configPath  string
	watch       bool
	interactive bool
	icsPath     string
	format      string
	title       string

	picker calendar.Options
	now    func() time.Time
}

// flagKeys maps option flags to the option keys understood by config.Merge.
var flagKeys = map[string]string{
	"variant":        "variant",
	"locale":         "locale",
	"min-date":       "minDate",
	"max-date":       "maxDate",
	"disabled-dates": "disabledDates",
	"disabled-rule":  "disabledRule",
	"selected-date":  "selectedDate",
	"selected-dates": "selectedDates",
	"range-start":    "rangeStart",
	"range-end":      "rangeEnd",
	"show-footer":    "showFooter",
	"show-double":    "showDouble",
	"size":           "size",
	"disabled":       "disabled",
	"readonly":       "readonly",
}

// RootCmd is the root command for the CLI
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	ro := &rootOptions{now: time.Now}

	cmd := &cobra.Command{
		Use:   "calpick",
		Short: "calpick - terminal date picker",
		Long: `An interactive calendar for picking a date, a range of dates or several dates.
Options come from an options file (~/.calpick/options.yaml by default) and
flags; flags win. Date flags accept ISO dates or relative expressions such
as today, +2w or fri.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, ro)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&ro.configPath, "config", "", "Options file (default ~/.calpick/options.yaml)")
	registerOptionFlags(pf, &ro.picker)

	f := cmd.Flags()
	f.BoolVar(&ro.watch, "watch", false, "Reload the options file when it changes")
	f.BoolVarP(&ro.interactive, "interactive", "i", false, "Choose variant and locale in a form first")
	f.StringVar(&ro.icsPath, "ics", "", "Also write the selection to an iCalendar file")
	f.StringVar(&ro.format, "format", "text", "Output format (text, json, tsv)")
	f.StringVar(&ro.title, "title", "", "Title shown above the picker")

	cmd.AddCommand(newGridCmd(ro))
	cmd.AddCommand(newExportCmd(ro))
	return cmd, ro
}

func registerOptionFlags(flags *pflag.FlagSet, o *calendar.Options) {
	flags.StringVar(&o.Variant, "variant", "", "Selection mode (single, range, multiple)")
	flags.StringVar(&o.Locale, "locale", "", "Locale code (es, en, pt, fr)")
	flags.StringVar(&o.MinDate, "min-date", "", "Earliest selectable day")
	flags.StringVar(&o.MaxDate, "max-date", "", "Latest selectable day")
	flags.StringSliceVar(&o.DisabledDates, "disabled-dates", nil, "Days that cannot be selected")
	flags.StringVar(&o.DisabledRule, "disabled-rule", "", "Recurrence rule of days that cannot be selected (RFC 5545)")
	flags.StringVar(&o.SelectedDate, "selected-date", "", "Initially selected day (single)")
	flags.StringSliceVar(&o.SelectedDates, "selected-dates", nil, "Initially selected days (multiple)")
	flags.StringVar(&o.RangeStart, "range-start", "", "Initial range start (range)")
	flags.StringVar(&o.RangeEnd, "range-end", "", "Initial range end (range)")
	flags.BoolVar(&o.ShowFooter, "show-footer", false, "Show Accept and Cancel buttons")
	flags.BoolVar(&o.ShowDouble, "show-double", false, "Show two months side by side")
	flags.StringVar(&o.Size, "size", "", "Cell size (small, medium, large)")
	flags.BoolVar(&o.Disabled, "disabled", false, "Render the picker disabled")
	flags.BoolVar(&o.ReadOnly, "readonly", false, "Only the trigger opens the calendar")
}

// changedKeys lists the option keys whose flags were set on the command line.
func changedKeys(cmd *cobra.Command) []string {
	var keys []string
	for flag, key := range flagKeys {
		if cmd.Flags().Changed(flag) {
			keys = append(keys, key)
		}
	}
	return keys
}

// optionsPath returns the options file to read, or "" when the default
// file does not exist. An explicit --config must exist.
func (ro *rootOptions) optionsPath() (string, error) {
	if ro.configPath != "" {
		if _, err := os.Stat(ro.configPath); err != nil {
			return "", fmt.Errorf("failed to open options file: %w", err)
		}
		return ro.configPath, nil
	}

	path, err := config.DefaultOptionsPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return path, nil
}

// loader returns a function that reads the options file at a path and
// applies the command line on top, as the initial load does.
func (ro *rootOptions) loader(changed []string, warn io.Writer) sync.LoadFunc {
	flags := ro.picker
	return func(path string) (calendar.Options, error) {
		base := calendar.Options{}
		if path != "" {
			loaded, err := config.LoadOptions(path)
			if err != nil {
				return calendar.Options{}, err
			}
			base = loaded
		}

		opts := config.ResolveDates(config.Merge(base, flags, changed), ro.now())
		warnings, err := config.ValidateOptions(opts)
		for _, w := range warnings {
			fmt.Fprintln(warn, "warning:", w)
		}
		if err != nil {
			return calendar.Options{}, fmt.Errorf("invalid options: %w", err)
		}
		return opts, nil
	}
}

// resolveOptions loads the options file and applies the flags.
func (ro *rootOptions) resolveOptions(cmd *cobra.Command) (calendar.Options, string, error) {
	path, err := ro.optionsPath()
	if err != nil {
		return calendar.Options{}, "", err
	}
	opts, err := ro.loader(changedKeys(cmd), cmd.ErrOrStderr())(path)
	return opts, path, err
}

// runPicker launches the TUI and prints the result.
func runPicker(cmd *cobra.Command, ro *rootOptions) error {
	format, err := parseFormat(ro.format)
	if err != nil {
		return err
	}

	opts, path, err := ro.resolveOptions(cmd)
	if err != nil {
		return err
	}

	if ro.interactive {
		if opts, err = runInteractiveOptions(opts); err != nil {
			return err
		}
	}

	// The UI draws on stderr when stdout is redirected, so the result can be
	// piped.
	var output *os.File
	switch {
	case term.IsTerminal(int(os.Stdout.Fd())):
		output = os.Stdout
	case term.IsTerminal(int(os.Stderr.Fd())):
		output = os.Stderr
	default:
		return fmt.Errorf("calpick needs a terminal; use 'calpick grid' or 'calpick export' in scripts")
	}

	if err := initTUILogger(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}
	defer logger.Close()

	var watcher *sync.Watcher
	if ro.watch {
		if path == "" {
			return fmt.Errorf("--watch needs an options file")
		}
		watcher, err = sync.NewWatcher(path, ro.loader(changedKeys(cmd), io.Discard))
		if err != nil {
			return fmt.Errorf("failed to watch options: %w", err)
		}
		defer watcher.Stop()
	}

	model := tui.NewModel(tui.Config{
		Options: opts,
		Watcher: watcher,
		Now:     ro.now,
		Title:   ro.title,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(output),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}

	res := model.Result()
	if ro.icsPath != "" && !res.Cancelled {
		if err := writeICSFile(ro.icsPath, res.Value, export.ICSOptions{Now: ro.now()}); err != nil {
			return err
		}
	}
	return writeResult(cmd.OutOrStdout(), res, format)
}

// initTUILogger sends logs to ~/.calpick/logs so they never draw over the
// alternate screen.
func initTUILogger() error {
	cfg := logger.Config{
		Level:   logger.GetLevel().String(),
		Format:  logger.GetFormat(),
		TUIMode: true,
	}
	dir, err := config.LogDir()
	if err == nil {
		cfg.File = filepath.Join(dir, logger.FileName)
	}
	if initErr := logger.InitializeWithConfig(cfg); initErr != nil {
		return initErr
	}
	if err != nil {
		return fmt.Errorf("failed to prepare log directory: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
