package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/locale"
)

// runInteractiveOptions asks for the main picker options before launch.
func runInteractiveOptions(opts calendar.Options) (calendar.Options, error) {
	variant := string(calendar.ParseVariant(opts.Variant))
	code := locale.Lookup(opts.Locale).Code
	size := string(calendar.ParseSize(opts.Size))
	double := opts.ShowDouble
	footer := opts.ShowFooter

	localeOptions := make([]huh.Option[string], 0, len(locale.Codes()))
	for _, c := range locale.Codes() {
		localeOptions = append(localeOptions, huh.NewOption(c, c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Selection").
				Options(
					huh.NewOption("Single date", string(calendar.VariantSingle)),
					huh.NewOption("Date range", string(calendar.VariantRange)),
					huh.NewOption("Several dates", string(calendar.VariantMultiple)),
				).
				Value(&variant),
			huh.NewSelect[string]().
				Title("Locale").
				Options(localeOptions...).
				Value(&code),
			huh.NewSelect[string]().
				Title("Size").
				Options(huh.NewOptions(
					string(calendar.SizeSmall),
					string(calendar.SizeMedium),
					string(calendar.SizeLarge),
				)...).
				Value(&size),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show two months?").
				Value(&double),
			huh.NewConfirm().
				Title("Show Accept and Cancel buttons?").
				Value(&footer),
		),
	)

	if err := form.Run(); err != nil {
		return opts, fmt.Errorf("form cancelled: %w", err)
	}

	opts.Variant = variant
	opts.Locale = code
	opts.Size = size
	opts.ShowDouble = double
	opts.ShowFooter = footer
	return opts, nil
}
