package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/logger"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// warningTags are validation tags whose failures are reported but not
// fatal: a malformed date or rule is treated as absent downstream.
var warningTags = map[string]struct{}{
	"datetime": {},
	"rrule":    {},
}

// ValidationError describes one rejected option.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("rrule", func(fl validator.FieldLevel) bool {
			text := strings.TrimPrefix(strings.TrimSpace(fl.Field().String()), "RRULE:")
			_, err := rrule.StrToROption(text)
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// LoadOptions reads picker options from a YAML file. Unknown keys are
// rejected.
func LoadOptions(path string) (calendar.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calendar.Options{}, fmt.Errorf("failed to read options file: %w", err)
	}

	opts, err := DecodeOptions(bytes.NewReader(data))
	if err != nil {
		return calendar.Options{}, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	logger.Debug("config: loaded options", "path", path, "variant", opts.Variant, "locale", opts.Locale)
	return opts, nil
}

// DecodeOptions decodes YAML options from r. An empty document yields zero
// options.
func DecodeOptions(r io.Reader) (calendar.Options, error) {
	var opts calendar.Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return calendar.Options{}, err
	}
	return opts, nil
}

// EncodeOptions writes opts as YAML.
func EncodeOptions(w io.Writer, opts calendar.Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(opts); err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	return enc.Close()
}

// ValidateOptions checks opts. Structural problems (unknown variant, size
// or locale tag) are returned as a *ValidationError. Malformed dates and
// rules only produce warnings, since the calendar ignores them.
func ValidateOptions(opts calendar.Options) (warnings []string, err error) {
	verr := validatorInstance().Struct(opts)
	if verr == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(verr, &fieldErrs) {
		return nil, &ValidationError{Field: "options", Message: verr.Error(), Err: verr}
	}

	for _, fe := range fieldErrs {
		if _, soft := warningTags[fe.Tag()]; soft {
			warnings = append(warnings, fmt.Sprintf("%s: ignoring %q (expected %s)", fe.Field(), fmt.Sprint(fe.Value()), expectation(fe)))
			continue
		}
		if err == nil {
			err = &ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("invalid value %q (%s)", fmt.Sprint(fe.Value()), expectation(fe)),
				Err:     verr,
			}
		}
	}

	for _, w := range warnings {
		logger.Warn("config: " + w)
	}
	return warnings, err
}

func expectation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return "YYYY-MM-DD"
	case "rrule":
		return "an RFC 5545 recurrence rule"
	case "oneof":
		return "one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "bcp47_language_tag":
		return "a BCP 47 language tag"
	}
	return fe.Tag()
}

// ResolveDates rewrites relative date expressions ("today", "+30d", "fri")
// in every date field as ISO dates.
func ResolveDates(opts calendar.Options, now time.Time) calendar.Options {
	resolve := func(s string) string { return dates.ResolveISO(s, now) }
	resolveAll := func(in []string) []string {
		if in == nil {
			return nil
		}
		out := []string{}
		for _, s := range calendar.SplitDateList(in) {
			out = append(out, resolve(s))
		}
		return out
	}

	opts.MinDate = resolve(opts.MinDate)
	opts.MaxDate = resolve(opts.MaxDate)
	opts.SelectedDate = resolve(opts.SelectedDate)
	opts.RangeStart = resolve(opts.RangeStart)
	opts.RangeEnd = resolve(opts.RangeEnd)
	opts.SelectedDates = resolveAll(opts.SelectedDates)
	opts.DisabledDates = resolveAll(opts.DisabledDates)
	return opts
}

// optionFields maps option keys to a copier from src to dst.
var optionFields = map[string]func(dst *calendar.Options, src calendar.Options){
	"variant":       func(d *calendar.Options, s calendar.Options) { d.Variant = s.Variant },
	"locale":        func(d *calendar.Options, s calendar.Options) { d.Locale = s.Locale },
	"minDate":       func(d *calendar.Options, s calendar.Options) { d.MinDate = s.MinDate },
	"maxDate":       func(d *calendar.Options, s calendar.Options) { d.MaxDate = s.MaxDate },
	"disabledDates": func(d *calendar.Options, s calendar.Options) { d.DisabledDates = s.DisabledDates },
	"disabledRule":  func(d *calendar.Options, s calendar.Options) { d.DisabledRule = s.DisabledRule },
	"selectedDate":  func(d *calendar.Options, s calendar.Options) { d.SelectedDate = s.SelectedDate },
	"selectedDates": func(d *calendar.Options, s calendar.Options) { d.SelectedDates = s.SelectedDates },
	"rangeStart":    func(d *calendar.Options, s calendar.Options) { d.RangeStart = s.RangeStart },
	"rangeEnd":      func(d *calendar.Options, s calendar.Options) { d.RangeEnd = s.RangeEnd },
	"showFooter":    func(d *calendar.Options, s calendar.Options) { d.ShowFooter = s.ShowFooter },
	"showDouble":    func(d *calendar.Options, s calendar.Options) { d.ShowDouble = s.ShowDouble },
	"size":          func(d *calendar.Options, s calendar.Options) { d.Size = s.Size },
	"disabled":      func(d *calendar.Options, s calendar.Options) { d.Disabled = s.Disabled },
	"readonly":      func(d *calendar.Options, s calendar.Options) { d.ReadOnly = s.ReadOnly },
}

// OptionKeys returns every option key accepted by Merge.
func OptionKeys() []string {
	keys := make([]string, 0, len(optionFields))
	for k := range optionFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge overlays the fields of override named by changed onto base.
// Unknown keys are ignored.
func Merge(base, override calendar.Options, changed []string) calendar.Options {
	for _, key := range changed {
		if set, ok := optionFields[key]; ok {
			set(&base, override)
		}
	}
	return base
}
