package locale

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/calpick/internal/dates"
	"github.com/MikeBiancalana/calpick/internal/logger"
)

//go:embed locales.yaml
var localesYAML []byte

// Strings holds the UI labels of a locale.
type Strings struct {
	PrevMonth           string `yaml:"prev_month"`
	NextMonth           string `yaml:"next_month"`
	Accept              string `yaml:"accept"`
	Cancel              string `yaml:"cancel"`
	Placeholder         string `yaml:"placeholder"`
	RangePlaceholder    string `yaml:"range_placeholder"`
	MultiplePlaceholder string `yaml:"multiple_placeholder"`
	RangeSeparator      string `yaml:"range_separator"`
	ListSeparator       string `yaml:"list_separator"`
}

// Config is the static description of one locale.
type Config struct {
	Code          string   `yaml:"-"`
	Weekdays      []string `yaml:"weekdays"`
	WeekdaysShort []string `yaml:"weekdays_short"`
	Months        []string `yaml:"months"`
	MonthsShort   []string `yaml:"months_short"`
	DateLayout    string   `yaml:"date_layout"`
	Strings       Strings  `yaml:"strings"`

	tag language.Tag
}

type table struct {
	Default string             `yaml:"default"`
	Locales map[string]*Config `yaml:"locales"`
}

var (
	loadOnce sync.Once
	locales  map[string]*Config
	codes    []string
	fallback string
	matcher  language.Matcher
	// matchOrder maps matcher indexes back to locale codes.
	matchOrder []string
)

func load() {
	loadOnce.Do(func() {
		var t table
		if err := yaml.Unmarshal(localesYAML, &t); err != nil {
			// The table is compiled in; a parse failure is a build defect.
			panic(fmt.Sprintf("locale: invalid embedded table: %v", err))
		}

		locales = make(map[string]*Config, len(t.Locales))
		for code, cfg := range t.Locales {
			if err := cfg.validate(); err != nil {
				panic(fmt.Sprintf("locale %s: %v", code, err))
			}
			cfg.Code = code
			cfg.tag = language.Make(code)
			locales[code] = cfg
			codes = append(codes, code)
		}
		sort.Strings(codes)

		fallback = t.Default
		if _, ok := locales[fallback]; !ok {
			panic(fmt.Sprintf("locale: default %q is not defined", fallback))
		}

		// The fallback goes first so that the matcher prefers it on a miss.
		matchOrder = append(matchOrder, fallback)
		for _, code := range codes {
			if code != fallback {
				matchOrder = append(matchOrder, code)
			}
		}
		tags := make([]language.Tag, len(matchOrder))
		for i, code := range matchOrder {
			tags[i] = locales[code].tag
		}
		matcher = language.NewMatcher(tags)
	})
}

func (c *Config) validate() error {
	switch {
	case len(c.Weekdays) != 7 || len(c.WeekdaysShort) != 7:
		return fmt.Errorf("expected 7 weekday names")
	case len(c.Months) != 12 || len(c.MonthsShort) != 12:
		return fmt.Errorf("expected 12 month names")
	case c.DateLayout == "":
		return fmt.Errorf("missing date layout")
	}
	return nil
}

// Default returns the code of the fallback locale.
func Default() string {
	load()
	return fallback
}

// Codes returns the supported locale codes, sorted.
func Codes() []string {
	load()
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// Lookup returns the locale for code. Regional variants resolve to their
// base language ("es-MX" to "es"); anything unsupported resolves to the
// default locale.
func Lookup(code string) *Config {
	load()

	code = strings.TrimSpace(code)
	if cfg, ok := locales[strings.ToLower(code)]; ok {
		return cfg
	}

	tag, err := language.Parse(code)
	if err != nil {
		logger.Debug("locale: unparseable code, using default", "code", code, "default", fallback)
		return locales[fallback]
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		logger.Debug("locale: unsupported code, using default", "code", code, "default", fallback)
		return locales[fallback]
	}

	return locales[matchOrder[index]]
}

// MonthName returns the full month name in the locale's own casing.
func (c *Config) MonthName(m time.Month) string {
	return c.Months[int(m)-1]
}

// MonthTitle returns the month name title-cased for headers ("Enero").
func (c *Config) MonthTitle(m time.Month) string {
	return cases.Title(c.tag).String(c.MonthName(m))
}

// MonthShort returns the abbreviated month name.
func (c *Config) MonthShort(m time.Month) string {
	return c.MonthsShort[int(m)-1]
}

// WeekdayShort returns the abbreviated weekday name.
func (c *Config) WeekdayShort(d time.Weekday) string {
	return c.WeekdaysShort[int(d)]
}

// FormatDate renders d using the locale's display layout.
func (c *Config) FormatDate(d dates.Date) string {
	return d.Format(c.DateLayout)
}

// Placeholder returns the empty-input hint for a selection variant.
func (c *Config) Placeholder(variant string) string {
	switch variant {
	case "range":
		return c.Strings.RangePlaceholder
	case "multiple":
		return c.Strings.MultiplePlaceholder
	default:
		return c.Strings.Placeholder
	}
}
