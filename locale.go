// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"gonih.org/datetime/internal/cache"
)

// LocaleOptions selects a locale. Empty fields mean "use the default".
type LocaleOptions struct {
	// Locale is a BCP 47 tag such as "en-US" or "ar-EG-u-nu-arab".
	Locale string
	// NumberingSystem overrides the digits used, such as "latn" or "arab".
	NumberingSystem string
	// OutputCalendar is carried for display purposes only; all computation
	// uses the Gregorian calendar.
	OutputCalendar string
}

// A Locale determines the names and numerals used when formatting and
// parsing. Locales are small immutable values and compare with [Locale.Equal].
// The zero Locale is en-US.
type Locale struct {
	tag             language.Tag
	numberingSystem string
	outputCalendar  string
}

var defaultTag = language.AmericanEnglish

type localeResult struct {
	loc Locale
	err error
}

// locales caches resolved locales by their options.
var locales cache.Cache[LocaleOptions, localeResult]

// NewLocale resolves opts to a Locale. Numbering system and calendar may also
// be given as Unicode extensions of the tag ("-u-nu-", "-u-ca-"); explicit
// options take precedence.
func NewLocale(opts LocaleOptions) (Locale, error) {
	r := locales.Get(opts, resolveLocale)
	return r.loc, r.err
}

// ParseLocale is NewLocale with only a tag.
func ParseLocale(tag string) (Locale, error) {
	return NewLocale(LocaleOptions{Locale: tag})
}

func resolveLocale(opts LocaleOptions) localeResult {
	tag := defaultTag
	if opts.Locale != "" {
		t, err := language.Parse(opts.Locale)
		if err != nil {
			return localeResult{err: errors.Mark(errors.Wrapf(err, "invalid locale %q", opts.Locale), ErrInvalidArgument)}
		}
		tag = t
	}
	l := Locale{tag: tag, numberingSystem: opts.NumberingSystem, outputCalendar: opts.OutputCalendar}
	if l.numberingSystem == "" {
		l.numberingSystem = tag.TypeForKey("nu")
	}
	if l.outputCalendar == "" {
		l.outputCalendar = tag.TypeForKey("ca")
	}
	if l.numberingSystem != "" && l.numberingSystem != "hanidec" {
		if _, ok := numberingDigits[l.numberingSystem]; !ok {
			return localeResult{err: invalidArgument("unsupported numbering system %q", l.numberingSystem)}
		}
	}
	if l.outputCalendar != "" {
		if _, err := language.ParseExtension("u-ca-" + l.outputCalendar); err != nil {
			return localeResult{err: errors.Mark(errors.Wrapf(err, "invalid output calendar %q", l.outputCalendar), ErrInvalidArgument)}
		}
	}
	return localeResult{loc: l}
}

// defaultLocale builds a Locale from the process-wide defaults overlaid with
// opts.
func defaultLocale(opts LocaleOptions) (Locale, error) {
	def := defaultLocaleOptions()
	if opts.Locale != "" {
		def.Locale = opts.Locale
	}
	if opts.NumberingSystem != "" {
		def.NumberingSystem = opts.NumberingSystem
	}
	if opts.OutputCalendar != "" {
		def.OutputCalendar = opts.OutputCalendar
	}
	return NewLocale(def)
}

func (l Locale) langTag() language.Tag {
	if l.tag.IsRoot() {
		return defaultTag
	}
	return l.tag
}

// Tag returns the BCP 47 tag of l.
func (l Locale) Tag() string { return l.langTag().String() }

// NumberingSystem returns the numbering system, or "" for the default.
func (l Locale) NumberingSystem() string { return l.numberingSystem }

// OutputCalendar returns the output calendar, or "" for the default.
func (l Locale) OutputCalendar() string { return l.outputCalendar }

// Equal reports whether l and o select the same tag, numbering system and
// calendar.
func (l Locale) Equal(o Locale) bool {
	return l.Tag() == o.Tag() && l.numberingSystem == o.numberingSystem && l.outputCalendar == o.outputCalendar
}

// Clone returns l with the non-empty fields of opts applied.
func (l Locale) Clone(opts LocaleOptions) (Locale, error) {
	if opts.Locale == "" {
		opts.Locale = l.Tag()
	}
	if opts.NumberingSystem == "" {
		opts.NumberingSystem = l.numberingSystem
	}
	if opts.OutputCalendar == "" {
		opts.OutputCalendar = l.outputCalendar
	}
	return NewLocale(opts)
}

// ListingMode returns "en" if the builtin English names and Latin digits
// can be used directly, and "intl" otherwise.
func (l Locale) ListingMode() string {
	base, _ := l.langTag().Base()
	english := base.String() == "en"
	plain := (l.numberingSystem == "" || l.numberingSystem == "latn") &&
		(l.outputCalendar == "" || l.outputCalendar == "gregory")
	if english && plain {
		return "en"
	}
	return "intl"
}

// String implements fmt.Stringer.
func (l Locale) String() string { return l.Tag() }

// numberingDigits maps a numbering system to its zero digit.
var numberingDigits = map[string]rune{
	"latn":     '0',
	"arab":     '٠',
	"arabext":  '۰',
	"beng":     '০',
	"deva":     '०',
	"fullwide": '０',
	"gujr":     '૦',
	"khmr":     '០',
	"knda":     '೦',
	"laoo":     '໐',
	"mlym":     '൦',
	"mymr":     '၀',
	"orya":     '୦',
	"tamldec":  '௦',
	"telu":     '౦',
	"thai":     '๐',
	"tibt":     '༠',
}

// hanidec digits are not contiguous.
var hanidec = []rune("〇一二三四五六七八九")

// localizeDigits replaces ASCII digits in s with the digits of l's
// numbering system.
func (l Locale) localizeDigits(s string) string {
	ns := l.numberingSystem
	if ns == "" || ns == "latn" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return r
		}
		if ns == "hanidec" {
			return hanidec[r-'0']
		}
		return numberingDigits[ns] + (r - '0')
	}, s)
}

// delocalizeDigits replaces digits of any supported numbering system with
// ASCII digits.
func delocalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 {
			return r
		}
		for i, h := range hanidec {
			if r == h {
				return '0' + rune(i)
			}
		}
		for _, zero := range numberingDigits {
			if zero <= r && r <= zero+9 {
				return '0' + (r - zero)
			}
		}
		return r
	}, s)
}

// currentLocale returns the default locale, or en-US if the defaults do not
// resolve.
func currentLocale() Locale {
	l, err := defaultLocale(LocaleOptions{})
	if err != nil {
		return Locale{}
	}
	return l
}

// formatNumber renders v with grouping and up to three decimals, using l's
// separators and digits.
func (l Locale) formatNumber(v float64) string {
	s := humanize.CommafWithDigits(v, 3)
	if n := l.catalog().Number; n.Decimal != "" {
		var b strings.Builder
		for _, r := range s {
			switch r {
			case ',':
				b.WriteString(n.Group)
			case '.':
				b.WriteString(n.Decimal)
			default:
				b.WriteRune(r)
			}
		}
		s = b.String()
	}
	return l.localizeDigits(s)
}

// formatInt renders n with at least width digits in l's numbering system.
func (l Locale) formatInt(n, width int) string {
	return l.localizeDigits(string(appendInt(nil, n, width)))
}

// Name tables.

type nameStyles struct {
	Long   []string `yaml:"long"`
	Short  []string `yaml:"short"`
	Narrow []string `yaml:"narrow"`
}

func (n *nameStyles) get(style nameStyle) []string {
	switch style {
	case styleShort:
		return n.Short
	case styleNarrow:
		return n.Narrow
	}
	return n.Long
}

type unitPhrases struct {
	One      string `yaml:"one"`
	Other    string `yaml:"other"`
	RelOne   string `yaml:"relOne"`
	RelOther string `yaml:"relOther"`
	Short    string `yaml:"short"`
}

type catalog struct {
	Months    nameStyles `yaml:"months"`
	Weekdays  nameStyles `yaml:"weekdays"`
	Meridiems []string   `yaml:"meridiems"`
	Eras      nameStyles `yaml:"eras"`
	List      string     `yaml:"list"`
	Number    struct {
		Decimal string `yaml:"decimal"`
		Group   string `yaml:"group"`
	} `yaml:"number"`
	Relative struct {
		Future string                       `yaml:"future"`
		Past   string                       `yaml:"past"`
		Units  map[string]unitPhrases       `yaml:"units"`
		Auto   map[string]map[string]string `yaml:"auto"`
	} `yaml:"relative"`
	Macros    map[string]string `yaml:"macros"`
	ZoneNames map[string]string `yaml:"zoneNames"`
}

type nameStyle int

const (
	styleLong nameStyle = iota
	styleShort
	styleNarrow
)

//go:embed catalog.yaml
var catalogYAML []byte

var catalogs struct {
	once    sync.Once
	byLang  []*catalog
	matcher language.Matcher
}

func loadCatalogs() {
	var raw map[string]*catalog
	if err := yaml.Unmarshal(catalogYAML, &raw); err != nil {
		panic(errors.Wrap(err, "decoding builtin locale catalog"))
	}
	// English first, so that it is the matcher's fallback.
	tags := []language.Tag{language.English}
	catalogs.byLang = []*catalog{raw["en"]}
	for name, c := range raw {
		if name == "en" {
			continue
		}
		tags = append(tags, language.MustParse(name))
		catalogs.byLang = append(catalogs.byLang, c)
	}
	catalogs.matcher = language.NewMatcher(tags)
}

// catalog returns the best-matching name catalog for l.
func (l Locale) catalog() *catalog {
	catalogs.once.Do(loadCatalogs)
	_, i, conf := catalogs.matcher.Match(l.langTag())
	if conf == language.No {
		return catalogs.byLang[0]
	}
	return catalogs.byLang[i]
}

// months returns the month names in the given style, January first.
func (l Locale) months(style nameStyle) []string {
	return l.catalog().Months.get(style)
}

// weekdays returns the weekday names in the given style, Monday first.
func (l Locale) weekdays(style nameStyle) []string {
	return l.catalog().Weekdays.get(style)
}

// macro returns the layout a macro token expands to, such as "M/d/yyyy" for
// "D".
func (l Locale) macro(token string) (string, bool) {
	if m, ok := l.catalog().Macros[token]; ok {
		return m, true
	}
	m, ok := catalogs.byLang[0].Macros[token]
	return m, ok
}

func (l Locale) meridiems() []string {
	return l.catalog().Meridiems
}

func (l Locale) eras(style nameStyle) []string {
	return l.catalog().Eras.get(style)
}
