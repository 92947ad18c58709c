// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"regexp"
	"strconv"
	"strings"
)

// Building blocks of the ISO 8601 and SQL grammars. Each group captures one
// field, so extractors consume submatches positionally.
const (
	reISOYmd      = `([+-]\d{6}|\d{4})(?:-?(\d\d)(?:-?(\d\d))?)?`
	reISOWeek     = `(\d{4})-?W(\d\d)(?:-?(\d))?`
	reISOOrdinal  = `(\d{4})-?(\d{3})`
	reISOTimeBase = `(\d\d)(?::?(\d\d)(?::?(\d\d)(?:[.,](\d{1,30}))?)?)?`
	reOffset      = `(?:([Zz])|([+-]\d\d)(?::?(\d\d))?)`
	reIANA        = `([A-Za-z_+-]{1,256}(?:/[A-Za-z0-9_+-]{1,256}){0,2})`

	reISOTime    = reISOTimeBase + `(?:` + reOffset + `)?(?:\[` + reIANA + `\])?`
	reISOTimeExt = `(?:T` + reISOTime + `)?`
	reSQLTime    = reISOTimeBase + `(?: ?` + reOffset + `)?(?: ` + reIANA + `)?`
)

// A grammar is one alternative of a text format: a regular expression and
// the function turning its submatches into fields and a zone.
type grammar struct {
	re      *regexp.Regexp
	extract func(m []string) extracted
}

type extracted struct {
	v      Values
	zone   Zone
	offset int
}

func anchored(parts ...string) *regexp.Regexp {
	return regexp.MustCompile("^" + strings.Join(parts, "") + "$")
}

var isoGrammars = []grammar{
	{anchored(reISOYmd, reISOTimeExt), extractYmdTime},
	{anchored(reISOWeek, reISOTimeExt), extractWeekTime},
	{anchored(reISOOrdinal, reISOTimeExt), extractOrdinalTime},
	{anchored(`T?`, reISOTime), extractTime},
}

var sqlGrammars = []grammar{
	{anchored(`(\d{4})-(\d\d)-(\d\d)`, `(?: `+reSQLTime+`)?`), extractYmdTime},
	{anchored(reSQLTime), extractTime},
}

// FromISO parses an ISO 8601 date-time, such as "2016-05-25T09:08:34.123",
// "2016-W21-3", "2016-200T09:24+06:00" or "09:24:15". A bracketed IANA zone
// may follow the time, as in "2016-05-25T09:08:34-04:00[America/New_York]".
// Omitted date fields default to today.
func FromISO(text string, opts ...Option) (DateTime, error) {
	return parseGrammars(text, "ISO 8601", isoGrammars, opts)
}

// FromSQL parses a SQL date, time or datetime, such as
// "2016-05-25 09:08:34.123 +06:00" or "2016-05-25 09:08:34.123 America/New_York".
func FromSQL(text string, opts ...Option) (DateTime, error) {
	return parseGrammars(text, "SQL", sqlGrammars, opts)
}

// FromRFC2822 parses a date-time as used in email headers, such as
// "Tue, 01 Nov 2016 13:23:12 +0630". Comments in parentheses are ignored,
// and the obsolete North American zone abbreviations are understood.
func FromRFC2822(text string, opts ...Option) (DateTime, error) {
	return parseGrammars(preprocessRFC2822(text), "RFC 2822", rfc2822Grammars, opts)
}

// FromHTTP parses an HTTP-date in any of the RFC 1123, RFC 850 or asctime
// formats. All three are in UTC.
func FromHTTP(text string, opts ...Option) (DateTime, error) {
	return parseGrammars(text, "HTTP", httpGrammars, opts)
}

func parseGrammars(text, format string, gs []grammar, opts []Option) (DateTime, error) {
	c, err := resolveOptions(opts)
	if err != nil {
		return DateTime{}, err
	}
	for _, g := range gs {
		m := g.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		e := g.extract(m[1:])
		if e.zone != nil && !e.zone.IsValid() {
			return DateTime{}, unsupportedZone(e.zone)
		}
		return parseDataToDateTime(e.v, e.zone, e.offset, c, format, text)
	}
	return DateTime{}, &ParseError{Format: format, Value: text}
}

// intOr parses s as a decimal integer, or returns def if s is empty.
func intOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// The grammars only capture digits.
		panic(err)
	}
	return n
}

// extractTimeTail fills in the time of day, offset and zone from the
// submatches of reISOTime or reSQLTime.
func extractTimeTail(e *extracted, m []string) {
	if m[0] != "" {
		e.v[Hour] = intOr(m[0], 0)
		e.v[Minute] = intOr(m[1], 0)
		e.v[Second] = intOr(m[2], 0)
		e.v[Millisecond] = 0
		if m[3] != "" {
			e.v[Millisecond] = parseMillis(m[3])
		}
	}
	switch {
	case m[4] != "":
		e.zone, e.offset = UTC, 0
	case m[5] != "":
		h := intOr(m[5], 0)
		e.offset = signedOffset(h, intOr(m[6], 0), m[5][0] == '-')
		e.zone = FixedOffset(e.offset)
	}
	if m[7] != "" {
		e.zone = LoadIANAZone(m[7])
	}
}

func newExtracted() extracted {
	return extracted{v: make(Values), offset: NoOffset}
}

func extractYmdTime(m []string) extracted {
	e := newExtracted()
	e.v[Year] = intOr(strings.TrimPrefix(m[0], "+"), 0)
	e.v[Month] = intOr(m[1], 1)
	e.v[Day] = intOr(m[2], 1)
	extractTimeTail(&e, m[3:])
	return e
}

func extractWeekTime(m []string) extracted {
	e := newExtracted()
	e.v[WeekYear] = intOr(m[0], 0)
	e.v[WeekNumber] = intOr(m[1], 1)
	e.v[Weekday] = intOr(m[2], 1)
	extractTimeTail(&e, m[3:])
	return e
}

func extractOrdinalTime(m []string) extracted {
	e := newExtracted()
	e.v[Year] = intOr(m[0], 0)
	e.v[Ordinal] = intOr(m[1], 1)
	extractTimeTail(&e, m[2:])
	return e
}

func extractTime(m []string) extracted {
	e := newExtracted()
	extractTimeTail(&e, m)
	return e
}

const (
	reWeekdayShort = `(Mon|Tue|Wed|Thu|Fri|Sat|Sun)`
	reWeekdayLong  = `(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`
	reMonthShort   = `(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`
)

var (
	englishMonths   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	englishWeekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// obsOffsets are the zone abbreviations allowed by RFC 2822 section 4.3,
// in minutes.
var obsOffsets = map[string]int{
	"UT":  0,
	"GMT": 0,
	"EDT": -4 * 60,
	"EST": -5 * 60,
	"CDT": -5 * 60,
	"CST": -6 * 60,
	"MDT": -6 * 60,
	"MST": -7 * 60,
	"PDT": -7 * 60,
	"PST": -8 * 60,
}

var rfc2822Grammars = []grammar{{
	anchored(`(?:`, reWeekdayShort, `,\s)?(\d{1,2})\s`, reMonthShort,
		`\s(\d{2,4})\s(\d\d):(\d\d)(?::(\d\d))?\s(?:(UT|GMT|[ECMP][SD]T)|([Zz])|(?:([+-]\d\d)(\d\d)))`),
	func(m []string) extracted {
		e := fromStrings(m[0], m[3], m[2], m[1], m[4], m[5], m[6])
		switch {
		case m[7] != "":
			e.offset = obsOffsets[m[7]]
		case m[8] != "":
			e.offset = 0
		default:
			e.offset = signedOffset(intOr(m[9], 0), intOr(m[10], 0), m[9][0] == '-')
		}
		e.zone = FixedOffset(e.offset)
		return e
	},
}}

var (
	rfc2822Comment    = regexp.MustCompile(`\([^()]*\)|[\n\t]`)
	rfc2822Whitespace = regexp.MustCompile(`\s\s+`)
)

// preprocessRFC2822 drops comments and folds whitespace.
func preprocessRFC2822(s string) string {
	s = rfc2822Comment.ReplaceAllString(s, " ")
	s = rfc2822Whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var httpGrammars = []grammar{
	// RFC 1123
	{anchored(reWeekdayShort, `, (\d\d) `, reMonthShort, ` (\d{4}) (\d\d):(\d\d):(\d\d) GMT`),
		func(m []string) extracted {
			return inUTC(fromStrings(m[0], m[3], m[2], m[1], m[4], m[5], m[6]))
		}},
	// RFC 850
	{anchored(reWeekdayLong, `, (\d\d)-`, reMonthShort, `-(\d\d) (\d\d):(\d\d):(\d\d) GMT`),
		func(m []string) extracted {
			return inUTC(fromStrings(m[0], m[3], m[2], m[1], m[4], m[5], m[6]))
		}},
	// asctime
	{anchored(reWeekdayShort, ` `, reMonthShort, ` ( \d|\d\d) (\d\d):(\d\d):(\d\d) (\d{4})`),
		func(m []string) extracted {
			return inUTC(fromStrings(m[0], m[6], m[1], strings.TrimSpace(m[2]), m[3], m[4], m[5]))
		}},
}

func inUTC(e extracted) extracted {
	e.zone, e.offset = UTC, 0
	return e
}

// fromStrings converts the English fields shared by the RFC 2822 and HTTP
// grammars. Two-digit years are expanded with the cutoff year.
func fromStrings(weekday, year, month, day, hour, minute, second string) extracted {
	e := newExtracted()
	y := intOr(year, 0)
	if len(year) == 2 {
		y = untruncateYear(y)
	}
	e.v[Year] = y
	e.v[Month] = indexOf(englishMonths, month) + 1
	e.v[Day] = intOr(day, 1)
	e.v[Hour] = intOr(hour, 0)
	e.v[Minute] = intOr(minute, 0)
	if second != "" {
		e.v[Second] = intOr(second, 0)
	}
	if weekday != "" {
		e.v[Weekday] = indexOf(englishWeekdays, weekday[:3]) + 1
	}
	return e
}

func indexOf(xs []string, x string) int {
	for i, s := range xs {
		if s == x {
			return i
		}
	}
	return -1
}

var (
	isoDurationRE = regexp.MustCompile(`^-?P(?:(?:(-?\d{1,20}(?:\.\d{1,20})?)Y)?(?:(-?\d{1,20}(?:\.\d{1,20})?)M)?(?:(-?\d{1,20}(?:\.\d{1,20})?)W)?(?:(-?\d{1,20}(?:\.\d{1,20})?)D)?(?:T(?:(-?\d{1,20}(?:\.\d{1,20})?)H)?(?:(-?\d{1,20}(?:\.\d{1,20})?)M)?(?:(-?\d{1,20})(?:[.,](-?\d{1,20}))?S)?)?)$`)
	isoTimeOnlyRE = anchored(`T?`, reISOTimeBase)

	isoDurationUnits = []Unit{Year, Month, Week, Day, Hour, Minute, Second}
)

// ParseISODuration parses an ISO 8601 duration, such as "P1Y2M10DT2H30M" or
// "PT1.5S". Components may be fractional or negative. A leading "-" negates
// every component.
func ParseISODuration(s string, opts ...DurationOption) (Duration, error) {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil || strings.HasSuffix(s, "P") || strings.HasSuffix(s, "T") {
		return Duration{}, &ParseError{Format: "ISO 8601", Value: s}
	}
	negative := s[0] == '-'
	values := make(map[Unit]float64)
	for i, u := range isoDurationUnits {
		str := m[i+1]
		if str == "" {
			continue
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return Duration{}, &ParseError{Format: "ISO 8601", Value: s, Message: err.Error()}
		}
		if (u == Second && str == "-0") || (v != 0 && negative) {
			v = -v
		}
		values[u] = v
	}
	if frac := m[8]; frac != "" {
		negSeconds := strings.HasPrefix(m[7], "-")
		var ms float64
		if frac[0] != '-' {
			ms = float64(parseMillis(frac))
		}
		if negSeconds || (ms != 0 && negative) {
			ms = -ms
		}
		values[Millisecond] = ms
	}
	return newDuration(values, opts), nil
}

// ParseISOTime parses a time of day, such as "11:22:33.444", as the
// Duration since midnight.
func ParseISOTime(s string, opts ...DurationOption) (Duration, error) {
	m := isoTimeOnlyRE.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, &ParseError{Format: "ISO 8601 time", Value: s}
	}
	values := map[Unit]float64{
		Hour:        float64(intOr(m[1], 0)),
		Minute:      float64(intOr(m[2], 0)),
		Second:      float64(intOr(m[3], 0)),
		Millisecond: 0,
	}
	if m[4] != "" {
		values[Millisecond] = float64(parseMillis(m[4]))
	}
	return newDuration(values, opts), nil
}
