// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"gonih.org/datetime/internal/cache"
)

// A layout for [DateTime.ToFormat] and [FromFormat] is a sequence of tokens.
// A token is a run of one repeated letter, and its length selects the
// variant. Text between single quotes is copied literally, as are
// whitespace and characters that are not tokens. The tokens are
//
//	Millisecond: "S" "SSS"; fractional seconds: "u" "uu" "uuu"
//	Second: "s" "ss"; minute: "m" "mm"
//	Hour: "H" "HH" (24-hour), "h" "hh" (12-hour), meridiem: "a"
//	Day of month: "d" "dd"; day of year: "o" "ooo"
//	Weekday: "E" "c" (number), "EEE" "EEEE" "EEEEE" (short, long, narrow names)
//	Month: "M" "MM" "L" "LL" (number), "MMM" "MMMM" "MMMMM" (names)
//	Year: "y" "yy" "yyyy" "yyyyyy"; era: "G" "GG" "GGGGG"
//	ISO week: "kk" "kkkk" (week year), "W" "WW" (week number)
//	Quarter: "q" "qq"
//	Offset: "Z" (+5), "ZZ" (+05:00), "ZZZ" (+0500), "ZZZZ" (EST), "ZZZZZ" (long name)
//	Zone: "z"; Unix seconds: "X"; Unix milliseconds: "x"
//
// Macro tokens expand to the locale's preferred layout: "D" "DD" "DDD" "DDDD"
// for dates, "t" "tt" "ttt" "tttt" for 12- or 24-hour times as customary, "T"
// "TT" "TTT" "TTTT" for 24-hour times, and "f" "ff" "fff" "ffff", "F" "FF"
// "FFF" "FFFF" for both.

// inst is a single component of a layout string, either a literal string, or a
// formatting operator.
type inst struct {
	op  fmtOp
	lit string
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	if i.op == opLiteral || i.op == opMacro {
		return i.lit
	}
	return i.op.String()
}

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota
	opMacro

	opMillis
	opMillis3
	opFrac3
	opFrac2
	opFrac1
	opSecond
	opSecond2
	opMinute
	opMinute2
	opHour12
	opHour12_2
	opHour
	opHour2
	opOffsetNarrow
	opOffsetShort
	opOffsetTechie
	opOffsetNameShort
	opOffsetNameLong
	opZoneName
	opMeridiem
	opDay
	opDay2
	opWeekdayNumStandalone
	opWeekdayShortStandalone
	opWeekdayLongStandalone
	opWeekdayNarrowStandalone
	opWeekdayNum
	opWeekdayShort
	opWeekdayLong
	opWeekdayNarrow
	opMonthStandalone
	opMonth2Standalone
	opMonthShortStandalone
	opMonthLongStandalone
	opMonthNarrowStandalone
	opMonth
	opMonth2
	opMonthShort
	opMonthLong
	opMonthNarrow
	opYear
	opYear2
	opYear4
	opYear6
	opEraShort
	opEraLong
	opEraNarrow
	opWeekYear2
	opWeekYear4
	opWeekNumber
	opWeekNumber2
	opOrdinal
	opOrdinal3
	opQuarter
	opQuarter2
	opUnixSeconds
	opUnixMillis

	opInvalid
)

var opTokens = [...]string{
	opMillis:                  "S",
	opMillis3:                 "SSS",
	opFrac3:                   "u",
	opFrac2:                   "uu",
	opFrac1:                   "uuu",
	opSecond:                  "s",
	opSecond2:                 "ss",
	opMinute:                  "m",
	opMinute2:                 "mm",
	opHour12:                  "h",
	opHour12_2:                "hh",
	opHour:                    "H",
	opHour2:                   "HH",
	opOffsetNarrow:            "Z",
	opOffsetShort:             "ZZ",
	opOffsetTechie:            "ZZZ",
	opOffsetNameShort:         "ZZZZ",
	opOffsetNameLong:          "ZZZZZ",
	opZoneName:                "z",
	opMeridiem:                "a",
	opDay:                     "d",
	opDay2:                    "dd",
	opWeekdayNumStandalone:    "c",
	opWeekdayShortStandalone:  "ccc",
	opWeekdayLongStandalone:   "cccc",
	opWeekdayNarrowStandalone: "ccccc",
	opWeekdayNum:              "E",
	opWeekdayShort:            "EEE",
	opWeekdayLong:             "EEEE",
	opWeekdayNarrow:           "EEEEE",
	opMonthStandalone:         "L",
	opMonth2Standalone:        "LL",
	opMonthShortStandalone:    "LLL",
	opMonthLongStandalone:     "LLLL",
	opMonthNarrowStandalone:   "LLLLL",
	opMonth:                   "M",
	opMonth2:                  "MM",
	opMonthShort:              "MMM",
	opMonthLong:               "MMMM",
	opMonthNarrow:             "MMMMM",
	opYear:                    "y",
	opYear2:                   "yy",
	opYear4:                   "yyyy",
	opYear6:                   "yyyyyy",
	opEraShort:                "G",
	opEraLong:                 "GG",
	opEraNarrow:               "GGGGG",
	opWeekYear2:               "kk",
	opWeekYear4:               "kkkk",
	opWeekNumber:              "W",
	opWeekNumber2:             "WW",
	opOrdinal:                 "o",
	opOrdinal3:                "ooo",
	opQuarter:                 "q",
	opQuarter2:                "qq",
	opUnixSeconds:             "X",
	opUnixMillis:              "x",
	opInvalid:                 "",
}

// String implements fmt.Stringer. Except for opLiteral, it returns the layout
// token of the operator.
func (op fmtOp) String() string {
	switch op {
	case opLiteral:
		return "<literal>"
	case opMacro:
		return "<macro>"
	}
	if op < 0 || op >= opInvalid {
		panic("invalid fmtOp")
	}
	return opTokens[op]
}

var tokenOps = func() map[string]fmtOp {
	m := make(map[string]fmtOp, len(opTokens))
	for op := opMillis; op < opInvalid; op++ {
		m[opTokens[op]] = op
	}
	return m
}()

var macroTokens = map[string]bool{
	"D": true, "DD": true, "DDD": true, "DDDD": true,
	"t": true, "tt": true, "ttt": true, "tttt": true,
	"T": true, "TT": true, "TTT": true, "TTTT": true,
	"f": true, "ff": true, "fff": true, "ffff": true,
	"F": true, "FF": true, "FFF": true, "FFFF": true,
}

// A program is a compiled layout string.
type program []inst

// Size implements cache.Sizer, so that long layouts take up more of the
// cache.
func (p program) Size() int64 {
	return int64(max(len(p), 1))
}

// programs memoizes compiled layout strings.
var programs = cache.Cache[string, program]{MaxSize: 4 * cache.DefaultSize}

// A run is a maximal sequence of one repeated character, or a quoted or
// whitespace-only literal.
type run struct {
	s       string
	literal bool
}

// splitLayout splits layout into runs, honoring quoted literals.
func splitLayout(layout string) []run {
	var (
		runs      []run
		current   rune = -1
		b         strings.Builder
		bracketed bool
	)
	flush := func() {
		if b.Len() == 0 {
			return
		}
		s := b.String()
		b.Reset()
		runs = append(runs, run{s: s, literal: bracketed || strings.TrimSpace(s) == ""})
	}
	for _, c := range layout {
		switch {
		case c == '\'':
			flush()
			current = -1
			bracketed = !bracketed
		case bracketed:
			b.WriteRune(c)
		case c == current:
			b.WriteRune(c)
		default:
			flush()
			current = c
			b.WriteRune(c)
		}
	}
	flush()
	return runs
}

// parseLayout parses layout into a set of instructions to parse or format
// according to it. Runs that are not tokens become literals.
func parseLayout(layout string) []inst {
	var prog []inst
	for _, r := range splitLayout(layout) {
		switch op, ok := tokenOps[r.s]; {
		case r.literal:
			prog = append(prog, inst{lit: r.s})
		case ok:
			prog = append(prog, inst{op: op})
		case macroTokens[r.s]:
			prog = append(prog, inst{op: opMacro, lit: r.s})
		default:
			prog = append(prog, inst{lit: r.s})
		}
	}
	return prog
}

// compile returns the memoized program for layout.
func compile(layout string) program {
	return programs.Get(layout, func(layout string) program {
		return parseLayout(layout)
	})
}

// ToFormat renders dt according to layout, using dt's locale for names and
// digits. See the layout description in this package for the tokens.
func (dt DateTime) ToFormat(layout string) string {
	if !dt.valid {
		return "Invalid DateTime"
	}
	return string(dt.AppendFormat(nil, layout))
}

// AppendFormat is like ToFormat but appends the textual representation to b
// and returns the extended buffer.
func (dt DateTime) AppendFormat(b []byte, layout string) []byte {
	return dt.appendProg(b, compile(layout), 0)
}

// maxMacroDepth bounds macro expansion in case a catalog layout refers to a
// macro itself.
const maxMacroDepth = 2

func (dt DateTime) appendProg(b []byte, prog program, depth int) []byte {
	l := dt.loc
	num := func(n, width int) {
		b = append(b, l.formatInt(n, width)...)
	}
	for _, i := range prog {
		switch i.op {
		case opLiteral:
			b = append(b, i.lit...)
		case opMacro:
			m, ok := l.macro(i.lit)
			if !ok || depth >= maxMacroDepth {
				b = append(b, i.lit...)
				continue
			}
			b = dt.appendProg(b, compile(m), depth+1)
		case opMillis:
			num(dt.c.Millisecond, 0)
		case opMillis3, opFrac3:
			num(dt.c.Millisecond, 3)
		case opFrac2:
			num(dt.c.Millisecond/10, 2)
		case opFrac1:
			num(dt.c.Millisecond/100, 0)
		case opSecond:
			num(dt.c.Second, 0)
		case opSecond2:
			num(dt.c.Second, 2)
		case opMinute:
			num(dt.c.Minute, 0)
		case opMinute2:
			num(dt.c.Minute, 2)
		case opHour12:
			num(hour12(dt.c.Hour), 0)
		case opHour12_2:
			num(hour12(dt.c.Hour), 2)
		case opHour:
			num(dt.c.Hour, 0)
		case opHour2:
			num(dt.c.Hour, 2)
		case opOffsetNarrow:
			b = append(b, l.localizeDigits(dt.zone.FormatOffset(dt.ts, OffsetNarrow))...)
		case opOffsetShort:
			b = append(b, l.localizeDigits(dt.zone.FormatOffset(dt.ts, OffsetShort))...)
		case opOffsetTechie:
			b = append(b, l.localizeDigits(dt.zone.FormatOffset(dt.ts, OffsetTechie))...)
		case opOffsetNameShort:
			b = append(b, dt.zone.OffsetName(dt.ts, NameShort, l)...)
		case opOffsetNameLong:
			b = append(b, dt.zone.OffsetName(dt.ts, NameLong, l)...)
		case opZoneName:
			b = append(b, dt.zone.Name()...)
		case opMeridiem:
			b = append(b, l.meridiems()[dt.c.Hour/12%2]...)
		case opDay:
			num(dt.c.Day, 0)
		case opDay2:
			num(dt.c.Day, 2)
		case opWeekdayNum, opWeekdayNumStandalone:
			num(dt.Weekday(), 0)
		case opWeekdayShort, opWeekdayShortStandalone:
			b = append(b, l.weekdays(styleShort)[dt.Weekday()-1]...)
		case opWeekdayLong, opWeekdayLongStandalone:
			b = append(b, l.weekdays(styleLong)[dt.Weekday()-1]...)
		case opWeekdayNarrow, opWeekdayNarrowStandalone:
			b = append(b, l.weekdays(styleNarrow)[dt.Weekday()-1]...)
		case opMonth, opMonthStandalone:
			num(dt.c.Month, 0)
		case opMonth2, opMonth2Standalone:
			num(dt.c.Month, 2)
		case opMonthShort, opMonthShortStandalone:
			b = append(b, l.months(styleShort)[dt.c.Month-1]...)
		case opMonthLong, opMonthLongStandalone:
			b = append(b, l.months(styleLong)[dt.c.Month-1]...)
		case opMonthNarrow, opMonthNarrowStandalone:
			b = append(b, l.months(styleNarrow)[dt.c.Month-1]...)
		case opYear:
			num(dt.c.Year, 0)
		case opYear2:
			num(abs(dt.c.Year)%100, 2)
		case opYear4:
			num(dt.c.Year, 4)
		case opYear6:
			num(dt.c.Year, 6)
		case opEraShort:
			b = append(b, l.eras(styleShort)[era(dt.c.Year)]...)
		case opEraLong:
			b = append(b, l.eras(styleLong)[era(dt.c.Year)]...)
		case opEraNarrow:
			b = append(b, l.eras(styleNarrow)[era(dt.c.Year)]...)
		case opWeekYear2:
			num(abs(dt.WeekYear())%100, 2)
		case opWeekYear4:
			num(dt.WeekYear(), 4)
		case opWeekNumber:
			num(dt.WeekNumber(), 0)
		case opWeekNumber2:
			num(dt.WeekNumber(), 2)
		case opOrdinal:
			num(dt.Ordinal(), 0)
		case opOrdinal3:
			num(dt.Ordinal(), 3)
		case opQuarter:
			num(dt.Quarter(), 0)
		case opQuarter2:
			num(dt.Quarter(), 2)
		case opUnixSeconds:
			b = append(b, l.localizeDigits(string(appendInt64(nil, dt.ToUnixInteger())))...)
		case opUnixMillis:
			b = append(b, l.localizeDigits(string(appendInt64(nil, dt.ts)))...)
		default:
			panic(errors.AssertionFailedf("invalid inst %v", i))
		}
	}
	return b
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

// era returns 0 for years before 1 AD and 1 otherwise.
func era(year int) int {
	if year > 0 {
		return 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func appendInt64(b []byte, x int64) []byte {
	if x < 0 {
		b = append(b, '-')
		x = -x
	}
	var buf [20]byte
	i := len(buf)
	for x >= 10 {
		i--
		buf[i] = byte('0' + x%10)
		x /= 10
	}
	i--
	buf[i] = byte('0' + x)
	return append(b, buf[i:]...)
}

// ToFormat renders d according to a layout of unit tokens: "y" years, "M"
// months, "w" weeks, "d" days, "h" hours, "m" minutes, "s" seconds and "S"
// milliseconds, each padded to the token's length. Text in single quotes is
// copied. d is first shifted to the units in the layout, and quantities are
// rounded down.
func (d Duration) ToFormat(layout string) string {
	runs := splitLayout(layout)
	var units []Unit
	for _, r := range runs {
		if u, ok := durationTokenUnit(r); ok {
			units = append(units, u)
		}
	}
	collapsed, _ := d.ShiftTo(units...)

	var b strings.Builder
	for _, r := range runs {
		u, ok := durationTokenUnit(r)
		if !ok {
			b.WriteString(r.s)
			continue
		}
		b.WriteString(d.loc.formatInt(int(math.Floor(collapsed.Get(u))), len(r.s)))
	}
	return b.String()
}

func durationTokenUnit(r run) (Unit, bool) {
	if r.literal {
		return "", false
	}
	switch r.s[0] {
	case 'S':
		return Millisecond, true
	case 's':
		return Second, true
	case 'm':
		return Minute, true
	case 'h':
		return Hour, true
	case 'd':
		return Day, true
	case 'w':
		return Week, true
	case 'M':
		return Month, true
	case 'y':
		return Year, true
	}
	return "", false
}
