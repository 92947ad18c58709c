// Copyright 2009 The Go Authors.
// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"golang.org/x/exp/constraints"
)

// Day counting is derived from the standard library. See this comment for
// explanations:
// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=353

const (
	// The unsigned zero year for internal calculations.
	// Must be 1 mod 400, and times before it will not compute correctly, but
	// otherwise can be changed at will.
	absoluteZeroYear = -292277022399

	// The year of the zero days value.
	internalYear = 1

	// Offsets to convert between internal or absolute times.
	absoluteToInternal = (absoluteZeroYear - internalYear) * 365.2425
	internalToAbsolute = -absoluteToInternal

	// Days in a given period of years.
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461

	// unixEpochDays is 1970-01-01 counted from 0001-01-01.
	unixEpochDays days = 719162
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	// maxInstant bounds the representable instants, in milliseconds.
	maxInstant = 864e13
)

// nonLeapLadder[m] counts the number of days in a non-leap year before month
// m+1 begins.
var nonLeapLadder = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// leapLadder is nonLeapLadder for leap years.
var leapLadder = [...]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}

func ladder(year int) *[12]int {
	if IsLeapYear(year) {
		return &leapLadder
	}
	return &nonLeapLadder
}

// floorDiv returns x/y rounded towards negative infinity.
func floorDiv[T constraints.Integer](x, y T) T {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

// floorMod returns the remainder of floorDiv, which has the sign of y.
func floorMod[T constraints.Integer](x, y T) T {
	return x - floorDiv(x, y)*y
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in the given month. Months outside
// of [1, 12] roll over into neighbouring years, so month 13 of 2023 is
// January 2024.
func DaysInMonth(year, month int) int {
	m := floorMod(month-1, 12) + 1
	year += (month - m) / 12
	if m == 2 {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	if m == 4 || m == 6 || m == 9 || m == 11 {
		return 30
	}
	return 31
}

// WeeksInWeekYear returns the number of ISO weeks (52 or 53) in the given
// ISO week-numbering year.
func WeeksInWeekYear(weekYear int) int {
	p := func(y int) int {
		return floorMod(y+floorDiv(y, 4)-floorDiv(y, 100)+floorDiv(y, 400), 7)
	}
	if p(weekYear) == 4 || p(weekYear-1) == 3 {
		return 53
	}
	return 52
}

// days counts the days since 0001-01-01 in the proleptic Gregorian calendar.
type days int

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// daysSinceAbsolute takes a year and returns the number of days from the
// absolute epoch to the start of that year.
func daysSinceAbsolute(year int) int {
	y := year - absoluteZeroYear

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y
	return d
}

// daysOf returns the day number of the given date. Month and day may be
// outside their usual ranges and are normalized, so October 32 is November 1.
func daysOf(year, month, day int) days {
	m := month - 1
	year, m = norm(year, m, 12)

	d := daysSinceAbsolute(year) + ladder(year)[m] + day - 1
	return days(d - internalToAbsolute)
}

// date computes the year, month, day and zero-based day of year of d.
func (d days) date() (year, month, day, yday int) {
	n := uint64(d + internalToAbsolute)

	// Account for 400 year cycles.
	c := n / daysPer400Years
	y := 400 * c
	n -= daysPer400Years * c

	// Cut off 100-year cycles. The last cycle has one extra leap year, so
	// on the last day of that year, n / daysPer100Years will be 4 instead
	// of 3. Cut it back down to 3 by subtracting c>>2.
	c = n / daysPer100Years
	c -= c >> 2
	y += 100 * c
	n -= daysPer100Years * c

	// Cut off 4-year cycles.
	c = n / daysPer4Years
	y += 4 * c
	n -= daysPer4Years * c

	// Cut off years within a 4-year cycle, with the same trick as above.
	c = n / 365
	c -= c >> 2
	y += c
	n -= 365 * c

	year = int(int64(y) + absoluteZeroYear)
	yday = int(n)
	month, day = uncomputeOrdinal(year, yday+1)
	return year, month, day, yday
}

// weekday returns the ISO day of the week, Monday=1 through Sunday=7.
func (d days) weekday() int {
	// 0001-01-01 was a Monday
	return floorMod(int(d), 7) + 1
}

func computeOrdinal(year, month, day int) int {
	return day + ladder(year)[month-1]
}

// uncomputeOrdinal finds the last ladder entry strictly less than ordinal.
func uncomputeOrdinal(year, ordinal int) (month, day int) {
	l := ladder(year)
	m := 0
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] < ordinal {
			m = i
			break
		}
	}
	return m + 1, ordinal - l[m]
}

func dayOfWeek(year, month, day int) int {
	return daysOf(year, month, day).weekday()
}

// TimeOfDay holds the clock fields of a civil time. Hour may be 24 only when
// all other fields are zero.
type TimeOfDay struct {
	Hour, Minute, Second, Millisecond int
}

// Gregorian holds calendar date and clock fields in the Gregorian calendar.
type Gregorian struct {
	Year, Month, Day int
	TimeOfDay
}

// WeekDate holds a date in the ISO week calendar. Weekday is 1 for Monday
// through 7 for Sunday.
type WeekDate struct {
	WeekYear, WeekNumber, Weekday int
	TimeOfDay
}

// OrdinalDate holds a date as a year and the day of that year.
type OrdinalDate struct {
	Year, Ordinal int
	TimeOfDay
}

// GregorianToOrdinal converts g to an ordinal date.
func GregorianToOrdinal(g Gregorian) OrdinalDate {
	return OrdinalDate{
		Year:      g.Year,
		Ordinal:   computeOrdinal(g.Year, g.Month, g.Day),
		TimeOfDay: g.TimeOfDay,
	}
}

// OrdinalToGregorian converts o to a Gregorian date.
func OrdinalToGregorian(o OrdinalDate) Gregorian {
	month, day := uncomputeOrdinal(o.Year, o.Ordinal)
	return Gregorian{Year: o.Year, Month: month, Day: day, TimeOfDay: o.TimeOfDay}
}

// GregorianToWeek converts g to the ISO week calendar. Dates at the very
// start or end of a year may belong to the last week of the previous week
// year or the first week of the next one.
func GregorianToWeek(g Gregorian) WeekDate {
	ordinal := computeOrdinal(g.Year, g.Month, g.Day)
	weekday := dayOfWeek(g.Year, g.Month, g.Day)
	weekNumber := floorDiv(ordinal-weekday+10, 7)
	weekYear := g.Year
	switch {
	case weekNumber < 1:
		weekYear = g.Year - 1
		weekNumber = WeeksInWeekYear(weekYear)
	case weekNumber > WeeksInWeekYear(g.Year):
		weekYear = g.Year + 1
		weekNumber = 1
	}
	return WeekDate{WeekYear: weekYear, WeekNumber: weekNumber, Weekday: weekday, TimeOfDay: g.TimeOfDay}
}

// WeekToGregorian converts w from the ISO week calendar.
func WeekToGregorian(w WeekDate) Gregorian {
	weekdayOfJan4 := dayOfWeek(w.WeekYear, 1, 4)
	ordinal := w.WeekNumber*7 + w.Weekday - weekdayOfJan4 - 3
	year := w.WeekYear
	switch {
	case ordinal < 1:
		year = w.WeekYear - 1
		ordinal += DaysInYear(year)
	case ordinal > DaysInYear(w.WeekYear):
		year = w.WeekYear + 1
		ordinal -= DaysInYear(w.WeekYear)
	}
	month, day := uncomputeOrdinal(year, ordinal)
	return Gregorian{Year: year, Month: month, Day: day, TimeOfDay: w.TimeOfDay}
}

func between(v, lo, hi int) bool {
	return lo <= v && v <= hi
}

// HasInvalidGregorianData returns the first out-of-range date field of g, or
// nil. Clock fields are not checked.
func HasInvalidGregorianData(g Gregorian) *UnitOutOfRangeError {
	switch {
	case !between(g.Month, 1, 12):
		return unitOutOfRange(Month, g.Month)
	case !between(g.Day, 1, DaysInMonth(g.Year, g.Month)):
		return unitOutOfRange(Day, g.Day)
	}
	return nil
}

// HasInvalidWeekData returns the first out-of-range week field of w, or nil.
func HasInvalidWeekData(w WeekDate) *UnitOutOfRangeError {
	switch {
	case !between(w.WeekNumber, 1, WeeksInWeekYear(w.WeekYear)):
		return unitOutOfRange(WeekNumber, w.WeekNumber)
	case !between(w.Weekday, 1, 7):
		return unitOutOfRange(Weekday, w.Weekday)
	}
	return nil
}

// HasInvalidOrdinalData returns an error if o.Ordinal is not a day of o.Year.
func HasInvalidOrdinalData(o OrdinalDate) *UnitOutOfRangeError {
	if !between(o.Ordinal, 1, DaysInYear(o.Year)) {
		return unitOutOfRange(Ordinal, o.Ordinal)
	}
	return nil
}

// HasInvalidTimeData returns the first out-of-range clock field of t, or
// nil. An hour of 24 denotes midnight at the end of the day and is only
// valid if all smaller fields are zero.
func HasInvalidTimeData(t TimeOfDay) *UnitOutOfRangeError {
	validHour := between(t.Hour, 0, 23) ||
		(t.Hour == 24 && t.Minute == 0 && t.Second == 0 && t.Millisecond == 0)
	switch {
	case !validHour:
		return unitOutOfRange(Hour, t.Hour)
	case !between(t.Minute, 0, 59):
		return unitOutOfRange(Minute, t.Minute)
	case !between(t.Second, 0, 59):
		return unitOutOfRange(Second, t.Second)
	case !between(t.Millisecond, 0, 999):
		return unitOutOfRange(Millisecond, t.Millisecond)
	}
	return nil
}

// localTS interprets g as if it were UTC and returns the milliseconds since
// the Unix epoch. All fields may overflow their ranges and are normalized.
func localTS(g Gregorian) int64 {
	d := int64(daysOf(g.Year, g.Month, g.Day) - unixEpochDays)
	return d*msPerDay +
		int64(g.Hour)*msPerHour +
		int64(g.Minute)*msPerMinute +
		int64(g.Second)*msPerSecond +
		int64(g.Millisecond)
}

// tsToObj returns the civil fields of the instant ts observed at the given
// offset in minutes.
func tsToObj(ts int64, offset int) Gregorian {
	ts += int64(offset) * msPerMinute
	dn := floorDiv(ts, msPerDay)
	ms := int(ts - dn*msPerDay)
	year, month, day, _ := (days(dn) + unixEpochDays).date()
	return Gregorian{
		Year:  year,
		Month: month,
		Day:   day,
		TimeOfDay: TimeOfDay{
			Hour:        ms / msPerHour,
			Minute:      ms / msPerMinute % 60,
			Second:      ms / msPerSecond % 60,
			Millisecond: ms % msPerSecond,
		},
	}
}

func validInstant(ts int64) bool {
	return -maxInstant <= ts && ts <= maxInstant
}
