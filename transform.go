// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
)

// SetZone returns dt in a different zone. Normally the instant stays the
// same and the calendar fields change. With keepLocalTime, the calendar
// fields are kept and the instant changes instead.
func (dt DateTime) SetZone(z any, keepLocalTime bool) (DateTime, error) {
	if !dt.valid {
		return DateTime{}, invalidArgument("cannot change the zone of an invalid DateTime")
	}
	zone := NormalizeZone(z, DefaultZone())
	if zone.Equal(dt.zone) {
		return dt, nil
	}
	if !zone.IsValid() {
		return DateTime{}, unsupportedZone(zone)
	}
	ts := dt.ts
	if keepLocalTime {
		ts, _ = objToTS(dt.c, zone.Offset(dt.ts), zone)
	}
	return dt.withInstant(ts, zone, NoOffset)
}

// ToUTC returns dt in UTC.
func (dt DateTime) ToUTC() DateTime {
	u, _ := dt.SetZone(UTC, false)
	return u
}

// ToSystemZone returns dt in the host's zone.
func (dt DateTime) ToSystemZone() DateTime {
	s, _ := dt.SetZone(System, false)
	return s
}

// Reconfigure returns dt with locale settings changed. Empty fields of opts
// keep their current value.
func (dt DateTime) Reconfigure(opts LocaleOptions) (DateTime, error) {
	loc, err := dt.loc.Clone(opts)
	if err != nil {
		return DateTime{}, err
	}
	dt.loc = loc
	return dt, nil
}

// SetLocale returns dt with a different locale tag.
func (dt DateTime) SetLocale(tag string) (DateTime, error) {
	return dt.Reconfigure(LocaleOptions{Locale: tag})
}

// Set returns dt with some calendar or clock fields replaced, keeping the
// zone. Fields may be given in one of the three calendars, following the
// same rules as [FromObject]. When the month or year changes without a day,
// the day is clamped to the length of the new month. Fields are not range
// checked: they roll over into the next larger unit.
func (dt DateTime) Set(values Values) (DateTime, error) {
	if !dt.valid {
		return DateTime{}, invalidArgument("cannot set fields of an invalid DateTime")
	}
	v, err := values.normalize()
	if err != nil {
		return DateTime{}, err
	}

	settingWeekStuff := v.has(WeekYear) || v.has(WeekNumber) || v.has(Weekday)
	containsOrdinal := v.has(Ordinal)
	containsGregorMD := v.has(Month) || v.has(Day)
	containsGregor := v.has(Year) || containsGregorMD
	definiteWeekDef := v.has(WeekYear) || v.has(WeekNumber)

	if (containsGregor || containsOrdinal) && definiteWeekDef {
		return DateTime{}, conflicting("can't mix weekYear/weekNumber units with year/month/day or ordinals")
	}
	if containsGregorMD && containsOrdinal {
		return DateTime{}, conflicting("can't mix ordinal dates with month/day")
	}

	var mixed Gregorian
	switch {
	case settingWeekStuff:
		w := valuesWeek(overlay(weekValues(dt.weekData()), v))
		mixed = Gregorian{Year: w.WeekYear, Month: 1, Day: weekOrdinal(w), TimeOfDay: w.TimeOfDay}
	case containsOrdinal:
		o := valuesOrdinal(overlay(ordinalValues(GregorianToOrdinal(dt.c)), v))
		mixed = Gregorian{Year: o.Year, Month: 1, Day: o.Ordinal, TimeOfDay: o.TimeOfDay}
	default:
		mixed = valuesGregorian(overlay(gregorianValues(dt.c), v))
		if !v.has(Day) {
			mixed.Day = min(DaysInMonth(mixed.Year, mixed.Month), mixed.Day)
		}
	}

	ts, offset := objToTS(mixed, dt.offset, dt.zone)
	return dt.withInstant(ts, dt.zone, offset)
}

// weekOrdinal returns the day of w.WeekYear's calendar year that w falls
// on. It is out of [1, 366] for days belonging to a neighbouring year.
func weekOrdinal(w WeekDate) int {
	return w.WeekNumber*7 + w.Weekday - dayOfWeek(w.WeekYear, 1, 4) - 3
}

func overlay(base, v Values) Values {
	for k, x := range v {
		base[k] = x
	}
	return base
}

// StartOf returns the beginning of the given unit of time containing dt.
// Weeks start on Monday.
func (dt DateTime) StartOf(u Unit) (DateTime, error) {
	n, err := durationUnit(u)
	if err != nil {
		return DateTime{}, err
	}
	o := Values{}
	// Each unit resets its own fields and those of all smaller units.
	switch n {
	case Year:
		o[Month] = 1
		fallthrough
	case Quarter, Month:
		o[Day] = 1
		fallthrough
	case Week, Day:
		o[Hour] = 0
		fallthrough
	case Hour:
		o[Minute] = 0
		fallthrough
	case Minute:
		o[Second] = 0
		fallthrough
	case Second:
		o[Millisecond] = 0
	}
	switch n {
	case Week:
		o[Weekday] = 1
	case Quarter:
		o[Month] = (dt.Quarter()-1)*3 + 1
	}
	return dt.Set(o)
}

// EndOf returns the last millisecond of the given unit of time containing
// dt.
func (dt DateTime) EndOf(u Unit) (DateTime, error) {
	n, err := durationUnit(u)
	if err != nil {
		return DateTime{}, err
	}
	next := dt.Plus(Duration{values: map[Unit]float64{n: 1}})
	if !next.valid {
		return DateTime{}, invalidArgument("end of %s is out of range", n)
	}
	start, err := next.StartOf(n)
	if err != nil {
		return DateTime{}, err
	}
	return start.PlusMillis(-1), nil
}

// Plus returns dt shifted by d.
//
// Whole years, quarters, months, weeks and days move the calendar date,
// keeping the wall clock time where possible. The day of month is clamped,
// so adding a month to January 31 gives the last day of February. Clock
// units and fractions of calendar units then move the instant.
//
// If the result is out of range, Plus returns the invalid zero DateTime.
func (dt DateTime) Plus(d Duration) DateTime {
	if !dt.valid {
		return DateTime{}
	}
	ts, offset, ok := dt.adjustTime(d)
	if !ok {
		return DateTime{}
	}
	r, err := dt.withInstant(ts, dt.zone, offset)
	if err != nil {
		return DateTime{}
	}
	return r
}

// Minus returns dt shifted back by d.
func (dt DateTime) Minus(d Duration) DateTime {
	return dt.Plus(d.Negate())
}

// PlusMillis returns dt shifted by ms milliseconds.
func (dt DateTime) PlusMillis(ms int64) DateTime {
	if !dt.valid {
		return DateTime{}
	}
	r, err := dt.withInstant(dt.ts+ms, dt.zone, NoOffset)
	if err != nil {
		return DateTime{}
	}
	return r
}

// maxShiftDays is the longest calendar shift that can possibly stay in range.
const maxShiftDays = 2 * maxInstant / msPerDay

// adjustTime computes the instant of dt plus d. It reports false if d is so
// large that the result cannot be in range, before any field can overflow.
func (dt DateTime) adjustTime(d Duration) (ts int64, offset int, ok bool) {
	trunc := func(u Unit) float64 { return math.Trunc(d.values[u]) }
	frac := func(u Unit) float64 { return d.values[u] - trunc(u) }

	shift := math.Abs(trunc(Year))*366 +
		math.Abs(trunc(Quarter))*92 +
		math.Abs(trunc(Month))*31 +
		math.Abs(trunc(Week))*7 +
		math.Abs(trunc(Day))
	if !(shift <= maxShiftDays) {
		return 0, 0, false
	}

	c := dt.c
	c.Year += int(trunc(Year))
	c.Month += int(trunc(Month)) + int(trunc(Quarter))*3
	c.Day = min(dt.c.Day, DaysInMonth(c.Year, c.Month)) + int(trunc(Day)) + int(trunc(Week))*7

	millisToAdd, _ := Duration{values: map[Unit]float64{
		Year:        frac(Year),
		Quarter:     frac(Quarter),
		Month:       frac(Month),
		Week:        frac(Week),
		Day:         frac(Day),
		Hour:        d.values[Hour],
		Minute:      d.values[Minute],
		Second:      d.values[Second],
		Millisecond: d.values[Millisecond],
	}}.As(Millisecond)

	if !(math.Abs(millisToAdd) <= 2*maxInstant) {
		return 0, 0, false
	}

	ts, offset = fixOffset(localTS(c), dt.offset, dt.zone)
	if millisToAdd != 0 {
		ts += int64(math.Round(millisToAdd))
		offset = NoOffset
	}
	return ts, offset, true
}
