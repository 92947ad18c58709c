// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
	"strconv"
	"strings"
)

// RelativeOptions configures [DateTime.ToRelative] and
// [DateTime.ToRelativeCalendar].
type RelativeOptions struct {
	// Base is the DateTime to describe dt relative to. The zero value means
	// now, in dt's zone.
	Base DateTime
	// Unit forces a single unit, even if the count in it is below one.
	Unit Unit
	// Units lists the candidate units, largest first. The first unit with a
	// count of at least one is used.
	Units []Unit
	// Short selects abbreviated unit names, like "in 2 hr.".
	Short bool
	// Fractional keeps up to two decimals instead of truncating the count.
	// It has no effect on calendar phrases.
	Fractional bool
	// Padding, in milliseconds, is added to dt away from Base before
	// counting.
	Padding int64
	// Locale overrides dt's locale tag for the phrase.
	Locale string
}

var (
	relativeUnits         = []Unit{Year, Month, Day, Hour, Minute, Second}
	relativeCalendarUnits = []Unit{Year, Month, Day}
)

// ToRelative describes dt relative to a base time, such as "in 3 days" or
// "2 hours ago". The count is truncated toward zero.
func (dt DateTime) ToRelative(opts RelativeOptions) (string, error) {
	if !dt.valid {
		return "", invalidArgument("cannot describe an invalid DateTime")
	}
	base, err := dt.relativeBase(opts)
	if err != nil {
		return "", err
	}
	end := dt
	if opts.Padding != 0 {
		if dt.Before(base) {
			end = dt.PlusMillis(-opts.Padding)
		} else {
			end = dt.PlusMillis(opts.Padding)
		}
	}
	units := relativeUnits
	if len(opts.Units) > 0 {
		units = opts.Units
	}
	return diffRelative(base, end, units, opts, false)
}

// ToRelativeCalendar describes dt by calendar distance from a base time,
// such as "tomorrow", "next month" or "in 3 years". Only years, months and
// days are considered, and they are counted by calendar boundaries, so 23:00
// to 01:00 the next day is "tomorrow".
func (dt DateTime) ToRelativeCalendar(opts RelativeOptions) (string, error) {
	if !dt.valid {
		return "", invalidArgument("cannot describe an invalid DateTime")
	}
	base, err := dt.relativeBase(opts)
	if err != nil {
		return "", err
	}
	units := relativeCalendarUnits
	if len(opts.Units) > 0 {
		units = opts.Units
	}
	return diffRelative(base, dt, units, opts, true)
}

func (dt DateTime) relativeBase(opts RelativeOptions) (DateTime, error) {
	if opts.Base.valid {
		return opts.Base, nil
	}
	return create(nowMillis(), dt.zone, currentLocale(), NoOffset)
}

func diffRelative(start, end DateTime, units []Unit, opts RelativeOptions, calendary bool) (string, error) {
	loc := end.loc
	if opts.Locale != "" {
		l, err := loc.Clone(LocaleOptions{Locale: opts.Locale})
		if err != nil {
			return "", err
		}
		loc = l
	}
	format := func(count float64, u Unit) string {
		if calendary || !opts.Fractional {
			count = truncSigned(count)
		} else {
			count = math.Trunc(count*100) / 100
		}
		return loc.formatRelative(count, u, calendary, opts.Short)
	}
	differ := func(u Unit) (float64, error) {
		if !calendary {
			d, err := end.Diff(start, u)
			return d.Get(u), err
		}
		if end.HasSame(start, u) {
			return 0, nil
		}
		e, err := end.StartOf(u)
		if err != nil {
			return 0, err
		}
		s, err := start.StartOf(u)
		if err != nil {
			return 0, err
		}
		d, err := e.Diff(s, u)
		return d.Get(u), err
	}

	if opts.Unit != "" {
		u, err := durationUnit(opts.Unit)
		if err != nil {
			return "", err
		}
		count, err := differ(u)
		if err != nil {
			return "", err
		}
		return format(count, u), nil
	}
	for _, u := range units {
		n, err := durationUnit(u)
		if err != nil {
			return "", err
		}
		count, err := differ(n)
		if err != nil {
			return "", err
		}
		if math.Abs(count) >= 1 {
			return format(count, n), nil
		}
	}
	last, err := durationUnit(units[len(units)-1])
	if err != nil {
		return "", err
	}
	zero := 0.0
	if start.After(end) {
		zero = math.Copysign(0, -1)
	}
	return format(zero, last), nil
}

// truncSigned truncates toward zero, keeping the sign of negative zero.
func truncSigned(x float64) float64 {
	return math.Copysign(math.Trunc(x), x)
}

// formatRelative renders count units as a relative phrase. With calendar,
// counts of -1, 0 and 1 use phrases like "yesterday" or "next month" where
// the locale has them.
func (l Locale) formatRelative(count float64, u Unit, calendar, short bool) string {
	c := l.catalog()
	if calendar && count == math.Trunc(count) && math.Abs(count) <= 1 {
		key := strconv.Itoa(int(count))
		if phrase, ok := c.Relative.Auto[string(u)][key]; ok {
			return phrase
		}
	}
	past := count < 0 || (count == 0 && math.Signbit(count))
	n := math.Abs(count)
	names := c.Relative.Units[string(u)]
	var name string
	switch {
	case short:
		name = names.Short
	case n == 1:
		name = firstNonEmpty(names.RelOne, names.One)
	default:
		name = firstNonEmpty(names.RelOther, names.Other)
	}
	tmpl := c.Relative.Future
	if past {
		tmpl = c.Relative.Past
	}
	return strings.Replace(tmpl, "{0}", l.formatNumber(n)+" "+name, 1)
}

func firstNonEmpty(s ...string) string {
	for _, x := range s {
		if x != "" {
			return x
		}
	}
	return ""
}
