// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"gonih.org/set"
)

// Diff returns the span from o to dt, expressed in the given units. Without
// units, it is in milliseconds. The result is negative if o is later than
// dt.
//
// Calendar units are counted by stepping the earlier calendar with
// clamping, so both January 30 and January 31 are one month before
// February 28. The smallest calendar unit carries the remainder as a
// fraction, unless clock units are requested as well.
func (dt DateTime) Diff(o DateTime, units ...Unit) (Duration, error) {
	if !dt.valid || !o.valid {
		return Duration{}, invalidArgument("cannot diff an invalid DateTime")
	}
	if len(units) == 0 {
		units = []Unit{Millisecond}
	}
	canon := make([]Unit, len(units))
	for i, u := range units {
		n, err := durationUnit(u)
		if err != nil {
			return Duration{}, err
		}
		canon[i] = n
	}

	otherIsLater := o.ts > dt.ts
	earlier, later := o, dt
	if otherIsLater {
		earlier, later = dt, o
	}
	d, err := diff(earlier, later, canon, dt.loc)
	if err != nil {
		return Duration{}, err
	}
	if otherIsLater {
		return d.Negate(), nil
	}
	return d, nil
}

// DiffNow returns the span from now to dt.
func (dt DateTime) DiffNow(units ...Unit) (Duration, error) {
	now, err := create(nowMillis(), dt.Zone(), dt.loc, NoOffset)
	if err != nil {
		return Duration{}, err
	}
	return dt.Diff(now, units...)
}

// dayDiff counts the calendar days from a to b, ignoring the time of day.
func dayDiff(a, b DateTime) float64 {
	start := func(dt DateTime) int64 {
		return localTS(Gregorian{Year: dt.c.Year, Month: dt.c.Month, Day: dt.c.Day})
	}
	return float64(floorDiv(start(b)-start(a), msPerDay))
}

type differ struct {
	unit Unit
	fn   func(a, b DateTime) float64
}

var differs = []differ{
	{Year, func(a, b DateTime) float64 {
		return float64(b.Year() - a.Year())
	}},
	{Quarter, func(a, b DateTime) float64 {
		return float64(b.Quarter() - a.Quarter() + (b.Year()-a.Year())*4)
	}},
	{Month, func(a, b DateTime) float64 {
		return float64(b.Month() - a.Month() + (b.Year()-a.Year())*12)
	}},
	{Week, func(a, b DateTime) float64 {
		d := int(dayDiff(a, b))
		return float64((d - d%7) / 7)
	}},
	{Day, dayDiff},
}

func withValues(values map[Unit]float64) Duration {
	c := make(map[Unit]float64, len(values))
	for k, v := range values {
		c[k] = v
	}
	return Duration{values: c}
}

// highOrderDiffs steps cursor towards later by whole calendar units, from
// largest to smallest. highWater is the first step past later, if any.
func highOrderDiffs(cursor, later DateTime, want func(Unit) bool) (DateTime, map[Unit]float64, DateTime, Unit) {
	results := make(map[Unit]float64)
	earlier := cursor
	var (
		highWater   DateTime
		lowestOrder Unit
	)
	for _, d := range differs {
		if !want(d.unit) {
			continue
		}
		lowestOrder = d.unit
		results[d.unit] = d.fn(cursor, later)
		highWater = earlier.Plus(withValues(results))
		if highWater.ts > later.ts {
			results[d.unit]--
			cursor = earlier.Plus(withValues(results))
			// Near a DST transition, one step back may still overshoot.
			if cursor.ts > later.ts {
				highWater = cursor
				results[d.unit]--
				cursor = earlier.Plus(withValues(results))
			}
		} else {
			cursor = highWater
		}
	}
	return cursor, results, highWater, lowestOrder
}

var lowOrderUnits = []Unit{Hour, Minute, Second, Millisecond}

func diff(earlier, later DateTime, units []Unit, loc Locale) (Duration, error) {
	requested := set.Make(units...)
	want := func(u Unit) bool {
		_, ok := requested[u]
		return ok
	}
	cursor, results, highWater, lowestOrder := highOrderDiffs(earlier, later, want)
	if !cursor.valid {
		return Duration{}, invalidArgument("difference out of range")
	}
	remaining := float64(later.ts - cursor.ts)

	var lower []Unit
	for _, u := range lowOrderUnits {
		if want(u) {
			lower = append(lower, u)
		}
	}

	if len(lower) == 0 {
		if highWater.ts < later.ts {
			highWater = cursor.Plus(Duration{values: map[Unit]float64{lowestOrder: 1}})
		}
		if highWater.ts != cursor.ts {
			results[lowestOrder] += remaining / float64(highWater.ts-cursor.ts)
		}
	}

	d := Duration{values: results, loc: loc}
	if len(lower) == 0 {
		return d, nil
	}
	shifted, err := DurationFromMillis(remaining, WithDurationLocale(loc)).ShiftTo(lower...)
	if err != nil {
		return Duration{}, err
	}
	return shifted.Plus(d), nil
}
