// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"strings"
)

// A Unit names a calendar field or a span of time. The canonical spelling is
// the singular name; [ParseUnit] also accepts plurals and any capitalization.
type Unit string

// Units shared by DateTime fields and Durations.
const (
	Year        Unit = "year"
	Quarter     Unit = "quarter"
	Month       Unit = "month"
	Week        Unit = "week"
	Day         Unit = "day"
	Hour        Unit = "hour"
	Minute      Unit = "minute"
	Second      Unit = "second"
	Millisecond Unit = "millisecond"
)

// Units only meaningful as DateTime fields.
const (
	WeekYear   Unit = "weekYear"
	WeekNumber Unit = "weekNumber"
	Weekday    Unit = "weekday"
	Ordinal    Unit = "ordinal"
)

// Plural returns the plural spelling of u, as used in Duration objects.
func (u Unit) Plural() string {
	switch u {
	case WeekYear, WeekNumber, Weekday, Ordinal:
		return string(u)
	}
	return string(u) + "s"
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	return string(u)
}

// orderedUnits lists the duration units from largest to smallest.
var orderedUnits = []Unit{Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond}

// reverseUnits is orderedUnits from smallest to largest.
var reverseUnits = []Unit{Millisecond, Second, Minute, Hour, Day, Week, Month, Quarter, Year}

// unitRank returns the position of u in orderedUnits, or -1.
func unitRank(u Unit) int {
	for i, o := range orderedUnits {
		if o == u {
			return i
		}
	}
	return -1
}

var unitNames = map[string]Unit{
	"year": Year, "years": Year,
	"quarter": Quarter, "quarters": Quarter,
	"month": Month, "months": Month,
	"week": Week, "weeks": Week,
	"day": Day, "days": Day,
	"hour": Hour, "hours": Hour,
	"minute": Minute, "minutes": Minute,
	"second": Second, "seconds": Second,
	"millisecond": Millisecond, "milliseconds": Millisecond,
	"weekyear": WeekYear, "weekyears": WeekYear,
	"weeknumber": WeekNumber, "weeknumbers": WeekNumber,
	"weekday": Weekday, "weekdays": Weekday,
	"ordinal": Ordinal, "ordinals": Ordinal,
}

// ParseUnit returns the canonical unit for a name such as "Days" or
// "weekNumber".
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitNames[strings.ToLower(s)]; ok {
		return u, nil
	}
	return "", invalidUnit(s)
}

// durationUnit validates that u can be used as a Duration unit.
func durationUnit(u Unit) (Unit, error) {
	if n, ok := unitNames[strings.ToLower(string(u))]; ok && unitRank(n) >= 0 {
		return n, nil
	}
	return "", invalidUnit(string(u))
}

// objectUnit validates that u can be used as a DateTime field. Week and
// quarter are spans, not fields.
func objectUnit(u Unit) (Unit, error) {
	n, ok := unitNames[strings.ToLower(string(u))]
	if !ok || n == Week || n == Quarter {
		return "", invalidUnit(string(u))
	}
	return n, nil
}

// Values is a sparse set of DateTime fields, keyed by unit. It is used to
// construct a DateTime with [FromObject] and to change fields with
// [DateTime.Set].
type Values map[Unit]int

// normalize returns a copy of v with canonical unit names.
func (v Values) normalize() (Values, error) {
	out := make(Values, len(v))
	for k, x := range v {
		u, err := objectUnit(k)
		if err != nil {
			return nil, err
		}
		out[u] = x
	}
	return out, nil
}

func (v Values) has(u Unit) bool {
	_, ok := v[u]
	return ok
}
