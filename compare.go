// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"cmp"
)

// Equal reports whether dt and o are the same instant in the same zone with
// the same locale. Use [DateTime.Compare] to compare only the instants.
func (dt DateTime) Equal(o DateTime) bool {
	if !dt.valid || !o.valid {
		return false
	}
	return dt.ts == o.ts && dt.zone.Equal(o.zone) && dt.loc.Equal(o.loc)
}

// Compare returns -1, 0 or 1 as the instant of dt is before, equal to or
// after that of o.
func (dt DateTime) Compare(o DateTime) int {
	return cmp.Compare(dt.ts, o.ts)
}

// Before reports whether dt is an earlier instant than o.
func (dt DateTime) Before(o DateTime) bool { return dt.ts < o.ts }

// After reports whether dt is a later instant than o.
func (dt DateTime) After(o DateTime) bool { return dt.ts > o.ts }

// Min returns the earliest of the valid arguments, or the zero DateTime if
// there are none.
func Min(dts ...DateTime) DateTime {
	return best(dts, DateTime.Before)
}

// Max returns the latest of the valid arguments, or the zero DateTime if
// there are none.
func Max(dts ...DateTime) DateTime {
	return best(dts, DateTime.After)
}

func best(dts []DateTime, better func(a, b DateTime) bool) DateTime {
	var r DateTime
	for _, dt := range dts {
		if dt.valid && (!r.valid || better(dt, r)) {
			r = dt
		}
	}
	return r
}

// HasSame reports whether dt and o fall into the same unit of time, such as
// the same calendar month. dt's calendar fields are interpreted in o's zone
// for the comparison.
func (dt DateTime) HasSame(o DateTime, u Unit) bool {
	if !dt.valid || !o.valid {
		return false
	}
	adjusted, err := dt.SetZone(o.zone, true)
	if err != nil {
		return false
	}
	start, err := adjusted.StartOf(u)
	if err != nil {
		return false
	}
	end, err := adjusted.EndOf(u)
	if err != nil {
		return false
	}
	return start.ts <= o.ts && o.ts <= end.ts
}
