// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"time"
)

// SystemZone is the host's configured local zone, as reported by
// [time.Local].
type SystemZone struct{}

// System is the host zone.
var System SystemZone

// Type returns "system".
func (SystemZone) Type() string { return "system" }

// Name returns the name of the host zone, which is "Local" unless the TZ
// environment variable names a zone.
func (SystemZone) Name() string { return time.Local.String() }

// IsUniversal returns false.
func (SystemZone) IsUniversal() bool { return false }

// IsValid returns true.
func (SystemZone) IsValid() bool { return true }

// Offset returns the offset of [time.Local] at ts.
func (SystemZone) Offset(ts int64) int {
	_, sec := time.UnixMilli(ts).In(time.Local).Zone()
	return sec / 60
}

// FormatOffset formats the offset at ts in the given style.
func (z SystemZone) FormatOffset(ts int64, style OffsetStyle) string {
	return formatOffset(z.Offset(ts), style)
}

// OffsetName returns the host's abbreviation for the offset at ts, or a
// long name for it.
func (SystemZone) OffsetName(ts int64, style NameStyle, loc Locale) string {
	return locationOffsetName(time.Local, ts, style, loc)
}

// Equal reports whether other is the system zone.
func (SystemZone) Equal(other Zone) bool {
	_, ok := other.(SystemZone)
	return ok
}

// locationOffsetName names the offset of l at ts. The tz database only
// carries abbreviations, so the long style spells out the offset when no
// better name is known.
func locationOffsetName(l *time.Location, ts int64, style NameStyle, loc Locale) string {
	abbr, sec := time.UnixMilli(ts).In(l).Zone()
	if style == NameShort {
		return abbr
	}
	if name := loc.catalog().ZoneNames[abbr]; name != "" {
		return name
	}
	return "GMT" + formatOffset(sec/60, OffsetShort)
}
