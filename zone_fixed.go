// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"regexp"
	"strconv"
)

// FixedOffsetZone is a zone with a constant offset from UTC.
type FixedOffsetZone struct {
	fixed int
}

// UTC is the zone with offset zero.
var UTC = FixedOffsetZone{}

// FixedOffset returns the zone with the given constant offset in minutes.
func FixedOffset(minutes int) FixedOffsetZone {
	return FixedOffsetZone{fixed: minutes}
}

var fixedOffsetRE = regexp.MustCompile(`(?i)^utc(?:([+-]\d{1,2})(?::(\d{2}))?)?$`)

// ParseFixedOffset parses a specifier such as "UTC", "UTC+3" or
// "UTC-5:30".
func ParseFixedOffset(s string) (FixedOffsetZone, bool) {
	m := fixedOffsetRE.FindStringSubmatch(s)
	if m == nil {
		return FixedOffsetZone{}, false
	}
	if m[1] == "" {
		return UTC, true
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return FixedOffsetZone{}, false
	}
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	return FixedOffset(signedOffset(hours, minutes, m[1][0] == '-')), true
}

// signedOffset combines an hour and minute part into minutes. The minute part
// takes the sign of the hour part; neg covers "-00:30".
func signedOffset(hours, minutes int, neg bool) int {
	if hours < 0 || neg {
		if hours > 0 {
			hours = -hours
		}
		return hours*60 - minutes
	}
	return hours*60 + minutes
}

// Minutes returns the fixed offset.
func (z FixedOffsetZone) Minutes() int { return z.fixed }

// Type returns "fixed".
func (z FixedOffsetZone) Type() string { return "fixed" }

// Name returns "UTC" for the zero offset and "UTC+5:30" style names
// otherwise.
func (z FixedOffsetZone) Name() string {
	if z.fixed == 0 {
		return "UTC"
	}
	return "UTC" + formatOffset(z.fixed, OffsetNarrow)
}

// IsUniversal returns true.
func (z FixedOffsetZone) IsUniversal() bool { return true }

// IsValid returns true.
func (z FixedOffsetZone) IsValid() bool { return true }

// Offset returns the fixed offset, whatever the instant.
func (z FixedOffsetZone) Offset(int64) int { return z.fixed }

// FormatOffset formats the fixed offset in the given style.
func (z FixedOffsetZone) FormatOffset(_ int64, style OffsetStyle) string {
	return formatOffset(z.fixed, style)
}

// OffsetName returns the zone's name, such as "UTC+5:30".
func (z FixedOffsetZone) OffsetName(int64, NameStyle, Locale) string {
	return z.Name()
}

// Equal reports whether other is a FixedOffsetZone with the same offset.
func (z FixedOffsetZone) Equal(other Zone) bool {
	o, ok := other.(FixedOffsetZone)
	return ok && o.fixed == z.fixed
}
