// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"strings"
)

// NormalizeZone turns a zone specifier into a Zone. It accepts
//
//   - a Zone, which is returned unchanged,
//   - nil, which yields def,
//   - the strings "default", "system" or "local", and "utc" or "gmt"
//     (case-insensitive),
//   - a fixed offset such as "UTC+5:30",
//   - an IANA zone name such as "Europe/Berlin",
//   - an int, taken as a fixed offset in minutes.
//
// Anything else produces an [InvalidZone]; NormalizeZone never fails.
func NormalizeZone(input any, def Zone) Zone {
	switch v := input.(type) {
	case nil:
		return def
	case Zone:
		return v
	case int:
		return FixedOffset(v)
	case string:
		return normalizeZoneName(v, def)
	}
	return NewInvalidZone("")
}

func normalizeZoneName(s string, def Zone) Zone {
	switch strings.ToLower(s) {
	case "default":
		return def
	case "local", "system":
		return System
	case "utc", "gmt":
		return UTC
	}
	if z, ok := ParseFixedOffset(s); ok {
		return z
	}
	if looksLikeIANAName(s) {
		if z := LoadIANAZone(s); z.IsValid() {
			return z
		}
	}
	return NewInvalidZone(s)
}
