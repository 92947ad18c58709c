// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"strings"
	"time"

	"gonih.org/datetime/internal/cache"
)

// Rules is the zone-rules oracle consulted by IANA zones.
type Rules interface {
	// OffsetMinutes returns the UTC offset of the named zone at the instant
	// ts, or false if the zone is unknown.
	OffsetMinutes(name string, ts int64) (int, bool)
	// IsKnownZone reports whether name identifies a zone.
	IsKnownZone(name string) bool
}

// LocationRules is implemented by Rules that can expose a [time.Location],
// which is used to look up zone abbreviations.
type LocationRules interface {
	Rules
	Location(name string) (*time.Location, bool)
}

// HostRules answers offset queries from the host's time zone database, as
// loaded by [time.LoadLocation].
type HostRules struct{}

type hostLocation struct {
	loc *time.Location
	err error
}

// locations caches loaded zones by name, as reading the database is
// expensive.
var locations cache.Cache[string, hostLocation]

func loadLocation(name string) hostLocation {
	// time.LoadLocation treats these specially; they are not IANA names.
	if name == "" || name == "Local" {
		return hostLocation{err: ErrInvalidZone}
	}
	loc, err := time.LoadLocation(name)
	return hostLocation{loc: loc, err: err}
}

// Location returns the loaded location for name.
func (HostRules) Location(name string) (*time.Location, bool) {
	l := locations.Get(name, loadLocation)
	return l.loc, l.err == nil
}

// OffsetMinutes implements Rules.
func (r HostRules) OffsetMinutes(name string, ts int64) (int, bool) {
	loc, ok := r.Location(name)
	if !ok {
		return 0, false
	}
	_, sec := time.UnixMilli(ts).In(loc).Zone()
	return sec / 60, true
}

// IsKnownZone implements Rules.
func (r HostRules) IsKnownZone(name string) bool {
	_, ok := r.Location(name)
	return ok
}

// IANAZone is a zone from the IANA time zone database, such as
// "America/New_York".
type IANAZone struct {
	name  string
	rules Rules
	valid bool
}

// zones caches IANAZone values by name.
var zones cache.Cache[string, *IANAZone]

// LoadIANAZone returns the zone with the given name. The zone is invalid if
// the current Rules do not know it. Zones are cached by name.
func LoadIANAZone(name string) *IANAZone {
	return zones.Get(name, func(name string) *IANAZone {
		r := currentRules()
		return &IANAZone{name: name, rules: r, valid: r.IsKnownZone(name)}
	})
}

// IsValidIANAZone reports whether name is known to the current Rules.
func IsValidIANAZone(name string) bool {
	return LoadIANAZone(name).valid
}

// looksLikeIANAName is a cheap syntactic check used before consulting the
// rules, mirroring the shape of tz database identifiers.
func looksLikeIANAName(s string) bool {
	if s == "" || len(s) > 256 {
		return false
	}
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		case strings.ContainsRune("_+-/", r):
		default:
			return false
		}
	}
	return true
}

// Type returns "iana".
func (z *IANAZone) Type() string { return "iana" }

// Name returns the tz database identifier, such as "America/New_York".
func (z *IANAZone) Name() string { return z.name }

// IsUniversal returns false.
func (z *IANAZone) IsUniversal() bool { return false }

// IsValid reports whether the Rules knew the zone when it was loaded.
func (z *IANAZone) IsValid() bool { return z.valid }

// Offset returns the offset the Rules report at ts, or NoOffset.
func (z *IANAZone) Offset(ts int64) int {
	if !z.valid {
		return NoOffset
	}
	o, ok := z.rules.OffsetMinutes(z.name, ts)
	if !ok {
		return NoOffset
	}
	return o
}

// FormatOffset formats the offset at ts in the given style.
func (z *IANAZone) FormatOffset(ts int64, style OffsetStyle) string {
	return formatOffset(z.Offset(ts), style)
}

// OffsetName returns the abbreviation, or the locale's long name for it,
// if the Rules expose locations. Otherwise it spells out the offset, as in
// "GMT-04:00".
func (z *IANAZone) OffsetName(ts int64, style NameStyle, loc Locale) string {
	if lr, ok := z.rules.(LocationRules); ok {
		if l, ok := lr.Location(z.name); ok {
			return locationOffsetName(l, ts, style, loc)
		}
	}
	return "GMT" + formatOffset(z.Offset(ts), OffsetShort)
}

// Equal reports whether other is an IANAZone of the same name.
func (z *IANAZone) Equal(other Zone) bool {
	o, ok := other.(*IANAZone)
	return ok && o.name == z.name
}
