// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
	"strconv"
)

// NoOffset is returned by [Zone.Offset] for invalid zones.
const NoOffset = math.MinInt32

// A Zone determines the offset from UTC, in minutes, of local clocks at a
// given instant. Zones are immutable and may be shared freely.
type Zone interface {
	// Type names the kind of zone: "fixed", "system", "iana" or "invalid".
	Type() string
	// Name returns the canonical name of the zone.
	Name() string
	// IsUniversal reports whether the offset never changes.
	IsUniversal() bool
	// IsValid reports whether the zone can compute offsets.
	IsValid() bool
	// Offset returns the UTC offset in minutes at the instant ts, given in
	// milliseconds since the Unix epoch. Invalid zones return NoOffset.
	Offset(ts int64) int
	// FormatOffset formats the offset at ts, for example as "+05:30".
	FormatOffset(ts int64, style OffsetStyle) string
	// OffsetName returns a human-readable name for the offset at ts, such
	// as "EST" or "Eastern Standard Time".
	OffsetName(ts int64, style NameStyle, loc Locale) string
	// Equal reports whether both zones are of the same kind and identify
	// the same rules.
	Equal(other Zone) bool
}

// OffsetStyle selects the textual form of an offset.
type OffsetStyle int

const (
	// OffsetShort formats as "+05:00".
	OffsetShort OffsetStyle = iota
	// OffsetNarrow formats as "+5" or "+5:30".
	OffsetNarrow
	// OffsetTechie formats as "+0500".
	OffsetTechie
)

// NameStyle selects between abbreviated and long offset names.
type NameStyle int

const (
	NameShort NameStyle = iota
	NameLong
)

// formatOffset formats an offset given in minutes.
func formatOffset(offset int, style OffsetStyle) string {
	hours := offset / 60
	if hours < 0 {
		hours = -hours
	}
	minutes := offset % 60
	if minutes < 0 {
		minutes = -minutes
	}
	sign := byte('+')
	if offset < 0 {
		sign = '-'
	}

	b := make([]byte, 0, 6)
	b = append(b, sign)
	switch style {
	case OffsetNarrow:
		b = strconv.AppendInt(b, int64(hours), 10)
		if minutes > 0 {
			b = append(b, ':')
			b = appendInt(b, minutes, 2)
		}
	case OffsetTechie:
		b = appendInt(b, hours, 2)
		b = appendInt(b, minutes, 2)
	default:
		b = appendInt(b, hours, 2)
		b = append(b, ':')
		b = appendInt(b, minutes, 2)
	}
	return string(b)
}

// appendInt appends the decimal form of x to b, padded with leading zeros
// to at least width digits.
func appendInt(b []byte, x int, width int) []byte {
	u := uint64(x)
	if x < 0 {
		b = append(b, '-')
		u = uint64(-x)
	}
	var buf [20]byte
	i := len(buf)
	for u >= 10 {
		i--
		q := u / 10
		buf[i] = byte('0' + u - q*10)
		u = q
	}
	i--
	buf[i] = byte('0' + u)
	for w := len(buf) - i; w < width; w++ {
		b = append(b, '0')
	}
	return append(b, buf[i:]...)
}

// InvalidZone is the zone produced for specifiers that do not resolve.
type InvalidZone struct {
	name string
}

// NewInvalidZone returns an InvalidZone reporting name.
func NewInvalidZone(name string) InvalidZone {
	return InvalidZone{name: name}
}

// Type returns "invalid".
func (z InvalidZone) Type() string { return "invalid" }

// Name returns the specifier that failed to resolve.
func (z InvalidZone) Name() string { return z.name }

// IsUniversal returns false.
func (z InvalidZone) IsUniversal() bool { return false }

// IsValid returns false.
func (z InvalidZone) IsValid() bool { return false }

// Offset returns NoOffset.
func (z InvalidZone) Offset(int64) int { return NoOffset }

// FormatOffset returns the empty string.
func (z InvalidZone) FormatOffset(int64, OffsetStyle) string { return "" }

// OffsetName returns the empty string.
func (z InvalidZone) OffsetName(int64, NameStyle, Locale) string { return "" }

// Equal returns false, as an invalid zone equals nothing, not even itself.
func (z InvalidZone) Equal(Zone) bool { return false }
