// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"encoding/json"
)

// ISOOptions configures the ISO 8601 renderings of a DateTime.
type ISOOptions struct {
	// Basic omits the separators between date and time fields.
	Basic bool
	// SuppressSeconds omits seconds and milliseconds when both are zero.
	SuppressSeconds bool
	// SuppressMilliseconds omits milliseconds when they are zero.
	SuppressMilliseconds bool
	// OmitOffset leaves out the offset.
	OmitOffset bool
	// ExtendedZone appends the zone name in brackets, as in
	// "2017-05-25T09:00:00-04:00[America/New_York]", and never writes "Z".
	ExtendedZone bool
	// IncludePrefix starts a time-only rendering with "T".
	IncludePrefix bool
}

// SQLOptions configures the SQL renderings of a DateTime.
type SQLOptions struct {
	// OmitOffset leaves out the offset.
	OmitOffset bool
	// IncludeZone writes the zone name instead of the offset.
	IncludeZone bool
	// NoOffsetSpace omits the space before the offset or zone.
	NoOffsetSpace bool
}

// tech returns dt with a locale suitable for machine-readable formats.
func (dt DateTime) tech() DateTime {
	dt.loc = Locale{}
	return dt
}

func (dt DateTime) appendISODate(b []byte, extended bool) []byte {
	y := dt.c.Year
	long := y > 9999 || y < 0
	if long && y >= 0 {
		b = append(b, '+')
	}
	if long {
		b = appendInt(b, y, 6)
	} else {
		b = appendInt(b, y, 4)
	}
	if extended {
		b = append(b, '-')
	}
	b = appendInt(b, dt.c.Month, 2)
	if extended {
		b = append(b, '-')
	}
	return appendInt(b, dt.c.Day, 2)
}

func (dt DateTime) appendISOTime(b []byte, opts ISOOptions) []byte {
	extended := !opts.Basic
	showSeconds := dt.c.Millisecond != 0 || dt.c.Second != 0 || !opts.SuppressSeconds

	b = appendInt(b, dt.c.Hour, 2)
	if extended {
		b = append(b, ':')
	}
	b = appendInt(b, dt.c.Minute, 2)
	if showSeconds {
		if extended {
			b = append(b, ':')
		}
		b = appendInt(b, dt.c.Second, 2)
		if dt.c.Millisecond != 0 || !opts.SuppressMilliseconds {
			b = append(b, '.')
			b = appendInt(b, dt.c.Millisecond, 3)
		}
	}
	if !opts.OmitOffset {
		if dt.IsOffsetFixed() && dt.offset == 0 && !opts.ExtendedZone {
			b = append(b, 'Z')
		} else if extended {
			b = append(b, formatOffset(dt.offset, OffsetShort)...)
		} else {
			b = append(b, formatOffset(dt.offset, OffsetTechie)...)
		}
	}
	if opts.ExtendedZone {
		b = append(b, '[')
		b = append(b, dt.zone.Name()...)
		b = append(b, ']')
	}
	return b
}

// ToISO returns dt in ISO 8601 extended format, such as
// "2017-05-25T09:00:00.000-04:00".
func (dt DateTime) ToISO() string {
	return dt.ToISOWith(ISOOptions{})
}

// ToISOWith is like ToISO, with options.
func (dt DateTime) ToISOWith(opts ISOOptions) string {
	if !dt.valid {
		return ""
	}
	b := dt.appendISODate(make([]byte, 0, 32), !opts.Basic)
	b = append(b, 'T')
	return string(dt.appendISOTime(b, opts))
}

// ToISODate returns the date part of dt in ISO 8601, such as "2017-05-25".
func (dt DateTime) ToISODate() string {
	if !dt.valid {
		return ""
	}
	return string(dt.appendISODate(nil, true))
}

// ToISOWeekDate returns dt as an ISO week date, such as "2017-W21-4".
func (dt DateTime) ToISOWeekDate() string {
	if !dt.valid {
		return ""
	}
	return dt.tech().ToFormat("kkkk-'W'WW-c")
}

// ToISOTime returns the time part of dt in ISO 8601, such as
// "09:00:00.000-04:00".
func (dt DateTime) ToISOTime(opts ISOOptions) string {
	if !dt.valid {
		return ""
	}
	var b []byte
	if opts.IncludePrefix {
		b = append(b, 'T')
	}
	return string(dt.appendISOTime(b, opts))
}

// ToRFC2822 returns dt as used in email headers, such as
// "Thu, 25 May 2017 09:00:00 -0400".
func (dt DateTime) ToRFC2822() string {
	if !dt.valid {
		return ""
	}
	return dt.tech().ToFormat("EEE, dd LLL yyyy HH:mm:ss ZZZ")
}

// ToHTTP returns dt in UTC as used in HTTP headers, such as
// "Thu, 25 May 2017 13:00:00 GMT".
func (dt DateTime) ToHTTP() string {
	if !dt.valid {
		return ""
	}
	return dt.ToUTC().tech().ToFormat("EEE, dd LLL yyyy HH:mm:ss 'GMT'")
}

// ToSQLDate returns the date part of dt as used by SQL, such as
// "2017-05-25".
func (dt DateTime) ToSQLDate() string {
	return dt.ToISODate()
}

// ToSQLTime returns the time part of dt as used by SQL, such as
// "09:00:00.000 -04:00".
func (dt DateTime) ToSQLTime(opts SQLOptions) string {
	if !dt.valid {
		return ""
	}
	layout := "HH:mm:ss.SSS"
	if opts.IncludeZone || !opts.OmitOffset {
		if !opts.NoOffsetSpace {
			layout += " "
		}
		if opts.IncludeZone {
			layout += "z"
		} else {
			layout += "ZZ"
		}
	}
	return dt.tech().ToFormat(layout)
}

// ToSQL returns dt as used by SQL, such as
// "2017-05-25 09:00:00.000 -04:00".
func (dt DateTime) ToSQL(opts SQLOptions) string {
	if !dt.valid {
		return ""
	}
	return dt.ToSQLDate() + " " + dt.ToSQLTime(opts)
}

// String implements fmt.Stringer, returning the ISO 8601 form of dt.
func (dt DateTime) String() string {
	if !dt.valid {
		return "Invalid DateTime"
	}
	return dt.ToISO()
}

// MarshalText implements encoding.TextMarshaler, using ISO 8601.
func (dt DateTime) MarshalText() ([]byte, error) {
	if !dt.valid {
		return nil, invalidArgument("cannot marshal an invalid DateTime")
	}
	return []byte(dt.ToISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The offset in the text
// is kept as a fixed-offset zone.
func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := FromISO(string(b), WithSetZone())
	if err != nil {
		return err
	}
	*dt = v
	return nil
}

// MarshalJSON implements json.Marshaler, as an ISO 8601 string.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	b, err := dt.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (dt *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return dt.UnmarshalText([]byte(s))
}
