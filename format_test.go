// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var layouts = []string{
	"yyyy-MM-dd'T'HH:mm:ss.SSSZZ",
	"EEE, dd LLL yyyy HH:mm:ss ZZZ",
	"kkkk-'W'WW-c",
	"yyyy-ooo",
	"D", "DD", "DDD", "DDDD",
	"t", "tt", "ttt", "tttt",
	"T", "TT", "TTT", "TTTT",
	"f", "ff", "fff", "ffff",
	"F", "FF", "FFF", "FFFF",
}

// mondayNY is 2017-09-04T13:08:04.023 in New York, a Monday in EDT.
func mondayNY(t *testing.T) DateTime {
	return mustNY(t, 2017, 9, 4, 13, 8, 4, 23)
}

// FuzzParseLayout generates layouts to check that [parseLayout] does not
// panic.
func FuzzParseLayout(f *testing.F) {
	for _, l := range layouts {
		f.Add(l)
	}
	f.Add("'unterminated")
	f.Add("''")
	f.Fuzz(func(t *testing.T, s string) {
		parseLayout(s)
	})
}

// FuzzFormat generates layouts and instants to check that
// [DateTime.ToFormat] does not panic.
func FuzzFormat(f *testing.F) {
	for _, l := range layouts {
		f.Add(l, int64(1504544884023))
		f.Add(l, int64(-62198755200000))
	}
	f.Fuzz(func(t *testing.T, layout string, ms int64) {
		dt, err := FromMillis(ms, WithZone("America/New_York"))
		if err != nil {
			return
		}
		dt.ToFormat(layout)
	})
}

// FuzzFormatRoundTrip checks that formatting an instant with a layout that
// determines it completely and parsing the result gives back the instant.
func FuzzFormatRoundTrip(f *testing.F) {
	f.Add(int64(1504544884023), []byte{0, 1})
	f.Add(int64(0), []byte{2, 3})
	f.Add(int64(-1), []byte{})
	f.Fuzz(func(t *testing.T, ms int64, extras []byte) {
		dt, err := FromMillis(ms, WithZone(UTC))
		if err != nil || dt.Year() < 1000 || dt.Year() > 9999 {
			return
		}
		layout, ok := decodeExtras(extras)
		if !ok {
			return
		}
		layout = "yyyy-MM-dd HH:mm:ss.SSS ZZ" + layout
		s := dt.ToFormat(layout)
		got, err := FromFormat(s, layout, WithZone(UTC))
		if err != nil {
			t.Fatalf("FromFormat(%q, %q) = %v", s, layout, err)
		}
		if got.ToMillis() != ms {
			t.Fatalf("FromFormat(%q, %q) = %v, want %v", s, layout, got, dt)
		}
	})
}

// roundTripExtras are tokens that repeat information already in the base
// layout of FuzzFormatRoundTrip, so they cannot change the result.
var roundTripExtras = []string{"EEE", "EEEE", "MMM", "MMMM", "c", "E", "LLL", "M"}

// decodeExtras turns b into a layout suffix of space separated tokens. Each
// byte selects one of roundTripExtras.
func decodeExtras(b []byte) (string, bool) {
	var sb strings.Builder
	for _, c := range b {
		if int(c) >= len(roundTripExtras) {
			return "", false
		}
		sb.WriteString(" ")
		sb.WriteString(roundTripExtras[c])
	}
	return sb.String(), true
}

func TestToFormat(t *testing.T) {
	dt := mondayNY(t)
	tcs := []struct {
		layout string
		want   string
	}{
		{"yyyy-MM-dd", "2017-09-04"},
		{"y yy yyyy yyyyyy", "2017 17 2017 002017"},
		{"M MM MMM MMMM MMMMM", "9 09 Sep September S"},
		{"L LL LLL LLLL LLLLL", "9 09 Sep September S"},
		{"d dd", "4 04"},
		{"E EEE EEEE EEEEE", "1 Mon Monday M"},
		{"c ccc cccc ccccc", "1 Mon Monday M"},
		{"h hh H HH a", "1 01 13 13 PM"},
		{"m mm s ss", "8 08 4 04"},
		{"S SSS u uu uuu", "23 023 023 02 0"},
		{"Z ZZ ZZZ", "-4 -04:00 -0400"},
		{"ZZZZ|ZZZZZ|z", "EDT|Eastern Daylight Time|America/New_York"},
		{"o ooo q qq", "247 247 3 03"},
		{"kk kkkk W WW", "17 2017 36 36"},
		{"G GG GGGGG", "AD Anno Domini A"},
		{"X x", "1504544884 1504544884023"},
		{"'yyyy' yyyy", "yyyy 2017"},
		{"HH'h'mm", "13h08"},
		{"B Q yyyyy", "B Q yyyyy"},
		{"D", "9/4/2017"},
		{"DD", "Sep 4, 2017"},
		{"DDD", "September 4, 2017"},
		{"DDDD", "Monday, September 4, 2017"},
		{"t", "1:08 PM"},
		{"ttt", "1:08:04 PM EDT"},
		{"T", "13:08"},
		{"TT", "13:08:04"},
		{"f", "9/4/2017, 1:08 PM"},
		{"fff", "September 4, 2017 at 1:08 PM EDT"},
		{"", ""},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, dt.ToFormat(tc.layout), "ToFormat(%q)", tc.layout)
	}

	assert.Equal(t, "Invalid DateTime", DateTime{}.ToFormat("yyyy"))
	assert.Equal(t, "x=2017", string(dt.AppendFormat([]byte("x="), "yyyy")))
}

func TestToFormatEdgeYears(t *testing.T) {
	bc := mustUTC(t, -43, 3, 15)
	assert.Equal(t, "-0043 43 BC", bc.ToFormat("yyyy yy G"))
	zero := mustUTC(t, 0, 6, 1)
	assert.Equal(t, "0000 BC", zero.ToFormat("yyyy G"))
	midnight := mustUTC(t, 2017, 1, 1)
	assert.Equal(t, "12 AM", midnight.ToFormat("h a"))
	noon := mustUTC(t, 2017, 1, 1, 12)
	assert.Equal(t, "12 PM", noon.ToFormat("h a"))
	// 2021-01-01 belongs to the last week of 2020.
	assert.Equal(t, "2020-W53-5", mustUTC(t, 2021, 1, 1).ToFormat("kkkk-'W'WW-c"))
	assert.Equal(t, "Z +0 +00:00", midnight.ToFormat("'Z' Z ZZ"))
}

func TestToFormatLocale(t *testing.T) {
	dt := mondayNY(t)

	de, err := dt.SetLocale("de-DE")
	require.NoError(t, err)
	assert.Equal(t, "Montag, 4. September 2017", de.ToFormat("DDDD"))
	assert.Equal(t, "Mo. 4. Sept.", de.ToFormat("EEE d. MMM"))
	assert.Equal(t, "13:08", de.ToFormat("t"))

	arab, err := dt.Reconfigure(LocaleOptions{NumberingSystem: "arab"})
	require.NoError(t, err)
	assert.Equal(t, "٢٠١٧-٠٩-٠٤", arab.ToFormat("yyyy-MM-dd"))
	assert.Equal(t, "-٠٤:٠٠", arab.ToFormat("ZZ"))
}

func TestPresets(t *testing.T) {
	dt := mondayNY(t)
	assert.Equal(t, "2017-09-04T13:08:04.023-04:00", dt.ToISO())
	assert.Equal(t, "2017-09-04T13:08:04.023-04:00", dt.String())
	assert.Equal(t, "20170904T130804.023-0400", dt.ToISOWith(ISOOptions{Basic: true}))
	assert.Equal(t, "2017-09-04T13:08:04.023-04:00[America/New_York]", dt.ToISOWith(ISOOptions{ExtendedZone: true}))
	assert.Equal(t, "2017-09-04T13:08:04.023", dt.ToISOWith(ISOOptions{OmitOffset: true}))
	assert.Equal(t, "2017-09-04", dt.ToISODate())
	assert.Equal(t, "2017-W36-1", dt.ToISOWeekDate())
	assert.Equal(t, "13:08:04.023-04:00", dt.ToISOTime(ISOOptions{}))
	assert.Equal(t, "T13:08:04.023-04:00", dt.ToISOTime(ISOOptions{IncludePrefix: true}))
	assert.Equal(t, "Mon, 04 Sep 2017 13:08:04 -0400", dt.ToRFC2822())
	assert.Equal(t, "Mon, 04 Sep 2017 17:08:04 GMT", dt.ToHTTP())
	assert.Equal(t, "2017-09-04", dt.ToSQLDate())
	assert.Equal(t, "13:08:04.023 -04:00", dt.ToSQLTime(SQLOptions{}))
	assert.Equal(t, "2017-09-04 13:08:04.023 -04:00", dt.ToSQL(SQLOptions{}))
	assert.Equal(t, "2017-09-04 13:08:04.023", dt.ToSQL(SQLOptions{OmitOffset: true}))
	assert.Equal(t, "2017-09-04 13:08:04.023 America/New_York", dt.ToSQL(SQLOptions{IncludeZone: true}))
	assert.Equal(t, "2017-09-04 13:08:04.023-04:00", dt.ToSQL(SQLOptions{NoOffsetSpace: true}))

	// Machine formats ignore the locale.
	de, err := dt.SetLocale("de")
	require.NoError(t, err)
	assert.Equal(t, "Mon, 04 Sep 2017 13:08:04 -0400", de.ToRFC2822())

	top := mustUTC(t, 2017, 9, 4, 13)
	assert.Equal(t, "2017-09-04T13:00:00.000Z", top.ToISO())
	assert.Equal(t, "2017-09-04T13:00Z", top.ToISOWith(ISOOptions{SuppressSeconds: true}))
	assert.Equal(t, "2017-09-04T13:00:00Z", top.ToISOWith(ISOOptions{SuppressMilliseconds: true}))
	assert.Equal(t, "2017-09-04T13:00:00.000+00:00[UTC]", top.ToISOWith(ISOOptions{ExtendedZone: true}))

	assert.Equal(t, "+012345-01-01T00:00:00.000Z", mustUTC(t, 12345).ToISO())
	assert.Equal(t, "-000005-01-01", mustUTC(t, -5).ToISODate())

	assert.Empty(t, DateTime{}.ToRFC2822())
	assert.Empty(t, DateTime{}.ToSQL(SQLOptions{}))
}

func TestJSON(t *testing.T) {
	dt := mondayNY(t)
	b, err := dt.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2017-09-04T13:08:04.023-04:00"`, string(b))

	var back DateTime
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, dt.ToMillis(), back.ToMillis())
	assert.Equal(t, "UTC-4", back.ZoneName())

	assertKind(t, back.UnmarshalJSON([]byte(`"yesterday"`)), ErrUnparsableString)
	assert.Error(t, back.UnmarshalJSON([]byte(`12`)))
}
