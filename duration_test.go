// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type q = map[Unit]float64

func TestDurationOf(t *testing.T) {
	d, err := DurationOf(q{"Hours": 2, "minute": 30})
	require.NoError(t, err)
	assert.Equal(t, q{Hour: 2, Minute: 30}, d.ToObject())
	assert.Equal(t, 2.0, d.Get("hours"))
	assert.True(t, d.Has(Minute))
	assert.False(t, d.Has(Second))
	assert.Equal(t, 0.0, d.Get(Weekday))

	_, err = DurationOf(q{"fortnights": 1})
	assertKind(t, err, ErrInvalidUnit)
	_, err = DurationOf(q{Weekday: 1})
	assertKind(t, err, ErrInvalidUnit)
	_, err = DurationOf(q{Hour: nan()})
	assertKind(t, err, ErrInvalidArgument)

	assert.Panics(t, func() { MustDuration(q{"fortnights": 1}) })

	assert.Equal(t, q{Millisecond: 5400000}, DurationFromTime(90*time.Minute).ToObject())
	assert.Equal(t, 90*time.Minute, dur(q{Hour: 1.5}).ToTime())
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestDurationArithmetic(t *testing.T) {
	a := dur(q{Hour: 1, Minute: 30})
	b := dur(q{Hour: 2, Second: 10})
	assert.Equal(t, q{Hour: 3, Minute: 30, Second: 10}, a.Plus(b).ToObject())
	assert.Equal(t, q{Hour: -1, Minute: 30, Second: -10}, a.Minus(b).ToObject())
	assert.Equal(t, q{Hour: -1, Minute: -30}, a.Negate().ToObject())
	assert.Equal(t, q{Hour: 0}, dur(q{Hour: 0}).Negate().ToObject())

	set, err := a.Set(q{"minutes": 5, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, q{Day: 1, Hour: 1, Minute: 5}, set.ToObject())
	assert.Equal(t, q{Hour: 1, Minute: 30}, a.ToObject(), "a is unchanged")

	doubled, err := a.MapUnits(func(v float64, _ Unit) float64 { return v * 2 })
	require.NoError(t, err)
	assert.Equal(t, q{Hour: 2, Minute: 60}, doubled.ToObject())
	_, err = a.MapUnits(func(float64, Unit) float64 { return nan() })
	assertKind(t, err, ErrInvalidArgument)

	assert.True(t, dur(q{Hour: 1}).Equal(dur(q{Hour: 1, Minute: 0})))
	assert.False(t, dur(q{Hour: 1}).Equal(dur(q{Minute: 60})))
}

func TestNormalize(t *testing.T) {
	tcs := []struct {
		in, want q
	}{
		{q{Hour: 12, Minute: -45}, q{Hour: 11, Minute: 15}},
		{q{Hour: -12, Minute: 45}, q{Hour: -11, Minute: -15}},
		{q{Minute: 90, Second: 30}, q{Minute: 90, Second: 30}},
		{q{Hour: 1, Minute: 90}, q{Hour: 2, Minute: 30}},
		{q{Year: 2, Day: 5000}, q{Year: 15, Day: 255}},
		{q{Day: 1, Millisecond: 86400001}, q{Day: 2, Millisecond: 1}},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, dur(tc.in).Normalize().ToObject(), "%v.Normalize()", tc.in)
	}
}

func TestShiftTo(t *testing.T) {
	tcs := []struct {
		in    q
		units []Unit
		want  q
	}{
		{q{Hour: 1}, []Unit{Minute}, q{Minute: 60}},
		{q{Day: 1, Hour: 3}, []Unit{Hour}, q{Hour: 27}},
		{q{Week: 1}, []Unit{Day, Hour}, q{Day: 7, Hour: 0}},
		{q{Hour: 1.5}, []Unit{Hour, Minute}, q{Hour: 1, Minute: 30}},
		{q{Minute: 90}, []Unit{Hour}, q{Hour: 1.5}},
		{q{Millisecond: 1500}, []Unit{Second, Millisecond}, q{Second: 1, Millisecond: 500}},
		{q{Year: 1, Month: 6}, []Unit{Month}, q{Month: 18}},
		{q{Hour: 12, Minute: -45}, []Unit{Minute}, q{Minute: 675}},
	}
	for _, tc := range tcs {
		got, err := dur(tc.in).ShiftTo(tc.units...)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.ToObject(), "%v.ShiftTo(%v)", tc.in, tc.units)
	}

	same, err := dur(q{Hour: 1}).ShiftTo()
	require.NoError(t, err)
	assert.Equal(t, q{Hour: 1}, same.ToObject())

	_, err = dur(q{Hour: 1}).ShiftTo(Ordinal)
	assertKind(t, err, ErrInvalidUnit)
}

func TestAs(t *testing.T) {
	month := dur(q{Month: 1})
	days, err := month.As(Day)
	require.NoError(t, err)
	assert.Equal(t, 30.0, days)

	long := month.Reconfigure(Locale{}, Longterm)
	assert.Equal(t, Longterm, long.Accuracy())
	days, err = long.As(Day)
	require.NoError(t, err)
	assert.InDelta(t, 30.436875, days, 1e-9)

	year, err := DurationOf(q{Year: 1}, WithConversionAccuracy(Longterm))
	require.NoError(t, err)
	days, err = year.As("days")
	require.NoError(t, err)
	assert.InDelta(t, 365.2425, days, 1e-9)

	assert.Equal(t, 3600000.0, dur(q{Hour: 1}).ToMillis())
	assert.Equal(t, 31536000000.0, dur(q{Year: 1}).ToMillis())
}

func TestDurationToISO(t *testing.T) {
	tcs := []struct {
		in   q
		want string
	}{
		{q{Year: 1, Day: 6, Second: 2}, "P1Y6DT2S"},
		{q{}, "PT0S"},
		{q{Hour: 0}, "PT0S"},
		{q{Millisecond: 1500}, "PT1.5S"},
		{q{Second: 1, Millisecond: 2}, "PT1.002S"},
		{q{Quarter: 1, Month: 1}, "P4M"},
		{q{Week: 2}, "P2W"},
		{q{Hour: -1.5}, "PT-1.5H"},
		{q{Year: 1, Month: 2, Day: 10, Hour: 2, Minute: 30}, "P1Y2M10DT2H30M"},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, dur(tc.in).ToISO(), "%v.ToISO()", tc.in)
	}
	assert.Equal(t, "P1Y6DT2S", dur(q{Year: 1, Day: 6, Second: 2}).String())
}

func TestDurationToISOTime(t *testing.T) {
	d := dur(q{Hour: 11, Minute: 22, Second: 33, Millisecond: 444})
	s, ok := d.ToISOTime(ISOOptions{})
	assert.True(t, ok)
	assert.Equal(t, "11:22:33.444", s)

	s, _ = d.ToISOTime(ISOOptions{IncludePrefix: true, Basic: true})
	assert.Equal(t, "T112233.444", s)

	s, _ = dur(q{Hour: 11}).ToISOTime(ISOOptions{SuppressMilliseconds: true})
	assert.Equal(t, "11:00:00", s)
	s, _ = dur(q{Hour: 11}).ToISOTime(ISOOptions{SuppressSeconds: true})
	assert.Equal(t, "11:00", s)

	_, ok = dur(q{Hour: -1}).ToISOTime(ISOOptions{})
	assert.False(t, ok)
	_, ok = dur(q{Day: 1}).ToISOTime(ISOOptions{})
	assert.False(t, ok)
}

func TestParseISODuration(t *testing.T) {
	tcs := []struct {
		in   string
		want q
	}{
		{"P1Y2M10DT2H30M", q{Year: 1, Month: 2, Day: 10, Hour: 2, Minute: 30}},
		{"P1Y6DT2S", q{Year: 1, Day: 6, Second: 2}},
		{"PT1.5S", q{Second: 1, Millisecond: 500}},
		{"PT1,25S", q{Second: 1, Millisecond: 250}},
		{"P1.5W", q{Week: 1.5}},
		{"PT0S", q{Second: 0}},
		{"-P1D", q{Day: -1}},
		{"-P1DT-2H", q{Day: -1, Hour: 2}},
		{"P-1Y2M", q{Year: -1, Month: 2}},
		{"PT-1.5S", q{Second: -1, Millisecond: -500}},
	}
	for _, tc := range tcs {
		d, err := ParseISODuration(tc.in)
		if assert.NoError(t, err, "ParseISODuration(%q)", tc.in) {
			assert.Equal(t, tc.want, d.ToObject(), "ParseISODuration(%q)", tc.in)
		}
	}

	d, err := ParseISODuration("PT-0.5S")
	require.NoError(t, err)
	assert.Equal(t, -500.0, d.Milliseconds())
	assert.Equal(t, -0.5, d.ToMillis()/1000)

	for _, in := range []string{"", "P", "PT", "P1YT", "1D", "P1D T2H", "P1H", "PT1D", "P1.5.5D"} {
		_, err := ParseISODuration(in)
		assertKind(t, err, ErrUnparsableString)
	}
}

func TestParseISOTime(t *testing.T) {
	d, err := ParseISOTime("11:22:33.444")
	require.NoError(t, err)
	assert.Equal(t, q{Hour: 11, Minute: 22, Second: 33, Millisecond: 444}, d.ToObject())

	d, err = ParseISOTime("T1122")
	require.NoError(t, err)
	assert.Equal(t, q{Hour: 11, Minute: 22, Second: 0, Millisecond: 0}, d.ToObject())

	_, err = ParseISOTime("11:22 PM")
	assertKind(t, err, ErrUnparsableString)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("P2DT3H")))
	assert.Equal(t, q{Day: 2, Hour: 3}, d.ToObject())
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "P2DT3H", string(b))
	assertKind(t, d.UnmarshalText([]byte("two days")), ErrUnparsableString)
}

func TestToHuman(t *testing.T) {
	assert.Equal(t, "1 year, 2 days, 6.5 hours", dur(q{Year: 1, Day: 2, Hour: 6.5}).ToHuman())
	assert.Equal(t, "1,000 milliseconds", dur(q{Millisecond: 1000}).ToHuman())
	assert.Equal(t, "", Duration{}.ToHuman())

	de, err := ParseLocale("de")
	require.NoError(t, err)
	d, err := DurationOf(q{Year: 2, Day: 1.5}, WithDurationLocale(de))
	require.NoError(t, err)
	assert.Equal(t, "2 Jahre, 1,5 Tage", d.ToHuman())
}

func TestDurationToFormat(t *testing.T) {
	tcs := []struct {
		in     q
		layout string
		want   string
	}{
		{q{Hour: 1, Minute: 5, Second: 3}, "hh:mm:ss", "01:05:03"},
		{q{Day: 1, Hour: 2}, "h 'hours'", "26 hours"},
		{q{Millisecond: 1500}, "s.SSS", "1.500"},
		{q{Minute: 90}, "h", "1"},
		{q{Year: 1, Month: 2}, "y 'years' M 'months'", "1 years 2 months"},
		{q{Week: 1, Day: 3}, "d", "10"},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, dur(tc.in).ToFormat(tc.layout), "%v.ToFormat(%q)", tc.in, tc.layout)
	}
}

var allDurationUnits = []Unit{Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond}

// FuzzConversionsKeepLength checks that Normalize and ShiftTo never change
// the length of a Duration. Only Longterm accuracy is consistent enough for
// this: casual years are 365 days but twelve casual months are 360.
func FuzzConversionsKeepLength(f *testing.F) {
	f.Add(int16(1), int16(2), int16(10), int16(-3), int16(45), int16(0), int16(500), uint16(0b100010000))
	f.Add(int16(0), int16(0), int16(0), int16(12), int16(-45), int16(0), int16(0), uint16(0b000011000))
	f.Add(int16(-2), int16(30), int16(400), int16(0), int16(0), int16(-90), int16(-1), uint16(0b000000111))
	f.Add(int16(0), int16(0), int16(3), int16(0), int16(0), int16(0), int16(0), uint16(0b100000000))
	f.Fuzz(func(t *testing.T, years, months, days, hours, minutes, seconds, millis int16, mask uint16) {
		d := MustDuration(q{
			Year:        float64(years),
			Month:       float64(months),
			Day:         float64(days),
			Hour:        float64(hours),
			Minute:      float64(minutes),
			Second:      float64(seconds),
			Millisecond: float64(millis),
		}, WithConversionAccuracy(Longterm))
		want := d.ToMillis()
		tolerance := 1e-9 * math.Max(1, math.Abs(want))

		if got := d.Normalize().ToMillis(); math.Abs(got-want) > tolerance {
			t.Fatalf("%v.Normalize() is %v ms long, want %v", d, got, want)
		}

		var units []Unit
		for i, u := range allDurationUnits {
			if mask&(1<<i) != 0 {
				units = append(units, u)
			}
		}
		if len(units) == 0 {
			return
		}
		shifted, err := d.ShiftTo(units...)
		if err != nil {
			t.Fatalf("%v.ShiftTo(%v) = %v", d, units, err)
		}
		if got := shifted.ToMillis(); math.Abs(got-want) > tolerance {
			t.Fatalf("%v.ShiftTo(%v) = %v, which is %v ms long, want %v", d, units, shifted, got, want)
		}
	})
}
