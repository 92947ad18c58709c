// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	a := mustUTC(t, 2017, 5, 25)
	b := mustUTC(t, 2017, 5, 26)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))

	ny, err := a.SetZone("America/New_York", false)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Compare(ny))
	assert.False(t, a.Equal(ny), "different zones")
	de, err := a.SetLocale("de")
	require.NoError(t, err)
	assert.False(t, a.Equal(de), "different locales")
	assert.True(t, a.Equal(mustUTC(t, 2017, 5, 25)))
}

func TestMinMax(t *testing.T) {
	a := mustUTC(t, 2017, 5, 25)
	b := mustUTC(t, 2017, 5, 26)
	c := mustUTC(t, 2016, 1, 1)
	assert.True(t, Min(a, b, DateTime{}, c).Equal(c))
	assert.True(t, Max(a, DateTime{}, b, c).Equal(b))
	assert.False(t, Min().IsValid())
	assert.False(t, Max(DateTime{}).IsValid())
}

func TestHasSame(t *testing.T) {
	dt := mustUTC(t, 2017, 5, 25, 9)
	tcs := []struct {
		other DateTime
		unit  Unit
		want  bool
	}{
		{mustUTC(t, 2017, 1, 1), Year, true},
		{mustUTC(t, 2018, 5, 25), Year, false},
		{mustUTC(t, 2017, 6, 30, 23), Quarter, true},
		{mustUTC(t, 2017, 7, 1), Quarter, false},
		{mustUTC(t, 2017, 5, 31, 23, 59, 59, 999), Month, true},
		{mustUTC(t, 2017, 5, 22), Week, true},
		{mustUTC(t, 2017, 5, 29), Week, false},
		{mustUTC(t, 2017, 5, 25, 23), Day, true},
		{mustUTC(t, 2017, 5, 24, 23), Day, false},
		{mustUTC(t, 2017, 5, 25, 9, 59), Hour, true},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, dt.HasSame(tc.other, tc.unit), "HasSame(%v, %s)", tc.other, tc.unit)
	}

	// 23:00 UTC is the next morning in Tokyo, but the calendar fields are
	// compared as if they were local to the other value's zone.
	late := mustUTC(t, 2017, 5, 25, 23)
	tokyo, err := FromObject(Values{Year: 2017, Month: 5, Day: 25, Hour: 12}, WithZone("Asia/Tokyo"))
	require.NoError(t, err)
	assert.True(t, late.HasSame(tokyo, Day))
	assert.False(t, dt.HasSame(DateTime{}, Day))
	assert.False(t, dt.HasSame(dt, "fortnight"))
}
