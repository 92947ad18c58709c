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

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{
		"years":        Year,
		"Days":         Day,
		"weekNumber":   WeekNumber,
		"MILLISECONDS": Millisecond,
		"ordinal":      Ordinal,
	} {
		got, err := ParseUnit(in)
		require.NoError(t, err, "ParseUnit(%q)", in)
		assert.Equal(t, want, got, "ParseUnit(%q)", in)
	}
	_, err := ParseUnit("fortnight")
	assertKind(t, err, ErrInvalidUnit)
}

func TestNewLocale(t *testing.T) {
	l, err := ParseLocale("ar-EG-u-nu-arab")
	require.NoError(t, err)
	assert.Equal(t, "arab", l.NumberingSystem())
	assert.Equal(t, "intl", l.ListingMode())

	l, err = ParseLocale("th-TH-u-ca-buddhist")
	require.NoError(t, err)
	assert.Equal(t, "buddhist", l.OutputCalendar())
	assert.Equal(t, "", l.NumberingSystem())

	// Explicit options win over the tag's extensions.
	l, err = NewLocale(LocaleOptions{Locale: "en-US-u-nu-arab", NumberingSystem: "latn"})
	require.NoError(t, err)
	assert.Equal(t, "latn", l.NumberingSystem())
	assert.Equal(t, "en", l.ListingMode())

	en, err := ParseLocale("en-US")
	require.NoError(t, err)
	assert.True(t, en.Equal(Locale{}))
	assert.False(t, en.Equal(l))

	dt, err := FromObject(Values{Year: 2017, Month: 5, Day: 25}, WithZone(UTC), WithLocale("ar-EG-u-nu-arab"))
	require.NoError(t, err)
	assert.Equal(t, "٢٠١٧-٠٥-٢٥", dt.ToFormat("yyyy-MM-dd"))

	_, err = NewLocale(LocaleOptions{NumberingSystem: "bogus"})
	assertKind(t, err, ErrInvalidArgument)
	_, err = NewLocale(LocaleOptions{OutputCalendar: "a calendar"})
	assertKind(t, err, ErrInvalidArgument)
	_, err = ParseLocale("not a locale!")
	assertKind(t, err, ErrInvalidArgument)
}
