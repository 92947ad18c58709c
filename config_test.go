// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func TestParseSettings(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		f    SettingsFormat
		want Settings
	}{
		{
			"toml",
			"default_zone = \"America/New_York\"\ntwo_digit_cutoff_year = 50\n",
			FormatTOML,
			Settings{DefaultZone: "America/New_York", TwoDigitCutoffYear: intp(50)},
		},
		{
			"yaml",
			"defaultZone: Europe/Berlin\ndefaultLocale: de\n",
			FormatYAML,
			Settings{DefaultZone: "Europe/Berlin", DefaultLocale: "de"},
		},
		{
			"json",
			`{"numberingSystem": "arab", "outputCalendar": "gregory"}`,
			FormatJSON,
			Settings{NumberingSystem: "arab", OutputCalendar: "gregory"},
		},
		{"empty", "", FormatTOML, Settings{}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSettings([]byte(tc.in), tc.f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, tc := range []struct {
		in string
		f  SettingsFormat
	}{
		{"bogus = 1", FormatTOML},
		{"default_zone = ", FormatTOML},
		{"bogus: 1", FormatYAML},
		{`{"twoDigitCutoffYear": "soon"}`, FormatJSON},
		{"", SettingsFormat(42)},
	} {
		_, err := ParseSettings([]byte(tc.in), tc.f)
		assert.Error(t, err, "ParseSettings(%q, %v)", tc.in, tc.f)
	}
}

func TestSettingsFormat(t *testing.T) {
	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "unknown", SettingsFormat(42).String())

	assert.Equal(t, FormatTOML, settingsFormat("a/b.TOML"))
	assert.Equal(t, FormatJSON, settingsFormat("b.json"))
	assert.Equal(t, FormatYAML, settingsFormat("b.yml"))
	assert.Equal(t, FormatYAML, settingsFormat("settings"))
}

func TestApplySettings(t *testing.T) {
	t.Cleanup(ResetSettings)

	s := Settings{
		DefaultZone:        "Europe/Berlin",
		DefaultLocale:      "de",
		NumberingSystem:    "arab",
		TwoDigitCutoffYear: intp(30),
	}
	require.NoError(t, s.Apply())
	assert.Equal(t, "Europe/Berlin", DefaultZone().Name())
	assert.Equal(t, "de", DefaultLocale())
	assert.Equal(t, 30, TwoDigitCutoffYear())

	cur := CurrentSettings()
	assert.Equal(t, "Europe/Berlin", cur.DefaultZone)
	assert.Equal(t, "arab", cur.NumberingSystem)
	assert.Equal(t, intp(30), cur.TwoDigitCutoffYear)

	dt, err := FromObject(Values{Year: 2017, Month: 5, Day: 25})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", dt.ZoneName())
	assert.Equal(t, "arab", dt.Locale().NumberingSystem())

	// Invalid settings leave the defaults alone.
	err = Settings{DefaultZone: "Mars/Olympus_Mons", DefaultLocale: "fr"}.Apply()
	assertKind(t, err, ErrInvalidZone)
	err = Settings{DefaultLocale: "not a locale!"}.Apply()
	assertKind(t, err, ErrInvalidArgument)
	err = Settings{DefaultZone: "UTC", TwoDigitCutoffYear: intp(100)}.Apply()
	assertKind(t, err, ErrInvalidArgument)
	err = Settings{DefaultZone: "UTC", DefaultLocale: "fr", NumberingSystem: "bogus"}.Apply()
	assertKind(t, err, ErrInvalidArgument)
	err = Settings{DefaultLocale: "fr", OutputCalendar: "not a calendar"}.Apply()
	assertKind(t, err, ErrInvalidArgument)
	assert.Equal(t, cur, CurrentSettings())

	_, err = FromMillis(0)
	require.NoError(t, err)

	require.NoError(t, Settings{}.Apply())
	assert.Equal(t, cur, CurrentSettings())
}

func TestSetDefaultNumbering(t *testing.T) {
	t.Cleanup(ResetSettings)

	assertKind(t, SetDefaultNumberingSystem("bogus"), ErrInvalidArgument)
	assertKind(t, SetDefaultOutputCalendar("not a calendar"), ErrInvalidArgument)
	assert.Equal(t, "", CurrentSettings().NumberingSystem)
	assert.Equal(t, "", CurrentSettings().OutputCalendar)

	require.NoError(t, SetDefaultNumberingSystem("hanidec"))
	require.NoError(t, SetDefaultOutputCalendar("gregory"))
	dt, err := InUTC(2017, 5, 25)
	require.NoError(t, err)
	assert.Equal(t, "hanidec", dt.Locale().NumberingSystem())
	assert.Equal(t, "gregory", dt.Locale().OutputCalendar())
	assert.Equal(t, "二〇一七", dt.ToFormat("yyyy"))

	require.NoError(t, SetDefaultNumberingSystem(""))
	dt, err = InUTC(2017, 5, 25)
	require.NoError(t, err)
	assert.Equal(t, "2017", dt.ToFormat("yyyy"))
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	s, err := LoadSettings(write("dt.toml", "default_locale = \"fr\"\n"))
	require.NoError(t, err)
	assert.Equal(t, Settings{DefaultLocale: "fr"}, s)

	s, err = LoadSettings(write("dt.yaml", "twoDigitCutoffYear: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, Settings{TwoDigitCutoffYear: intp(10)}, s)

	s, err = LoadSettings(write("dt.json", `{"defaultZone": "UTC+3"}`))
	require.NoError(t, err)
	assert.Equal(t, Settings{DefaultZone: "UTC+3"}, s)

	_, err = LoadSettings(write("bad.toml", "default_locale = 1\n"))
	assert.ErrorContains(t, err, "bad.toml")

	_, err = LoadSettings(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "reading settings")
}
