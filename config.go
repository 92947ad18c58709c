// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"
)

// Settings is a serializable form of the process-wide defaults. Empty fields
// leave the corresponding default alone when applied.
type Settings struct {
	DefaultZone        string `json:"defaultZone,omitempty" toml:"default_zone"`
	DefaultLocale      string `json:"defaultLocale,omitempty" toml:"default_locale"`
	NumberingSystem    string `json:"numberingSystem,omitempty" toml:"numbering_system"`
	OutputCalendar     string `json:"outputCalendar,omitempty" toml:"output_calendar"`
	TwoDigitCutoffYear *int   `json:"twoDigitCutoffYear,omitempty" toml:"two_digit_cutoff_year"`
}

// A SettingsFormat is an encoding of Settings.
type SettingsFormat int

const (
	FormatTOML SettingsFormat = iota
	FormatYAML
	FormatJSON
)

// String implements fmt.Stringer.
func (f SettingsFormat) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return "unknown"
}

// settingsFormat infers the format from a file extension. Unknown
// extensions are read as YAML, which also accepts JSON.
func settingsFormat(path string) SettingsFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}
	return FormatYAML
}

// LoadSettings reads Settings from a TOML, YAML or JSON file, selected by
// its extension.
func LoadSettings(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "reading settings")
	}
	s, err := ParseSettings(b, settingsFormat(path))
	if err != nil {
		return Settings{}, errors.Wrapf(err, "%s", path)
	}
	return s, nil
}

// ParseSettings decodes Settings in the given format. Unknown keys are an
// error.
func ParseSettings(b []byte, f SettingsFormat) (Settings, error) {
	var s Settings
	switch f {
	case FormatTOML:
		md, err := toml.Decode(string(b), &s)
		if err != nil {
			return Settings{}, errors.Wrap(err, "decoding TOML settings")
		}
		if un := md.Undecoded(); len(un) > 0 {
			return Settings{}, errors.Newf("unknown settings key %q", un[0].String())
		}
	case FormatYAML, FormatJSON:
		if err := yaml.UnmarshalStrict(b, &s); err != nil {
			return Settings{}, errors.Wrapf(err, "decoding %v settings", f)
		}
	default:
		return Settings{}, errors.Newf("unknown settings format %d", int(f))
	}
	return s, nil
}

// CurrentSettings returns the process-wide defaults.
func CurrentSettings() Settings {
	global.mu.RLock()
	defer global.mu.RUnlock()
	cutoff := global.twoDigitCutoffYear
	return Settings{
		DefaultZone:        global.defaultZone.Name(),
		DefaultLocale:      global.defaultLocale,
		NumberingSystem:    global.numberingSystem,
		OutputCalendar:     global.outputCalendar,
		TwoDigitCutoffYear: &cutoff,
	}
}

// Apply installs s as the process-wide defaults. Every field is validated
// before anything is changed.
func (s Settings) Apply() error {
	var zone Zone
	if s.DefaultZone != "" {
		zone = NormalizeZone(s.DefaultZone, DefaultZone())
		if !zone.IsValid() {
			return unsupportedZone(zone)
		}
	}
	if _, err := NewLocale(LocaleOptions{
		Locale:          s.DefaultLocale,
		NumberingSystem: s.NumberingSystem,
		OutputCalendar:  s.OutputCalendar,
	}); err != nil {
		return err
	}
	if s.TwoDigitCutoffYear != nil && !between(*s.TwoDigitCutoffYear, 0, 99) {
		return invalidArgument("two-digit cutoff year %d out of range", *s.TwoDigitCutoffYear)
	}

	if zone != nil {
		if err := SetDefaultZone(zone); err != nil {
			return err
		}
	}
	if s.DefaultLocale != "" {
		if err := SetDefaultLocale(s.DefaultLocale); err != nil {
			return err
		}
	}
	if s.NumberingSystem != "" {
		if err := SetDefaultNumberingSystem(s.NumberingSystem); err != nil {
			return err
		}
	}
	if s.OutputCalendar != "" {
		if err := SetDefaultOutputCalendar(s.OutputCalendar); err != nil {
			return err
		}
	}
	if s.TwoDigitCutoffYear != nil {
		SetTwoDigitCutoffYear(*s.TwoDigitCutoffYear)
	}
	return nil
}
