// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"sync"
	"time"
)

// Process-wide defaults. They are read whenever a value is constructed;
// changing them never affects existing values.
var global = struct {
	mu sync.RWMutex

	defaultZone        Zone
	defaultLocale      string
	numberingSystem    string
	outputCalendar     string
	twoDigitCutoffYear int
	now                func() time.Time
	rules              Rules
}{}

const defaultTwoDigitCutoffYear = 60

func init() {
	ResetSettings()
}

// ResetSettings restores all process-wide defaults and flushes the caches.
func ResetSettings() {
	global.mu.Lock()
	global.defaultZone = System
	global.defaultLocale = ""
	global.numberingSystem = ""
	global.outputCalendar = ""
	global.twoDigitCutoffYear = defaultTwoDigitCutoffYear
	global.now = time.Now
	global.rules = HostRules{}
	global.mu.Unlock()
	ResetCaches()
}

// ResetCaches flushes the zone and format caches. Values already constructed
// are unaffected.
func ResetCaches() {
	zones.Flush()
	locations.Flush()
	programs.Flush()
	locales.Flush()
}

// DefaultZone returns the zone used when none is given.
func DefaultZone() Zone {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.defaultZone
}

// SetDefaultZone sets the zone used when none is given. It accepts any
// specifier understood by [NormalizeZone].
func SetDefaultZone(z any) error {
	zone := NormalizeZone(z, System)
	if !zone.IsValid() {
		return unsupportedZone(zone)
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.defaultZone = zone
	return nil
}

// DefaultLocale returns the BCP 47 tag used when none is given. The empty
// string means "en-US".
func DefaultLocale() string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.defaultLocale
}

// SetDefaultLocale sets the locale used when none is given.
func SetDefaultLocale(tag string) error {
	if tag != "" {
		if _, err := ParseLocale(tag); err != nil {
			return err
		}
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.defaultLocale = tag
	return nil
}

// SetDefaultNumberingSystem sets the numbering system used when none is
// given, such as "arab". The empty string restores the locale's own.
func SetDefaultNumberingSystem(ns string) error {
	if ns != "" {
		if _, err := NewLocale(LocaleOptions{NumberingSystem: ns}); err != nil {
			return err
		}
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.numberingSystem = ns
	return nil
}

// SetDefaultOutputCalendar sets the output calendar used when none is given.
// It must be a well-formed calendar identifier, such as "gregory".
func SetDefaultOutputCalendar(cal string) error {
	if cal != "" {
		if _, err := NewLocale(LocaleOptions{OutputCalendar: cal}); err != nil {
			return err
		}
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.outputCalendar = cal
	return nil
}

// TwoDigitCutoffYear returns the year below which two-digit years are read
// as 20xx rather than 19xx.
func TwoDigitCutoffYear() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.twoDigitCutoffYear
}

// SetTwoDigitCutoffYear sets the cutoff used for two-digit years. Values
// outside [0, 99] are reduced modulo 100.
func SetTwoDigitCutoffYear(y int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.twoDigitCutoffYear = floorMod(y, 100)
}

// SetNow replaces the clock used by [Now] and by constructors that default
// fields to the current time. A nil function restores [time.Now].
func SetNow(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.now = now
}

// SetRules replaces the zone-rules oracle used by IANA zones created from now
// on. A nil Rules restores [HostRules]. Cached zones are flushed.
func SetRules(r Rules) {
	if r == nil {
		r = HostRules{}
	}
	global.mu.Lock()
	global.rules = r
	global.mu.Unlock()
	zones.Flush()
}

func currentRules() Rules {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.rules
}

func nowMillis() int64 {
	global.mu.RLock()
	now := global.now
	global.mu.RUnlock()
	return now().UnixMilli()
}

func untruncateYear(y int) int {
	if y > 99 {
		return y
	}
	if y > TwoDigitCutoffYear() {
		return 1900 + y
	}
	return 2000 + y
}

func defaultLocaleOptions() LocaleOptions {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return LocaleOptions{
		Locale:          global.defaultLocale,
		NumberingSystem: global.numberingSystem,
		OutputCalendar:  global.outputCalendar,
	}
}
