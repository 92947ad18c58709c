// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

// ConversionAccuracy selects how calendar units are converted into each
// other, as their lengths vary.
type ConversionAccuracy int

const (
	// Casual uses 365-day years and 30-day months.
	Casual ConversionAccuracy = iota
	// Longterm uses the average lengths of the 400-year Gregorian cycle.
	Longterm
)

// String implements fmt.Stringer.
func (a ConversionAccuracy) String() string {
	if a == Longterm {
		return "longterm"
	}
	return "casual"
}

// A conversionMatrix maps a larger unit to the number of each smaller unit
// it contains: m[Day][Hour] == 24.
type conversionMatrix map[Unit]map[Unit]float64

const (
	daysInYearAccurate  = 146097.0 / 400
	daysInMonthAccurate = 146097.0 / 4800
)

func lowOrderMatrix() conversionMatrix {
	return conversionMatrix{
		Week: {
			Day:         7,
			Hour:        7 * 24,
			Minute:      7 * 24 * 60,
			Second:      7 * 24 * 60 * 60,
			Millisecond: 7 * 24 * 60 * 60 * 1000,
		},
		Day: {
			Hour:        24,
			Minute:      24 * 60,
			Second:      24 * 60 * 60,
			Millisecond: 24 * 60 * 60 * 1000,
		},
		Hour: {
			Minute:      60,
			Second:      60 * 60,
			Millisecond: 60 * 60 * 1000,
		},
		Minute: {
			Second:      60,
			Millisecond: 60 * 1000,
		},
		Second: {
			Millisecond: 1000,
		},
	}
}

// daysMatrixRow expands a number of days into all units below a day.
func daysMatrixRow(d float64) map[Unit]float64 {
	return map[Unit]float64{
		Day:         d,
		Hour:        d * 24,
		Minute:      d * 24 * 60,
		Second:      d * 24 * 60 * 60,
		Millisecond: d * 24 * 60 * 60 * 1000,
	}
}

func withRow(row map[Unit]float64, extra map[Unit]float64) map[Unit]float64 {
	for k, v := range extra {
		row[k] = v
	}
	return row
}

var casualMatrix = func() conversionMatrix {
	m := lowOrderMatrix()
	m[Year] = withRow(daysMatrixRow(365), map[Unit]float64{Quarter: 4, Month: 12, Week: 52})
	m[Quarter] = withRow(daysMatrixRow(91), map[Unit]float64{Month: 3, Week: 13})
	m[Month] = withRow(daysMatrixRow(30), map[Unit]float64{Week: 4})
	return m
}()

var accurateMatrix = func() conversionMatrix {
	m := lowOrderMatrix()
	m[Year] = withRow(daysMatrixRow(daysInYearAccurate), map[Unit]float64{
		Quarter: 4,
		Month:   12,
		Week:    daysInYearAccurate / 7,
	})
	m[Quarter] = withRow(daysMatrixRow(daysInYearAccurate/4), map[Unit]float64{
		Month: 3,
		Week:  daysInYearAccurate / 28,
	})
	m[Month] = withRow(daysMatrixRow(daysInMonthAccurate), map[Unit]float64{
		Week: daysInMonthAccurate / 7,
	})
	return m
}()

func (a ConversionAccuracy) matrix() conversionMatrix {
	if a == Longterm {
		return accurateMatrix
	}
	return casualMatrix
}
