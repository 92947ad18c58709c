// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime_test

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"gonih.org/datetime"
)

// ExampleFromObject demonstrates some useful patterns when using FromObject.
func ExampleFromObject() {
	// Fields are local to the given zone:
	dt, err := datetime.FromObject(datetime.Values{datetime.Year: 2017, datetime.Month: 3, datetime.Day: 12, datetime.Hour: 5}, datetime.WithZone("America/New_York"))
	fmt.Println(dt, err)

	// Week dates work as well:
	dt, err = datetime.FromObject(datetime.Values{datetime.WeekYear: 2017, datetime.WeekNumber: 21, datetime.Weekday: 4}, datetime.WithZone(datetime.UTC))
	fmt.Println(dt, err)

	// Unlike Plus, FromObject validates ranges:
	_, err = datetime.FromObject(datetime.Values{datetime.Year: 2017, datetime.Month: 2, datetime.Day: 30})
	fmt.Println(errors.Is(err, datetime.ErrUnitOutOfRange))

	// Output:
	// 2017-03-12T05:00:00.000-04:00 <nil>
	// 2017-05-25T00:00:00.000Z <nil>
	// true
}

// ExampleDateTime_Plus demonstrates the difference between calendar and
// clock units.
func ExampleDateTime_Plus() {
	jan31, _ := datetime.FromISO("2017-01-31T10:00", datetime.WithZone(datetime.UTC))
	// Months are added to the calendar and the day is clamped:
	fmt.Println(jan31.Plus(datetime.MustDuration(map[datetime.Unit]float64{datetime.Month: 1})))

	// New York switches to daylight saving time on 2017-03-12. A day keeps
	// the local time, 24 hours do not:
	noon, _ := datetime.FromISO("2017-03-11T12:00", datetime.WithZone("America/New_York"))
	fmt.Println(noon.Plus(datetime.MustDuration(map[datetime.Unit]float64{datetime.Day: 1})))
	fmt.Println(noon.Plus(datetime.MustDuration(map[datetime.Unit]float64{datetime.Hour: 24})))

	// Output:
	// 2017-02-28T10:00:00.000Z
	// 2017-03-12T12:00:00.000-04:00
	// 2017-03-12T13:00:00.000-04:00
}

// ExampleDateTime_Diff demonstrates how the remainder is carried by the
// smallest unit.
func ExampleDateTime_Diff() {
	earlier, _ := datetime.FromISO("1982-05-25T09:45", datetime.WithZone(datetime.UTC))
	later, _ := datetime.FromISO("1983-10-14T10:30", datetime.WithZone(datetime.UTC))

	d, _ := later.Diff(earlier, datetime.Year, datetime.Month, datetime.Day)
	fmt.Println(d.Years(), d.Months(), d.Days())

	d, _ = later.Diff(earlier, datetime.Day, datetime.Hour)
	fmt.Println(d.Days(), d.Hours())

	// Output:
	// 1 4 19.03125
	// 507 0.75
}

// ExampleFromFormat demonstrates the usage of FromFormat.
func ExampleFromFormat() {
	fmt.Println(datetime.FromFormat("May 25, 1982 9:45 PM", "MMMM d, yyyy h:mm a", datetime.WithZone(datetime.UTC)))

	// Offsets in the input are kept with WithSetZone:
	fmt.Println(datetime.FromFormat("1982-05-25 21:45 +05:30", "yyyy-MM-dd HH:mm ZZ", datetime.WithSetZone()))

	// Locales supply the names:
	fmt.Println(datetime.FromFormat("25. Mai 1982", "d. MMMM yyyy", datetime.WithLocale("de"), datetime.WithZone(datetime.UTC)))

	// The weekday must match the date:
	_, err := datetime.FromFormat("Monday, May 25, 1982", "EEEE, MMMM d, yyyy")
	fmt.Println(errors.Is(err, datetime.ErrMismatchedWeekday))

	// Output:
	// 1982-05-25T21:45:00.000Z <nil>
	// 1982-05-25T21:45:00.000+05:30 <nil>
	// 1982-05-25T00:00:00.000Z <nil>
	// true
}

// ExampleDateTime_ToFormat demonstrates formatting in different locales.
func ExampleDateTime_ToFormat() {
	dt, _ := datetime.FromISO("2017-09-04T13:08:04.023", datetime.WithZone("America/New_York"))
	fmt.Println(dt.ToFormat("EEEE, MMMM d, yyyy 'at' h:mm a ZZZZ"))
	fmt.Println(dt.ToFormat("DDDD"))

	de, _ := dt.SetLocale("de")
	fmt.Println(de.ToFormat("DDDD"))

	// Output:
	// Monday, September 4, 2017 at 1:08 PM EDT
	// Monday, September 4, 2017
	// Montag, 4. September 2017
}

// ExampleDateTime_ToRelative demonstrates relative phrases.
func ExampleDateTime_ToRelative() {
	base, _ := datetime.FromISO("2017-05-25T23:00", datetime.WithZone(datetime.UTC))
	later, _ := datetime.FromISO("2017-05-26T01:00", datetime.WithZone(datetime.UTC))

	fmt.Println(later.ToRelative(datetime.RelativeOptions{Base: base}))
	fmt.Println(later.ToRelativeCalendar(datetime.RelativeOptions{Base: base}))
	fmt.Println(base.ToRelative(datetime.RelativeOptions{Base: later, Locale: "de"}))

	// Output:
	// in 2 hours <nil>
	// tomorrow <nil>
	// vor 2 Stunden <nil>
}

// ExampleDuration demonstrates conversions between units.
func ExampleDuration() {
	d, _ := datetime.ParseISODuration("PT90M")
	shifted, _ := d.ShiftTo(datetime.Hour, datetime.Minute)
	fmt.Println(shifted)

	fmt.Println(datetime.MustDuration(map[datetime.Unit]float64{datetime.Hour: 12, datetime.Minute: -45}).Normalize())
	fmt.Println(datetime.MustDuration(map[datetime.Unit]float64{datetime.Year: 1, datetime.Day: 2, datetime.Hour: 6.5}).ToHuman())

	// Output:
	// PT1H30M
	// PT11H15M
	// 1 year, 2 days, 6.5 hours
}
