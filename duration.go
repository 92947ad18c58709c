// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
	"strconv"
	"strings"
	"time"

	"gonih.org/set"
)

// A Duration is a span of time expressed as a sparse set of unit quantities,
// such as "1 year, 3 days and 2.5 hours". Quantities can be fractional or
// negative, and units can disagree in sign until the Duration is normalized.
//
// Durations are immutable. The zero Duration is empty, uses [Casual]
// accuracy and the default locale.
type Duration struct {
	values   map[Unit]float64
	loc      Locale
	accuracy ConversionAccuracy
}

// A DurationOption configures a Duration on construction.
type DurationOption func(*Duration)

// WithConversionAccuracy selects the matrix used to convert between units.
func WithConversionAccuracy(a ConversionAccuracy) DurationOption {
	return func(d *Duration) { d.accuracy = a }
}

// WithDurationLocale sets the locale used by [Duration.ToHuman] and
// [Duration.ToFormat].
func WithDurationLocale(l Locale) DurationOption {
	return func(d *Duration) { d.loc = l }
}

func newDuration(values map[Unit]float64, opts []DurationOption) Duration {
	d := Duration{values: values, loc: currentLocale()}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// DurationOf returns a Duration with the given quantities. Keys may be
// singular or plural and use any capitalization.
func DurationOf(values map[Unit]float64, opts ...DurationOption) (Duration, error) {
	vals, err := normalizeDurationValues(values)
	if err != nil {
		return Duration{}, err
	}
	return newDuration(vals, opts), nil
}

// MustDuration is like [DurationOf] but panics on error.
func MustDuration(values map[Unit]float64, opts ...DurationOption) Duration {
	d, err := DurationOf(values, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// DurationFromMillis returns a Duration of ms milliseconds.
func DurationFromMillis(ms float64, opts ...DurationOption) Duration {
	return newDuration(map[Unit]float64{Millisecond: ms}, opts)
}

// DurationFromTime converts a [time.Duration] into milliseconds.
func DurationFromTime(td time.Duration, opts ...DurationOption) Duration {
	return DurationFromMillis(float64(td)/float64(time.Millisecond), opts...)
}

func normalizeDurationValues(values map[Unit]float64) (map[Unit]float64, error) {
	out := make(map[Unit]float64, len(values))
	for k, v := range values {
		u, err := durationUnit(k)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidArgument("invalid %s value %v (of type %T)", u.Plural(), v, v)
		}
		out[u] = v
	}
	return out, nil
}

func (d Duration) with(values map[Unit]float64) Duration {
	d.values = values
	return d
}

func (d Duration) copyValues() map[Unit]float64 {
	out := make(map[Unit]float64, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

func (d Duration) matrix() conversionMatrix {
	return d.accuracy.matrix()
}

// Get returns the quantity of unit u, or 0 if it is not set or not a
// Duration unit.
func (d Duration) Get(u Unit) float64 {
	n, err := durationUnit(u)
	if err != nil {
		return 0
	}
	return d.values[n]
}

// Has reports whether u is explicitly set in d, even to zero.
func (d Duration) Has(u Unit) bool {
	n, err := durationUnit(u)
	if err != nil {
		return false
	}
	_, ok := d.values[n]
	return ok
}

func (d Duration) Years() float64        { return d.values[Year] }
func (d Duration) Quarters() float64     { return d.values[Quarter] }
func (d Duration) Months() float64       { return d.values[Month] }
func (d Duration) Weeks() float64        { return d.values[Week] }
func (d Duration) Days() float64         { return d.values[Day] }
func (d Duration) Hours() float64        { return d.values[Hour] }
func (d Duration) Minutes() float64      { return d.values[Minute] }
func (d Duration) Seconds() float64      { return d.values[Second] }
func (d Duration) Milliseconds() float64 { return d.values[Millisecond] }

// Accuracy returns the conversion accuracy of d.
func (d Duration) Accuracy() ConversionAccuracy { return d.accuracy }

// Locale returns the locale of d.
func (d Duration) Locale() Locale { return d.loc }

// Reconfigure returns d with a different locale and accuracy.
func (d Duration) Reconfigure(l Locale, a ConversionAccuracy) Duration {
	d.loc, d.accuracy = l, a
	return d
}

// Set returns d with the given quantities replaced.
func (d Duration) Set(values map[Unit]float64) (Duration, error) {
	vals, err := normalizeDurationValues(values)
	if err != nil {
		return Duration{}, err
	}
	out := d.copyValues()
	for k, v := range vals {
		out[k] = v
	}
	return d.with(out), nil
}

// Plus adds o to d unit by unit. The result is not normalized.
func (d Duration) Plus(o Duration) Duration {
	out := make(map[Unit]float64)
	for _, u := range orderedUnits {
		_, inD := d.values[u]
		_, inO := o.values[u]
		if inD || inO {
			out[u] = d.values[u] + o.values[u]
		}
	}
	return d.with(out)
}

// Minus subtracts o from d unit by unit.
func (d Duration) Minus(o Duration) Duration {
	return d.Plus(o.Negate())
}

// Negate flips the sign of every quantity.
func (d Duration) Negate() Duration {
	out := make(map[Unit]float64, len(d.values))
	for k, v := range d.values {
		if v == 0 {
			out[k] = 0
			continue
		}
		out[k] = -v
	}
	return d.with(out)
}

// MapUnits applies fn to every set quantity. It fails if fn produces NaN or
// an infinity.
func (d Duration) MapUnits(fn func(v float64, u Unit) float64) (Duration, error) {
	out := make(map[Unit]float64, len(d.values))
	for k, v := range d.values {
		nv := fn(v, k)
		if math.IsNaN(nv) || math.IsInf(nv, 0) {
			return Duration{}, invalidArgument("invalid %s value %v (of type %T)", k.Plural(), nv, nv)
		}
		out[k] = nv
	}
	return d.with(out), nil
}

// antiTrunc rounds n away from zero.
func antiTrunc(n float64) float64 {
	if n < 0 {
		return math.Floor(n)
	}
	return math.Ceil(n)
}

func sign(n float64) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// convert moves as much of from[fromUnit] as fits into to[toUnit], a
// larger unit. A small quantity whose sign disagrees with a nonzero target
// is rounded away from zero, so that {hours: 12, minutes: -45} becomes
// {hours: 11, minutes: 15}.
func convert(m conversionMatrix, from map[Unit]float64, fromUnit Unit, to map[Unit]float64, toUnit Unit) {
	conv := m[toUnit][fromUnit]
	raw := from[fromUnit] / conv
	sameSign := sign(raw) == sign(to[toUnit])
	var added float64
	if !sameSign && to[toUnit] != 0 && math.Abs(raw) <= 1 {
		added = antiTrunc(raw)
	} else {
		added = math.Trunc(raw)
	}
	to[toUnit] += added
	from[fromUnit] -= added * conv
}

// Normalize rebalances the set quantities from smallest to largest, so that
// each one is smaller than one of the next larger set unit and they all
// share a sign. No units are added or removed.
func (d Duration) Normalize() Duration {
	vals := d.copyValues()
	m := d.matrix()
	var prev Unit
	for _, u := range reverseUnits {
		if _, ok := vals[u]; !ok {
			continue
		}
		if prev != "" {
			convert(m, vals, prev, vals, u)
		}
		prev = u
	}
	return d.with(vals)
}

// ShiftTo expresses d in exactly the given units. Larger units that are not
// requested are broken down into the largest requested unit below them;
// smaller ones are rolled up, and whatever remains becomes a fraction of the
// smallest requested unit.
func (d Duration) ShiftTo(units ...Unit) (Duration, error) {
	if len(units) == 0 {
		return d, nil
	}
	canon := make([]Unit, len(units))
	for i, u := range units {
		n, err := durationUnit(u)
		if err != nil {
			return Duration{}, err
		}
		canon[i] = n
	}
	want := set.Make(canon...)

	m := d.matrix()
	vals := d.copyValues()
	built := make(map[Unit]float64)
	accumulated := make(map[Unit]float64)
	var last Unit
	for i, k := range orderedUnits {
		if _, ok := want[k]; ok {
			last = k
			var own float64
			for _, ak := range orderedUnits[:i] {
				if a, ok := accumulated[ak]; ok {
					own += m[ak][k] * a
					accumulated[ak] = 0
				}
			}
			own += vals[k]
			t := math.Trunc(own)
			built[k] = t
			accumulated[k] = (own*1000 - t*1000) / 1000

			for _, down := range orderedUnits[i+1:] {
				if _, ok := vals[down]; ok {
					convert(m, vals, down, built, k)
				}
			}
		} else if v, ok := vals[k]; ok {
			accumulated[k] = v
		}
	}

	for _, k := range orderedUnits {
		a, ok := accumulated[k]
		if !ok || a == 0 {
			continue
		}
		if k == last {
			built[last] += a
		} else {
			built[last] += a / m[last][k]
		}
	}
	return d.with(built).Normalize(), nil
}

// As returns the length of d in unit u.
func (d Duration) As(u Unit) (float64, error) {
	s, err := d.ShiftTo(u)
	if err != nil {
		return 0, err
	}
	return s.Get(u), nil
}

// ToMillis returns the length of d in milliseconds.
func (d Duration) ToMillis() float64 {
	ms, _ := d.As(Millisecond)
	return ms
}

// ToTime converts d to a [time.Duration], using d's accuracy for calendar
// units.
func (d Duration) ToTime() time.Duration {
	return time.Duration(d.ToMillis() * float64(time.Millisecond))
}

// ToObject returns a copy of the set quantities.
func (d Duration) ToObject() map[Unit]float64 {
	return d.copyValues()
}

// Equal reports whether d and o have the same quantities and locale. An
// unset unit equals a unit set to zero.
func (d Duration) Equal(o Duration) bool {
	if !d.loc.Equal(o.loc) {
		return false
	}
	for _, u := range orderedUnits {
		if d.values[u] != o.values[u] {
			return false
		}
	}
	return true
}

// formatFloat renders v with the fewest digits that round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, digits int) float64 {
	f := math.Pow10(digits)
	return math.Round(v*f) / f
}

// ToISO returns an ISO 8601 duration such as "P1Y6DT2S". Quarters are
// reported as months, and milliseconds as fractional seconds.
func (d Duration) ToISO() string {
	var b strings.Builder
	b.WriteString("P")
	if v := d.Years(); v != 0 {
		b.WriteString(formatFloat(v) + "Y")
	}
	if d.Months() != 0 || d.Quarters() != 0 {
		b.WriteString(formatFloat(d.Months()+d.Quarters()*3) + "M")
	}
	if v := d.Weeks(); v != 0 {
		b.WriteString(formatFloat(v) + "W")
	}
	if v := d.Days(); v != 0 {
		b.WriteString(formatFloat(v) + "D")
	}
	if d.Hours() != 0 || d.Minutes() != 0 || d.Seconds() != 0 || d.Milliseconds() != 0 {
		b.WriteString("T")
	}
	if v := d.Hours(); v != 0 {
		b.WriteString(formatFloat(v) + "H")
	}
	if v := d.Minutes(); v != 0 {
		b.WriteString(formatFloat(v) + "M")
	}
	if d.Seconds() != 0 || d.Milliseconds() != 0 {
		b.WriteString(formatFloat(roundTo(d.Seconds()+d.Milliseconds()/1000, 3)) + "S")
	}
	if b.Len() == 1 {
		b.WriteString("T0S")
	}
	return b.String()
}

// ToISOTime renders d as a time of day, such as "11:22:33.444". It reports
// false if d is negative or not shorter than a day.
func (d Duration) ToISOTime(opts ISOOptions) (string, bool) {
	ms := d.ToMillis()
	if ms < 0 || ms >= msPerDay {
		return "", false
	}
	opts.OmitOffset, opts.ExtendedZone = true, false
	dt, err := create(int64(ms), UTC, Locale{}, 0)
	if err != nil {
		return "", false
	}
	return dt.ToISOTime(opts), true
}

// String implements fmt.Stringer, returning d.ToISO().
func (d Duration) String() string {
	return d.ToISO()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.ToISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := ParseISODuration(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ToHuman renders the set quantities as a list, such as
// "1 year, 2 days, 6.5 hours". Units are not normalized or shifted first.
func (d Duration) ToHuman() string {
	c := d.loc.catalog()
	var parts []string
	for _, u := range orderedUnits {
		v, ok := d.values[u]
		if !ok {
			continue
		}
		names := c.Relative.Units[string(u)]
		name := names.Other
		if v == 1 {
			name = names.One
		}
		parts = append(parts, d.loc.formatNumber(v)+" "+name)
	}
	return strings.Join(parts, c.List)
}
