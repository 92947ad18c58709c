// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datetime provides zone-aware calendar date-times and durations.
//
// A [DateTime] is an instant, in milliseconds since the Unix epoch, viewed
// through a [Zone] and a [Locale]. Its calendar fields are available in the
// Gregorian, ISO week and ordinal calendars. Converting civil fields back
// into an instant takes daylight saving time into account: local times that
// are skipped by a transition are moved forward past the gap, and local
// times that occur twice prefer the offset the value already had.
//
// A [Duration] is a sparse set of quantities, such as "1 month and 3 hours".
// Adding calendar units to a DateTime shifts its calendar fields, while
// adding clock units shifts the instant, so adding one day and adding 24
// hours can produce different results across a DST transition.
//
// All values are immutable. Fallible operations return an error alongside
// the zero DateTime, which reports false from [DateTime.IsValid].
package datetime

import (
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// A DateTime is an instant together with the zone and locale used to view
// it. The zero DateTime is invalid.
//
// DateTimes should be compared with [DateTime.Equal], which takes the zone
// and locale into account, or by their instants with [DateTime.Compare].
type DateTime struct {
	ts     int64
	offset int
	zone   Zone
	loc    Locale
	c      Gregorian
	week   *weekCache
	valid  bool
}

// weekCache holds the ISO week fields of one DateTime. It is computed on
// first use and never shared between values with different fields.
type weekCache struct {
	once sync.Once
	w    WeekDate
}

// An Option configures the construction of a DateTime.
type Option func(*options)

type options struct {
	zone    any
	locale  LocaleOptions
	setZone bool
}

// WithZone sets the zone of the result. It accepts any specifier understood
// by [NormalizeZone]. For parsing functions, it is also the zone assumed for
// input without an offset.
func WithZone(z any) Option {
	return func(o *options) { o.zone = z }
}

// WithLocale sets the locale of the result, as a BCP 47 tag.
func WithLocale(tag string) Option {
	return func(o *options) { o.locale.Locale = tag }
}

// WithNumberingSystem sets the numbering system of the result's locale.
func WithNumberingSystem(ns string) Option {
	return func(o *options) { o.locale.NumberingSystem = ns }
}

// WithOutputCalendar sets the output calendar of the result's locale.
func WithOutputCalendar(cal string) Option {
	return func(o *options) { o.locale.OutputCalendar = cal }
}

// WithSetZone makes parsing functions keep the offset or zone found in the
// input, instead of converting the result to the default zone.
func WithSetZone() Option {
	return func(o *options) { o.setZone = true }
}

type config struct {
	options
	zone Zone
	loc  Locale
}

func resolveOptions(opts []Option) (config, error) {
	var c config
	for _, o := range opts {
		o(&c.options)
	}
	c.zone = NormalizeZone(c.options.zone, DefaultZone())
	if !c.zone.IsValid() {
		return config{}, unsupportedZone(c.zone)
	}
	loc, err := defaultLocale(c.locale)
	if err != nil {
		return config{}, err
	}
	c.loc = loc
	return c, nil
}

// create returns the DateTime at ts in zone. If offset is NoOffset, it is
// computed from the zone.
func create(ts int64, zone Zone, loc Locale, offset int) (DateTime, error) {
	if !validInstant(ts) {
		return DateTime{}, invalidArgument("timestamp %d out of range", ts)
	}
	if !zone.IsValid() {
		return DateTime{}, unsupportedZone(zone)
	}
	if offset == NoOffset {
		offset = zone.Offset(ts)
	}
	return DateTime{
		ts:     ts,
		offset: offset,
		zone:   zone,
		loc:    loc,
		c:      tsToObj(ts, offset),
		week:   new(weekCache),
		valid:  true,
	}, nil
}

// withInstant returns dt moved to ts in zone. Cached fields are reused if
// neither changes.
func (dt DateTime) withInstant(ts int64, zone Zone, offset int) (DateTime, error) {
	if dt.valid && ts == dt.ts && zone.Equal(dt.zone) {
		dt.zone = zone
		return dt, nil
	}
	return create(ts, zone, dt.loc, offset)
}

// Now returns the current instant in the default zone and locale.
func Now() DateTime {
	dt, err := create(nowMillis(), DefaultZone(), currentLocale(), NoOffset)
	if err != nil {
		// The default zone is always valid and the clock in range.
		panic(err)
	}
	return dt
}

// FromMillis returns the DateTime ms milliseconds after the Unix epoch. The
// magnitude of ms must not exceed 8.64e15, 100 million days.
func FromMillis(ms int64, opts ...Option) (DateTime, error) {
	c, err := resolveOptions(opts)
	if err != nil {
		return DateTime{}, err
	}
	return create(ms, c.zone, c.loc, NoOffset)
}

// FromSeconds returns the DateTime s seconds after the Unix epoch, rounded
// to the millisecond.
func FromSeconds(s float64, opts ...Option) (DateTime, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s*1000) > maxInstant {
		return DateTime{}, invalidArgument("seconds %v out of range", s)
	}
	return FromMillis(int64(math.Round(s*1000)), opts...)
}

// FromTime converts t. Without [WithZone], the zone is derived from t's
// location: UTC, the system zone, an IANA zone of the same name, or else a
// fixed offset.
func FromTime(t time.Time, opts ...Option) (DateTime, error) {
	c, err := resolveOptions(opts)
	if err != nil {
		return DateTime{}, err
	}
	zone := c.zone
	if c.options.zone == nil {
		zone = zoneOfLocation(t)
	}
	return create(t.UnixMilli(), zone, c.loc, NoOffset)
}

func zoneOfLocation(t time.Time) Zone {
	switch l := t.Location(); l {
	case time.UTC:
		return UTC
	case time.Local:
		return System
	default:
		if z := LoadIANAZone(l.String()); z.IsValid() {
			return z
		}
	}
	_, sec := t.Zone()
	return FixedOffset(sec / 60)
}

// Local returns the DateTime with the given year, month, day, hour, minute,
// second and millisecond in the default zone. Omitted trailing fields are
// zero or one. Without fields, it returns [Now].
func Local(fields ...int) (DateTime, error) {
	return fromFields(fields)
}

// InUTC is like [Local], but in UTC.
func InUTC(fields ...int) (DateTime, error) {
	return fromFields(fields, WithZone(UTC))
}

var positionalUnits = []Unit{Year, Month, Day, Hour, Minute, Second, Millisecond}

func fromFields(fields []int, opts ...Option) (DateTime, error) {
	if len(fields) > len(positionalUnits) {
		return DateTime{}, invalidArgument("too many fields: %d", len(fields))
	}
	if len(fields) == 0 {
		c, err := resolveOptions(opts)
		if err != nil {
			return DateTime{}, err
		}
		return create(nowMillis(), c.zone, c.loc, NoOffset)
	}
	v := make(Values, len(positionalUnits))
	for i, u := range positionalUnits {
		v[u] = defaultGregorian[u]
		if i < len(fields) {
			v[u] = fields[i]
		}
	}
	return FromObject(v, opts...)
}

var (
	gregorianUnits = []Unit{Year, Month, Day, Hour, Minute, Second, Millisecond}
	weekUnits      = []Unit{WeekYear, WeekNumber, Weekday, Hour, Minute, Second, Millisecond}
	ordinalUnits   = []Unit{Year, Ordinal, Hour, Minute, Second, Millisecond}

	defaultGregorian = Values{Month: 1, Day: 1}
	defaultWeek      = Values{WeekNumber: 1, Weekday: 1}
	defaultOrdinal   = Values{Ordinal: 1}
)

// FromObject builds a DateTime from calendar fields, which may be given in
// the Gregorian calendar (year, month, day), the ISO week calendar (weekYear,
// weekNumber, weekday) or as an ordinal date (year, ordinal), plus clock
// fields.
//
// Fields larger than the largest given one are taken from the current time,
// and smaller ones default to their minimum. So {day: 5} is the fifth of the
// current month at midnight, and {hour: 3} is 3 AM today.
//
// The week calendar cannot be mixed with the other two, and an ordinal
// cannot be combined with a month or day. A weekday given together with a
// Gregorian date must agree with it.
func FromObject(values Values, opts ...Option) (DateTime, error) {
	c, err := resolveOptions(opts)
	if err != nil {
		return DateTime{}, err
	}
	return fromObject(values, c.zone, c.loc, NoOffset)
}

// fromObject implements FromObject. specificOffset, if not NoOffset, is
// used instead of the zone's current offset to resolve ambiguous local
// times.
func fromObject(values Values, zone Zone, loc Locale, specificOffset int) (DateTime, error) {
	v, err := values.normalize()
	if err != nil {
		return DateTime{}, err
	}

	tsNow := nowMillis()
	offsetProvis := specificOffset
	if offsetProvis == NoOffset {
		offsetProvis = zone.Offset(tsNow)
	}

	containsOrdinal := v.has(Ordinal)
	containsGregorMD := v.has(Month) || v.has(Day)
	containsGregor := v.has(Year) || containsGregorMD
	definiteWeekDef := v.has(WeekYear) || v.has(WeekNumber)

	if (containsGregor || containsOrdinal) && definiteWeekDef {
		return DateTime{}, conflicting("can't mix weekYear/weekNumber units with year/month/day or ordinals")
	}
	if containsGregorMD && containsOrdinal {
		return DateTime{}, conflicting("can't mix ordinal dates with month/day")
	}

	useWeekData := definiteWeekDef || (v.has(Weekday) && !containsGregor)
	objNow := tsToObj(tsNow, offsetProvis)

	var (
		units    []Unit
		defaults Values
		now      Values
	)
	switch {
	case useWeekData:
		units, defaults, now = weekUnits, defaultWeek, weekValues(GregorianToWeek(objNow))
	case containsOrdinal:
		units, defaults, now = ordinalUnits, defaultOrdinal, ordinalValues(GregorianToOrdinal(objNow))
	default:
		units, defaults, now = gregorianUnits, defaultGregorian, gregorianValues(objNow)
	}

	foundFirst := false
	for _, u := range units {
		switch {
		case v.has(u):
			foundFirst = true
		case foundFirst:
			v[u] = defaults[u]
		default:
			v[u] = now[u]
		}
	}

	var g Gregorian
	switch {
	case useWeekData:
		w := valuesWeek(v)
		if e := HasInvalidWeekData(w); e != nil {
			return DateTime{}, e
		}
		g = WeekToGregorian(w)
	case containsOrdinal:
		o := valuesOrdinal(v)
		if e := HasInvalidOrdinalData(o); e != nil {
			return DateTime{}, e
		}
		g = OrdinalToGregorian(o)
	default:
		g = valuesGregorian(v)
		if e := HasInvalidGregorianData(g); e != nil {
			return DateTime{}, e
		}
	}
	if e := HasInvalidTimeData(g.TimeOfDay); e != nil {
		return DateTime{}, e
	}

	ts, offset := objToTS(g, offsetProvis, zone)
	dt, err := create(ts, zone, loc, offset)
	if err != nil {
		return DateTime{}, err
	}
	if v.has(Weekday) && containsGregor && v[Weekday] != dt.Weekday() {
		return DateTime{}, errors.Mark(
			errors.Newf("you can't specify both a weekday of %d and a date of %s", v[Weekday], dt.ToISO()),
			ErrMismatchedWeekday)
	}
	return dt, nil
}

func gregorianValues(g Gregorian) Values {
	return Values{
		Year: g.Year, Month: g.Month, Day: g.Day,
		Hour: g.Hour, Minute: g.Minute, Second: g.Second, Millisecond: g.Millisecond,
	}
}

func weekValues(w WeekDate) Values {
	return Values{
		WeekYear: w.WeekYear, WeekNumber: w.WeekNumber, Weekday: w.Weekday,
		Hour: w.Hour, Minute: w.Minute, Second: w.Second, Millisecond: w.Millisecond,
	}
}

func ordinalValues(o OrdinalDate) Values {
	return Values{
		Year: o.Year, Ordinal: o.Ordinal,
		Hour: o.Hour, Minute: o.Minute, Second: o.Second, Millisecond: o.Millisecond,
	}
}

func valuesTime(v Values) TimeOfDay {
	return TimeOfDay{Hour: v[Hour], Minute: v[Minute], Second: v[Second], Millisecond: v[Millisecond]}
}

func valuesGregorian(v Values) Gregorian {
	return Gregorian{Year: v[Year], Month: v[Month], Day: v[Day], TimeOfDay: valuesTime(v)}
}

func valuesWeek(v Values) WeekDate {
	return WeekDate{WeekYear: v[WeekYear], WeekNumber: v[WeekNumber], Weekday: v[Weekday], TimeOfDay: valuesTime(v)}
}

func valuesOrdinal(v Values) OrdinalDate {
	return OrdinalDate{Year: v[Year], Ordinal: v[Ordinal], TimeOfDay: valuesTime(v)}
}

// IsValid reports whether dt is a valid DateTime. Only the zero value and
// results of failed operations are invalid.
func (dt DateTime) IsValid() bool { return dt.valid }

func (dt DateTime) Year() int        { return dt.c.Year }
func (dt DateTime) Month() int       { return dt.c.Month }
func (dt DateTime) Day() int         { return dt.c.Day }
func (dt DateTime) Hour() int        { return dt.c.Hour }
func (dt DateTime) Minute() int      { return dt.c.Minute }
func (dt DateTime) Second() int      { return dt.c.Second }
func (dt DateTime) Millisecond() int { return dt.c.Millisecond }

// Quarter returns the quarter of the year, from 1 to 4.
func (dt DateTime) Quarter() int {
	if !dt.valid {
		return 0
	}
	return (dt.c.Month + 2) / 3
}

// Ordinal returns the day of the year, from 1 to 366.
func (dt DateTime) Ordinal() int {
	if !dt.valid {
		return 0
	}
	return computeOrdinal(dt.c.Year, dt.c.Month, dt.c.Day)
}

func (dt DateTime) weekData() WeekDate {
	if dt.week == nil {
		return WeekDate{}
	}
	dt.week.once.Do(func() { dt.week.w = GregorianToWeek(dt.c) })
	return dt.week.w
}

// WeekYear returns the ISO week-numbering year.
func (dt DateTime) WeekYear() int { return dt.weekData().WeekYear }

// WeekNumber returns the ISO week of the week year, from 1 to 53.
func (dt DateTime) WeekNumber() int { return dt.weekData().WeekNumber }

// Weekday returns the day of the week, 1 for Monday through 7 for Sunday.
func (dt DateTime) Weekday() int { return dt.weekData().Weekday }

// Fields returns the Gregorian calendar and clock fields of dt.
func (dt DateTime) Fields() Gregorian { return dt.c }

// WeekDate returns the ISO week calendar fields of dt.
func (dt DateTime) WeekDate() WeekDate { return dt.weekData() }

// OrdinalDate returns dt as an ordinal date.
func (dt DateTime) OrdinalDate() OrdinalDate { return GregorianToOrdinal(dt.c) }

// Offset returns the UTC offset of dt in minutes.
func (dt DateTime) Offset() int {
	if !dt.valid {
		return NoOffset
	}
	return dt.offset
}

// Zone returns the zone of dt.
func (dt DateTime) Zone() Zone {
	if dt.zone == nil {
		return NewInvalidZone("")
	}
	return dt.zone
}

// ZoneName returns the name of dt's zone.
func (dt DateTime) ZoneName() string { return dt.Zone().Name() }

// OffsetNameShort returns an abbreviated name for dt's offset, like "EST".
func (dt DateTime) OffsetNameShort() string {
	return dt.Zone().OffsetName(dt.ts, NameShort, dt.loc)
}

// OffsetNameLong returns a long name for dt's offset, like "Eastern
// Standard Time".
func (dt DateTime) OffsetNameLong() string {
	return dt.Zone().OffsetName(dt.ts, NameLong, dt.loc)
}

// IsOffsetFixed reports whether dt's zone never changes its offset.
func (dt DateTime) IsOffsetFixed() bool { return dt.Zone().IsUniversal() }

// IsInDST reports whether dt's offset is larger than the offset in December
// or in June of the same year. This assumes a zone with at most one DST
// period per year.
func (dt DateTime) IsInDST() bool {
	if !dt.valid || dt.IsOffsetFixed() {
		return false
	}
	dec, err1 := dt.Set(Values{Month: 12})
	jun, err2 := dt.Set(Values{Month: 6})
	if err1 != nil || err2 != nil {
		return false
	}
	return dt.offset > dec.offset || dt.offset > jun.offset
}

// IsInLeapYear reports whether dt's year is a leap year.
func (dt DateTime) IsInLeapYear() bool { return IsLeapYear(dt.c.Year) }

// DaysInMonth returns the number of days in dt's month.
func (dt DateTime) DaysInMonth() int { return DaysInMonth(dt.c.Year, dt.c.Month) }

// DaysInYear returns the number of days in dt's year.
func (dt DateTime) DaysInYear() int { return DaysInYear(dt.c.Year) }

// WeeksInWeekYear returns the number of ISO weeks in dt's week year.
func (dt DateTime) WeeksInWeekYear() int { return WeeksInWeekYear(dt.WeekYear()) }

// Locale returns the locale of dt.
func (dt DateTime) Locale() Locale { return dt.loc }

// ToMillis returns the milliseconds since the Unix epoch.
func (dt DateTime) ToMillis() int64 { return dt.ts }

// ToSeconds returns the seconds since the Unix epoch, with a fraction.
func (dt DateTime) ToSeconds() float64 { return float64(dt.ts) / 1000 }

// ToUnixInteger returns the whole seconds since the Unix epoch, rounded
// down.
func (dt DateTime) ToUnixInteger() int64 { return floorDiv(dt.ts, msPerSecond) }

// ToObject returns the Gregorian fields of dt.
func (dt DateTime) ToObject() Values {
	if !dt.valid {
		return Values{}
	}
	return gregorianValues(dt.c)
}

// ToTime converts dt to a [time.Time] with a matching location.
func (dt DateTime) ToTime() time.Time {
	return time.UnixMilli(dt.ts).In(dt.location())
}

func (dt DateTime) location() *time.Location {
	switch z := dt.Zone().(type) {
	case FixedOffsetZone:
		if z.fixed == 0 {
			return time.UTC
		}
	case SystemZone:
		return time.Local
	case *IANAZone:
		if lr, ok := z.rules.(LocationRules); ok {
			if l, ok := lr.Location(z.name); ok {
				return l
			}
		}
	}
	return time.FixedZone(dt.ZoneName(), dt.offset*60)
}
