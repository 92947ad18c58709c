// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// FromFormat parses text according to layout, using the locale's names for
// months, weekdays, meridiems and eras. The tokens are those of
// [DateTime.ToFormat]; macro tokens expand to the locale's layouts. Narrow
// names and offset names cannot be parsed.
//
// Fields omitted from the layout default as in [FromObject]. The text is
// interpreted in the zone it names, if any, and else in the zone given by
// [WithZone]. Unless [WithSetZone] is given, the result is then converted to
// that zone.
//
// Two-digit years ("yy" and "kk") are expanded using [TwoDigitCutoffYear].
func FromFormat(text, layout string, opts ...Option) (DateTime, error) {
	c, err := resolveOptions(opts)
	if err != nil {
		return DateTime{}, err
	}
	m, err := parseFormat(text, layout, c.loc)
	if err != nil {
		return DateTime{}, err
	}
	zone, specificOffset, err := m.zone()
	if err != nil {
		return DateTime{}, err
	}
	if m.hasUnix {
		interp := c.zone
		if zone != nil {
			interp = zone
		}
		dt, err := create(m.unix, interp, c.loc, NoOffset)
		if err != nil || c.setZone {
			return dt, err
		}
		return dt.SetZone(c.zone, false)
	}
	return parseDataToDateTime(m.values(), zone, specificOffset, c, layout, text)
}

// parseDataToDateTime builds the result of a parse. Fields are interpreted
// in parsedZone if it is not nil, else in the configured zone.
func parseDataToDateTime(v Values, parsedZone Zone, specificOffset int, c config, format, text string) (DateTime, error) {
	if len(v) == 0 && parsedZone == nil {
		return DateTime{}, &ParseError{Format: format, Value: text}
	}
	interp := c.zone
	if parsedZone != nil {
		interp = parsedZone
	}
	dt, err := fromObject(v, interp, c.loc, specificOffset)
	if err != nil || c.setZone {
		return dt, err
	}
	return dt.SetZone(c.zone, false)
}

// matches collects the fields found by a parse, before they are resolved
// into Values.
type matches struct {
	v        Values
	hour12   int
	meridiem int
	quarter  int
	era      int
	zoneName string
	offset   int
	unix     int64
	hasUnix  bool
}

func newMatches() *matches {
	return &matches{
		v:        make(Values),
		hour12:   -1,
		meridiem: -1,
		quarter:  -1,
		era:      -1,
		offset:   NoOffset,
	}
}

func (m *matches) values() Values {
	v := m.v
	if m.quarter >= 0 {
		v[Month] = (m.quarter-1)*3 + 1
	}
	if m.hour12 >= 0 {
		h := m.hour12
		switch {
		case h < 12 && m.meridiem == 1:
			h += 12
		case h == 12 && m.meridiem == 0:
			h = 0
		}
		v[Hour] = h
	}
	if m.era == 0 && v[Year] != 0 {
		v[Year] = -v[Year]
	}
	return v
}

func (m *matches) zone() (z Zone, specificOffset int, err error) {
	specificOffset = m.offset
	switch {
	case m.zoneName != "":
		iana := LoadIANAZone(m.zoneName)
		if !iana.IsValid() {
			return nil, NoOffset, unsupportedZone(iana)
		}
		return iana, specificOffset, nil
	case m.offset != NoOffset:
		return FixedOffset(m.offset), specificOffset, nil
	}
	return nil, NoOffset, nil
}

func parseFormat(text, layout string, l Locale) (*matches, error) {
	p := newParser(delocalizeDigits(text))
	m := newMatches()
	if !p.exec(compile(layout), l, m, 0) {
		return nil, p.err(layout, text, "")
	}
	if len(p.value) > 0 {
		return nil, p.err(layout, text, "extra text: "+strconv.Quote(p.value))
	}
	p.finish()
	return m, nil
}

// exec runs prog against the input, recording fields in m. It reports
// whether the input matched.
func (p *parser) exec(prog program, l Locale, m *matches, depth int) bool {
	for _, i := range prog {
		p.setInst(i)
		switch i.op {
		case opLiteral:
			p.accept(i.lit)
		case opMacro:
			layout, ok := l.macro(i.lit)
			if !ok || depth >= maxMacroDepth {
				p.accept(i.lit)
				break
			}
			if !p.exec(compile(layout), l, m, depth+1) {
				return false
			}
		case opMillis, opMillis3:
			m.v[Millisecond] = p.getnum(fixedWidth(i.op == opMillis3, 1, 3))
		case opFrac3, opFrac2, opFrac1:
			m.v[Millisecond] = p.fraction(fracDigits[i.op])
		case opSecond, opSecond2:
			m.v[Second] = p.getnum(fixedWidth(i.op == opSecond2, 1, 2))
		case opMinute, opMinute2:
			m.v[Minute] = p.getnum(fixedWidth(i.op == opMinute2, 1, 2))
		case opHour12, opHour12_2:
			m.hour12 = p.getnum(fixedWidth(i.op == opHour12_2, 1, 2))
		case opHour, opHour2:
			m.v[Hour] = p.getnum(fixedWidth(i.op == opHour2, 1, 2))
		case opOffsetNarrow, opOffsetShort:
			m.offset = p.offset(true)
		case opOffsetTechie:
			m.offset = p.offset(false)
		case opZoneName:
			m.zoneName = p.zoneName()
		case opMeridiem:
			m.meridiem = p.lookup(l.meridiems())
		case opDay, opDay2:
			m.v[Day] = p.getnum(fixedWidth(i.op == opDay2, 1, 2))
		case opWeekdayNum, opWeekdayNumStandalone:
			m.v[Weekday] = p.getnum(1, 1)
		case opWeekdayShort, opWeekdayShortStandalone:
			m.v[Weekday] = p.lookup(l.weekdays(styleShort)) + 1
		case opWeekdayLong, opWeekdayLongStandalone:
			m.v[Weekday] = p.lookup(l.weekdays(styleLong)) + 1
		case opMonth, opMonthStandalone, opMonth2, opMonth2Standalone:
			fixed := i.op == opMonth2 || i.op == opMonth2Standalone
			m.v[Month] = p.getnum(fixedWidth(fixed, 1, 2))
		case opMonthShort, opMonthShortStandalone:
			m.v[Month] = p.lookup(l.months(styleShort)) + 1
		case opMonthLong, opMonthLongStandalone:
			m.v[Month] = p.lookup(l.months(styleLong)) + 1
		case opYear:
			m.v[Year] = p.getnum(1, 6)
		case opYear2:
			m.v[Year] = untruncateYear(p.getnum(2, 4))
		case opYear4:
			m.v[Year] = p.getnum(4, 4)
		case opYear6:
			m.v[Year] = p.getnum(6, 6)
		case opEraShort:
			m.era = p.lookup(l.eras(styleShort))
		case opEraLong:
			m.era = p.lookup(l.eras(styleLong))
		case opWeekYear2:
			m.v[WeekYear] = untruncateYear(p.getnum(2, 4))
		case opWeekYear4:
			m.v[WeekYear] = p.getnum(4, 4)
		case opWeekNumber, opWeekNumber2:
			m.v[WeekNumber] = p.getnum(fixedWidth(i.op == opWeekNumber2, 1, 2))
		case opOrdinal, opOrdinal3:
			m.v[Ordinal] = p.getnum(fixedWidth(i.op == opOrdinal3, 1, 3))
		case opQuarter, opQuarter2:
			m.quarter = p.getnum(fixedWidth(i.op == opQuarter2, 1, 2))
		case opUnixSeconds:
			m.unix, m.hasUnix = p.signed()*1000, true
		case opUnixMillis:
			m.unix, m.hasUnix = p.signed(), true
		default:
			p.unsupported()
		}
		if p.hasErr {
			return false
		}
	}
	return true
}

// fracDigits is the most digits each fractional seconds token accepts.
var fracDigits = map[fmtOp]int{opFrac3: 9, opFrac2: 2, opFrac1: 1}

// fixedWidth returns the digit bounds of a numeric token: exactly max if
// fixed, else min to max.
func fixedWidth(fixed bool, min, max int) (int, int) {
	if fixed {
		return max, max
	}
	return min, max
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

type parser struct {
	inst   inst
	hasErr bool
	value  string
	valEl  string
	errMsg string
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i inst) {
	p.inst = i
	p.valEl = p.value
}

// finish signals that parsing is finished and the parser is only being kept
// around for error reporting.
func (p *parser) finish() {
	p.inst = inst{op: opInvalid}
	p.valEl = ""
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

func (p *parser) unsupported() {
	p.hasErr = true
	p.errMsg = "token " + strconv.Quote(p.inst.String()) + " cannot be parsed"
}

func (p *parser) err(layout, value, msg string) error {
	if msg == "" {
		msg = p.errMsg
	}
	v := strings.Clone(value)
	if msg == "" {
		return &ParseError{
			Format:     layout,
			Value:      v,
			FormatElem: p.inst.String(),
			ValueElem:  strings.Clone(p.valEl),
		}
	}
	return &ParseError{
		Format:  layout,
		Value:   v,
		Message: msg,
	}
}

// skipByte skips the given byte, if the input starts with it.
func (p *parser) skipByte(b byte) bool {
	if len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
		return true
	}
	return false
}

// spaceRunes are the characters a space in a layout matches.
const spaceRunes = " \u00a0\u202f"

// trimSpace skips a run of spaces, including non-breaking ones.
func (p *parser) trimSpace() {
	p.value = strings.TrimLeft(p.value, spaceRunes)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && strings.ContainsRune(spaceRunes, r)
}

// accept a literal string, treating runs of space characters as equivalent.
func (p *parser) accept(lit string) {
	for len(lit) > 0 {
		if startsWithSpace(lit) {
			if p.value != "" && !startsWithSpace(p.value) {
				p.parseFailed()
				return
			}
			p.trimSpace()
			lit = strings.TrimLeft(lit, spaceRunes)
			continue
		}
		if p.value == "" || p.value[0] != lit[0] {
			p.parseFailed()
			return
		}
		lit, p.value = lit[1:], p.value[1:]
	}
}

// getnum parses between min and max leading digits as a decimal integer.
func (p *parser) getnum(min, max int) int {
	var n, i int
	for i = 0; i < max && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i < min || i == 0 {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return n
}

// fraction parses up to max digits as a fraction of a second and returns
// it in whole milliseconds.
func (p *parser) fraction(max int) int {
	var i int
	for i < max && isDigit(p.value, i) {
		i++
	}
	if i == 0 {
		p.parseFailed()
		return 0
	}
	return parseMillis(p.take(i))
}

func (p *parser) take(n int) string {
	s := p.value[:n]
	p.value = p.value[n:]
	return s
}

// parseMillis converts the digits after a decimal point into milliseconds,
// truncating.
func parseMillis(frac string) int {
	for len(frac) < 3 {
		frac += "0"
	}
	n, _ := strconv.Atoi(frac[:3])
	return n
}

// signed parses an optionally negative integer.
func (p *parser) signed() int64 {
	neg := p.skipByte('-')
	var (
		n int64
		i int
	)
	for ; i < 16 && isDigit(p.value, i); i++ {
		n = n*10 + int64(p.value[i]-'0')
	}
	if i == 0 {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	if neg {
		return -n
	}
	return n
}

// offset parses an offset like "+5", "+05:00" or, without colon, "+0500".
func (p *parser) offset(colon bool) int {
	var neg bool
	switch {
	case p.skipByte('+'):
	case p.skipByte('-'):
		neg = true
	default:
		p.parseFailed()
		return NoOffset
	}
	hours := p.getnum(1, 2)
	if p.hasErr {
		return NoOffset
	}
	var minutes int
	switch {
	case colon && strings.HasPrefix(p.value, ":"):
		p.value = p.value[1:]
		minutes = p.getnum(2, 2)
	case !colon && isDigit(p.value, 0):
		minutes = p.getnum(2, 2)
	}
	if p.hasErr {
		return NoOffset
	}
	return signedOffset(hours, minutes, neg)
}

func isZoneNameByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_+-/,.", c) >= 0
}

// zoneName parses an IANA zone name like "America/New_York".
func (p *parser) zoneName() string {
	i := 0
	for i < len(p.value) && i < 256 && isZoneNameByte(p.value[i]) {
		i++
	}
	if i == 0 || !isAlpha(p.value[0]) {
		p.parseFailed()
		return ""
	}
	return p.take(i)
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// lookup a value from a table and accept the longest case-insensitive match.
func (p *parser) lookup(table []string) int {
	best := -1
	for i, v := range table {
		if v == "" || len(p.value) < len(v) || !strings.EqualFold(p.value[:len(v)], v) {
			continue
		}
		if best < 0 || len(v) > len(table[best]) {
			best = i
		}
	}
	if best < 0 {
		p.parseFailed()
		return 0
	}
	p.value = p.value[len(table[best]):]
	return best
}
