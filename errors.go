// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds reported by this package. Every error returned by a fallible
// operation matches exactly one of them with [errors.Is].
var (
	// ErrInvalidArgument reports malformed input to a factory.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnitOutOfRange reports a calendar or clock field outside its range.
	ErrUnitOutOfRange = errors.New("unit out of range")
	// ErrInvalidUnit reports an unknown unit name.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrConflictingSpecification reports mutually exclusive calendar fields.
	ErrConflictingSpecification = errors.New("conflicting specification")
	// ErrMismatchedWeekday reports a weekday contradicting the given date.
	ErrMismatchedWeekday = errors.New("mismatched weekday")
	// ErrUnparsableString reports text not matching the requested grammar.
	ErrUnparsableString = errors.New("unparsable")
	// ErrInvalidZone reports a zone specifier that does not resolve.
	ErrInvalidZone = errors.New("unsupported zone")
)

// UnitOutOfRangeError is returned when a single field fails its range check.
type UnitOutOfRangeError struct {
	Unit  Unit
	Value any
}

func unitOutOfRange(u Unit, v any) *UnitOutOfRangeError {
	return &UnitOutOfRangeError{Unit: u, Value: v}
}

// Error implements error.
func (e *UnitOutOfRangeError) Error() string {
	return fmt.Sprintf("you specified %v (of type %T) as a %s, which is invalid", e.Value, e.Value, e.Unit)
}

// Is makes UnitOutOfRangeError match ErrUnitOutOfRange.
func (e *UnitOutOfRangeError) Is(target error) bool {
	return target == ErrUnitOutOfRange
}

// ParseError describes a problem parsing a date-time string.
type ParseError struct {
	Format     string
	Value      string
	FormatElem string
	ValueElem  string
	Message    string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("the input %q can't be parsed as %s: %s", e.Value, e.Format, e.Message)
	case e.FormatElem != "":
		return fmt.Sprintf("the input %q can't be parsed as %s: cannot parse %q as %q", e.Value, e.Format, e.ValueElem, e.FormatElem)
	}
	return fmt.Sprintf("the input %q can't be parsed as %s", e.Value, e.Format)
}

// Is makes ParseError match ErrUnparsableString.
func (e *ParseError) Is(target error) bool {
	return target == ErrUnparsableString
}

func invalidArgument(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

func invalidUnit(u any) error {
	return errors.Mark(errors.Newf("invalid unit %v (of type %T)", u, u), ErrInvalidUnit)
}

func conflicting(msg string) error {
	return errors.Mark(errors.New(msg), ErrConflictingSpecification)
}

func unsupportedZone(z Zone) error {
	return errors.Mark(errors.Newf("the zone %q is not supported", z.Name()), ErrInvalidZone)
}
