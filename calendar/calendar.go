// Package calendar provides calendar systems and the Date value type.
//
// A calendar System supplies the month, year, and epoch arithmetic for a
// particular calendar; Date pairs a year/month/day triple with the System it
// is interpreted under. Period fields perform fixed-length unit arithmetic
// (days and weeks) on Dates with correct month and year rollover.
package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrCalendar wraps errors returned by the calendar package.
	ErrCalendar = errors.New("calendar")

	// ErrRange errors denote a date outside the range supported by its
	// calendar system.
	ErrRange = fmt.Errorf("%w range", ErrCalendar)
)

// System defines the calendar-system capability consumed by Date arithmetic.
// Implementations must be stateless and safe for concurrent use.
type System interface {
	// Name returns the name of the calendar system.
	Name() string

	// MinYear returns the minimum supported year.
	MinYear() int

	// MaxYear returns the maximum supported year.
	MaxYear() int

	// MonthsInYear returns the number of months in year.
	MonthsInYear(year int) int

	// DaysInMonth returns the number of days in month of year.
	DaysInMonth(year, month int) int

	// DaysInYear returns the number of days in year.
	DaysInYear(year int) int

	// DayOfYear returns the one-based ordinal day of date within its year.
	DayOfYear(date Date) int

	// FromDayOfYear returns the date for the one-based ordinal day dayOfYear
	// of year.
	FromDayOfYear(year, dayOfYear int) (Date, error)

	// Days returns the number of days between date and the system epoch,
	// 1970-01-01.
	Days(date Date) int64

	// FromDays returns the date days days from the system epoch.
	FromDays(days int64) (Date, error)
}

// Date represents a year/month/day triple interpreted under a calendar
// System. The zero value is not a valid Date; use New or MustNew.
type Date struct {
	year  int
	month int
	day   int
	sys   System
}

// New creates and returns a new Date. Returns an error wrapping ErrRange if
// year is outside the range supported by sys, and an error wrapping
// ErrCalendar if month or day is invalid for the year.
func New(sys System, year, month, day int) (Date, error) {
	if year < sys.MinYear() || year > sys.MaxYear() {
		return Date{}, fmt.Errorf(
			"%w: year %v outside %v..%v supported by the %v calendar",
			ErrRange, year, sys.MinYear(), sys.MaxYear(), sys.Name(),
		)
	}
	if month < 1 || month > sys.MonthsInYear(year) {
		return Date{}, fmt.Errorf("%w: no month %v in year %v", ErrCalendar, month, year)
	}
	if day < 1 || day > sys.DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: no day %v in %v-%v", ErrCalendar, day, year, month)
	}
	return Date{year: year, month: month, day: day, sys: sys}, nil
}

// MustNew is like New but panics on error.
func MustNew(sys System, year, month, day int) Date {
	date, err := New(sys, year, month, day)
	if err != nil {
		panic(err)
	}
	return date
}

// Year returns the year of d.
func (d Date) Year() int { return d.year }

// Month returns the one-based month of d.
func (d Date) Month() int { return d.month }

// Day returns the one-based day of month of d.
func (d Date) Day() int { return d.day }

// System returns the calendar system d is interpreted under.
func (d Date) System() System { return d.sys }

// EpochDays returns the number of days between d and the epoch of its
// calendar system.
func (d Date) EpochDays() int64 { return d.sys.Days(d) }

// Equal returns true if d and u denote the same day of the same calendar
// system.
func (d Date) Equal(u Date) bool {
	return d.year == u.year && d.month == u.month && d.day == u.day &&
		d.sys.Name() == u.sys.Name()
}

// Compare compares d with u. If d is before u it returns -1; if d is after u
// it returns +1; if they denote the same day it returns 0. Both dates must
// use the same calendar system.
func (d Date) Compare(u Date) int {
	switch dd, ud := d.EpochDays(), u.EpochDays(); {
	case dd < ud:
		return -1
	case dd > ud:
		return 1
	default:
		return 0
	}
}

// String returns the ISO-style yyyy-mm-dd representation of d, with a leading
// minus sign and additional digits for years outside 0000-9999.
func (d Date) String() string {
	year, sign := d.year, ""
	if year < 0 {
		year, sign = -year, "-"
	}
	return fmt.Sprintf("%s%04d-%02d-%02d", sign, year, d.month, d.day)
}
