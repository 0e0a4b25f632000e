package calendar

import "fmt"

// maxFastDays bounds the day deltas eligible for single-year arithmetic. Any
// delta under the bound lands in the same year or an adjacent one for every
// supported calendar, so day-of-year rollover never has to step more than one
// year.
const maxFastDays = 300

// PeriodField performs arithmetic on Dates in multiples of a fixed-length
// unit. The zero value is not usable; use Days or Weeks.
type PeriodField struct {
	unitDays int64
}

//nolint:gochecknoglobals
var (
	// Days is the period field for single-day units.
	Days = PeriodField{unitDays: 1}

	// Weeks is the period field for seven-day units.
	Weeks = PeriodField{unitDays: 7}
)

// Add returns the date value units after date (before, for negative values).
// Returns an error wrapping ErrRange if the result falls outside the years
// supported by the date's calendar system.
func (f PeriodField) Add(date Date, value int64) (Date, error) {
	if value == 0 {
		return date, nil
	}

	days := value * f.unitDays
	if days > -maxFastDays && days < maxFastDays {
		return addSmall(date, int(days))
	}

	// Large deltas go through the epoch day count, which revalidates the
	// year range on reconstruction.
	return date.sys.FromDays(date.sys.Days(date) + days)
}

// addSmall adds days to date without converting to epoch days. days must be
// within (-maxFastDays, maxFastDays) so that the result lands in the same
// year or an adjacent one.
func addSmall(date Date, days int) (Date, error) {
	sys := date.sys

	// Fast path: stay within the month.
	if dom := date.day + days; dom >= 1 && dom <= sys.DaysInMonth(date.year, date.month) {
		return Date{year: date.year, month: date.month, day: dom, sys: sys}, nil
	}

	year := date.year
	doy := sys.DayOfYear(date) + days
	switch {
	case doy < 1:
		year--
		if year < sys.MinYear() {
			return Date{}, fmt.Errorf(
				"%w: year %v below minimum %v of the %v calendar",
				ErrRange, year, sys.MinYear(), sys.Name(),
			)
		}
		doy += sys.DaysInYear(year)
	case doy > sys.DaysInYear(year):
		doy -= sys.DaysInYear(year)
		year++
		if year > sys.MaxYear() {
			return Date{}, fmt.Errorf(
				"%w: year %v above maximum %v of the %v calendar",
				ErrRange, year, sys.MaxYear(), sys.Name(),
			)
		}
	}
	return sys.FromDayOfYear(year, doy)
}

// UnitsBetween returns the number of whole units between start and end,
// negative if end is before start. Partial units are dropped.
func (f PeriodField) UnitsBetween(start, end Date) int64 {
	return (end.sys.Days(end) - start.sys.Days(start)) / f.unitDays
}
