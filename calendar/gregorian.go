package calendar

import "fmt"

// Gregorian is the proleptic Gregorian calendar system, with leap rules
// extended indefinitely backward and forward from the reform.
//
//nolint:gochecknoglobals
var Gregorian System = gregorian{}

const (
	gregorianMinYear = -9999
	gregorianMaxYear = 9999

	// daysPerCycle is the number of days in a full 400-year leap cycle.
	daysPerCycle = 146097

	// epochDays is the number of days from 0000-03-01 to 1970-01-01, used to
	// rebase the epoch of the civil-days conversion below.
	epochDays = 719468
)

type gregorian struct{}

func (gregorian) Name() string { return "gregorian" }

func (gregorian) MinYear() int { return gregorianMinYear }

func (gregorian) MaxYear() int { return gregorianMaxYear }

func (gregorian) MonthsInYear(int) int { return 12 }

// isLeap returns true if year is a Gregorian leap year.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

//nolint:gochecknoglobals
var (
	daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

	// daysBefore[m] is the number of days in a common year before month m+1.
	daysBefore = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
)

func (gregorian) DaysInMonth(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

func (gregorian) DaysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

func (gregorian) DayOfYear(date Date) int {
	doy := daysBefore[date.month-1] + date.day
	if date.month > 2 && isLeap(date.year) {
		doy++
	}
	return doy
}

func (g gregorian) FromDayOfYear(year, dayOfYear int) (Date, error) {
	if dayOfYear < 1 || dayOfYear > g.DaysInYear(year) {
		return Date{}, fmt.Errorf("%w: no day %v in year %v", ErrCalendar, dayOfYear, year)
	}
	month, day := 1, dayOfYear
	for day > g.DaysInMonth(year, month) {
		day -= g.DaysInMonth(year, month)
		month++
	}
	return New(g, year, month, day)
}

// Days converts date to a count of days since 1970-01-01 using the civil
// calendar conversion described by Howard Hinnant in "chrono-Compatible
// Low-Level Date Algorithms".
func (gregorian) Days(date Date) int64 {
	y, m, d := int64(date.year), int64(date.month), int64(date.day)
	if m <= 2 {
		y--
	}
	era := y / 400
	if y%400 < 0 {
		era--
	}
	yoe := y - era*400 // [0, 399]
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + d - 1            // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*daysPerCycle + doe - epochDays
}

// FromDays converts a count of days since 1970-01-01 to a date, the inverse
// of Days. Returns an error wrapping ErrRange if the resulting year is
// outside the supported range.
func (g gregorian) FromDays(days int64) (Date, error) {
	z := days + epochDays
	era := z / daysPerCycle
	if z%daysPerCycle < 0 {
		era--
	}
	doe := z - era*daysPerCycle                            // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	d := doy - (153*mp+2)/5 + 1              // [1, 31]
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return New(g, int(y), int(m), int(d))
}
