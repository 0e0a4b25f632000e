package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	date, err := New(Gregorian, 2024, 4, 29)
	r.NoError(err)
	a.Equal(2024, date.Year())
	a.Equal(4, date.Month())
	a.Equal(29, date.Day())
	a.Equal(Gregorian, date.System())
	a.Equal("2024-04-29", date.String())

	for _, tc := range []struct {
		name  string
		year  int
		month int
		day   int
		err   error
	}{
		{name: "year_above_max", year: 10000, month: 1, day: 1, err: ErrRange},
		{name: "year_below_min", year: -10000, month: 1, day: 1, err: ErrRange},
		{name: "month_zero", year: 2024, month: 0, day: 1, err: ErrCalendar},
		{name: "month_thirteen", year: 2024, month: 13, day: 1, err: ErrCalendar},
		{name: "day_zero", year: 2024, month: 4, day: 0, err: ErrCalendar},
		{name: "day_past_month_end", year: 2023, month: 2, day: 29, err: ErrCalendar},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(Gregorian, tc.year, tc.month, tc.day)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMustNew(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.NotPanics(func() { MustNew(Gregorian, 2024, 2, 29) })
	a.Panics(func() { MustNew(Gregorian, 2023, 2, 29) })
}

func TestString(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal("2024-04-29", MustNew(Gregorian, 2024, 4, 29).String())
	a.Equal("0044-03-15", MustNew(Gregorian, 44, 3, 15).String())
	a.Equal("-0500-01-02", MustNew(Gregorian, -500, 1, 2).String())
}

func TestCompareEqual(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	apr29 := MustNew(Gregorian, 2024, 4, 29)
	a.Equal(-1, apr29.Compare(MustNew(Gregorian, 2024, 4, 30)))
	a.Equal(1, apr29.Compare(MustNew(Gregorian, 2024, 4, 28)))
	a.Equal(0, apr29.Compare(MustNew(Gregorian, 2024, 4, 29)))
	a.True(apr29.Equal(MustNew(Gregorian, 2024, 4, 29)))
	a.False(apr29.Equal(MustNew(Gregorian, 2024, 4, 30)))
}
