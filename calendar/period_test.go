package calendar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIdentity(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, date := range []Date{
		MustNew(Gregorian, 2024, 4, 29),
		MustNew(Gregorian, -9999, 1, 1),
		MustNew(Gregorian, 9999, 12, 31),
	} {
		got, err := Days.Add(date, 0)
		require.NoError(t, err)
		a.Equal(date, got)
		got, err = Weeks.Add(date, 0)
		require.NoError(t, err)
		a.Equal(date, got)
	}
}

func TestAddBoundaries(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		field PeriodField
		date  Date
		value int64
		want  Date
	}{
		{
			name:  "within_month",
			field: Days,
			date:  MustNew(Gregorian, 2024, 4, 10),
			value: 9,
			want:  MustNew(Gregorian, 2024, 4, 19),
		},
		{
			name:  "into_next_month",
			field: Days,
			date:  MustNew(Gregorian, 2024, 2, 28),
			value: 2,
			want:  MustNew(Gregorian, 2024, 3, 1),
		},
		{
			name:  "into_next_month_common_year",
			field: Days,
			date:  MustNew(Gregorian, 2023, 2, 28),
			value: 1,
			want:  MustNew(Gregorian, 2023, 3, 1),
		},
		{
			name:  "into_next_year",
			field: Days,
			date:  MustNew(Gregorian, 2024, 12, 31),
			value: 1,
			want:  MustNew(Gregorian, 2025, 1, 1),
		},
		{
			name:  "into_previous_year",
			field: Days,
			date:  MustNew(Gregorian, 2024, 1, 1),
			value: -1,
			want:  MustNew(Gregorian, 2023, 12, 31),
		},
		{
			name:  "weeks_across_year",
			field: Weeks,
			date:  MustNew(Gregorian, 2024, 12, 30),
			value: 2,
			want:  MustNew(Gregorian, 2025, 1, 13),
		},
		{
			name:  "large_forward",
			field: Days,
			date:  MustNew(Gregorian, 2020, 6, 15),
			value: 1000,
			want:  MustNew(Gregorian, 2023, 3, 12),
		},
		{
			name:  "large_backward",
			field: Days,
			date:  MustNew(Gregorian, 2020, 6, 15),
			value: -1000,
			want:  MustNew(Gregorian, 2017, 9, 19),
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.field.Add(tc.date, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddRoundTrip(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	date := MustNew(Gregorian, 2022, 11, 5)
	for _, n := range []int64{-1000, -300, -299, -29, -7, -1, 1, 5, 29, 299, 300, 366, 1000} {
		n := n
		t.Run(fmt.Sprintf("days_%d", n), func(t *testing.T) {
			t.Parallel()
			got, err := Days.Add(date, n)
			r.NoError(err)
			a.Equal(n, Days.UnitsBetween(date, got))
		})
		t.Run(fmt.Sprintf("weeks_%d", n), func(t *testing.T) {
			t.Parallel()
			got, err := Weeks.Add(date, n)
			r.NoError(err)
			a.Equal(n, Weeks.UnitsBetween(date, got))
		})
	}
}

// TestAddPathsAgree lands on the same target via many small steps and via a
// single step large enough to take the epoch-day path.
func TestAddPathsAgree(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for _, start := range []Date{
		MustNew(Gregorian, 2023, 12, 31),
		MustNew(Gregorian, 2024, 2, 29),
		MustNew(Gregorian, 2024, 6, 15),
	} {
		start := start
		t.Run(start.String(), func(t *testing.T) {
			t.Parallel()
			stepped, err := Days.Add(start, 299)
			r.NoError(err)
			stepped, err = Days.Add(stepped, 101)
			r.NoError(err)

			direct, err := Days.Add(start, 400)
			r.NoError(err)
			a.Equal(direct, stepped)

			back, err := Days.Add(direct, -400)
			r.NoError(err)
			a.Equal(start, back)
		})
	}
}

func TestAddRange(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	_, err := Days.Add(MustNew(Gregorian, 9999, 12, 31), 1)
	r.ErrorIs(err, ErrRange)

	_, err = Days.Add(MustNew(Gregorian, -9999, 1, 1), -1)
	r.ErrorIs(err, ErrRange)

	_, err = Days.Add(MustNew(Gregorian, 9999, 6, 1), 1000)
	r.ErrorIs(err, ErrRange)

	_, err = Weeks.Add(MustNew(Gregorian, 9999, 12, 1), 5)
	r.ErrorIs(err, ErrRange)
}

func TestUnitsBetween(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	start := MustNew(Gregorian, 2024, 1, 1)
	a.Equal(int64(31), Days.UnitsBetween(start, MustNew(Gregorian, 2024, 2, 1)))
	a.Equal(int64(-31), Days.UnitsBetween(MustNew(Gregorian, 2024, 2, 1), start))

	// Partial weeks are dropped in both directions.
	a.Equal(int64(1), Weeks.UnitsBetween(start, MustNew(Gregorian, 2024, 1, 14)))
	a.Equal(int64(1), Weeks.UnitsBetween(start, MustNew(Gregorian, 2024, 1, 8)))
	a.Equal(int64(0), Weeks.UnitsBetween(start, MustNew(Gregorian, 2024, 1, 7)))
	a.Equal(int64(-1), Weeks.UnitsBetween(start, MustNew(Gregorian, 2023, 12, 25)))
	a.Equal(int64(0), Weeks.UnitsBetween(start, MustNew(Gregorian, 2023, 12, 26)))
}
