package zone

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSingleIntervalMap(t *testing.T) {
	m := NewSingleIntervalMap(Interval{
		Start:        1000,
		End:          2000,
		HasStart:     true,
		HasEnd:       true,
		Offset:       3600,
		Name:         "TST",
		Abbreviation: "TST",
	})

	want := Interval{Offset: 3600, Name: "TST", Abbreviation: "TST"}
	for _, instant := range []Instant{-1 << 40, -1, 0, 1500, 2000, 1 << 40} {
		got := m.IntervalAt(instant)
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("IntervalAt(%d) mismatch (-got +want):\n%s", instant, diff)
		}
		if !got.Contains(instant) {
			t.Errorf("IntervalAt(%d) does not contain its argument", instant)
		}
	}
}

func TestNewTransitionMapValidation(t *testing.T) {
	unbounded := Interval{Offset: 0}
	cases := []struct {
		name      string
		intervals []Interval
	}{
		{"empty", nil},
		{"bounded_first", []Interval{{Start: 0, HasStart: true}}},
		{"bounded_last", []Interval{{End: 10, HasEnd: true}}},
		{"gap", []Interval{
			{End: 10, HasEnd: true},
			{Start: 20, HasStart: true},
		}},
		{"unbounded_middle", []Interval{
			{End: 10, HasEnd: true},
			{End: 20, HasEnd: true},
			{Start: 20, HasStart: true},
		}},
		{"offset_out_of_range", []Interval{{Offset: 19 * 3600}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTransitionMap(tc.intervals); !errors.Is(err, ErrZone) {
				t.Errorf("NewTransitionMap() error = %v, want ErrZone", err)
			}
		})
	}

	if _, err := NewTransitionMap([]Interval{unbounded}); err != nil {
		t.Errorf("NewTransitionMap() with one unbounded interval failed: %v", err)
	}
}

func TestTransitionMapIntervalAt(t *testing.T) {
	intervals := []Interval{
		{End: 100, HasEnd: true, Offset: 3600, Name: "A"},
		{Start: 100, End: 200, HasStart: true, HasEnd: true, Offset: 7200, Name: "B"},
		{Start: 200, HasStart: true, Offset: 3600, Name: "C"},
	}
	m, err := NewTransitionMap(intervals)
	if err != nil {
		t.Fatalf("NewTransitionMap() failed: %v", err)
	}

	cases := []struct {
		instant Instant
		want    string
	}{
		{-1 << 40, "A"},
		{99, "A"},
		{100, "B"}, // start is inclusive
		{199, "B"}, // end is exclusive
		{200, "C"},
		{1 << 40, "C"},
	}
	for _, tc := range cases {
		got := m.IntervalAt(tc.instant)
		if got.Name != tc.want {
			t.Errorf("IntervalAt(%d) = %v, want %v", tc.instant, got.Name, tc.want)
		}
		if !got.Contains(tc.instant) {
			t.Errorf("IntervalAt(%d) does not contain its argument", tc.instant)
		}
	}
}
