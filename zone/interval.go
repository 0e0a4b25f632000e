package zone

import (
	"fmt"
	"sort"
)

// Interval represents a maximal range of instants over which a zone's offset,
// name, and abbreviation are constant. Start is inclusive when HasStart is
// true; End is exclusive when HasEnd is true. An interval without a start or
// end extends to the beginning or end of time.
type Interval struct {
	Start        Instant
	End          Instant
	HasStart     bool
	HasEnd       bool
	Offset       Offset
	Name         string
	Abbreviation string
}

// Contains returns true if instant i falls within iv.
func (iv Interval) Contains(i Instant) bool {
	return (!iv.HasStart || i >= iv.Start) && (!iv.HasEnd || i < iv.End)
}

// String returns a debugging representation of iv.
func (iv Interval) String() string {
	start, end := "-∞", "+∞"
	if iv.HasStart {
		start = fmt.Sprintf("%d", iv.Start)
	}
	if iv.HasEnd {
		end = fmt.Sprintf("%d", iv.End)
	}
	return fmt.Sprintf("%s [%s, %s) %s", iv.Name, start, end, iv.Offset)
}

// IntervalMap defines the capability of reporting the Interval in force at
// any instant. Implementations must cover the whole time line and be safe
// for concurrent use.
type IntervalMap interface {
	// IntervalAt returns the interval containing instant i.
	IntervalAt(i Instant) Interval
}

// SingleIntervalMap is an IntervalMap with one interval covering all
// instants, modeling a zone with no transitions. Calling code can treat it
// like any other interval map rather than special-casing the absence of DST.
type SingleIntervalMap struct {
	interval Interval
}

// NewSingleIntervalMap creates an IntervalMap that reports iv for every
// instant. The bounds of iv are cleared: the single interval always covers
// the whole time line.
func NewSingleIntervalMap(iv Interval) SingleIntervalMap {
	iv.HasStart = false
	iv.HasEnd = false
	return SingleIntervalMap{interval: iv}
}

// IntervalAt returns the map's single interval regardless of i.
func (m SingleIntervalMap) IntervalAt(Instant) Interval { return m.interval }

// TransitionMap is an IntervalMap backed by an ordered table of contiguous
// intervals, the shape produced by compiled tz databases.
type TransitionMap struct {
	intervals []Interval
}

// NewTransitionMap creates an IntervalMap from intervals, which must be
// ordered by start instant and contiguous: the first interval unbounded at
// the start, the last unbounded at the end, and every interval's end equal
// to its successor's start. Returns an error wrapping ErrZone otherwise.
func NewTransitionMap(intervals []Interval) (*TransitionMap, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: no intervals", ErrZone)
	}
	if intervals[0].HasStart {
		return nil, fmt.Errorf("%w: first interval must be unbounded at the start", ErrZone)
	}
	last := len(intervals) - 1
	if intervals[last].HasEnd {
		return nil, fmt.Errorf("%w: last interval must be unbounded at the end", ErrZone)
	}
	for i, iv := range intervals {
		if iv.Offset < -maxZoneOffset || iv.Offset > maxZoneOffset {
			return nil, fmt.Errorf("%w: offset %v out of range in interval %v", ErrZone, iv.Offset, i)
		}
		if i == 0 {
			continue
		}
		prev := intervals[i-1]
		if !iv.HasStart || !prev.HasEnd || prev.End != iv.Start {
			return nil, fmt.Errorf(
				"%w: interval %v does not start where interval %v ends", ErrZone, i, i-1,
			)
		}
	}
	ivs := make([]Interval, len(intervals))
	copy(ivs, intervals)
	return &TransitionMap{intervals: ivs}, nil
}

// IntervalAt returns the interval containing instant i.
func (m *TransitionMap) IntervalAt(i Instant) Interval {
	// Find the first interval starting after i; its predecessor contains i.
	idx := sort.Search(len(m.intervals), func(n int) bool {
		iv := m.intervals[n]
		return iv.HasStart && iv.Start > i
	})
	return m.intervals[idx-1]
}
