// Package zone provides time zones as offset histories over the time line.
//
// A zone is an identifier plus an IntervalMap, a capability that reports the
// Interval — offset, name, abbreviation — in force at any Instant. Local
// date-times are resolved against a zone with MapLocal, which surfaces the
// zero, one, or two instants a local time can denote across zone transitions,
// and ResolveLocal, which applies a Resolver policy to pick one.
package zone

import (
	"errors"
	"fmt"

	"github.com/theory/chrono/calendar"
)

var (
	// ErrZone wraps errors returned by the zone package.
	ErrZone = errors.New("zone")

	// ErrSkipped errors denote a local time that falls in a forward
	// transition gap and so never occurs in the zone.
	ErrSkipped = fmt.Errorf("%w: skipped local time", ErrZone)

	// ErrAmbiguous errors denote a local time that falls in a backward
	// transition overlap and so occurs twice in the zone.
	ErrAmbiguous = fmt.Errorf("%w: ambiguous local time", ErrZone)
)

const secondsPerDay = 86400

// maxZoneOffset bounds the offsets a zone interval may carry. Real-world
// offsets stay within ±18 hours.
const maxZoneOffset = 18 * 60 * 60

// Offset represents a zone's displacement from UTC in seconds, positive east.
type Offset int32

// OffsetFromSeconds creates an Offset of seconds seconds.
func OffsetFromSeconds(seconds int) Offset { return Offset(seconds) }

// OffsetFromHoursMinutes creates an Offset of hours and minutes. The sign of
// hours applies to minutes as well.
func OffsetFromHoursMinutes(hours, minutes int) Offset {
	if hours < 0 {
		minutes = -minutes
	}
	return Offset(hours*3600 + minutes*60)
}

// Seconds returns o as a count of seconds.
func (o Offset) Seconds() int { return int(o) }

// String returns o as "+hh", "+hh:mm", or "+hh:mm:ss", whichever is shortest
// without losing precision. The zero offset returns "Z".
func (o Offset) String() string {
	if o == 0 {
		return "Z"
	}
	sign, s := "+", int(o)
	if s < 0 {
		sign, s = "-", -s
	}
	h, m, sec := s/3600, s/60%60, s%60
	switch {
	case sec != 0:
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, sec)
	case m != 0:
		return fmt.Sprintf("%s%02d:%02d", sign, h, m)
	default:
		return fmt.Sprintf("%s%02d", sign, h)
	}
}

// Instant represents an absolute point on the time line as a count of
// seconds since 1970-01-01T00:00:00Z.
type Instant int64

// TimeOfDay represents a wall-clock time with nanosecond precision.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// NewTimeOfDay creates and returns a new TimeOfDay. Returns an error
// wrapping ErrZone if any component is out of range.
func NewTimeOfDay(hour, minute, second, nanosecond int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 ||
		second < 0 || second > 59 || nanosecond < 0 || nanosecond > 999999999 {
		return TimeOfDay{}, fmt.Errorf(
			"%w: invalid time of day %02d:%02d:%02d.%09d",
			ErrZone, hour, minute, second, nanosecond,
		)
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second, Nanosecond: nanosecond}, nil
}

// daySeconds returns the whole seconds elapsed since midnight.
func (t TimeOfDay) daySeconds() int64 {
	return int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)
}

// LocalDateTime represents a date and time of day with no zone or offset
// attached. Relative to a given zone it may be ambiguous or nonexistent.
type LocalDateTime struct {
	Date calendar.Date
	Time TimeOfDay
}

// localSeconds returns the local time line position of ldt in seconds from
// the epoch, ignoring zone and sub-second precision.
func (ldt LocalDateTime) localSeconds() int64 {
	return ldt.Date.EpochDays()*secondsPerDay + ldt.Time.daySeconds()
}

// String returns the ISO-style representation of ldt with no zone designator.
func (ldt LocalDateTime) String() string {
	return fmt.Sprintf(
		"%sT%02d:%02d:%02d", ldt.Date, ldt.Time.Hour, ldt.Time.Minute, ldt.Time.Second,
	)
}

// ZonedDateTime represents a local date-time resolved to a concrete instant
// in a zone, carrying the offset in force at that instant.
type ZonedDateTime struct {
	Local  LocalDateTime
	Zone   *Zone
	Offset Offset
}

// Instant returns the absolute point on the time line z denotes.
func (z ZonedDateTime) Instant() Instant {
	return Instant(z.Local.localSeconds() - int64(z.Offset))
}

// String returns the ISO-style representation of z: the local date-time, the
// offset, and the zone identifier.
func (z ZonedDateTime) String() string {
	return fmt.Sprintf("%s%s %s", z.Local, z.Offset, z.Zone.ID())
}

// Zone pairs a zone identifier with the IntervalMap describing its offset
// history. Zones are immutable and safe for concurrent use.
type Zone struct {
	id string
	m  IntervalMap
}

// New creates and returns a new Zone with identifier id backed by m.
func New(id string, m IntervalMap) *Zone {
	return &Zone{id: id, m: m}
}

//nolint:gochecknoglobals
var utc = &Zone{id: "UTC", m: NewSingleIntervalMap(Interval{Name: "UTC", Abbreviation: "UTC"})}

// UTC returns the canonical UTC zone.
func UTC() *Zone { return utc }

// Fixed returns a zone with the single fixed offset o. The zero offset
// returns the canonical UTC zone; any other offset yields a zone identified
// as "UTC" plus the offset string.
func Fixed(o Offset) *Zone {
	if o == 0 {
		return utc
	}
	id := "UTC" + o.String()
	return &Zone{id: id, m: NewSingleIntervalMap(Interval{Offset: o, Name: id, Abbreviation: id})}
}

// ID returns the identifier of z.
func (z *Zone) ID() string { return z.id }

// IntervalAt returns the Interval in force at instant i.
func (z *Zone) IntervalAt(i Instant) Interval { return z.m.IntervalAt(i) }

// Mapping holds the result of mapping a local date-time into a zone: the
// zero, one, or two instants the local time denotes there.
type Mapping struct {
	local      LocalDateTime
	zone       *Zone
	count      int
	candidates [2]ZonedDateTime
}

// Count returns the number of instants the local time denotes in the zone:
// 0 for a time skipped by a forward transition, 1 for an unambiguous time,
// and 2 for a time repeated by a backward transition.
func (m Mapping) Count() int { return m.count }

// Local returns the local date-time that was mapped.
func (m Mapping) Local() LocalDateTime { return m.local }

// Zone returns the zone the local date-time was mapped into.
func (m Mapping) Zone() *Zone { return m.zone }

// Earlier returns the earliest instant the local time denotes. Panics if
// Count is zero.
func (m Mapping) Earlier() ZonedDateTime {
	if m.count == 0 {
		panic("zone: no mapping for skipped local time")
	}
	return m.candidates[0]
}

// Later returns the latest instant the local time denotes. Panics if Count
// is zero.
func (m Mapping) Later() ZonedDateTime {
	if m.count == 0 {
		panic("zone: no mapping for skipped local time")
	}
	return m.candidates[m.count-1]
}

// MapLocal maps ldt into z, collecting every interval of z whose offset maps
// ldt to an instant the interval contains. Panics if the interval map
// produces more than two candidates, which indicates it violates its
// contract of ordered, contiguous intervals.
func (z *Zone) MapLocal(ldt LocalDateTime) Mapping {
	local := ldt.localSeconds()
	m := Mapping{local: ldt, zone: z}

	// Walk the intervals that could contain the local time under any legal
	// offset, earliest first.
	iv := z.m.IntervalAt(Instant(local - maxZoneOffset))
	for {
		if inst := Instant(local - int64(iv.Offset)); iv.Contains(inst) {
			if m.count == len(m.candidates) {
				panic("zone: interval map produced more than two mappings for a local time")
			}
			m.candidates[m.count] = ZonedDateTime{Local: ldt, Zone: z, Offset: iv.Offset}
			m.count++
		}
		if !iv.HasEnd || int64(iv.End) > local+maxZoneOffset {
			return m
		}
		iv = z.m.IntervalAt(iv.End)
	}
}

// Resolver is a policy for turning the mapping of a local date-time into a
// single zoned value. It reports an error wrapping ErrSkipped or
// ErrAmbiguous when it declines to pick one.
type Resolver func(Mapping) (ZonedDateTime, error)

// ResolveLocal maps ldt into z and applies resolve to the result.
func (z *Zone) ResolveLocal(ldt LocalDateTime, resolve Resolver) (ZonedDateTime, error) {
	return resolve(z.MapLocal(ldt))
}

// Strict is a Resolver that accepts only unambiguous local times, reporting
// ErrSkipped and ErrAmbiguous errors otherwise.
func Strict(m Mapping) (ZonedDateTime, error) {
	switch m.Count() {
	case 1:
		return m.Earlier(), nil
	case 0:
		return ZonedDateTime{}, fmt.Errorf("%w: %v in %v", ErrSkipped, m.Local(), m.Zone().ID())
	default:
		return ZonedDateTime{}, fmt.Errorf("%w: %v in %v", ErrAmbiguous, m.Local(), m.Zone().ID())
	}
}

// EarlierOf is a Resolver that picks the earlier of an ambiguous local
// time's two instants. Skipped local times still report ErrSkipped.
func EarlierOf(m Mapping) (ZonedDateTime, error) {
	if m.Count() == 0 {
		return ZonedDateTime{}, fmt.Errorf("%w: %v in %v", ErrSkipped, m.Local(), m.Zone().ID())
	}
	return m.Earlier(), nil
}

// LaterOf is a Resolver that picks the later of an ambiguous local time's
// two instants. Skipped local times still report ErrSkipped.
func LaterOf(m Mapping) (ZonedDateTime, error) {
	if m.Count() == 0 {
		return ZonedDateTime{}, fmt.Errorf("%w: %v in %v", ErrSkipped, m.Local(), m.Zone().ID())
	}
	return m.Later(), nil
}
