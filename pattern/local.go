package pattern

import (
	"fmt"
	"strings"

	"github.com/theory/chrono/calendar"
	"github.com/theory/chrono/zone"
	"golang.org/x/exp/maps" // Switch to maps when go 1.22 dropped
)

// dateBucket accumulates parsed calendar date fields.
type dateBucket struct {
	year  int
	month int
	day   int
}

// date combines the bucket into a Date, taking any field the pattern never
// uses from template. Out-of-range results are parse errors.
func (bkt *dateBucket) date(used Fields, template calendar.Date) (calendar.Date, error) {
	year, month, day := template.Year(), template.Month(), template.Day()
	if used.Has(FieldYear) {
		year = bkt.year
	}
	if used.Has(FieldMonth) {
		month = bkt.month
	}
	if used.Has(FieldDay) {
		day = bkt.day
	}
	date, err := calendar.New(template.System(), year, month, day)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return date, nil
}

// timeBucket accumulates parsed time-of-day fields.
type timeBucket struct {
	hours24 int
	hours12 int
	minutes int
	seconds int
	nanos   int
	pm      bool
}

// timeOfDay combines the bucket into a TimeOfDay, taking any field the
// pattern never uses from template.
func (bkt *timeBucket) timeOfDay(used Fields, template zone.TimeOfDay) (zone.TimeOfDay, error) {
	hour := template.Hour
	switch {
	case used.Has(FieldHours24):
		hour = bkt.hours24
	case used.Has(FieldHours12):
		hour = bkt.hours12 % 12
		if bkt.pm {
			hour += 12
		}
	}
	minute, second, nanos := template.Minute, template.Second, template.Nanosecond
	if used.Has(FieldMinutes) {
		minute = bkt.minutes
	}
	if used.Has(FieldSeconds) {
		second = bkt.seconds
	}
	if used.Has(FieldFractionalSeconds) {
		nanos = bkt.nanos
	}
	tod, err := zone.NewTimeOfDay(hour, minute, second, nanos)
	if err != nil {
		return zone.TimeOfDay{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return tod, nil
}

// dateHandlers returns the handlers for calendar date field characters,
// adapted to value type V and bucket type B. date extracts the Date from a
// value for formatting; bucket locates the date bucket within B.
func dateHandlers[V, B any](
	date func(V) calendar.Date, bucket func(B) *dateBucket,
) handlerMap[V, B] {
	return handlerMap[V, B]{
		'y': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('y', 5)
			if err != nil {
				return err
			}
			return number(b, FieldYear, "a year", count, -99999, 99999,
				func(v V) int { return date(v).Year() },
				func(bkt B, n int) { bucket(bkt).year = n },
			)
		},
		'M': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('M', 2)
			if err != nil {
				return err
			}
			return number(b, FieldMonth, "a month", count, 1, 12,
				func(v V) int { return date(v).Month() },
				func(bkt B, n int) { bucket(bkt).month = n },
			)
		},
		'd': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('d', 2)
			if err != nil {
				return err
			}
			return number(b, FieldDay, "a day", count, 1, 31,
				func(v V) int { return date(v).Day() },
				func(bkt B, n int) { bucket(bkt).day = n },
			)
		},
	}
}

// timeHandlers returns the handlers for time-of-day field characters,
// adapted to value type V and bucket type B.
//
//nolint:funlen
func timeHandlers[V, B any](
	tod func(V) zone.TimeOfDay, bucket func(B) *timeBucket,
) handlerMap[V, B] {
	return handlerMap[V, B]{
		'H': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('H', 2)
			if err != nil {
				return err
			}
			return number(b, FieldHours24, "an hour", count, 0, 23,
				func(v V) int { return tod(v).Hour },
				func(bkt B, n int) { bucket(bkt).hours24 = n },
			)
		},
		'h': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('h', 2)
			if err != nil {
				return err
			}
			return number(b, FieldHours12, "a clock hour", count, 1, 12,
				func(v V) int {
					if h := tod(v).Hour % 12; h != 0 {
						return h
					}
					return 12
				},
				func(bkt B, n int) { bucket(bkt).hours12 = n },
			)
		},
		'm': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('m', 2)
			if err != nil {
				return err
			}
			return number(b, FieldMinutes, "a minute", count, 0, 59,
				func(v V) int { return tod(v).Minute },
				func(bkt B, n int) { bucket(bkt).minutes = n },
			)
		},
		's': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('s', 2)
			if err != nil {
				return err
			}
			return number(b, FieldSeconds, "a second", count, 0, 59,
				func(v V) int { return tod(v).Second },
				func(bkt B, n int) { bucket(bkt).seconds = n },
			)
		},
		'f': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('f', 9)
			if err != nil {
				return err
			}
			if err := b.useField(FieldFractionalSeconds); err != nil {
				return err
			}
			scale := 1
			for i := count; i < 9; i++ {
				scale *= 10
			}
			b.addFormat(func(v V, sb *strings.Builder) {
				fmt.Fprintf(sb, "%0*d", count, tod(v).Nanosecond/scale)
			})
			b.addParse(func(cur *valueCursor, bkt B) error {
				nanos, ok := cur.fraction(count)
				if !ok {
					return mismatch(cur, "a fractional second")
				}
				bucket(bkt).nanos = nanos
				return nil
			})
			return nil
		},
		't': func(b *builder[V, B], cur *patternCursor) error {
			count, err := cur.repeatCount('t', 2)
			if err != nil {
				return err
			}
			if err := b.useField(FieldAMPM); err != nil {
				return err
			}
			am, pm := "AM", "PM"
			if count == 1 {
				am, pm = "A", "P"
			}
			b.addFormat(func(v V, sb *strings.Builder) {
				if tod(v).Hour < 12 {
					sb.WriteString(am)
				} else {
					sb.WriteString(pm)
				}
			})
			b.addParse(func(cur *valueCursor, bkt B) error {
				switch {
				case cur.consume(am):
					bucket(bkt).pm = false
				case cur.consume(pm):
					bucket(bkt).pm = true
				default:
					return mismatch(cur, "an AM/PM designator")
				}
				return nil
			})
			return nil
		},
	}
}

// LocalDatePattern is a compiled pattern for calendar dates.
type LocalDatePattern struct {
	c *Compiled[calendar.Date, *dateBucket]
}

// NewLocalDate compiles text into a pattern for calendar dates. A
// single-character text selects a standard pattern: "D" for the ISO
// "yyyy-MM-dd". template supplies both the calendar system and the value of
// any field text never uses. All errors wrap ErrPattern.
func NewLocalDate(text string, template calendar.Date) (*LocalDatePattern, error) {
	if len(text) == 1 {
		switch text {
		case "D":
			text = "yyyy-MM-dd"
		default:
			return nil, fmt.Errorf("%w: unknown standard pattern %q", ErrPattern, text)
		}
	}

	b := &builder[calendar.Date, *dateBucket]{text: text}
	handlers := dateHandlers[calendar.Date, *dateBucket](
		func(v calendar.Date) calendar.Date { return v },
		func(bkt *dateBucket) *dateBucket { return bkt },
	)
	if err := b.compile(handlers); err != nil {
		return nil, err
	}

	used := b.used
	c := b.build(
		func() *dateBucket { return &dateBucket{} },
		func(bkt *dateBucket) (calendar.Date, error) { return bkt.date(used, template) },
	)
	return &LocalDatePattern{c: c}, nil
}

// MustNewLocalDate is like NewLocalDate but panics on error.
func MustNewLocalDate(text string, template calendar.Date) *LocalDatePattern {
	p, err := NewLocalDate(text, template)
	if err != nil {
		panic(err)
	}
	return p
}

// Format renders date as text.
func (p *LocalDatePattern) Format(date calendar.Date) string { return p.c.Format(date) }

// Parse parses text into a calendar date. All errors wrap ErrParse.
func (p *LocalDatePattern) Parse(text string) (calendar.Date, error) { return p.c.Parse(text) }

// LocalTimePattern is a compiled pattern for times of day.
type LocalTimePattern struct {
	c *Compiled[zone.TimeOfDay, *timeBucket]
}

// NewLocalTime compiles text into a pattern for times of day. A
// single-character text selects a standard pattern: "T" for "HH:mm:ss".
// template supplies the value of any field text never uses. All errors wrap
// ErrPattern.
func NewLocalTime(text string, template zone.TimeOfDay) (*LocalTimePattern, error) {
	if len(text) == 1 {
		switch text {
		case "T":
			text = "HH:mm:ss"
		default:
			return nil, fmt.Errorf("%w: unknown standard pattern %q", ErrPattern, text)
		}
	}

	b := &builder[zone.TimeOfDay, *timeBucket]{text: text}
	handlers := timeHandlers[zone.TimeOfDay, *timeBucket](
		func(v zone.TimeOfDay) zone.TimeOfDay { return v },
		func(bkt *timeBucket) *timeBucket { return bkt },
	)
	if err := b.compile(handlers); err != nil {
		return nil, err
	}

	used := b.used
	c := b.build(
		func() *timeBucket { return &timeBucket{} },
		func(bkt *timeBucket) (zone.TimeOfDay, error) { return bkt.timeOfDay(used, template) },
	)
	return &LocalTimePattern{c: c}, nil
}

// MustNewLocalTime is like NewLocalTime but panics on error.
func MustNewLocalTime(text string, template zone.TimeOfDay) *LocalTimePattern {
	p, err := NewLocalTime(text, template)
	if err != nil {
		panic(err)
	}
	return p
}

// Format renders tod as text.
func (p *LocalTimePattern) Format(tod zone.TimeOfDay) string { return p.c.Format(tod) }

// Parse parses text into a time of day. All errors wrap ErrParse.
func (p *LocalTimePattern) Parse(text string) (zone.TimeOfDay, error) { return p.c.Parse(text) }

// localBucket accumulates the nested date and time buckets of a local
// date-time parse.
type localBucket struct {
	date dateBucket
	time timeBucket
}

// localDateTime combines the nested buckets into a LocalDateTime against
// template.
func (bkt *localBucket) localDateTime(
	used Fields, template zone.LocalDateTime,
) (zone.LocalDateTime, error) {
	date, err := bkt.date.date(used, template.Date)
	if err != nil {
		return zone.LocalDateTime{}, err
	}
	tod, err := bkt.time.timeOfDay(used, template.Time)
	if err != nil {
		return zone.LocalDateTime{}, err
	}
	return zone.LocalDateTime{Date: date, Time: tod}, nil
}

// localDateTimeHandlers returns the merged date and time handler table for
// value type V and bucket type B.
func localDateTimeHandlers[V, B any](
	local func(V) zone.LocalDateTime, bucket func(B) *localBucket,
) handlerMap[V, B] {
	handlers := dateHandlers[V, B](
		func(v V) calendar.Date { return local(v).Date },
		func(bkt B) *dateBucket { return &bucket(bkt).date },
	)
	maps.Copy(handlers, timeHandlers[V, B](
		func(v V) zone.TimeOfDay { return local(v).Time },
		func(bkt B) *timeBucket { return &bucket(bkt).time },
	))
	return handlers
}

// LocalDateTimePattern is a compiled pattern for local date-times.
type LocalDateTimePattern struct {
	c *Compiled[zone.LocalDateTime, *localBucket]
}

// NewLocalDateTime compiles text into a pattern for local date-times. A
// single-character text selects a standard pattern: "S" for the sortable
// "yyyy-MM-dd'T'HH:mm:ss". template supplies the calendar system and the
// value of any field text never uses. All errors wrap ErrPattern.
func NewLocalDateTime(text string, template zone.LocalDateTime) (*LocalDateTimePattern, error) {
	if len(text) == 1 {
		switch text {
		case "S":
			text = "yyyy-MM-dd'T'HH:mm:ss"
		default:
			return nil, fmt.Errorf("%w: unknown standard pattern %q", ErrPattern, text)
		}
	}

	b := &builder[zone.LocalDateTime, *localBucket]{text: text}
	handlers := localDateTimeHandlers[zone.LocalDateTime, *localBucket](
		func(v zone.LocalDateTime) zone.LocalDateTime { return v },
		func(bkt *localBucket) *localBucket { return bkt },
	)
	if err := b.compile(handlers); err != nil {
		return nil, err
	}

	used := b.used
	c := b.build(
		func() *localBucket { return &localBucket{} },
		func(bkt *localBucket) (zone.LocalDateTime, error) {
			return bkt.localDateTime(used, template)
		},
	)
	return &LocalDateTimePattern{c: c}, nil
}

// MustNewLocalDateTime is like NewLocalDateTime but panics on error.
func MustNewLocalDateTime(text string, template zone.LocalDateTime) *LocalDateTimePattern {
	p, err := NewLocalDateTime(text, template)
	if err != nil {
		panic(err)
	}
	return p
}

// Format renders ldt as text.
func (p *LocalDateTimePattern) Format(ldt zone.LocalDateTime) string { return p.c.Format(ldt) }

// Parse parses text into a local date-time. All errors wrap ErrParse.
func (p *LocalDateTimePattern) Parse(text string) (zone.LocalDateTime, error) {
	return p.c.Parse(text)
}
