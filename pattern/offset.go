package pattern

import (
	"fmt"
	"strings"

	"github.com/theory/chrono/zone"
)

// OffsetPattern parses and formats UTC offsets in the general format: "Z"
// for the zero offset, otherwise a sign and hours, with minutes, seconds,
// and a fractional part included as needed ("+05", "+05:30", "+05:30:30",
// "+05:30:30.123"). It backs the offset field of zone-aware patterns and is
// usable on its own.
type OffsetPattern struct{}

// GeneralOffset returns the general-format offset pattern.
func GeneralOffset() OffsetPattern { return OffsetPattern{} }

// Format renders o in the general format.
func (OffsetPattern) Format(o zone.Offset) string {
	sb := new(strings.Builder)
	formatOffset(o, sb)
	return sb.String()
}

func formatOffset(o zone.Offset, sb *strings.Builder) {
	if o == 0 {
		sb.WriteByte('Z')
		return
	}
	s := o.Seconds()
	sign := byte('+')
	if s < 0 {
		sign, s = '-', -s
	}
	sb.WriteByte(sign)
	fmt.Fprintf(sb, "%02d", s/3600)
	if rem := s % 3600; rem != 0 {
		fmt.Fprintf(sb, ":%02d", rem/60)
		if sec := rem % 60; sec != 0 {
			fmt.Fprintf(sb, ":%02d", sec)
		}
	}
}

// Parse parses text as a general-format offset. All errors wrap ErrParse.
func (p OffsetPattern) Parse(text string) (zone.Offset, error) {
	cur := newValueCursor(text)
	o, ok := p.parseCursor(cur)
	if !ok {
		return 0, mismatch(cur, "an offset")
	}
	if !cur.atEnd() {
		return 0, fmt.Errorf(
			"%w: unexpected trailing text %q in %q", ErrParse, cur.rest(), text,
		)
	}
	return o, nil
}

// parseCursor parses a general-format offset from cur, consuming it on
// success. On failure it returns false with the cursor position unchanged.
// A fractional-seconds part is consumed but discarded: interval data never
// carries sub-second offsets.
func (OffsetPattern) parseCursor(cur *valueCursor) (zone.Offset, bool) {
	start := cur.pos
	if cur.consume("Z") {
		return 0, true
	}

	negative := false
	switch {
	case cur.consume("+"):
	case cur.consume("-"):
		negative = true
	default:
		return 0, false
	}

	hours, ok := cur.digits(2, 2)
	if !ok || hours > 18 {
		cur.pos = start
		return 0, false
	}
	seconds := hours * 3600

	// Minutes, seconds, and fraction are each optional, each introduced by
	// the previous part being present.
	if mark := cur.pos; cur.consume(":") {
		m, ok := cur.digits(2, 2)
		if !ok || m > 59 {
			cur.pos = mark
		} else {
			seconds += m * 60
			if mark := cur.pos; cur.consume(":") {
				s, ok := cur.digits(2, 2)
				if !ok || s > 59 {
					cur.pos = mark
				} else {
					seconds += s
					if mark := cur.pos; cur.consume(".") {
						if _, ok := cur.digits(1, 9); !ok {
							cur.pos = mark
						}
					}
				}
			}
		}
	}

	if negative {
		seconds = -seconds
	}
	return zone.OffsetFromSeconds(seconds), true
}
