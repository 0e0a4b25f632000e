package pattern

import (
	"fmt"
	"strings"

	"github.com/theory/chrono/zone"
)

// zonedBucket accumulates the parsed components of a zoned date-time: the
// nested local buckets, the recognized zone, and any explicitly parsed
// offset.
type zonedBucket struct {
	local  localBucket
	zone   *zone.Zone
	offset zone.Offset
}

// ZonedPattern is a compiled pattern for zoned date-times. Parsing resolves
// the local date-time it reads against the recognized zone's offset history,
// using either the pattern's resolver policy or, when the pattern carries an
// explicit offset field, the offset the text supplies.
type ZonedPattern struct {
	c *Compiled[zone.ZonedDateTime, *zonedBucket]
}

// NewZoned compiles text into a pattern for zoned date-times. A
// single-character text selects a standard pattern: "G" for the general
// "yyyy-MM-dd HH:mm:ss z" and "F" for the full "yyyy-MM-dd HH:mm:ss z o<g>".
// Zone identifiers in parsed text are looked up in provider. resolve picks
// among ambiguous local times when the pattern has no offset field; nil
// means zone.Strict. template supplies the calendar system, the zone, and
// the value of any field text never uses; a nil template zone means UTC.
// All errors wrap ErrPattern.
func NewZoned(
	text string, provider *zone.Provider, resolve zone.Resolver, template zone.ZonedDateTime,
) (*ZonedPattern, error) {
	if len(text) == 1 {
		switch text {
		case "G":
			text = "yyyy-MM-dd HH:mm:ss z"
		case "F":
			text = "yyyy-MM-dd HH:mm:ss z o<g>"
		default:
			return nil, fmt.Errorf("%w: unknown standard pattern %q", ErrPattern, text)
		}
	}
	if resolve == nil {
		resolve = zone.Strict
	}
	if template.Zone == nil {
		template.Zone = zone.UTC()
	}

	b := &builder[zone.ZonedDateTime, *zonedBucket]{text: text}
	handlers := localDateTimeHandlers[zone.ZonedDateTime, *zonedBucket](
		func(v zone.ZonedDateTime) zone.LocalDateTime { return v.Local },
		func(bkt *zonedBucket) *localBucket { return &bkt.local },
	)
	handlers['z'] = func(b *builder[zone.ZonedDateTime, *zonedBucket], _ *patternCursor) error {
		return zoneField(b, provider)
	}
	handlers['x'] = abbreviationField
	handlers['o'] = offsetField
	if err := b.compile(handlers); err != nil {
		return nil, err
	}

	used := b.used
	c := b.build(
		func() *zonedBucket { return &zonedBucket{} },
		func(bkt *zonedBucket) (zone.ZonedDateTime, error) {
			return bkt.resolve(used, template, resolve)
		},
	)
	return &ZonedPattern{c: c}, nil
}

// MustNewZoned is like NewZoned but panics on error.
func MustNewZoned(
	text string, provider *zone.Provider, resolve zone.Resolver, template zone.ZonedDateTime,
) *ZonedPattern {
	p, err := NewZoned(text, provider, resolve, template)
	if err != nil {
		panic(err)
	}
	return p
}

// Format renders zdt as text.
func (p *ZonedPattern) Format(zdt zone.ZonedDateTime) string { return p.c.Format(zdt) }

// Parse parses text into a zoned date-time. All errors wrap ErrParse.
func (p *ZonedPattern) Parse(text string) (zone.ZonedDateTime, error) { return p.c.Parse(text) }

// zoneField compiles the zone identifier field: formatting writes the zone
// ID, parsing recognizes a fixed-offset "UTC..." zone or the longest
// matching identifier in provider's table.
func zoneField(b *builder[zone.ZonedDateTime, *zonedBucket], provider *zone.Provider) error {
	if err := b.useField(FieldZone); err != nil {
		return err
	}
	b.addFormat(func(v zone.ZonedDateTime, sb *strings.Builder) {
		sb.WriteString(v.Zone.ID())
	})
	b.addParse(func(cur *valueCursor, bkt *zonedBucket) error {
		return parseZone(cur, bkt, provider)
	})
	return nil
}

// parseZone recognizes a zone at the cursor and stores it in the bucket.
// Two strategies, in order: a literal "UTC" prefix with an optional
// general-format offset, then a longest-match lookup in provider's sorted
// identifier table.
func parseZone(cur *valueCursor, bkt *zonedBucket, provider *zone.Provider) error {
	if cur.consume("UTC") {
		if off, ok := GeneralOffset().parseCursor(cur); ok {
			bkt.zone = zone.Fixed(off)
		} else {
			bkt.zone = zone.UTC()
		}
		return nil
	}

	id, ok := longestZoneID(cur, provider.IDs())
	if !ok {
		return fmt.Errorf("%w at index %v of %q", ErrNoMatchingZone, cur.pos, cur.text)
	}
	z, err := provider.Resolve(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	cur.advance(len(id))
	bkt.zone = z
	return nil
}

// longestZoneID finds the longest identifier in ids matching the text at the
// cursor. ids must be sorted by ordinal comparison. A binary search locates
// some matching identifier; because identifiers can be ordinal prefixes of
// later ones, the match is then extended by scanning forward until a
// candidate is shorter than the longest match so far or no longer carries it
// as a prefix, either of which rules out every later candidate. The cursor
// position is unchanged.
func longestZoneID(cur *valueCursor, ids []string) (string, bool) {
	guess := -1
	lo, hi := 0, len(ids)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := cur.compareOrdinal(ids[mid]); {
		case c == 0:
			guess = mid
			lo = hi // found; stop
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	if guess < 0 {
		return "", false
	}

	longest := ids[guess]
	for _, id := range ids[guess+1:] {
		if len(id) < len(longest) || !strings.HasPrefix(id, longest) {
			break
		}
		if cur.startsWith(id) {
			longest = id
		}
	}
	return longest, true
}

// abbreviationField compiles the zone abbreviation field. Formatting writes
// the abbreviation of the interval in force at the value's instant; parsing
// consumes an abbreviation for display symmetry but never resolves a zone
// from it, abbreviations being far from unique.
func abbreviationField(
	b *builder[zone.ZonedDateTime, *zonedBucket], _ *patternCursor,
) error {
	if err := b.useField(FieldZoneAbbreviation); err != nil {
		return err
	}
	b.addFormat(func(v zone.ZonedDateTime, sb *strings.Builder) {
		sb.WriteString(v.Zone.IntervalAt(v.Instant()).Abbreviation)
	})
	b.addParse(func(cur *valueCursor, _ *zonedBucket) error {
		n := 0
		for rest := cur.rest(); n < len(rest); n++ {
			ch := rest[n]
			if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' ||
				ch >= '0' && ch <= '9' || ch == '+' || ch == '-' {
				continue
			}
			break
		}
		if n == 0 {
			return mismatch(cur, "a zone abbreviation")
		}
		cur.advance(n)
		return nil
	})
	return nil
}

// offsetField compiles the embedded offset field, introduced as "o<g>" for
// the general offset sub-pattern.
func offsetField(b *builder[zone.ZonedDateTime, *zonedBucket], cur *patternCursor) error {
	opener, ok := cur.next()
	if !ok || opener != '<' {
		return fmt.Errorf("%w: %q requires an embedded pattern in %q", ErrPattern, 'o', b.text)
	}
	inner, err := cur.embedded('<', '>')
	if err != nil {
		return err
	}
	if inner != "g" {
		return fmt.Errorf("%w: unknown embedded offset pattern %q in %q", ErrPattern, inner, b.text)
	}
	if err := b.useField(FieldEmbeddedOffset); err != nil {
		return err
	}
	b.addFormat(func(v zone.ZonedDateTime, sb *strings.Builder) {
		formatOffset(v.Offset, sb)
	})
	b.addParse(func(cur *valueCursor, bkt *zonedBucket) error {
		off, ok := GeneralOffset().parseCursor(cur)
		if !ok {
			return mismatch(cur, "an offset")
		}
		bkt.offset = off
		return nil
	})
	return nil
}

// resolve combines the bucket into a zoned date-time. Without an explicit
// offset field the resolver policy arbitrates ambiguous or skipped local
// times. With one, the zone's full local mapping is consulted: a skipped
// local time can carry no valid offset, an ambiguous one is disambiguated by
// the parsed offset, and in every case the resolved offset must equal the
// parsed one exactly.
func (bkt *zonedBucket) resolve(
	used Fields, template zone.ZonedDateTime, policy zone.Resolver,
) (zone.ZonedDateTime, error) {
	ldt, err := bkt.local.localDateTime(used, template.Local)
	if err != nil {
		return zone.ZonedDateTime{}, err
	}

	z := template.Zone
	if used.Has(FieldZone) {
		z = bkt.zone
	}

	if !used.Has(FieldEmbeddedOffset) {
		zdt, err := z.ResolveLocal(ldt, policy)
		if err != nil {
			return zone.ZonedDateTime{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return zdt, nil
	}

	var zdt zone.ZonedDateTime
	mapping := z.MapLocal(ldt)
	switch mapping.Count() {
	case 0:
		return zone.ZonedDateTime{}, fmt.Errorf(
			"%w: %v never occurs in %v", ErrInvalidOffset, ldt, z.ID(),
		)
	case 1:
		zdt = mapping.Earlier()
	default:
		if mapping.Earlier().Offset == bkt.offset {
			zdt = mapping.Earlier()
		} else {
			zdt = mapping.Later()
		}
	}
	if zdt.Offset != bkt.offset {
		return zone.ZonedDateTime{}, fmt.Errorf(
			"%w: %v is not the offset of %v at %v", ErrInvalidOffset, bkt.offset, z.ID(), ldt,
		)
	}
	return zdt, nil
}
