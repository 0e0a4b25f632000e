// Package pattern compiles date/time patterns into reusable parsers and
// formatters.
//
// A pattern is a mini-language of field characters ("yyyy", "HH", "z"),
// literals, quoted text, and embedded sub-patterns. Compiling one walks the
// pattern text once, dispatching each recognized character to a handler that
// appends format and parse steps and registers the fields it touches; the
// result is an immutable step list safe for concurrent reuse. Parsing runs
// the parse steps over a cursor into the input text, accumulating partial
// results in a per-call bucket that combines into the final value — for
// zone-aware patterns, by resolving the parsed local time against a zone's
// offset history.
package pattern

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps" // Switch to maps when go 1.22 dropped
)

// handlerMap maps pattern field characters to the handlers that compile
// them. V is the value type the compiled pattern formats and parses; B is
// the bucket type its parse steps accumulate into.
type handlerMap[V, B any] map[rune]func(*builder[V, B], *patternCursor) error

// builder accumulates the compiled steps of a single pattern. It is used
// once, by one goroutine, and discarded after build.
type builder[V, B any] struct {
	text    string
	used    Fields
	formats []func(V, *strings.Builder)
	parses  []func(*valueCursor, B) error
}

// compile scans the pattern text, dispatching field characters to handlers.
// Escapes and quoted literals are structural and handled here rather than by
// the handler table; unrecognized letters are pattern errors, and any other
// unrecognized character is a literal to match verbatim.
func (b *builder[V, B]) compile(handlers handlerMap[V, B]) error {
	if b.text == "" {
		return fmt.Errorf("%w: empty pattern text", ErrPattern)
	}

	cur := newPatternCursor(b.text)
	for {
		ch, ok := cur.next()
		if !ok {
			break
		}
		switch ch {
		case '\\':
			esc, ok := cur.next()
			if !ok {
				return fmt.Errorf("%w: trailing backslash in %q", ErrPattern, b.text)
			}
			b.literal(string(esc))
		case '\'', '"':
			lit, err := cur.quoted(ch)
			if err != nil {
				return err
			}
			b.literal(lit)
		default:
			handle, ok := handlers[ch]
			if !ok {
				if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
					known := maps.Keys(handlers)
					slices.Sort(known)
					return fmt.Errorf(
						"%w: unknown field character %q in %q; expected one of %q",
						ErrPattern, ch, b.text, string(known),
					)
				}
				b.literal(string(ch))
				continue
			}
			if err := handle(b, cur); err != nil {
				return err
			}
		}
	}

	return b.used.validate()
}

// useField records that the pattern uses fields. Using a field twice is a
// pattern error.
func (b *builder[V, B]) useField(fields Fields) error {
	if b.used&fields != 0 {
		return fmt.Errorf("%w: field used twice in %q", ErrPattern, b.text)
	}
	b.used |= fields
	return nil
}

// addFormat appends a format step.
func (b *builder[V, B]) addFormat(step func(V, *strings.Builder)) {
	b.formats = append(b.formats, step)
}

// addParse appends a parse step.
func (b *builder[V, B]) addParse(step func(*valueCursor, B) error) {
	b.parses = append(b.parses, step)
}

// literal appends steps that write and match text verbatim.
func (b *builder[V, B]) literal(text string) {
	b.addFormat(func(_ V, sb *strings.Builder) { sb.WriteString(text) })
	b.addParse(func(cur *valueCursor, _ B) error {
		if !cur.consume(text) {
			return mismatch(cur, strconv.Quote(text))
		}
		return nil
	})
}

// build fixes the compiled steps into an immutable Compiled. newBucket
// allocates the accumulator for one parse; combine turns a fully-populated
// bucket into the final value.
func (b *builder[V, B]) build(newBucket func() B, combine func(B) (V, error)) *Compiled[V, B] {
	return &Compiled[V, B]{
		text:      b.text,
		used:      b.used,
		formats:   b.formats,
		parses:    b.parses,
		newBucket: newBucket,
		combine:   combine,
	}
}

// Compiled is a compiled pattern: an ordered step list plus the fields it
// uses. It is immutable and safe for concurrent use.
type Compiled[V, B any] struct {
	text      string
	used      Fields
	formats   []func(V, *strings.Builder)
	parses    []func(*valueCursor, B) error
	newBucket func() B
	combine   func(B) (V, error)
}

// Text returns the pattern text the pattern was compiled from.
func (c *Compiled[V, B]) Text() string { return c.text }

// Used returns the set of fields the pattern uses.
func (c *Compiled[V, B]) Used() Fields { return c.used }

// Format renders value as text by executing the pattern's format steps.
func (c *Compiled[V, B]) Format(value V) string {
	sb := new(strings.Builder)
	for _, step := range c.formats {
		step(value, sb)
	}
	return sb.String()
}

// Parse parses text by executing the pattern's parse steps against a fresh
// bucket and cursor, then combining the bucket into a value. All errors wrap
// ErrParse.
func (c *Compiled[V, B]) Parse(text string) (V, error) {
	var zero V
	bucket := c.newBucket()
	cur := newValueCursor(text)
	for _, step := range c.parses {
		if err := step(cur, bucket); err != nil {
			return zero, err
		}
	}
	if !cur.atEnd() {
		return zero, fmt.Errorf(
			"%w: unexpected trailing text %q in %q", ErrParse, cur.rest(), text,
		)
	}
	return c.combine(bucket)
}

// number compiles a zero-padded numeric field into b. count is the run
// length of the field character: one parses a variable one-or-two digit
// number, larger counts parse and format exactly count digits. Values
// outside [min, max] are parse errors. get extracts the field from a value
// for formatting; set stores a parsed field in the bucket.
func number[V, B any](
	b *builder[V, B], field Fields, name string,
	count, min, max int,
	get func(V) int, set func(B, int),
) error {
	if err := b.useField(field); err != nil {
		return err
	}

	b.addFormat(func(v V, sb *strings.Builder) {
		n := get(v)
		sign := ""
		if n < 0 {
			sign, n = "-", -n
		}
		fmt.Fprintf(sb, "%s%0*d", sign, count, n)
	})

	minDigits, maxDigits := count, count
	if count == 1 {
		maxDigits = 2
	}
	b.addParse(func(cur *valueCursor, bucket B) error {
		negative := min < 0 && cur.consume("-")
		v, ok := cur.digits(minDigits, maxDigits)
		if !ok {
			return mismatch(cur, name)
		}
		if negative {
			v = -v
		}
		if v < min || v > max {
			return fmt.Errorf(
				"%w: %v %v outside %v..%v in %q", ErrParse, name, v, min, max, cur.text,
			)
		}
		set(bucket, v)
		return nil
	})
	return nil
}
