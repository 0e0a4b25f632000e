package pattern

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// patternCursor is a forward-only scanner over pattern text. It understands
// the structural syntax shared by every pattern: backslash escapes, quoted
// literals, repeated field characters, and bracketed embedded sub-patterns.
type patternCursor struct {
	text string
	pos  int
}

func newPatternCursor(text string) *patternCursor {
	return &patternCursor{text: text}
}

// next returns the next rune of the pattern and advances past it. Returns
// false when the pattern is exhausted.
func (c *patternCursor) next() (rune, bool) {
	if c.pos >= len(c.text) {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(c.text[c.pos:])
	c.pos += w
	return r, true
}

// repeatCount consumes any remaining occurrences of ch, which the caller has
// already consumed once, and returns the total run length. Returns an error
// wrapping ErrPattern if the run exceeds max.
func (c *patternCursor) repeatCount(ch rune, max int) (int, error) {
	count := 1
	for c.pos < len(c.text) {
		r, w := utf8.DecodeRuneInString(c.text[c.pos:])
		if r != ch {
			break
		}
		count++
		c.pos += w
	}
	if count > max {
		return 0, fmt.Errorf(
			"%w: %q appears %v times in %q; at most %v allowed",
			ErrPattern, ch, count, c.text, max,
		)
	}
	return count, nil
}

// quoted consumes a quoted literal terminated by quote, the opener having
// already been consumed, decoding backslash escapes along the way. Returns
// an error wrapping ErrPattern for an unterminated literal or escape.
func (c *patternCursor) quoted(quote rune) (string, error) {
	str := new(strings.Builder)
	for {
		r, ok := c.next()
		if !ok {
			return "", fmt.Errorf("%w: unterminated %q literal in %q", ErrPattern, quote, c.text)
		}
		switch r {
		case quote:
			return str.String(), nil
		case '\\':
			esc, ok := c.next()
			if !ok {
				return "", fmt.Errorf("%w: trailing backslash in %q", ErrPattern, c.text)
			}
			str.WriteRune(esc)
		default:
			str.WriteRune(r)
		}
	}
}

// embedded consumes a bracketed sub-pattern terminated by close, the opener
// having already been consumed, and returns the raw text between the
// brackets. Nested brackets are kept intact. Returns an error wrapping
// ErrPattern for an unterminated sub-pattern.
func (c *patternCursor) embedded(opener, closer rune) (string, error) {
	start, depth := c.pos, 1
	for {
		r, ok := c.next()
		if !ok {
			return "", fmt.Errorf(
				"%w: unterminated embedded pattern in %q", ErrPattern, c.text,
			)
		}
		switch r {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return c.text[start : c.pos-utf8.RuneLen(closer)], nil
			}
		}
	}
}

// valueCursor is a forward-only scanner over the text being parsed. Position
// only moves when a caller explicitly consumes text, so speculative matches
// roll back by simply not consuming.
type valueCursor struct {
	text string
	pos  int
}

func newValueCursor(text string) *valueCursor {
	return &valueCursor{text: text}
}

// atEnd returns true when the cursor has consumed all of its text.
func (c *valueCursor) atEnd() bool { return c.pos >= len(c.text) }

// rest returns the unconsumed remainder of the text.
func (c *valueCursor) rest() string { return c.text[c.pos:] }

// compareOrdinal compares the text at the current position against candidate
// by raw code units. The result is negative if the text orders before
// candidate, positive if after, and zero exactly when the whole of candidate
// appears at the current position; text that runs out before candidate
// orders before it. Position is unchanged.
func (c *valueCursor) compareOrdinal(candidate string) int {
	rest := c.rest()
	n := min(len(rest), len(candidate))
	if r := strings.Compare(rest[:n], candidate[:n]); r != 0 {
		return r
	}
	if len(rest) < len(candidate) {
		return -1
	}
	return 0
}

// startsWith returns true if the whole of candidate appears at the current
// position. Position is unchanged.
func (c *valueCursor) startsWith(candidate string) bool {
	return strings.HasPrefix(c.rest(), candidate)
}

// consume advances past s if the whole of s appears at the current position,
// returning false and leaving the position unchanged otherwise.
func (c *valueCursor) consume(s string) bool {
	if !c.startsWith(s) {
		return false
	}
	c.pos += len(s)
	return true
}

// advance moves the cursor forward n bytes.
func (c *valueCursor) advance(n int) { c.pos += n }

// digits consumes between minDigits and maxDigits ASCII digits and returns
// their value. Returns false and leaves the position unchanged if fewer than
// minDigits digits are present.
func (c *valueCursor) digits(minDigits, maxDigits int) (int, bool) {
	value, count := 0, 0
	for c.pos+count < len(c.text) && count < maxDigits {
		d := c.text[c.pos+count]
		if d < '0' || d > '9' {
			break
		}
		value = value*10 + int(d-'0')
		count++
	}
	if count < minDigits {
		return 0, false
	}
	c.pos += count
	return value, true
}

// fraction consumes exactly digits ASCII digits and returns their value
// scaled to nanoseconds. Returns false and leaves the position unchanged on
// too few digits.
func (c *valueCursor) fraction(digits int) (int, bool) {
	v, ok := c.digits(digits, digits)
	if !ok {
		return 0, false
	}
	for i := digits; i < 9; i++ {
		v *= 10
	}
	return v, true
}
