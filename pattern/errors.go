package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrPattern errors denote malformed pattern text, detected once at
	// compile time.
	ErrPattern = errors.New("pattern")

	// ErrParse errors denote text that does not produce a value under a
	// compiled pattern.
	ErrParse = errors.New("parse")

	// ErrInvalidOffset errors denote an explicitly parsed offset that is
	// inconsistent with the zone's rules at the parsed local time.
	ErrInvalidOffset = fmt.Errorf("%w: invalid offset", ErrParse)

	// ErrNoMatchingZone errors denote input that matches no zone identifier.
	ErrNoMatchingZone = fmt.Errorf("%w: no matching zone id", ErrParse)
)

// mismatch constructs an ErrParse error reporting that the text at the
// cursor does not match expected.
func mismatch(cur *valueCursor, expected string) error {
	if cur.atEnd() {
		return fmt.Errorf(
			"%w: %q ends where %v was expected", ErrParse, cur.text, expected,
		)
	}
	return fmt.Errorf(
		"%w: expected %v at index %v of %q", ErrParse, expected, cur.pos, cur.text,
	)
}
