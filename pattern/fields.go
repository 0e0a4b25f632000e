package pattern

import "fmt"

// Fields is a bitset of the field categories a compiled pattern uses. The
// builder records each field as its handler runs and validates the set once
// compilation finishes, so conflicting or duplicated fields are pattern
// errors, never parse errors.
type Fields uint32

const (
	// FieldYear denotes a year field.
	FieldYear Fields = 1 << iota
	// FieldMonth denotes a month-of-year field.
	FieldMonth
	// FieldDay denotes a day-of-month field.
	FieldDay
	// FieldHours12 denotes a 12-hour clock field.
	FieldHours12
	// FieldHours24 denotes a 24-hour clock field.
	FieldHours24
	// FieldAMPM denotes an AM/PM designator field.
	FieldAMPM
	// FieldMinutes denotes a minute-of-hour field.
	FieldMinutes
	// FieldSeconds denotes a second-of-minute field.
	FieldSeconds
	// FieldFractionalSeconds denotes a sub-second field.
	FieldFractionalSeconds
	// FieldZone denotes a zone identifier field.
	FieldZone
	// FieldZoneAbbreviation denotes a zone abbreviation field.
	FieldZoneAbbreviation
	// FieldEmbeddedOffset denotes an embedded offset sub-pattern field.
	FieldEmbeddedOffset
)

// Has returns true if every field in fields is present in f.
func (f Fields) Has(fields Fields) bool { return f&fields == fields }

// validate checks the combined field usage of a compiled pattern. Mutually
// exclusive fields and missing companion fields are pattern errors.
func (f Fields) validate() error {
	if f.Has(FieldHours12) && f.Has(FieldHours24) {
		return fmt.Errorf("%w: 12-hour and 24-hour fields are mutually exclusive", ErrPattern)
	}
	if f.Has(FieldHours12) && !f.Has(FieldAMPM) {
		return fmt.Errorf("%w: 12-hour field requires an AM/PM designator", ErrPattern)
	}
	if f.Has(FieldAMPM) && !f.Has(FieldHours12) {
		return fmt.Errorf("%w: AM/PM designator requires a 12-hour field", ErrPattern)
	}
	return nil
}
