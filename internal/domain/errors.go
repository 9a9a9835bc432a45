package domain

import "fmt"

// ValidationError reports malformed or unrecognized input to the data model:
// a bad role flag, a missing required field, a nickname collision, an
// unrecognized place type. The offending record is never partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: field %q: %s", e.Field, e.Reason)
}

// IncompleteDataError reports a derived view requested before the required
// geodata exists (e.g. coordinates of an ungeocoded place).
type IncompleteDataError struct {
	Nickname string
	Reason   string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("incomplete data for place %q: %s", e.Nickname, e.Reason)
}
