package history

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when no input files or records were found.
var ErrNoInput = errors.New("no listening history found")

// MissingFieldError reports a record without one of the mandatory fields.
type MissingFieldError struct {
	Field  string
	Record int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d is missing required field %q", e.Record, e.Field)
}
