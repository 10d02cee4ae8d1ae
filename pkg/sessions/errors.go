package sessions

import (
	"errors"
	"fmt"
)

// ErrUnknownLocation means the spot name matched no Location row.
var ErrUnknownLocation = errors.New("unknown location")

// ErrUnknownUser means the username matched no LogUser row.
var ErrUnknownUser = errors.New("unknown user")

// ValidationError reports a missing or malformed observation field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid observation: %s %s", e.Field, e.Reason)
}

// StorageError wraps a persistence failure from the underlying database.
// The unit of work is fully rolled back before one of these is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
