package errs

import (
	"errors"
	"fmt"
)

// ErrAlreadyCheckedIn is the sentinel error for a check-in into the department
// that already holds the item.
var ErrAlreadyCheckedIn = errors.New("already checked in")

// AlreadyCheckedInError reports the department that currently holds the item.
type AlreadyCheckedInError struct {
	Department string
}

// NewAlreadyCheckedInError creates an AlreadyCheckedInError for the holding department.
func NewAlreadyCheckedInError(department string) *AlreadyCheckedInError {
	return &AlreadyCheckedInError{Department: department}
}

func (e *AlreadyCheckedInError) Error() string {
	return sanitize(fmt.Sprintf("%s: item is already checked in at department %s",
		ErrAlreadyCheckedIn, e.Department))
}

func (e *AlreadyCheckedInError) Unwrap() error {
	return ErrAlreadyCheckedIn
}
