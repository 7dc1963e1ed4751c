package errs

import (
	"errors"
	"fmt"
)

// ErrOwnershipConflict is the sentinel error for operations attempted by a
// department that does not hold the item.
var ErrOwnershipConflict = errors.New("ownership conflict")

// OwnershipConflictError reports the department expected to perform the
// operation alongside the one that actually attempted it.
type OwnershipConflictError struct {
	ExpectedDepartment string
	ActualDepartment   string
	Cause              error
}

// NewOwnershipConflictError creates an OwnershipConflictError naming the
// expected and the requesting department.
func NewOwnershipConflictError(expected, actual string) *OwnershipConflictError {
	return &OwnershipConflictError{
		ExpectedDepartment: expected,
		ActualDepartment:   actual,
	}
}

func (e *OwnershipConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: expected department %s, got %s (cause: %s)",
			ErrOwnershipConflict, e.ExpectedDepartment, e.ActualDepartment, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: expected department %s, got %s",
		ErrOwnershipConflict, e.ExpectedDepartment, e.ActualDepartment))
}

func (e *OwnershipConflictError) Unwrap() error {
	return ErrOwnershipConflict
}
