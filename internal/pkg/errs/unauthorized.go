package errs

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is the sentinel error for failed actor authentication.
var ErrUnauthorized = errors.New("unauthorized")

// UnauthorizedError indicates that a user's password verification failed.
// It never carries the supplied password.
type UnauthorizedError struct {
	UserID string
	Cause  error
}

// NewUnauthorizedError creates an UnauthorizedError for the given user.
func NewUnauthorizedError(userID string) *UnauthorizedError {
	return &UnauthorizedError{UserID: userID}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping the
// underlying verification failure.
func NewUnauthorizedErrorWithCause(userID string, cause error) *UnauthorizedError {
	return &UnauthorizedError{UserID: userID, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: invalid credentials for user %s (cause: %s)",
			ErrUnauthorized, e.UserID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: invalid credentials for user %s", ErrUnauthorized, e.UserID))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}
