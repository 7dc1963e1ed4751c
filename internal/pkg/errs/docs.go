// Package errs provides standardized error types for the tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when an item, department, user, or scan token cannot be resolved
//   - UnauthorizedError: For when an actor's password verification fails
//   - InvalidTransitionError: For lifecycle or sub-status transition graph violations
//   - OwnershipConflictError: For when a department operates on an item it does not hold
//   - AlreadyCheckedInError: For repeated check-ins into the holding department
//   - ConflictError: For uniqueness violations such as duplicate external id pairs
//   - ValueIsInvalidError / ValueIsRequiredError: For malformed or missing input
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
