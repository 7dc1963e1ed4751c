package errs_test

import (
	"errors"
	"testing"

	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("itemId", "123")

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("itemId", "123", cause)

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: itemId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("errors.Is matches sentinel", func(t *testing.T) {
		var err error = errs.NewObjectNotFoundError("scanToken", "abc")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestUnauthorizedError(t *testing.T) {
	t.Run("NewUnauthorizedError", func(t *testing.T) {
		err := errs.NewUnauthorizedError("user-1")

		assert.Equal(t, "user-1", err.UserID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "unauthorized: invalid credentials for user user-1", err.Error())
		assert.Equal(t, errs.ErrUnauthorized, err.Unwrap())
	})

	t.Run("NewUnauthorizedErrorWithCause", func(t *testing.T) {
		cause := errors.New("hash mismatch")
		err := errs.NewUnauthorizedErrorWithCause("user-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"unauthorized: invalid credentials for user user-1 (cause: hash mismatch)",
			err.Error())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("NewInvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("Pending", "Shipped")

		assert.Equal(t, "Pending", err.From)
		assert.Equal(t, "Shipped", err.To)
		assert.Equal(t, "invalid transition: Pending -> Shipped", err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})

	t.Run("NewInvalidTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("no outbound edges")
		err := errs.NewInvalidTransitionErrorWithCause("delivered", "shipped", cause)

		assert.Equal(t,
			"invalid transition: delivered -> shipped (cause: no outbound edges)",
			err.Error())
	})
}

func TestOwnershipConflictError(t *testing.T) {
	err := errs.NewOwnershipConflictError("embroidery", "stitching")

	assert.Equal(t, "embroidery", err.ExpectedDepartment)
	assert.Equal(t, "stitching", err.ActualDepartment)
	assert.Equal(t, "ownership conflict: expected department embroidery, got stitching", err.Error())
	assert.Equal(t, errs.ErrOwnershipConflict, err.Unwrap())
}

func TestAlreadyCheckedInError(t *testing.T) {
	err := errs.NewAlreadyCheckedInError("cutting")

	assert.Equal(t, "cutting", err.Department)
	assert.Equal(t, "already checked in: item is already checked in at department cutting", err.Error())
	assert.Equal(t, errs.ErrAlreadyCheckedIn, err.Unwrap())
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("externalItemId", "ORD-1/ITEM-2")

		assert.Equal(t, "externalItemId", err.ParamName)
		assert.Equal(t, "conflict: externalItemId already exists with value ORD-1/ITEM-2", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("unique constraint violated")
		err := errs.NewConflictErrorWithCause("scanToken", "tok", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"conflict: scanToken already exists with value tok (cause: unique constraint violated)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: invalid format)", err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("hello\nworld")
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("scanToken")

		assert.Equal(t, "scanToken", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: scanToken", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("scanToken", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: scanToken (cause: missing required field)", err.Error())
	})
}
