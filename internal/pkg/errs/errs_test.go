package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipment", "s1")

		assert.Equal(t, "shipment", err.ParamName)
		assert.Equal(t, "s1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: s1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("registry closed")
		err := errs.NewObjectNotFoundErrorWithCause("shipment", "s1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipment, ID is: s1 (cause: registry closed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipment", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	t.Run("NewObjectAlreadyExistsError", func(t *testing.T) {
		err := errs.NewObjectAlreadyExistsError("shipment", "s1")

		assert.Equal(t, "shipment", err.ParamName)
		assert.Equal(t, "s1", err.ID)
		assert.Equal(t, "object already exists: s1", err.Error())
		assert.Equal(t, errs.ErrObjectAlreadyExists, err.Unwrap())
	})

	t.Run("NewObjectAlreadyExistsErrorWithCause", func(t *testing.T) {
		cause := errors.New("lost creation race")
		err := errs.NewObjectAlreadyExistsErrorWithCause("shipment", "s1", cause)

		assert.Equal(t,
			"object already exists: param is: shipment, ID is: s1 (cause: lost creation race)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("variant")

		assert.Equal(t, "variant", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: variant", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("not an integer")
		err := errs.NewValueIsInvalidErrorWithCause("timestamp", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: timestamp (cause: not an integer)", err.Error())
	})

	t.Run("sanitize param with newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("hello\nworld")
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("id")

		assert.Equal(t, "id", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: id", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank identifier")
		err := errs.NewValueIsRequiredErrorWithCause("id", cause)

		assert.Equal(t, "value is required: id (cause: blank identifier)", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "object already exists", errs.ErrObjectAlreadyExists.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	wrapped := fmt.Errorf("create shipment: %w", errs.NewObjectAlreadyExistsError("shipment", "s1"))
	require.ErrorIs(t, wrapped, errs.ErrObjectAlreadyExists)

	var target *errs.ObjectAlreadyExistsError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "s1", target.ID)

	require.ErrorIs(t, errs.NewObjectNotFoundError("shipment", "s1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("kind"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsRequiredError("id"), errs.ErrValueIsRequired)
}

func TestErrorsMatchTheirCause(t *testing.T) {
	errMalformed := errors.New("malformed")
	err := errs.NewValueIsInvalidErrorWithCause("record", fmt.Errorf("%w: missing fields", errMalformed))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errMalformed)
	assert.NotErrorIs(t, errs.NewValueIsInvalidError("record"), errMalformed)
}
