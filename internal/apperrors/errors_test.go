package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrapsToSentinels(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("bad label"), ErrValidation)
	assert.ErrorIs(t, NewNotFoundError("missing"), ErrNotFound)
	assert.ErrorIs(t, NewConflictError("dup"), ErrDuplicate)
	assert.ErrorIs(t, NewForbiddenError("cap"), ErrForbidden)

	cause := errors.New("connection reset")
	err := NewPersistenceError("failed to save snapshot", cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save snapshot")
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(fmt.Errorf("wrapped: %w", ErrValidation)))
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("x")))
	assert.Equal(t, http.StatusConflict, StatusCode(NewConflictError("x")))
	assert.Equal(t, http.StatusForbidden, StatusCode(NewForbiddenError("x")))
	assert.Equal(t, http.StatusTeapot, StatusCode(NewAppError(http.StatusTeapot, "x", nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
