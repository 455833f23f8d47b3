package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	plain := NewAppError(ErrInvalidInput, "bad request", nil)
	assert.Equal(t, "bad request", plain.Error())

	wrapped := NewAppError(ErrDatabase, "insert failed", errors.New("connection reset"))
	assert.Equal(t, "insert failed: connection reset", wrapped.Error())
}

func TestIsErrorCode(t *testing.T) {
	err := NewFreetNotFoundError("abc123")
	assert.True(t, IsErrorCode(err, ErrFreetNotFound))
	assert.False(t, IsErrorCode(err, ErrUserNotFound))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrFreetNotFound))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(NewUnauthorizedError("no token")))
	assert.True(t, IsAuthError(NewForbiddenError("not the author")))
	assert.False(t, IsAuthError(NewUserNotFoundError("alice")))
	assert.False(t, IsAuthError(errors.New("plain")))
}

func TestAppErrorToHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrNotFound:           http.StatusNotFound,
		ErrFreetNotFound:      http.StatusNotFound,
		ErrTimelimitNotFound:  http.StatusNotFound,
		ErrInvalidInput:       http.StatusBadRequest,
		ErrContentTooLong:     http.StatusRequestEntityTooLarge,
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrInvalidCredentials: http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrUserAlreadyExists:  http.StatusConflict,
		ErrDatabase:           http.StatusInternalServerError,
		"SOMETHING_ELSE":      http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, AppErrorToHTTPStatus(code), code)
	}
}
