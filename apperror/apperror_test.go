package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("bad input", nil), http.StatusBadRequest},
		{"duplicate", NewDuplicateError("username already exists", nil), http.StatusBadRequest},
		{"authentication", NewAuthenticationError("invalid token", nil), http.StatusUnauthorized},
		{"not found", NewNotFoundError("user not found", nil), http.StatusNotFound},
		{"database", NewDatabaseError("query failed", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "???", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestErrorMessageHidesUnderlying(t *testing.T) {
	t.Parallel()

	underlying := errors.New("pq: connection refused")
	appErr := NewDatabaseError("failed to create user", underlying)

	// The full error string keeps the cause for logs.
	assert.Contains(t, appErr.Error(), "connection refused")
	// The API response does not.
	assert.Equal(t, ErrorResponse{Error: "failed to create user"}, appErr.ToResponse())
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("root cause")
	appErr := NewInternalError("wrapped", underlying)
	assert.True(t, errors.Is(appErr, underlying))
}

func TestFromError(t *testing.T) {
	t.Parallel()

	appErr := NewValidationError("too short", nil)
	got, ok := FromError(appErr)
	require.True(t, ok)
	assert.Same(t, appErr, got)

	// Wrapped AppErrors are still recognized.
	wrapped := fmt.Errorf("context: %w", appErr)
	got, ok = FromError(wrapped)
	require.True(t, ok)
	assert.Same(t, appErr, got)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestTypePredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidation(NewValidationError("v", nil)))
	assert.True(t, IsDuplicate(NewDuplicateError("d", nil)))
	assert.True(t, IsAuthentication(NewAuthenticationError("a", nil)))
	assert.True(t, IsNotFound(NewNotFoundError("n", nil)))
	assert.False(t, IsNotFound(NewValidationError("v", nil)))
}
