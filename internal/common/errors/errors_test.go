package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnsupportedRegion, http.StatusBadRequest},
		{ErrCodeEphemerisUnavailable, http.StatusUnprocessableEntity},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeGenerationTimeout, http.StatusInternalServerError},
		{ErrCodeGenerationFailed, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatus(tt.code), string(tt.code))
	}
}

func TestRetryability(t *testing.T) {
	assert.False(t, NewInvalidInputError("x").Retryable)
	assert.False(t, NewUnsupportedRegionError("x").Retryable)
	assert.False(t, NewEphemerisUnavailableError(errors.New("x")).Retryable)
	assert.False(t, NewUnauthorizedError().Retryable)
	assert.True(t, NewGenerationTimeoutError().Retryable)
	assert.True(t, NewGenerationFailedError(errors.New("x")).Retryable)
	assert.True(t, NewRateLimitedError().Retryable)
	assert.True(t, NewInternalError(errors.New("x")).Retryable)
}

func TestAsStandard(t *testing.T) {
	orig := NewUnsupportedRegionError("Atlantis")
	wrapped := fmt.Errorf("resolving: %w", orig)

	got := AsStandard(wrapped)
	assert.Equal(t, ErrCodeUnsupportedRegion, got.Code)

	plain := AsStandard(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}

func TestIsCode(t *testing.T) {
	err := NewRateLimitedError()
	assert.True(t, IsCode(err, ErrCodeRateLimited))
	assert.False(t, IsCode(err, ErrCodeInternal))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeInternal))
}

func TestMessagesAreJapanese(t *testing.T) {
	for _, err := range []*StandardError{
		NewInvalidInputError(""),
		NewUnsupportedRegionError(""),
		NewEphemerisUnavailableError(errors.New("x")),
		NewGenerationTimeoutError(),
		NewGenerationFailedError(errors.New("x")),
		NewUnauthorizedError(),
		NewRateLimitedError(),
		NewInternalError(errors.New("x")),
	} {
		assert.NotEmpty(t, err.Message)
		assert.False(t, err.Timestamp.IsZero())
	}
}
