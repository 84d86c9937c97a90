// Package errors provides standardized error handling for the diagnosis API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeUnsupportedRegion    ErrorCode = "UNSUPPORTED_REGION"
	ErrCodeEphemerisUnavailable ErrorCode = "EPHEMERIS_UNAVAILABLE"
	ErrCodeGenerationTimeout    ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidInputError creates a non-retryable input validation error.
// The caller can recover by resubmitting corrected input.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "出生データの形式が正しくありません",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedRegionError creates a non-retryable region lookup error.
func NewUnsupportedRegionError(region string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedRegion,
		Message:   "無効な都道府県です",
		Details:   fmt.Sprintf("region: %s", region),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEphemerisUnavailableError creates a non-retryable position computation error.
// Retrying with identical input cannot succeed.
func NewEphemerisUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEphemerisUnavailable,
		Message:   "天体位置の計算に失敗しました",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationTimeoutError creates a generation timeout error. Callers are
// expected to absorb this class and fall back to the deterministic renderer.
func NewGenerationTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTimeout,
		Message:   "鑑定文の生成がタイムアウトしました",
		Details:   "generation call exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError creates a generation service error. Absorbed the
// same way as timeouts.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "鑑定文の生成に失敗しました",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedError creates a beta-key authentication error.
func NewUnauthorizedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "ベータ版アクセスキーが必要です。お問い合わせください。",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a rate limit error.
func NewRateLimitedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "リクエストが多すぎます。しばらく時間をおいてから再試行してください。",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "システムエラーが発生しました。管理者にお問い合わせください。",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard extracts a *StandardError from an error chain, wrapping unknown
// errors as internal errors so handlers always have a code to report.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to the HTTP status used by the API layer.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeUnsupportedRegion:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeEphemerisUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}
