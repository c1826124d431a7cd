package errors

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// AppError is the error shape every layer hands back to the HTTP boundary.
// Message and ErrorCode are client-visible; Op and Err are for logs only.
type AppError struct {
	Code      int    `json:"-"`
	Message   string `json:"error"`
	ErrorCode string `json:"error_code,omitempty"`
	Op        string `json:"-"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// E builds an AppError with an explicit status.
func E(op string, err error, message string, code int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func Unauthorized(op string, message string) *AppError {
	return E(op, nil, message, http.StatusUnauthorized)
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadRequest)
}

func NotFound(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusNotFound)
}

func Internal(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusInternalServerError)
}

// Upstream reports a failure the orchestrator explicitly returned. A zero or
// out of range status becomes 400.
func Upstream(op string, code int, message, errorCode string) *AppError {
	if code < 400 || code > 599 {
		code = http.StatusBadRequest
	}
	return &AppError{
		Code:      code,
		Message:   message,
		ErrorCode: errorCode,
		Op:        op,
	}
}

// Unreachable hides transport details behind a generic 500.
func Unreachable(op string, err error) *AppError {
	return E(op, err, "Filtering service unavailable", http.StatusInternalServerError)
}

// From extracts an AppError anywhere in err's chain.
func From(err error) (*AppError, bool) {
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func StatusCode(err error) int {
	if appErr, ok := From(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
