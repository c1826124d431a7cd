package errors

import (
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestAppErrorMessage(t *testing.T) {
	err := InvalidInput("op", nil, "test message")

	if err.Code != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, err.Code)
	}
	if err.Error() != "test message" {
		t.Errorf("expected error string 'test message', got '%s'", err.Error())
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("cause error")
	err := Internal("op", cause, "test message")

	expected := "test message: cause error"
	if err.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, err.Error())
	}
	if pkgerrors.Cause(err.Unwrap()) != cause {
		t.Error("expected cause to be preserved")
	}
}

func TestUpstreamDefaultsTo400(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"unspecified", 0, http.StatusBadRequest},
		{"success status", http.StatusOK, http.StatusBadRequest},
		{"passthrough 402", http.StatusPaymentRequired, http.StatusPaymentRequired},
		{"passthrough 503", http.StatusServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Upstream("op", tt.code, "unavailable", "")
			if err.Code != tt.expected {
				t.Errorf("expected code %d, got %d", tt.expected, err.Code)
			}
		})
	}
}

func TestFromWrapped(t *testing.T) {
	wrapped := pkgerrors.Wrap(NotFound("op", nil, "missing"), "lookup")

	appErr, ok := From(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Message != "missing" {
		t.Errorf("expected message 'missing', got '%s'", appErr.Message)
	}
	if !IsNotFound(wrapped) {
		t.Error("expected IsNotFound to be true")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unauthorized", Unauthorized("op", "no"), http.StatusUnauthorized},
		{"unreachable", Unreachable("op", fmt.Errorf("dial tcp")), http.StatusInternalServerError},
		{"plain error", fmt.Errorf("standard error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.expected {
				t.Errorf("StatusCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
