package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Internal("Failed to reach database", cause)

	if !errors.Is(appErr, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", appErr.StatusCode())
	}
}

func TestAsAppErrorPassThrough(t *testing.T) {
	original := Forbidden("You cannot edit this booking")
	converted := AsAppError(original)

	if converted != original {
		t.Error("expected AsAppError to return the same AppError instance")
	}
	if converted.Code != CodeForbidden {
		t.Errorf("expected code %s, got %s", CodeForbidden, converted.Code)
	}
}

func TestAsAppErrorMasksUnknown(t *testing.T) {
	converted := AsAppError(errors.New("some driver detail"))

	if converted.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, converted.Code)
	}
	if converted.Message == "some driver detail" {
		t.Error("unknown error detail must not leak into the message")
	}
}

func TestSentinelConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("invalid booking", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"conflict", Conflict("venue already booked"), CodeConflict, http.StatusConflict},
		{"forbidden", Forbidden("no"), CodeForbidden, http.StatusForbidden},
		{"timeout", Timeout("too slow"), CodeTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}
