package errors

import (
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: "VALIDATION_ERROR", Message: "Password is required", Status: 400}
	got := err.Error()
	want := "Password is required"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		fn         func() *APIError
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Validation",
			fn:         func() *APIError { return Validation("Password is required") },
			wantCode:   "VALIDATION_ERROR",
			wantStatus: 400,
			wantMsg:    "Password is required",
		},
		{
			name:       "Internal",
			fn:         func() *APIError { return Internal("Domain scan failed") },
			wantCode:   "INTERNAL_ERROR",
			wantStatus: 500,
			wantMsg:    "Domain scan failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn()
			if err.Code != tc.wantCode {
				t.Errorf("Code = %q, want %q", err.Code, tc.wantCode)
			}
			if err.Status != tc.wantStatus {
				t.Errorf("Status = %d, want %d", err.Status, tc.wantStatus)
			}
			if err.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tc.wantMsg)
			}
		})
	}
}
