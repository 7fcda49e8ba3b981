package client

import (
	"errors"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name: "server error with body",
			apiError: &APIError{
				StatusCode: 500,
				Endpoint:   "/oncalls",
				Body:       "internal server error",
			},
			expected: "oncall API server error on /oncalls (status 500): internal server error",
		},
		{
			name: "client error with body",
			apiError: &APIError{
				StatusCode: 404,
				Endpoint:   "/escalation_policies",
				Body:       "not found",
			},
			expected: "oncall API client error on /escalation_policies (status 404): not found",
		},
		{
			name: "network error with wrapped error",
			apiError: &APIError{
				Endpoint: "/oncalls",
				Err:      errors.New("connection refused"),
			},
			expected: "oncall API network error on /oncalls: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.apiError.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAPIError_Class(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   ErrorClass
	}{
		{name: "zero status is network", statusCode: 0, expected: ErrorClassNetwork},
		{name: "400 is client", statusCode: 400, expected: ErrorClassClient},
		{name: "403 is client", statusCode: 403, expected: ErrorClassClient},
		{name: "429 is client", statusCode: 429, expected: ErrorClassClient},
		{name: "500 is server", statusCode: 500, expected: ErrorClassServer},
		{name: "503 is server", statusCode: 503, expected: ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &APIError{StatusCode: tt.statusCode}
			if got := e.Class(); got != tt.expected {
				t.Errorf("Class() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	apiError := &APIError{
		Endpoint: "/oncalls",
		Err:      wrappedErr,
	}

	if apiError.Unwrap() != wrappedErr {
		t.Errorf("Unwrap() = %v, want %v", apiError.Unwrap(), wrappedErr)
	}

	if !errors.Is(apiError, wrappedErr) {
		t.Error("errors.Is should work with wrapped error")
	}
}

func TestAPIError_UnwrapNil(t *testing.T) {
	apiError := &APIError{
		StatusCode: 404,
		Endpoint:   "/oncalls",
		Body:       "not found",
	}

	if apiError.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", apiError.Unwrap())
	}
}
