package client

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned by New when no API token is configured.
var ErrMissingToken = errors.New("api token is required")

// ErrorClass represents a classification of upstream errors, used as the
// label on the errors metric.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError is a non-success response from the on-call API, carrying the
// upstream status and body. Any APIError aborts the whole run: a summary is
// never produced from an incompletely fetched range.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oncall API %s error on %s: %v",
			e.Class(), e.Endpoint, e.Err)
	}
	return fmt.Sprintf("oncall API %s error on %s (status %d): %s",
		e.Class(), e.Endpoint, e.StatusCode, e.Body)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Class categorizes the error for observability. A zero status code means
// the request never produced a response.
func (e *APIError) Class() ErrorClass {
	switch {
	case e.StatusCode == 0:
		return ErrorClassNetwork
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrorClassClient
	default:
		return ErrorClassServer
	}
}
