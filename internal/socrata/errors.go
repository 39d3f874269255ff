package socrata

import (
	"errors"
	"fmt"
)

// Fetch errors.
var (
	ErrRequest          = errors.New("upstream request failed")
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrDecode           = errors.New("decoding upstream response")
	ErrInvalidBaseURL   = errors.New("invalid base URL")
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 2048

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d from %s", ErrUnexpectedStatus, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("%s: %d from %s: %s", ErrUnexpectedStatus, e.StatusCode, e.URL, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
