package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is returned when the server reports a status value
	// the client does not know. It is treated as a terminal failure rather
	// than retried, since further polling cannot resolve it.
	ErrUnexpectedStatus = errors.New("unexpected status value")

	// ErrStillPending is returned by the wait helpers when the configured
	// attempt limit is reached while the job is still pending. It never
	// occurs with the default unlimited attempts.
	ErrStillPending = errors.New("job is still pending")
)

// APIError is a non-2xx response from the server, carrying the HTTP status
// code and the message from the JSON error envelope when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned HTTP %d: %s", e.StatusCode, e.Message)
}
