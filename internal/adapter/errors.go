package adapter

import (
	"errors"
	"fmt"
)

// Status sentinels matched by [TransportError] through errors.Is.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnavailable         = errors.New("service unavailable")

	// ErrUnexpectedStatus is matched by non-2xx statuses without a
	// dedicated sentinel.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrNetwork is matched by failures that produced no response:
	// connection errors, timeouts and cancellation.
	ErrNetwork = errors.New("network error")
)

// TransportError describes a failed call. It is always returned to the
// caller, never swallowed.
type TransportError struct {
	// StatusCode is 0 when no response was received.
	StatusCode int
	// Detail is the human readable reason: the backend's "detail" field,
	// the trimmed body, or the status text.
	Detail string
	// Payload is the raw response body.
	Payload []byte
	Method  string
	URL     string
	Err     error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.URL, e.StatusCode, e.Detail)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
