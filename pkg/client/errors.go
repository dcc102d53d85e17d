package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	Type       string
	RequestID  string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps a failure to complete the round trip: DNS, dial,
// TLS, timeout or context cancellation.
type TransportError struct {
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("do request: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a response body that could not be decoded.
type DecodeError struct {
	RequestID string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsTransport returns true if err (or any wrapped error) is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecode returns true if err (or any wrapped error) is a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Kind names the failure class of err: "response", "transport", "decode"
// or "unknown".
func Kind(err error) string {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return "response"
	case IsTransport(err):
		return "transport"
	case IsDecode(err):
		return "decode"
	default:
		return "unknown"
	}
}

// RequestID extracts the request id carried by a client error, if any.
func RequestID(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.RequestID
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.RequestID
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.RequestID
	}
	return ""
}
