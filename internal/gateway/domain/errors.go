package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// DownstreamStatusError is returned when the inference service answered
// with a non-2xx status. The status and body are relayed to the caller.
type DownstreamStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *DownstreamStatusError) Error() string {
	return fmt.Sprintf("downstream returned status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *DownstreamStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// TransportError covers failures below the HTTP exchange: refused
// connections, DNS and TLS failures, timeouts and truncated bodies.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Request error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline expiry.
func (e *TransportError) Timeout() bool {
	var te interface{ Timeout() bool }
	if errors.As(e.Err, &te) {
		return te.Timeout()
	}
	return false
}

// UnexpectedError is anything that is neither a downstream status nor a
// transport failure, e.g. a 2xx body that is not JSON.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	if e.Err == nil {
		return "unexpected error"
	}
	return e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// StatusFor maps an error returned by the gateway to the HTTP status and
// detail text the caller receives.
func StatusFor(err error) (int, string) {
	var dse *DownstreamStatusError
	if errors.As(err, &dse) {
		return dse.HTTPStatusCode(), dse.Body
	}
	var te *TransportError
	if errors.As(err, &te) {
		return http.StatusInternalServerError, te.Error()
	}
	return http.StatusInternalServerError, err.Error()
}
