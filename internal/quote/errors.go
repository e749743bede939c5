package quote

import (
	"errors"
	"fmt"
)

// ErrUnavailable is the terminal failure of a fetch: every symbol
// exhausted its retries and the direct fallback failed too. All per-attempt
// failure reasons collapse into this one sentinel; callers render
// UnavailableMessage instead of inspecting it.
var ErrUnavailable = errors.New("coffee price unavailable")

// ErrorKind classifies what went wrong during a single source attempt
type ErrorKind string

const (
	// KindTransport indicates the provider was unreachable or answered
	// with a non-2xx status.
	KindTransport ErrorKind = "transport"
	// KindNoData indicates the query succeeded but returned no usable
	// price point (empty result set, all-null closes).
	KindNoData ErrorKind = "no_data"
	// KindMalformed indicates the response body had an unexpected shape.
	KindMalformed ErrorKind = "malformed_response"
)

// SourceError is the typed failure of one source attempt. New failure
// modes get classified into a Kind deliberately rather than falling into a
// catch-all.
type SourceError struct {
	Kind       ErrorKind
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Source, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Source, e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewTransportError wraps a network-level failure.
func NewTransportError(source string, cause error) *SourceError {
	return &SourceError{
		Kind:    KindTransport,
		Source:  source,
		Message: "request failed",
		Cause:   cause,
	}
}

// NewStatusError records a non-2xx provider response.
func NewStatusError(source string, statusCode int) *SourceError {
	return &SourceError{
		Kind:       KindTransport,
		Source:     source,
		StatusCode: statusCode,
		Message:    "provider returned an error status",
	}
}

// NewNoDataError records a well-formed response with no usable price point.
func NewNoDataError(source string) *SourceError {
	return &SourceError{
		Kind:    KindNoData,
		Source:  source,
		Message: "no price points in response",
	}
}

// NewMalformedError records a response whose shape could not be decoded.
func NewMalformedError(source, message string, cause error) *SourceError {
	return &SourceError{
		Kind:    KindMalformed,
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}
