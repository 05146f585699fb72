// Package apperr defines the error kinds returned by the artisan API layer.
package apperr

import (
	"errors"
	"strings"
)

// Kind classifies an error so callers can branch without parsing messages.
type Kind string

const (
	// KindTransport covers network, DNS, TLS and response parsing failures.
	KindTransport Kind = "transport"
	// KindTimeout is returned when the request deadline fires.
	KindTimeout Kind = "timeout"
	// KindHTTPStatus is a non-2xx answer from the backend.
	KindHTTPStatus Kind = "http_status"
	// KindNotFound means the backend answered but the record is missing.
	KindNotFound Kind = "not_found"
	// KindValidation carries the violations reported by a validator.
	KindValidation Kind = "validation"
	// KindEmptyResponse is a successful answer that lacks the expected payload.
	KindEmptyResponse Kind = "empty_response"
)

// Error is a classified, human-readable error.
type Error struct {
	Kind       Kind
	Status     int
	Message    string
	Violations []string
	Err        error
}

// Error returns the message unchanged so it can be shown to end users.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: 404, Message: message}
}

// EmptyResponse creates an error for a success answer without payload.
func EmptyResponse(message string) *Error {
	return &Error{Kind: KindEmptyResponse, Message: message}
}

// Validation creates a validation error listing every violation.
func Validation(violations []string) *Error {
	return &Error{
		Kind:       KindValidation,
		Status:     400,
		Message:    strings.Join(violations, "; "),
		Violations: violations,
	}
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf returns the HTTP status attached to err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
