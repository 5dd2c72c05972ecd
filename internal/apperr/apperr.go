// Package apperr is the error taxonomy shared by services and handlers.
// Every user-visible failure is an *Error carrying a short message and the
// HTTP status it maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error; each kind has a default HTTP status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindUnavailable
	KindTimeout
	KindUpstream
	KindRateLimited
)

// InternalMessage is what callers see for unexpected failures.
const InternalMessage = "Something went wrong. Please try again."

// Error is a failure safe to show to the user. Message is the user-facing
// text; Err keeps the cause for logs.
type Error struct {
	Kind    Kind
	Status  int
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad or missing input (400).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Conflict reports a uniqueness collision on field.
func Conflict(field, msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Field: field, Message: msg}
}

// Auth reports bad credentials or a missing session (401).
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msg}
}

// Unavailable reports a dependency that is not configured (503).
func Unavailable(msg string) *Error {
	return &Error{Kind: KindUnavailable, Status: http.StatusServiceUnavailable, Message: msg}
}

// Timeout reports an upstream call that ran past its deadline (504).
func Timeout(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Status: http.StatusGatewayTimeout, Message: msg, Err: err}
}

// Upstream passes an upstream failure through. A status outside the error
// range becomes 502.
func Upstream(status int, msg string, err error) *Error {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: KindUpstream, Status: status, Message: msg, Err: err}
}

// RateLimited reports a client over its request budget (429).
func RateLimited(msg string) *Error {
	return &Error{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: msg}
}

// Internal wraps an unexpected failure behind InternalMessage (500).
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: InternalMessage, Err: err}
}

// As unwraps err to an *Error; anything else is treated as Internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Is reports whether err wraps an *Error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusOf returns the HTTP status err maps to.
func StatusOf(err error) int {
	return As(err).Status
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	return As(err).Message
}
