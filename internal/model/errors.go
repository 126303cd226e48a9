package model

import (
	"errors"
	"fmt"
)

// Kind classifies a failure at a component boundary. Every error crossing the
// dispatcher or extraction service boundary carries exactly one Kind so the
// HTTP layer and CLI can render it without string matching.
type Kind string

const (
	// EINVALID means the caller's input was rejected before any network call.
	EINVALID Kind = "invalid_input"
	// EUNAVAILABLE means the selected backend or provider cannot be used,
	// typically because its credential is not configured.
	EUNAVAILABLE Kind = "backend_unavailable"
	// ENETWORK means the outbound call failed at the transport level
	// (timeout, connection refused, DNS).
	ENETWORK Kind = "network_failure"
	// EUPSTREAM means the remote service answered with a non-success result.
	EUPSTREAM Kind = "upstream_error"
	// EMALFORMED means the LLM response did not fit the requested format.
	EMALFORMED Kind = "malformed_output"
	// EINTERNAL is the fallback for unclassified failures.
	EINTERNAL Kind = "internal"
)

// Error is the application error type. Message is safe to show to the user;
// credential values must never appear in it.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Errorf builds an Error with a formatted user-facing message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a Kind and user-facing message to an underlying cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// ErrorKind extracts the Kind from err, or EINTERNAL if err carries none.
func ErrorKind(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return EINTERNAL
}

// ErrorMessage extracts the user-facing message from err. Unclassified errors
// get a generic message so internal details never reach the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "an internal error occurred"
}
