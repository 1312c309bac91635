// Package domainerrors carries typed business-rule failures across layer
// boundaries. Services return these instead of raising ad-hoc errors so
// callers can inspect the code and react without string matching.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure. Every core operation returns either a success
// value or exactly one coded error; nothing in the engine is transient, so
// there is no retryable class.
type Code string

const (
	// CodeInvalidInput marks a malformed or missing required value.
	CodeInvalidInput Code = "invalid_input"
	// CodeAlreadyExists marks an email-uniqueness violation on person creation.
	CodeAlreadyExists Code = "already_exists"
	// CodeUnknownParticipant marks an organizer or attendee missing from the registry.
	CodeUnknownParticipant Code = "unknown_participant"
	// CodeConflict marks a requested slot overlapping an existing meeting.
	CodeConflict Code = "scheduling_conflict"
	// CodeNotFound marks a lookup that matched nothing.
	CodeNotFound Code = "not_found"
	// CodeInternal marks an unexpected infrastructure failure.
	CodeInternal Code = "internal"
)

// Error is the concrete carrier. Use New/Newf/Wrap rather than constructing
// values directly.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a coded error with a fixed message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause, preserving the
// chain for errors.Is/errors.As.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in this package.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the status the transport layer should emit.
// UnknownParticipant maps to 400 rather than 404: the missing person is part
// of the request payload, not the requested resource.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeUnknownParticipant:
		return http.StatusBadRequest
	case CodeAlreadyExists, CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
