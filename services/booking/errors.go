package booking

import (
	"errors"
	"fmt"
)

// Error codes for the terminal, user-facing outcomes of engine operations.
// None of these are retried internally; the caller decides what to do next.
const (
	CodeInvalidRange      = "invalidRange"
	CodeRangeUnavailable  = "rangeUnavailable"
	CodeInvalidTransition = "invalidTransition"
	CodeForbidden         = "forbidden"
	CodeConflict          = "conflict"
	CodeNotFound          = "notFound"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRangeError flags a malformed or inverted date range. Caller bug,
// not retryable as-is.
func NewInvalidRangeError(msg string) error {
	return &Error{Code: CodeInvalidRange, Message: msg}
}

// NewRangeUnavailableError flags a range that is no longer free. Surfaced to
// the end user to pick new dates, never auto-retried.
func NewRangeUnavailableError(msg string) error {
	return &Error{Code: CodeRangeUnavailable, Message: msg}
}

// NewInvalidTransitionError flags a transition attempted from a state that
// does not permit it; the client should refresh and re-render.
func NewInvalidTransitionError(msg string) error {
	return &Error{Code: CodeInvalidTransition, Message: msg}
}

// NewForbiddenError flags an actor who is not the booking's host/tenant
// counterpart for the attempted action.
func NewForbiddenError(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NewConflictError flags a lost row-lock race against a concurrent transition
// on the same booking. Safe to retry after re-reading current state.
func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

// NewNotFoundError flags a missing booking, property or calendar entry.
func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// CodeOf returns the taxonomy code of err, or "" for untyped errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
