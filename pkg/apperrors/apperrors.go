package apperrors

import (
	"errors"
	"fmt"
)

// Category classifies an error for HTTP mapping and logging
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryNotFound     Category = "not_found"
	CategoryUpstream     Category = "upstream"
	CategoryInconsistent Category = "inconsistent"
)

// Error is the error type surfaced by services. Message is client-safe;
// Err carries upstream detail and is only logged, never echoed.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Category: CategoryValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Category: CategoryNotFound, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Category: CategoryUpstream, Message: message, Err: err}
}

func Inconsistent(message string, err error) *Error {
	return &Error{Category: CategoryInconsistent, Message: message, Err: err}
}

// From extracts an *Error from err, or nil if err is not one
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
