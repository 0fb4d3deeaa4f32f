package models

import (
	"errors"
	"fmt"
)

// ErrUnparsableInput marks payloads that cannot be analyzed at all (empty or
// structurally broken input). Callers decide how to present it; it is never
// a crash.
var ErrUnparsableInput = errors.New("unparsable input")

// URLParseError carries the offending payload alongside the parse failure.
type URLParseError struct {
	Payload string
	Message string
}

// Error returns the error message for URLParseError.
func (e *URLParseError) Error() string {
	return fmt.Sprintf("invalid payload %q: %s", e.Payload, e.Message)
}

// Unwrap makes URLParseError match ErrUnparsableInput via errors.Is.
func (e *URLParseError) Unwrap() error {
	return ErrUnparsableInput
}

// NewURLParseError creates a new URLParseError.
func NewURLParseError(payload, message string) *URLParseError {
	return &URLParseError{Payload: payload, Message: message}
}
