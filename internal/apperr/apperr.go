// Package apperr defines the small error taxonomy shared by the preset
// store and the command server, so a command handler can map any error it
// receives to the right outbound error event without string-matching.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error for command-protocol error events.
type Code string

const (
	CodeInvalidCommand Code = "InvalidCommand"
	CodeInvalidParam   Code = "InvalidParam"
	CodeNotFound       Code = "NotFound"
	CodeConflict       Code = "Conflict"
	CodeProtected      Code = "Protected"
	CodeIO             Code = "IO"
	CodeInternal       Code = "Internal"
)

// Error is a taxonomy-tagged error.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with the given code and formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns err's Code if it (or something it wraps) is an *Error,
// otherwise CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
