// Package errors carries gpuoverlay's user-facing failures. Each error names
// the area it came from, what went wrong, and what to try next; the CLI prints
// it as-is.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Codes group failures by the part of gpuoverlay that raised them.
const (
	ErrConfig    = "CONFIG"    // config file, environment or flags
	ErrPrefs     = "PREFS"     // saved overlay position and closed flag
	ErrTelemetry = "TELEMETRY" // event stream decoding
	ErrSource    = "SOURCE"    // rocm-smi / nvidia-smi collection
	ErrTTY       = "TTY"       // no terminal to draw on
)

// Error is a failure with a hint for the user. Error() prints:
//
//	✗ Message
//
//	  Cause (if any)
//
//	  Suggestion (if any)
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error with no underlying cause.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap attaches message to err. Most wrapped errors come from the smi tools,
// so the code is ErrSource.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSource,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode attaches message and suggestion to err under code.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s\n", e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, "\n  %s\n", e.Cause.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Suggestion)
	}
	return b.String()
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err, or anything it wraps, is an *Error with code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
