// Package errors provides typed errors with machine-readable codes for the
// analyzer's internal failure paths. User-facing findings are never Go
// errors; they are engine.Issue values. This package covers the plumbing:
// config loading, provider I/O, extraction panics.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an internal error.
type ErrorType int

const (
	// ErrorTypeUnknown is the default type for unclassified errors.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfig covers configuration loading and validation errors.
	ErrorTypeConfig
	// ErrorTypeParse covers YAML/file parsing errors.
	ErrorTypeParse
	// ErrorTypeExtraction covers recovered extraction failures.
	ErrorTypeExtraction
	// ErrorTypeProvider covers knowledge-source unavailability (history
	// timeouts, registry fetch failures, capability snapshot errors).
	ErrorTypeProvider
	// ErrorTypeInternal covers unexpected internal errors.
	ErrorTypeInternal
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:    "unknown",
	ErrorTypeConfig:     "config",
	ErrorTypeParse:      "parse",
	ErrorTypeExtraction: "extraction",
	ErrorTypeProvider:   "provider",
	ErrorTypeInternal:   "internal",
}

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Error is a typed error with an optional code, source path, and cause.
type Error struct {
	Type    ErrorType
	Code    string
	Message string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var prefix string
	if e.Code != "" {
		prefix = fmt.Sprintf("[%s] ", e.Code)
	}
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s%s: %s: %v", prefix, e.Path, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s%s: %s", prefix, e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s", prefix, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target by type and code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		if e.Type != targetErr.Type {
			return false
		}
		if e.Code != "" && targetErr.Code != "" {
			return e.Code == targetErr.Code
		}
		return true
	}
	return false
}

// WithCause returns a copy of the error with the specified cause.
func (e *Error) WithCause(cause error) *Error {
	newErr := *e
	newErr.Cause = cause
	return &newErr
}

// WithPath returns a copy of the error with the specified path.
func (e *Error) WithPath(path string) *Error {
	newErr := *e
	newErr.Path = path
	return &newErr
}

// WithMessage returns a copy of the error with the specified message.
func (e *Error) WithMessage(message string) *Error {
	newErr := *e
	newErr.Message = message
	return &newErr
}

// WithMessagef returns a copy of the error with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}

// GetType extracts the ErrorType from an error.
func GetType(err error) ErrorType {
	var typedErr *Error
	if errors.As(err, &typedErr) {
		return typedErr.Type
	}
	return ErrorTypeUnknown
}

// IsType checks if an error is of a specific ErrorType.
func IsType(err error, errType ErrorType) bool {
	return GetType(err) == errType
}

// IsProvider checks if an error is a knowledge-source availability error.
func IsProvider(err error) bool {
	return IsType(err, ErrorTypeProvider)
}

// IsParse checks if an error is a parsing error.
func IsParse(err error) bool {
	return IsType(err, ErrorTypeParse)
}
