// Package nexuserr defines the structured error taxonomy the core uses to
// separate user errors (exit 1), protocol violations (exit 2), and
// transport-level failures that fold into a fan-out result instead of
// propagating at all.
package nexuserr

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies a specific error condition.
type ErrorCode string

const (
	// User errors — single-line message, exit 1.
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeAmbiguousSession   ErrorCode = "AMBIGUOUS_SESSION"
	ErrCodeUnknownNode        ErrorCode = "UNKNOWN_NODE"
	ErrCodeMissingDependency  ErrorCode = "MISSING_DEPENDENCY"
	ErrCodeDuplicateSession   ErrorCode = "DUPLICATE_SESSION"
	ErrCodeSelectionCancelled ErrorCode = "SELECTION_CANCELLED"
	ErrCodeInvalidName        ErrorCode = "INVALID_NAME"

	// Protocol errors — a contract violation by the multiplexer. Exit 2.
	ErrCodeFormatParse ErrorCode = "FORMAT_PARSE_ERROR"

	// Internal errors. Exit 2.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// NexusError is a structured error carrying a stable code and optional
// machine-readable details, so callers (the cli error handler, tests) can
// switch on Code rather than parsing message strings.
type NexusError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface.
func (e *NexusError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *NexusError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error and returns it for chaining.
func (e *NexusError) WithDetail(key string, value interface{}) *NexusError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON renders the error as an indented JSON document.
func (e *NexusError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new NexusError.
func New(code ErrorCode, message string) *NexusError {
	return &NexusError{Code: code, Message: message}
}

// Wrap wraps an existing error with a NexusError.
func Wrap(err error, code ErrorCode, message string) *NexusError {
	return &NexusError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is a *NexusError with the given code, unwrapping
// as needed.
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	nexusErr, ok := err.(*NexusError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}
	return nexusErr.Code == code
}

// GetCode extracts the error code from err, unwrapping as needed. Returns
// the empty ErrorCode if err is nil or not a *NexusError.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	nexusErr, ok := err.(*NexusError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}
	return nexusErr.Code
}
