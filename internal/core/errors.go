package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Calendar errors. OUT_OF_RANGE is the only recoverable one: the
	// evaluator turns it into an unavailable result instead of failing
	// the run.
	ErrOutOfRange = &Error{Code: "OUT_OF_RANGE", Message: "trading day offset outside known calendar"}
	ErrNoData     = &Error{Code: "NO_DATA", Message: "no observations available"}

	// Construction errors, fatal before any evaluation starts.
	ErrInvalidPrice   = &Error{Code: "INVALID_PRICE", Message: "non-positive price in series"}
	ErrMalformedInput = &Error{Code: "MALFORMED_INPUT", Message: "malformed input record"}

	// PRICE_NOT_FOUND indicates an internal consistency bug: a lookup
	// for a day the calendar never produced.
	ErrPriceNotFound = &Error{Code: "PRICE_NOT_FOUND", Message: "no price for trading day"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Storage errors
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "archive storage failed"}

	// LLM errors
	ErrLLMFailed = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
)
