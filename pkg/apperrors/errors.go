// Package apperrors defines the coded error taxonomy shared by the intake
// client and the persistence service. Codes travel over HTTP as the JSON
// error envelope and map back to statuses via ToHTTPStatus.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport and handling policy.
type Code string

const (
	// CodeValidation marks a local, field-attributed validation failure.
	// These never reach the persistence service.
	CodeValidation Code = "validation"

	// CodeMalformedNumber marks a defensive numeric coercion failure on an
	// optional numeric field. Treated as a validation error when surfaced.
	CodeMalformedNumber Code = "malformed_number"

	// CodeUnavailable marks a remote call that could not be issued or
	// completed. The caller keeps its state and may retry.
	CodeUnavailable Code = "unavailable"

	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal"
)

// Error is a coded error with a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a coded error preserving the cause in the message chain.
func Wrap(code Code, message string, cause error) error {
	if cause == nil {
		return New(code, message)
	}
	return &Error{Code: code, Message: fmt.Sprintf("%s: %v", message, cause)}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps an error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeMalformedNumber, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
