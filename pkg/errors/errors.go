// Package errors provides structured error types for waypoint.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the libraries
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (maps, graphs, flags)
//   - *_NOT_FOUND: Missing nodes or files
//   - CANCELED: A search stopped because its context was canceled
//   - INTERNAL_*: Unexpected internal errors
//
// A search that finds no route is not an error. It is reported through the
// search result's outcome instead.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMap, "row %d has %d columns, want %d", y, got, want)
//	if errors.Is(err, errors.ErrCodeInvalidMap) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidGraph, origErr, "edge %s -> %s", from, to)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidMap    Code = "INVALID_MAP"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Search control
	ErrCodeCanceled Code = "CANCELED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	var nf *NodeNotFoundError
	return errors.As(err, &nf) && nf.Code() == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var nf *NodeNotFoundError
	if errors.As(err, &nf) {
		return nf.Code()
	}
	return ""
}

// UserMessage returns the error text without code prefixes. Causes are kept,
// so the message still says what failed underneath.
func UserMessage(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// NodeNotFoundError reports a lookup of a node ID that the graph or map does
// not contain.
type NodeNotFoundError struct {
	ID     string // The requested node ID
	Source string // Map or graph name (optional)
}

// Error implements the error interface.
func (e *NodeNotFoundError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("node %q not found in %s", e.ID, e.Source)
	}
	return fmt.Sprintf("node %q not found", e.ID)
}

// Code returns the error code for this error type.
func (e *NodeNotFoundError) Code() Code {
	return ErrCodeNodeNotFound
}
