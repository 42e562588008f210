package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node identifiers read from graph files.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier read from a graph file or flag.
//
// The validation rules:
//   - No empty IDs
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node ID cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidGraph, "node ID too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node ID %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidGraph, "node ID %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateCost validates a link or tile cost. Search assumes non-negative
// costs, so negative, NaN and infinite values are rejected at load time.
func ValidateCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return New(ErrCodeInvalidInput, "cost must be finite, got %v", cost)
	}
	if cost < 0 {
		return New(ErrCodeInvalidInput, "cost must be non-negative, got %v", cost)
	}
	return nil
}

// ValidateCeiling validates a range search ceiling. Unlike [ValidateCost],
// +Inf is accepted and means an unbounded flood fill.
func ValidateCeiling(ceiling float64) error {
	if math.IsNaN(ceiling) {
		return New(ErrCodeInvalidInput, "range ceiling must be a number")
	}
	if ceiling < 0 {
		return New(ErrCodeInvalidInput, "range ceiling must be non-negative, got %v", ceiling)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
