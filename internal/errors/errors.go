package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrIndexNotReady is returned when a write operation is attempted
	// against an index that cannot accept it yet. Search queries never
	// return this: they report not-ready through the result type.
	ErrIndexNotReady = errors.New("index not ready")

	// ErrPackageNotFound is returned when a package is not indexed
	ErrPackageNotFound = errors.New("package not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrSnapshotNotFound is returned when no snapshot file exists
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// PackageNotFoundError represents a package not found error with context
type PackageNotFoundError struct {
	Package string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package '%s' not found in the search index", e.Package)
}

func (e *PackageNotFoundError) Is(target error) bool {
	return target == ErrPackageNotFound
}

// NewPackageNotFoundError creates a new PackageNotFoundError
func NewPackageNotFoundError(pkg string) *PackageNotFoundError {
	return &PackageNotFoundError{Package: pkg}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
