// Package model defines the value types and error kinds shared by the
// stowage engine and CLI.
//
// Inventory entities themselves live in internal/inventory; this package
// holds what both layers need without depending on each other: the
// Amount numeric type, the engine's error kinds, and the CLI exit codes.
package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// EntityKind distinguishes leaf objects from containers in serialized
// trees and rendered tables.
type EntityKind string

const (
	// KindObject is a stackable object: count identical units.
	KindObject EntityKind = "object"

	// KindContainer is a container holding objects and other containers.
	KindContainer EntityKind = "container"
)

// String returns the string representation of EntityKind.
func (k EntityKind) String() string {
	return string(k)
}

// IsValid checks whether the EntityKind value is one of the predefined kinds.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindObject, KindContainer:
		return true
	default:
		return false
	}
}

// ParseEntityKind converts a string to an EntityKind.
// Returns an error if the string does not match any valid kind.
func ParseEntityKind(s string) (EntityKind, error) {
	kind := EntityKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: entity kind %q (valid: object, container)", ErrInvalidValue, s)
	}
	return kind, nil
}

// nameRegex rejects names that would break table rendering or path-like
// selectors: control characters and the "/" separator.
var nameRegex = regexp.MustCompile(`^[^/\x00-\x1f\x7f]+$`)

// ValidateName checks if the given name is usable as an entity name.
// Names must be non-empty, must not be surrounded by whitespace, and must
// not contain "/" or control characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidValue)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: name %q has surrounding whitespace", ErrInvalidValue, name)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: name %q must not contain '/' or control characters", ErrInvalidValue, name)
	}
	return nil
}

// ExitCode defines the CLI exit codes. These codes allow scripts to
// tell a partial placement (exit 0, smaller count) apart from a rejected
// operation.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidValue indicates a flag or stored value was out of range.
	ExitInvalidValue ExitCode = 2

	// ExitNotFound indicates an exact lookup or selection found nothing.
	ExitNotFound ExitCode = 3

	// ExitAmbiguous indicates a selection matched more than one entity.
	ExitAmbiguous ExitCode = 4

	// ExitCapacityExceeded indicates an insert was rejected for lack of space.
	ExitCapacityExceeded ExitCode = 5

	// ExitStoreError indicates the tree file could not be read or written.
	ExitStoreError ExitCode = 6

	// ExitUserCancelled indicates the user declined a confirmation prompt.
	ExitUserCancelled ExitCode = 7
)

// ExitCodeFor maps an engine error kind to the exit code reported by the
// CLI. Errors that match no kind map to ExitGeneralError.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidValue):
		return ExitInvalidValue
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSelectionNotFound):
		return ExitNotFound
	case errors.Is(err, ErrAmbiguousSelection):
		return ExitAmbiguous
	case errors.Is(err, ErrCapacityExceeded):
		return ExitCapacityExceeded
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// WrapEngineError wraps an engine error, deriving the exit code from its kind.
func WrapEngineError(message string, err error) *CLIError {
	return &CLIError{Code: ExitCodeFor(err), Message: message, Err: err}
}
