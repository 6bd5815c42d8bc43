// Package model defines the value types and error kinds for stowage.
//
// This package contains pure data structures with no external dependencies.
// Amount models counts and capacities that may be unbounded, with explicit
// rules for infinite arithmetic. The error kinds (ErrInvalidValue,
// ErrNotFound, ErrSelectionNotFound, ErrAmbiguousSelection,
// ErrCapacityExceeded) are raised by internal/inventory and propagated
// uncaught to the caller.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
