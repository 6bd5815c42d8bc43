package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds raised by the inventory engine. Callers test for them with
// errors.Is; the engine wraps them with context using fmt.Errorf("%w").
var (
	// ErrInvalidValue is returned when a setter receives an out-of-range
	// or wrongly shaped value (negative size, size above capacity,
	// non-positive or fractional count, unknown field name).
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotFound is returned when an exact-name lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrSelectionNotFound is returned when a selection that must yield
	// exactly one entity yields none.
	ErrSelectionNotFound = errors.New("selection not found")

	// ErrAmbiguousSelection is returned when a selection that must yield
	// exactly one entity yields several.
	ErrAmbiguousSelection = errors.New("ambiguous selection")

	// ErrCapacityExceeded is returned when an insert would push a
	// container's used space above its capacity. The container is left
	// unchanged.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// SelectionError describes a failed single-entity selection. Kind is
// either ErrSelectionNotFound or ErrAmbiguousSelection.
type SelectionError struct {
	// Kind is the sentinel this error matches with errors.Is.
	Kind error

	// Query is the name pattern that was searched for. Empty means
	// "any name".
	Query string

	// Candidates lists the names of every matched entity, in match order.
	Candidates []string
}

// Error lists every candidate for ambiguous selections so the caller can
// refine the query.
func (e *SelectionError) Error() string {
	query := e.Query
	if query == "" {
		query = "*"
	}
	if errors.Is(e.Kind, ErrAmbiguousSelection) {
		return fmt.Sprintf("%v: %q matches %d entities: %s",
			e.Kind, query, len(e.Candidates), strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("%v: nothing matches %q", e.Kind, query)
}

// Unwrap exposes the error kind to errors.Is.
func (e *SelectionError) Unwrap() error {
	return e.Kind
}

// CheckOnlyOne enforces a single-match selection over the given candidate
// names. It returns nil when exactly one candidate is present.
func CheckOnlyOne(query string, candidates []string) error {
	switch len(candidates) {
	case 1:
		return nil
	case 0:
		return &SelectionError{Kind: ErrSelectionNotFound, Query: query}
	default:
		names := make([]string, len(candidates))
		copy(names, candidates)
		return &SelectionError{Kind: ErrAmbiguousSelection, Query: query, Candidates: names}
	}
}
