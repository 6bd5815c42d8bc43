package inventory

import (
	"github.com/shinji-kodama/stowage/internal/model"
)

// Entry records one affected group: a copy of the entity (holding only
// the affected units) and the container it was placed into, removed from
// or found in. Container is nil when the entry is the queried root itself.
type Entry struct {
	Entity    Entity
	Container *Container
}

// Result is the immutable outcome of a distribute, remove, rename or
// query operation: how many units were affected and where.
//
// Results combine with Add, which concatenates entries and sums counts.
// Add is associative and Empty is its identity.
type Result struct {
	count   model.Amount
	entries []Entry
}

// Empty returns the identity result: count 0, no entries.
func Empty() Result {
	return Result{}
}

// NewResult builds a result from a count and its entries.
func NewResult(count model.Amount, entries ...Entry) Result {
	r := Result{count: count}
	if len(entries) > 0 {
		r.entries = make([]Entry, len(entries))
		copy(r.entries, entries)
	}
	return r
}

// Count returns the total units affected.
func (r Result) Count() model.Amount {
	return r.count
}

// Len returns the number of entries.
func (r Result) Len() int {
	return len(r.entries)
}

// IsEmpty reports whether nothing was affected.
func (r Result) IsEmpty() bool {
	return r.count.IsZero() && len(r.entries) == 0
}

// Entries returns a copy of the entries in operation order.
func (r Result) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the entity name of every entry, in order.
func (r Result) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Entity.Name()
	}
	return out
}

// Add returns r followed by other. Neither operand is modified.
func (r Result) Add(other Result) Result {
	out := Result{count: r.count.Add(other.count)}
	if n := len(r.entries) + len(other.entries); n > 0 {
		out.entries = make([]Entry, 0, n)
		out.entries = append(out.entries, r.entries...)
		out.entries = append(out.entries, other.entries...)
	}
	return out
}

// Sum adds results left to right.
func Sum(results ...Result) Result {
	total := Empty()
	for _, r := range results {
		total = total.Add(r)
	}
	return total
}
