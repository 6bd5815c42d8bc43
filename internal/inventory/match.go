package inventory

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/stowage/internal/model"
)

// Strictness selects which name-matching tiers apply.
//
// The tiers, in priority order, are:
//
//  1. exact, case-sensitive
//  2. exact, case-insensitive
//  3. substring, case-sensitive
//  4. substring, case-insensitive
//
// The first tier that yields at least one match wins; lower tiers are
// never consulted after that.
type Strictness int

const (
	// StrictAuto tries the exact tiers first and falls back to substrings.
	StrictAuto Strictness = iota

	// StrictExact only uses the exact tiers.
	StrictExact

	// StrictSubstring only uses the substring tiers and keeps the first
	// match only.
	StrictSubstring
)

// String returns the flag spelling of the strictness.
func (s Strictness) String() string {
	switch s {
	case StrictExact:
		return "exact"
	case StrictSubstring:
		return "substring"
	default:
		return "auto"
	}
}

// ParseStrictness converts "auto", "exact" or "substring" to a Strictness.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return StrictAuto, nil
	case "exact":
		return StrictExact, nil
	case "substring", "sub":
		return StrictSubstring, nil
	default:
		return StrictAuto, fmt.Errorf("%w: strictness %q (valid: auto, exact, substring)", model.ErrInvalidValue, s)
	}
}

// nameTier decides whether a candidate name matches a pattern.
type nameTier func(candidate, pattern string) bool

var (
	exactTiers = []nameTier{
		func(c, p string) bool { return c == p },
		strings.EqualFold,
	}
	substringTiers = []nameTier{
		strings.Contains,
		func(c, p string) bool { return strings.Contains(strings.ToLower(c), strings.ToLower(p)) },
	}
)

// MatchNames returns the names matching pattern under the tier rules.
// An empty pattern matches every name.
func MatchNames(names []string, pattern string, strict Strictness) []string {
	idx := matchIndices(names, pattern, strict)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = names[j]
	}
	return out
}

// matchIndices returns the positions in names that match pattern,
// preserving the input order.
func matchIndices(names []string, pattern string, strict Strictness) []int {
	if pattern == "" {
		all := make([]int, len(names))
		for i := range names {
			all[i] = i
		}
		return all
	}

	var tiers []nameTier
	switch strict {
	case StrictExact:
		tiers = exactTiers
	case StrictSubstring:
		tiers = substringTiers
	default:
		tiers = append(append([]nameTier{}, exactTiers...), substringTiers...)
	}

	for _, tier := range tiers {
		var hits []int
		for i, name := range names {
			if tier(name, pattern) {
				hits = append(hits, i)
			}
		}
		if len(hits) == 0 {
			continue
		}
		if strict == StrictSubstring {
			return hits[:1]
		}
		return hits
	}
	return nil
}

// Selector picks containers by name and tags. It is how callers target
// a part of the tree ("the cargo hold", "anything tagged stateroom").
// The zero Selector selects every container.
type Selector struct {
	// Name is matched with the tier rules. Empty matches any name.
	Name string

	// Strict selects the matching tiers for Name.
	Strict Strictness

	// Tags restricts the selected containers by their tags.
	Tags TagFilter
}

// IsZero reports whether the selector selects everything.
func (s Selector) IsZero() bool {
	return s.Name == "" && s.Tags.IsZero()
}

// targetSet is the resolved form of a Selector. A nil set admits every
// container; a non-nil empty set admits none.
type targetSet map[*Container]struct{}

func (t targetSet) has(c *Container) bool {
	if t == nil {
		return true
	}
	_, ok := t[c]
	return ok
}

// resolveTargets applies sel to every container of the subtree rooted at
// root, root included, in priority order. Name tiers are evaluated over
// the whole subtree, so an exact "hold" wins over a partial "hold2" at
// any depth.
func resolveTargets(root *Container, sel Selector) targetSet {
	if sel.IsZero() {
		return nil
	}

	var candidates []*Container
	root.walk(func(c *Container) {
		if sel.Tags.Matches(c.tags) {
			candidates = append(candidates, c)
		}
	})

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}

	set := make(targetSet)
	for _, i := range matchIndices(names, sel.Name, sel.Strict) {
		set[candidates[i]] = struct{}{}
	}
	return set
}
