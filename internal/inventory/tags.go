package inventory

import (
	"sort"
	"strings"
)

// TagMain marks children that take priority during distribution and
// are listed first by ChildContainers, ChildObjects and Query.
const TagMain = "main"

// TagSet is a sorted, duplicate-free set of tags.
// The zero value is an empty set.
type TagSet []string

// NewTagSet builds a TagSet from the given tags, dropping blanks and
// duplicates. Tags are trimmed but keep their case. An empty result is nil.
func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]struct{}, len(tags))
	set := make(TagSet, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		set = append(set, tag)
	}
	if len(set) == 0 {
		return nil
	}
	sort.Strings(set)
	return set
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	i := sort.SearchStrings(s, tag)
	return i < len(s) && s[i] == tag
}

// HasAny reports whether at least one of other's tags is in the set.
// An empty other matches nothing.
func (s TagSet) HasAny(other TagSet) bool {
	for _, tag := range other {
		if s.Has(tag) {
			return true
		}
	}
	return false
}

// HasAll reports whether every tag of other is in the set.
// An empty other is trivially contained.
func (s TagSet) HasAll(other TagSet) bool {
	for _, tag := range other {
		if !s.Has(tag) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s TagSet) Clone() TagSet {
	if s == nil {
		return nil
	}
	out := make(TagSet, len(s))
	copy(out, s)
	return out
}

// String joins the tags with commas, or "-" for an empty set.
func (s TagSet) String() string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}

// TagFilter restricts entities by their tags. All non-empty predicates
// must hold (logical AND). The zero value accepts every entity.
type TagFilter struct {
	// Any requires at least one of these tags.
	Any TagSet `json:"any,omitempty" yaml:"any,omitempty"`

	// All requires every one of these tags.
	All TagSet `json:"all,omitempty" yaml:"all,omitempty"`

	// None rejects entities carrying any of these tags.
	None TagSet `json:"none,omitempty" yaml:"none,omitempty"`
}

// IsZero reports whether the filter accepts everything.
func (f TagFilter) IsZero() bool {
	return len(f.Any) == 0 && len(f.All) == 0 && len(f.None) == 0
}

// Matches reports whether tags satisfy every predicate of the filter.
func (f TagFilter) Matches(tags TagSet) bool {
	if len(f.Any) > 0 && !tags.HasAny(f.Any) {
		return false
	}
	if !tags.HasAll(f.All) {
		return false
	}
	if tags.HasAny(f.None) {
		return false
	}
	return true
}

// Normalize sorts and deduplicates every predicate. Filters decoded from
// files must be normalized before use.
func (f TagFilter) Normalize() TagFilter {
	return TagFilter{Any: NewTagSet(f.Any...), All: NewTagSet(f.All...), None: NewTagSet(f.None...)}
}

// Clone returns a filter that shares no slices with f.
func (f TagFilter) Clone() TagFilter {
	return TagFilter{Any: f.Any.Clone(), All: f.All.Clone(), None: f.None.Clone()}
}

// sortMainFirst stably moves entities tagged "main" ahead of the others,
// keeping insertion order within each group.
func sortMainFirst(entities []Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Tags().Has(TagMain) && !entities[j].Tags().Has(TagMain)
	})
}
