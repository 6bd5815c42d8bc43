package inventory

import (
	"github.com/shinji-kodama/stowage/internal/model"
)

// QueryOptions controls Query.
type QueryOptions struct {
	// Name filters entities with the tier rules. Empty matches all.
	Name string

	// Strict selects the name-matching tiers.
	Strict Strictness

	// Tags filters entities by their own tags.
	Tags TagFilter

	// Target restricts which containers are searched.
	Target Selector

	// Shallow stops the search at the receiver's direct children.
	Shallow bool

	// SelfIncluded adds the receiver itself as a candidate.
	SelfIncluded bool

	// OnlyOne requires exactly one match across the whole search.
	OnlyOne bool
}

// match is a live entity found in the tree with its owning container.
type match struct {
	entity Entity
	owner  *Container
}

// collectOptions is the resolved form shared by Query, Remove and Rename.
type collectOptions struct {
	name      string
	strict    Strictness
	tags      TagFilter
	targets   targetSet
	recursive bool
}

// collect gathers live matches level by level: the candidates of one
// container are filtered by tags, then by name tiers, then the search
// descends into child containers in priority order.
func (c *Container) collect(opts collectOptions, self *match, out []match) []match {
	var level []match
	if self != nil {
		level = append(level, *self)
	}
	if opts.targets.has(c) {
		for _, child := range c.sortedChildren() {
			level = append(level, match{entity: child, owner: c})
		}
	}

	filtered := level[:0]
	for _, m := range level {
		if opts.tags.Matches(m.entity.Tags()) {
			filtered = append(filtered, m)
		}
	}

	names := make([]string, len(filtered))
	for i, m := range filtered {
		names[i] = m.entity.Name()
	}
	for _, i := range matchIndices(names, opts.name, opts.strict) {
		out = append(out, filtered[i])
	}

	if opts.recursive {
		for _, sub := range c.ChildContainers() {
			out = sub.collect(opts, nil, out)
		}
	}
	return out
}

// Query collects entities matching opts without mutating the tree.
// Entries carry deep copies of the matched entities and the containers
// that hold them.
//
// With OnlyOne set, the cardinality check applies to the aggregated
// matches of the whole search: zero matches fail with
// model.ErrSelectionNotFound and several with model.ErrAmbiguousSelection.
func (c *Container) Query(opts QueryOptions) (Result, error) {
	var self *match
	if opts.SelfIncluded {
		self = &match{entity: c}
	}

	matches := c.collect(collectOptions{
		name:      opts.Name,
		strict:    opts.Strict,
		tags:      opts.Tags,
		targets:   resolveTargets(c, opts.Target),
		recursive: !opts.Shallow,
	}, self, nil)

	if opts.OnlyOne {
		if err := model.CheckOnlyOne(opts.Name, matchNames(matches)); err != nil {
			return Empty(), err
		}
	}

	res := Empty()
	for _, m := range matches {
		res = res.Add(NewResult(m.entity.Count(), Entry{Entity: m.entity.Clone(), Container: m.owner}))
	}
	return res, nil
}

// SlotOptions controls FreeSlots.
type SlotOptions struct {
	// Target restricts which containers are counted.
	Target Selector

	// Shallow only counts the receiver.
	Shallow bool
}

// FreeSlots returns how many units of perUnit capacity still fit across
// the selected containers: the sum of ⌊FreeSpace / perUnit⌋ per container.
// It never mutates the tree.
func (c *Container) FreeSlots(perUnit model.Amount, opts SlotOptions) (model.Amount, error) {
	if err := perUnit.Validate(); err != nil {
		return 0, err
	}
	targets := resolveTargets(c, opts.Target)

	var total model.Amount
	visit := func(ct *Container) {
		if targets.has(ct) {
			total = total.Add(ct.FreeSpace().Slots(perUnit))
		}
	}
	if opts.Shallow {
		visit(c)
	} else {
		c.walk(visit)
	}
	return total, nil
}

func matchNames(matches []match) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.entity.Name()
	}
	return names
}
