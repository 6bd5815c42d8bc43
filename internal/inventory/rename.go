package inventory

import (
	"fmt"

	"github.com/shinji-kodama/stowage/internal/model"
)

// RenameOptions controls Rename.
type RenameOptions struct {
	// Strict selects the name-matching tiers for the old name.
	Strict Strictness

	// Target restricts which containers are searched.
	Target Selector

	// All lifts the single-match requirement. Each selected container
	// then renames at most its first match and only descends into its
	// children when it had none. A collision in any container fails the
	// whole call before anything is renamed.
	All bool
}

// Rename gives the entity matching oldName the name newName, in place
// within its container. By default exactly one entity must match across
// the whole subtree (model.ErrSelectionNotFound or
// model.ErrAmbiguousSelection otherwise).
//
// A rename onto a name already used by a sibling fails with
// model.ErrInvalidValue and changes nothing. The Result counts the units
// of the renamed entities and its entries hold renamed copies.
func (c *Container) Rename(oldName, newName string, opts RenameOptions) (Result, error) {
	if err := model.ValidateName(newName); err != nil {
		return Empty(), err
	}
	targets := resolveTargets(c, opts.Target)

	if opts.All {
		return c.renameEach(oldName, newName, opts.Strict, targets)
	}

	matches := c.collect(collectOptions{
		name:      oldName,
		strict:    opts.Strict,
		targets:   targets,
		recursive: true,
	}, nil, nil)
	if err := model.CheckOnlyOne(oldName, matchNames(matches)); err != nil {
		return Empty(), err
	}

	m := matches[0]
	return m.owner.renameChild(m.entity.Name(), newName)
}

// renameEach renames the first match of each selected container,
// descending only where nothing matched. Every collision is checked
// before the first rename, so a failure changes nothing.
func (c *Container) renameEach(oldName, newName string, strict Strictness, targets targetSet) (Result, error) {
	plan := c.planRenames(oldName, strict, targets, nil)
	for _, m := range plan {
		if m.entity.Name() != newName && m.owner.Has(newName) {
			return Empty(), fmt.Errorf("%w: cannot rename %q to %q: name already used in container %q",
				model.ErrInvalidValue, m.entity.Name(), newName, m.owner.name)
		}
	}

	res := Empty()
	for _, m := range plan {
		r, err := m.owner.renameChild(m.entity.Name(), newName)
		if err != nil {
			return res, err
		}
		res = res.Add(r)
	}
	return res, nil
}

func (c *Container) planRenames(oldName string, strict Strictness, targets targetSet, plan []match) []match {
	if targets.has(c) {
		children := c.sortedChildren()
		names := make([]string, len(children))
		for i, child := range children {
			names[i] = child.Name()
		}
		if hits := matchIndices(names, oldName, strict); len(hits) > 0 {
			return append(plan, match{entity: children[hits[0]], owner: c})
		}
	}

	for _, sub := range c.ChildContainers() {
		plan = sub.planRenames(oldName, strict, targets, plan)
	}
	return plan
}

// renameChild re-keys a direct child. The entity is copied, its old key
// deleted, and the copy reinserted under the new key at the end of the
// insertion order.
func (c *Container) renameChild(oldName, newName string) (Result, error) {
	child, err := c.Get(oldName)
	if err != nil {
		return Empty(), err
	}
	if oldName == newName {
		return NewResult(child.Count(), Entry{Entity: child.Clone(), Container: c}), nil
	}
	if c.Has(newName) {
		return Empty(), fmt.Errorf("%w: cannot rename %q to %q: name already used in container %q",
			model.ErrInvalidValue, oldName, newName, c.name)
	}

	renamed := child.Clone()
	renamed.setName(newName)
	if _, err := c.Delete(oldName); err != nil {
		return Empty(), err
	}
	c.children[newName] = renamed
	c.order = append(c.order, newName)

	return NewResult(renamed.Count(), Entry{Entity: renamed.Clone(), Container: c}), nil
}
