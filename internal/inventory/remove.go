package inventory

import (
	"fmt"

	"github.com/shinji-kodama/stowage/internal/model"
)

// RemoveOptions controls Remove.
type RemoveOptions struct {
	// Count is the number of units to remove. Zero means all of them.
	Count model.Amount

	// Strict selects the name-matching tiers.
	Strict Strictness

	// Tags filters the entities eligible for removal.
	Tags TagFilter

	// Target restricts which containers are searched.
	Target Selector
}

// Remove takes up to opts.Count units of entities matching name out of
// the subtree, depth first, emptying the current level before its
// children and stopping once enough units are removed.
//
// A stack holding more units than still needed is decremented in place;
// a stack whose units are all needed is deleted from its container, as
// is any matched container. Removing less than requested is not an
// error: the Result's count reports what was actually removed and its
// entries hold copies of the removed portions with their origin
// containers.
func (c *Container) Remove(name string, opts RemoveOptions) (Result, error) {
	remaining := opts.Count
	if remaining.IsZero() {
		remaining = model.Unbounded
	} else if err := validateCount(remaining); err != nil {
		return Empty(), fmt.Errorf("remove %q: %w", name, err)
	}

	matches := c.collect(collectOptions{
		name:      name,
		strict:    opts.Strict,
		tags:      opts.Tags,
		targets:   resolveTargets(c, opts.Target),
		recursive: true,
	}, nil, nil)

	// Containers removed earlier in the pass take their subtree with them.
	gone := make(map[*Container]struct{})

	res := Empty()
	for _, m := range matches {
		if remaining.IsZero() {
			break
		}
		if _, ok := gone[m.owner]; ok {
			continue
		}

		r, err := m.owner.take(m.entity, remaining)
		if err != nil {
			return res, err
		}
		if sub, ok := m.entity.(*Container); ok && !r.IsEmpty() {
			sub.walk(func(ct *Container) { gone[ct] = struct{}{} })
		}
		res = res.Add(r)
		remaining = deduct(remaining, r.Count())
	}
	return res, nil
}

// take removes up to n units of the direct child e.
func (c *Container) take(e Entity, n model.Amount) (Result, error) {
	obj, isObj := e.(*Object)
	if isObj && n.Less(obj.count) {
		part, err := obj.Split(n)
		if err != nil {
			return Empty(), err
		}
		return NewResult(n, Entry{Entity: part, Container: c}), nil
	}

	removed, err := c.Delete(e.Name())
	if err != nil {
		return Empty(), err
	}
	return NewResult(removed.Count(), Entry{Entity: removed, Container: c}), nil
}
