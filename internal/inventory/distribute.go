package inventory

import (
	"fmt"

	"github.com/shinji-kodama/stowage/internal/model"
)

// DistributeOptions controls Distribute.
type DistributeOptions struct {
	// Target restricts which containers may receive units. Containers
	// outside the selection are still traversed to reach selected
	// descendants.
	Target Selector

	// Unbreakable requires every unit to be placed or none. The check
	// runs once against the free slots of the whole selected subtree
	// before anything is mutated; once it passes, units may still be
	// split across several containers.
	Unbreakable bool
}

// Distribute places a deep copy of e into the subtree rooted at c.
//
// Objects fill the current level first, then flow into child containers
// in priority order ("main"-tagged first) until every unit is placed or
// no selected container has room. A same-named stack of the same shape
// absorbs the units; a same-named entity of a different shape blocks
// that level only. Zero-capacity objects never run out of room.
//
// Containers are placed whole into the first selected level with room,
// never split.
//
// The returned Result counts the units actually placed, which may be
// fewer than requested; this is not an error. Entries hold copies of
// the placed portions and the containers that received them.
func (c *Container) Distribute(e Entity, opts DistributeOptions) (Result, error) {
	if e == nil {
		return Empty(), fmt.Errorf("%w: nothing to distribute", model.ErrInvalidValue)
	}
	targets := resolveTargets(c, opts.Target)

	switch v := e.(type) {
	case *Container:
		return c.distributeContainer(v.clone(), targets)
	case *Object:
		item := v.clone()
		if opts.Unbreakable && c.slotsForSubtree(item, targets).Less(item.count) {
			return Empty(), nil
		}
		res, err := c.distributeObject(item, item.count, targets)
		if err != nil {
			res.undo()
			return Empty(), err
		}
		return res, nil
	default:
		return Empty(), fmt.Errorf("%w: unsupported entity %T", model.ErrInvalidValue, e)
	}
}

// DistributeN places n units of obj, leaving obj itself untouched.
// It is a convenience for callers holding a template stack.
func (c *Container) DistributeN(obj *Object, n model.Amount, opts DistributeOptions) (Result, error) {
	if n.IsZero() {
		return Empty(), nil
	}
	if err := validateCount(n); err != nil {
		return Empty(), err
	}
	return c.Distribute(obj.withCount(n), opts)
}

// slotsFor returns how many units of item this container can take
// directly, honouring its accept filter and name collisions.
func (c *Container) slotsFor(item *Object) model.Amount {
	if !c.accepts(item) {
		return 0
	}
	if existing, ok := c.children[item.name]; ok {
		obj, isObj := existing.(*Object)
		if !isObj || !obj.sameShape(item) {
			return 0
		}
	}
	return c.FreeSpace().Slots(item.capacity)
}

// slotsForSubtree sums slotsFor over every selected container.
func (c *Container) slotsForSubtree(item *Object, targets targetSet) model.Amount {
	var total model.Amount
	c.walk(func(ct *Container) {
		if targets.has(ct) {
			total = total.Add(ct.slotsFor(item))
		}
	})
	return total
}

func (c *Container) distributeObject(item *Object, remaining model.Amount, targets targetSet) (Result, error) {
	res := Empty()

	if targets.has(c) {
		fit := c.slotsFor(item).Min(remaining)
		if !fit.IsZero() {
			placed, err := c.place(item, fit)
			if err != nil {
				return res, err
			}
			res = res.Add(placed)
			remaining = deduct(remaining, fit)
		}
	}

	for _, sub := range c.ChildContainers() {
		if remaining.IsZero() {
			break
		}
		r, err := sub.distributeObject(item, remaining, targets)
		res = res.Add(r)
		if err != nil {
			return res, err
		}
		remaining = deduct(remaining, r.Count())
	}
	return res, nil
}

// undo reverses the object placements recorded in r, newest first.
func (r Result) undo() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		stored, ok := e.Container.children[e.Entity.Name()].(*Object)
		if !ok {
			continue
		}
		n := e.Entity.Count()
		if !n.Less(stored.count) {
			_, _ = e.Container.Delete(stored.name)
			continue
		}
		stored.count = stored.count.Sub(n)
	}
}

// place stores n units of item here, merging into an existing stack of
// the same name. The merged total is re-validated against free space.
func (c *Container) place(item *Object, n model.Amount) (Result, error) {
	portion := item.withCount(n)

	if existing, ok := c.children[item.name].(*Object); ok {
		merged := existing.clone()
		merged.count = merged.count.Add(n)
		if err := c.replace(item.name, merged); err != nil {
			return Empty(), err
		}
	} else if err := c.Insert(portion); err != nil {
		return Empty(), err
	}

	return NewResult(n, Entry{Entity: portion, Container: c}), nil
}

func (c *Container) distributeContainer(sub *Container, targets targetSet) (Result, error) {
	if targets.has(c) && c.accepts(sub) && !c.Has(sub.name) && fits(sub.capacity, c.FreeSpace()) {
		if err := c.Insert(sub); err != nil {
			return Empty(), err
		}
		return NewResult(1, Entry{Entity: sub.clone(), Container: c}), nil
	}

	for _, child := range c.ChildContainers() {
		r, err := child.distributeContainer(sub, targets)
		if err != nil || !r.IsEmpty() {
			return r, err
		}
	}
	return Empty(), nil
}
