package inventory

import (
	"github.com/shinji-kodama/stowage/internal/model"
)

// Entity is a node of an inventory tree: either an *Object or a
// *Container. The interface is sealed; no other implementations exist.
type Entity interface {
	// Name is the entity's key within its parent. Unique among siblings.
	Name() string

	// Kind reports whether the entity is an object or a container.
	Kind() model.EntityKind

	// Tags returns a copy of the entity's tags.
	Tags() TagSet

	// Count is the number of identical units. Always 1 for containers.
	Count() model.Amount

	// Capacity is the space one unit consumes in its parent.
	Capacity() model.Amount

	// TotalCapacity returns Capacity when perUnit is set, otherwise
	// Capacity × Count.
	TotalCapacity(perUnit bool) model.Amount

	// Clone returns a deep copy that shares no mutable state.
	Clone() Entity

	// Header and Row render the entity as table columns at the given
	// detail level (0 = compact).
	Header(level int) []string
	Row(level int) []string

	setName(name string)
	setTags(tags TagSet)
}

// header holds the naming and tagging state shared by both entity kinds.
type header struct {
	name string
	tags TagSet
}

// Name returns the entity name.
func (h *header) Name() string {
	return h.name
}

// Tags returns a copy of the entity's tags.
func (h *header) Tags() TagSet {
	return h.tags.Clone()
}

// HasTag reports whether the entity carries tag.
func (h *header) HasTag(tag string) bool {
	return h.tags.Has(tag)
}

func (h *header) setName(name string) {
	h.name = name
}

func (h *header) setTags(tags TagSet) {
	h.tags = tags.Clone()
}

// SetName validates and sets the name of a detached entity. Entities
// inside a container must be renamed through Container.Rename or
// Container.Update so the parent's key follows.
func SetName(e Entity, name string) error {
	if err := model.ValidateName(name); err != nil {
		return err
	}
	e.setName(name)
	return nil
}

// SetTags replaces the tags of an entity.
func SetTags(e Entity, tags ...string) {
	e.setTags(NewTagSet(tags...))
}

// fits reports whether need units of space fit into free.
func fits(need, free model.Amount) bool {
	return model.Fits(need, free)
}

// deduct subtracts n from remaining, treating n == remaining as exhaustion
// so that an unbounded request satisfied by an unbounded placement ends.
func deduct(remaining, n model.Amount) model.Amount {
	if n == remaining {
		return 0
	}
	return remaining.Sub(n)
}
