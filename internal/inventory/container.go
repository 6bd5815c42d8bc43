package inventory

import (
	"fmt"

	"github.com/shinji-kodama/stowage/internal/model"
)

// Container is a composite entity owning named children under a capacity
// budget.
//
// A container always counts as a single unit and consumes its whole
// capacity in its parent, whatever it holds. Its own space is consumed by
// the reserved size (tare) plus the total capacity of every child:
//
//	UsedSpace = Reserved + Σ child.TotalCapacity(false)
//	FreeSpace = Capacity - UsedSpace      (∞ - ∞ = ∞)
//
// UsedSpace never exceeds Capacity; every mutation that would break this
// fails with model.ErrCapacityExceeded and leaves the container unchanged.
type Container struct {
	header

	capacity model.Amount
	reserved model.Amount

	// accept restricts which entities Distribute may place directly in
	// this container. The zero filter accepts everything.
	accept TagFilter

	// order preserves insertion order; children indexes by name.
	order    []string
	children map[string]Entity
}

// ContainerOption configures a Container at construction.
type ContainerOption func(*Container) error

// WithContainerTags sets the container's tags.
func WithContainerTags(tags ...string) ContainerOption {
	return func(c *Container) error {
		c.tags = NewTagSet(tags...)
		return nil
	}
}

// WithAccept restricts which entities Distribute routes into the
// container.
func WithAccept(filter TagFilter) ContainerOption {
	return func(c *Container) error {
		c.accept = filter.Normalize()
		return nil
	}
}

// NewContainer creates an empty container. reserved must not exceed
// capacity.
func NewContainer(name string, capacity, reserved model.Amount, opts ...ContainerOption) (*Container, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}

	c := &Container{
		header:   header{name: name},
		children: make(map[string]Entity),
	}
	if err := c.SetCapacity(capacity); err != nil {
		return nil, err
	}
	if err := c.SetReserved(reserved); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewContainer is NewContainer that panics on invalid arguments.
// Intended for tests and static tables.
func MustNewContainer(name string, capacity, reserved model.Amount, opts ...ContainerOption) *Container {
	c, err := NewContainer(name, capacity, reserved, opts...)
	if err != nil {
		panic(fmt.Sprintf("invalid container: %v", err))
	}
	return c
}

// Kind returns model.KindContainer.
func (c *Container) Kind() model.EntityKind {
	return model.KindContainer
}

// Count is always 1: a container is never stacked.
func (c *Container) Count() model.Amount {
	return 1
}

// Capacity returns the total space available inside the container,
// which is also the space it takes in its parent.
func (c *Container) Capacity() model.Amount {
	return c.capacity
}

// Reserved returns the space consumed by non-child content.
func (c *Container) Reserved() model.Amount {
	return c.reserved
}

// Accept returns the container's routing filter.
func (c *Container) Accept() TagFilter {
	return c.accept.Clone()
}

// TotalCapacity returns the container's footprint in its parent.
func (c *Container) TotalCapacity(perUnit bool) model.Amount {
	return c.capacity
}

// UsedSpace returns reserved size plus the total capacity of all children.
func (c *Container) UsedSpace() model.Amount {
	return c.reserved.Add(c.childSpace())
}

// FreeSpace returns Capacity - UsedSpace, never below zero. An unbounded
// container is always unbounded, even when its children are.
func (c *Container) FreeSpace() model.Amount {
	free := c.capacity.Sub(c.UsedSpace())
	if free < 0 {
		return 0
	}
	return free
}

// SetCapacity changes the capacity. Shrinking below the used space fails
// with model.ErrCapacityExceeded.
func (c *Container) SetCapacity(capacity model.Amount) error {
	if err := capacity.Validate(); err != nil {
		return fmt.Errorf("container %q capacity: %w", c.name, err)
	}
	if used := c.UsedSpace(); !fits(used, capacity) {
		return fmt.Errorf("%w: container %q uses %s, cannot shrink to %s", model.ErrCapacityExceeded, c.name, used, capacity)
	}
	c.capacity = capacity
	return nil
}

// SetReserved changes the reserved size, failing with
// model.ErrCapacityExceeded if the content would no longer fit.
func (c *Container) SetReserved(reserved model.Amount) error {
	if err := reserved.Validate(); err != nil {
		return fmt.Errorf("container %q reserved size: %w", c.name, err)
	}
	childUse := c.childSpace()
	if !fits(childUse.Add(reserved), c.capacity) {
		return fmt.Errorf("%w: container %q cannot reserve %s with %s left for it", model.ErrCapacityExceeded, c.name, reserved, c.capacity.Sub(childUse))
	}
	c.reserved = reserved
	return nil
}

// SetAccept replaces the routing filter.
func (c *Container) SetAccept(filter TagFilter) {
	c.accept = filter.Normalize()
}

func (c *Container) childSpace() model.Amount {
	var used model.Amount
	for _, name := range c.order {
		used = used.Add(c.children[name].TotalCapacity(false))
	}
	return used
}

// Len returns the number of direct children.
func (c *Container) Len() int {
	return len(c.order)
}

// Names returns the direct children's names in insertion order.
func (c *Container) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Has reports whether a direct child with exactly this name exists.
func (c *Container) Has(name string) bool {
	_, ok := c.children[name]
	return ok
}

// Get returns the direct child with exactly this name, or
// model.ErrNotFound. The returned entity is live.
func (c *Container) Get(name string) (Entity, error) {
	e, ok := c.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in container %q", model.ErrNotFound, name, c.name)
	}
	return e, nil
}

// Children returns the direct children in insertion order.
func (c *Container) Children() []Entity {
	out := make([]Entity, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.children[name])
	}
	return out
}

// ChildContainers returns the direct sub-containers, "main"-tagged first.
// This order is the priority order used by every recursive operation.
func (c *Container) ChildContainers() []*Container {
	var entities []Entity
	for _, name := range c.order {
		if sub, ok := c.children[name].(*Container); ok {
			entities = append(entities, sub)
		}
	}
	sortMainFirst(entities)

	out := make([]*Container, len(entities))
	for i, e := range entities {
		out[i] = e.(*Container)
	}
	return out
}

// ChildObjects returns the direct object children, "main"-tagged first.
func (c *Container) ChildObjects() []*Object {
	var entities []Entity
	for _, name := range c.order {
		if obj, ok := c.children[name].(*Object); ok {
			entities = append(entities, obj)
		}
	}
	sortMainFirst(entities)

	out := make([]*Object, len(entities))
	for i, e := range entities {
		out[i] = e.(*Object)
	}
	return out
}

// sortedChildren returns every direct child, "main"-tagged first.
func (c *Container) sortedChildren() []Entity {
	out := c.Children()
	sortMainFirst(out)
	return out
}

// Insert stores a deep copy of e as a new direct child. It fails with
// model.ErrInvalidValue if the name is taken and with
// model.ErrCapacityExceeded if e does not fit; in both cases the
// container is unchanged.
func (c *Container) Insert(e Entity) error {
	if e == nil {
		return fmt.Errorf("%w: nil entity", model.ErrInvalidValue)
	}
	if c.Has(e.Name()) {
		return fmt.Errorf("%w: %q already exists in container %q", model.ErrInvalidValue, e.Name(), c.name)
	}
	need := e.TotalCapacity(false)
	if free := c.FreeSpace(); !fits(need, free) {
		return fmt.Errorf("%w: %q needs %s, container %q has %s free", model.ErrCapacityExceeded, e.Name(), need, c.name, free)
	}

	c.children[e.Name()] = e.Clone()
	c.order = append(c.order, e.Name())
	return nil
}

// Delete removes the direct child with exactly this name and returns it.
// Ownership passes to the caller.
func (c *Container) Delete(name string) (Entity, error) {
	e, ok := c.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in container %q", model.ErrNotFound, name, c.name)
	}
	delete(c.children, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return e, nil
}

// replace swaps the child stored under name for e, keeping its position.
// The capacity delta is checked first; on failure nothing changes.
// e must carry the same name and is stored without cloning.
func (c *Container) replace(name string, e Entity) error {
	old, ok := c.children[name]
	if !ok {
		return fmt.Errorf("%w: %q in container %q", model.ErrNotFound, name, c.name)
	}

	free := c.FreeSpace()
	if !free.IsUnbounded() {
		free = free.Add(old.TotalCapacity(false))
	}
	if need := e.TotalCapacity(false); !fits(need, free) {
		return fmt.Errorf("%w: %q would need %s, container %q has %s available", model.ErrCapacityExceeded, name, need, c.name, free)
	}

	c.children[name] = e
	return nil
}

// Clone returns a deep copy of the container and its whole subtree.
func (c *Container) Clone() Entity {
	return c.clone()
}

func (c *Container) clone() *Container {
	out := &Container{
		header:   header{name: c.name, tags: c.tags.Clone()},
		capacity: c.capacity,
		reserved: c.reserved,
		accept:   c.accept.Clone(),
		order:    make([]string, len(c.order)),
		children: make(map[string]Entity, len(c.children)),
	}
	copy(out.order, c.order)
	for name, child := range c.children {
		out.children[name] = child.Clone()
	}
	return out
}

// accepts reports whether Distribute may place e directly here.
func (c *Container) accepts(e Entity) bool {
	return c.accept.Matches(e.Tags())
}

// walk visits c and every descendant container in priority order,
// parents before children.
func (c *Container) walk(visit func(*Container)) {
	visit(c)
	for _, sub := range c.ChildContainers() {
		sub.walk(visit)
	}
}
