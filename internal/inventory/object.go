package inventory

import (
	"fmt"

	"github.com/shinji-kodama/stowage/internal/model"
)

// Object is a stackable leaf entity: Count identical units, each taking
// Capacity space in its container and actually filled up to Size.
//
// Size distinguishes nominal from used space, for example a fuel tank
// that is half empty still reserves its full capacity.
type Object struct {
	header

	count    model.Amount
	capacity model.Amount
	size     model.Amount
}

// ObjectOption configures an Object at construction.
type ObjectOption func(*Object) error

// WithSize sets the per-unit occupied size. Without it the size equals
// the capacity.
func WithSize(size model.Amount) ObjectOption {
	return func(o *Object) error {
		return o.SetSize(size)
	}
}

// WithTags sets the object's tags.
func WithTags(tags ...string) ObjectOption {
	return func(o *Object) error {
		o.tags = NewTagSet(tags...)
		return nil
	}
}

// NewObject creates an object of count units of the given per-unit
// capacity. All values are validated; the first violation is returned
// wrapped in model.ErrInvalidValue.
func NewObject(name string, capacity, count model.Amount, opts ...ObjectOption) (*Object, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}

	o := &Object{header: header{name: name}}
	if err := o.SetCount(count); err != nil {
		return nil, err
	}
	if err := o.setCapacity(capacity); err != nil {
		return nil, err
	}
	o.size = capacity

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MustNewObject is NewObject that panics on invalid arguments.
// Intended for tests and static tables.
func MustNewObject(name string, capacity, count model.Amount, opts ...ObjectOption) *Object {
	o, err := NewObject(name, capacity, count, opts...)
	if err != nil {
		panic(fmt.Sprintf("invalid object: %v", err))
	}
	return o
}

// Kind returns model.KindObject.
func (o *Object) Kind() model.EntityKind {
	return model.KindObject
}

// Count returns the number of units.
func (o *Object) Count() model.Amount {
	return o.count
}

// Capacity returns the space one unit consumes.
func (o *Object) Capacity() model.Amount {
	return o.capacity
}

// Size returns the space one unit actually occupies.
func (o *Object) Size() model.Amount {
	return o.size
}

// TotalCapacity returns the per-unit capacity, or capacity × count.
func (o *Object) TotalCapacity(perUnit bool) model.Amount {
	if perUnit {
		return o.capacity
	}
	return o.capacity.Mul(o.count)
}

// SetCount sets the number of units. n must be a positive whole number
// or model.Unbounded.
func (o *Object) SetCount(n model.Amount) error {
	if err := validateCount(n); err != nil {
		return fmt.Errorf("object %q: %w", o.name, err)
	}
	o.count = n
	return nil
}

// SetCapacity sets the per-unit capacity. It fails when the new capacity
// is below the current size.
func (o *Object) SetCapacity(c model.Amount) error {
	return o.setCapacity(c)
}

func (o *Object) setCapacity(c model.Amount) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("object %q capacity: %w", o.name, err)
	}
	if c.Less(o.size) {
		return fmt.Errorf("%w: object %q capacity %s is below its size %s", model.ErrInvalidValue, o.name, c, o.size)
	}
	o.capacity = c
	return nil
}

// SetSize sets the per-unit occupied size, which must not exceed the
// capacity.
func (o *Object) SetSize(s model.Amount) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("object %q size: %w", o.name, err)
	}
	if o.capacity.Less(s) {
		return fmt.Errorf("%w: object %q size %s exceeds its capacity %s", model.ErrInvalidValue, o.name, s, o.capacity)
	}
	o.size = s
	return nil
}

// Split detaches n units into a new object and removes them from the
// receiver. n must be a positive whole number strictly below Count;
// an unbounded stack can give away any finite number of units.
func (o *Object) Split(n model.Amount) (*Object, error) {
	if err := validateCount(n); err != nil {
		return nil, fmt.Errorf("split %q: %w", o.name, err)
	}
	if !n.Less(o.count) {
		return nil, fmt.Errorf("%w: cannot split %s units off %q holding %s", model.ErrInvalidValue, n, o.name, o.count)
	}

	part := o.clone()
	part.count = n
	o.count = o.count.Sub(n)
	return part, nil
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() Entity {
	return o.clone()
}

func (o *Object) clone() *Object {
	c := *o
	c.tags = o.tags.Clone()
	return &c
}

// withCount returns a copy of the object holding n units.
func (o *Object) withCount(n model.Amount) *Object {
	c := o.clone()
	c.count = n
	return c
}

// sameShape reports whether two stacks can merge: equal per-unit
// capacity and size.
func (o *Object) sameShape(other *Object) bool {
	return o.capacity == other.capacity && o.size == other.size
}

// validateCount enforces count ≥ 1, whole, or unbounded.
func validateCount(n model.Amount) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: count %s must be at least 1", model.ErrInvalidValue, n)
	}
	if !n.IsWhole() {
		return fmt.Errorf("%w: count %s must be a whole number", model.ErrInvalidValue, n)
	}
	return nil
}
