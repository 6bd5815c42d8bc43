package inventory

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/stowage/internal/model"
)

// Field names a mutable attribute of an entity.
type Field string

// Fields accepted by SetField and Container.Update.
const (
	FieldName     Field = "name"
	FieldTags     Field = "tags"
	FieldCount    Field = "count"
	FieldCapacity Field = "capacity"
	FieldSize     Field = "size"
	FieldReserved Field = "reserved"
)

// ParseField converts a string to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldName, FieldTags, FieldCount, FieldCapacity, FieldSize, FieldReserved:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown field %q (valid: name, tags, count, capacity, size, reserved)", model.ErrInvalidValue, s)
	}
}

// Each entity kind has a fixed table of typed setters. A field missing
// from a kind's table does not apply to that kind.
var (
	objectSetters = map[Field]func(*Object, string) error{
		FieldName: func(o *Object, v string) error { return SetName(o, v) },
		FieldTags: func(o *Object, v string) error { o.tags = parseTags(v); return nil },
		FieldCount: func(o *Object, v string) error {
			return withAmount(v, o.SetCount)
		},
		FieldCapacity: func(o *Object, v string) error {
			return withAmount(v, o.SetCapacity)
		},
		FieldSize: func(o *Object, v string) error {
			return withAmount(v, o.SetSize)
		},
	}

	containerSetters = map[Field]func(*Container, string) error{
		FieldName: func(c *Container, v string) error { return SetName(c, v) },
		FieldTags: func(c *Container, v string) error { c.tags = parseTags(v); return nil },
		FieldCapacity: func(c *Container, v string) error {
			return withAmount(v, c.SetCapacity)
		},
		FieldReserved: func(c *Container, v string) error {
			return withAmount(v, c.SetReserved)
		},
	}
)

// SetField applies a textual value to one field of a detached entity
// (or a tree root). Children must be changed through Container.Update.
func SetField(e Entity, field Field, value string) error {
	switch v := e.(type) {
	case *Object:
		set, ok := objectSetters[field]
		if !ok {
			return fmt.Errorf("%w: field %q does not apply to objects", model.ErrInvalidValue, field)
		}
		return set(v, value)
	case *Container:
		set, ok := containerSetters[field]
		if !ok {
			return fmt.Errorf("%w: field %q does not apply to containers", model.ErrInvalidValue, field)
		}
		return set(v, value)
	default:
		return fmt.Errorf("%w: unsupported entity %T", model.ErrInvalidValue, e)
	}
}

// Update changes one field of the direct child called name. The setter
// runs on a copy; the copy replaces the child only if the container
// still has room for it, so a failed update changes nothing.
func (c *Container) Update(name string, field Field, value string) (Result, error) {
	child, err := c.Get(name)
	if err != nil {
		return Empty(), err
	}
	if field == FieldName {
		// Validate before the key changes hands.
		if err := model.ValidateName(value); err != nil {
			return Empty(), err
		}
		return c.renameChild(name, value)
	}

	updated := child.Clone()
	if err := SetField(updated, field, value); err != nil {
		return Empty(), err
	}
	if err := c.replace(name, updated); err != nil {
		return Empty(), err
	}
	return NewResult(updated.Count(), Entry{Entity: updated.Clone(), Container: c}), nil
}

func withAmount(v string, set func(model.Amount) error) error {
	a, err := model.ParseAmount(v)
	if err != nil {
		return err
	}
	return set(a)
}

// parseTags splits a comma-separated tag list.
func parseTags(v string) TagSet {
	return NewTagSet(strings.Split(v, ",")...)
}
