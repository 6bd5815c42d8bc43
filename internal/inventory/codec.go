package inventory

import (
	"fmt"

	"github.com/shinji-kodama/stowage/internal/model"
)

// Node is the structural, serializable form of an entity and its subtree.
// It carries json and yaml tags so a tree can be stored with any generic
// encoder; Encode and Decode convert between nodes and live entities.
type Node struct {
	Kind model.EntityKind `json:"kind" yaml:"kind"`
	Name string           `json:"name" yaml:"name"`
	Tags []string         `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Capacity is per unit for objects and total for containers.
	Capacity model.Amount `json:"capacity" yaml:"capacity"`

	// Object fields. A missing size defaults to the capacity.
	Count model.Amount  `json:"count,omitempty" yaml:"count,omitempty"`
	Size  *model.Amount `json:"size,omitempty" yaml:"size,omitempty"`

	// Container fields.
	Reserved model.Amount `json:"reserved,omitempty" yaml:"reserved,omitempty"`
	Accept   *TagFilter   `json:"accept,omitempty" yaml:"accept,omitempty"`
	Children []Node       `json:"children,omitempty" yaml:"children,omitempty"`
}

// Encode converts an entity and its subtree into nodes.
func Encode(e Entity) Node {
	switch v := e.(type) {
	case *Object:
		size := v.size
		return Node{
			Kind:     model.KindObject,
			Name:     v.name,
			Tags:     v.tags.Clone(),
			Capacity: v.capacity,
			Count:    v.count,
			Size:     &size,
		}
	case *Container:
		n := Node{
			Kind:     model.KindContainer,
			Name:     v.name,
			Tags:     v.tags.Clone(),
			Capacity: v.capacity,
			Reserved: v.reserved,
		}
		if !v.accept.IsZero() {
			accept := v.accept.Clone()
			n.Accept = &accept
		}
		for _, child := range v.Children() {
			n.Children = append(n.Children, Encode(child))
		}
		return n
	default:
		return Node{}
	}
}

// Decode rebuilds an entity from a node. Every value goes through the
// regular constructors and inserts, so an invalid or overfull document
// fails with model.ErrInvalidValue or model.ErrCapacityExceeded.
func Decode(n Node) (Entity, error) {
	switch n.Kind {
	case model.KindObject:
		if len(n.Children) > 0 || n.Accept != nil {
			return nil, fmt.Errorf("%w: object %q cannot have children or an accept filter", model.ErrInvalidValue, n.Name)
		}
		opts := []ObjectOption{WithTags(n.Tags...)}
		if n.Size != nil {
			opts = append(opts, WithSize(*n.Size))
		}
		return NewObject(n.Name, n.Capacity, n.Count, opts...)

	case model.KindContainer:
		opts := []ContainerOption{WithContainerTags(n.Tags...)}
		if n.Accept != nil {
			opts = append(opts, WithAccept(*n.Accept))
		}
		c, err := NewContainer(n.Name, n.Capacity, n.Reserved, opts...)
		if err != nil {
			return nil, err
		}
		for _, childNode := range n.Children {
			child, err := Decode(childNode)
			if err != nil {
				return nil, fmt.Errorf("container %q: %w", n.Name, err)
			}
			if err := c.Insert(child); err != nil {
				return nil, err
			}
		}
		return c, nil

	default:
		return nil, fmt.Errorf("%w: node %q has unknown kind %q", model.ErrInvalidValue, n.Name, n.Kind)
	}
}

// DecodeContainer decodes a node that must describe a container, as the
// root of a stored tree does.
func DecodeContainer(n Node) (*Container, error) {
	e, err := Decode(n)
	if err != nil {
		return nil, err
	}
	c, ok := e.(*Container)
	if !ok {
		return nil, fmt.Errorf("%w: root %q is a %s, not a container", model.ErrInvalidValue, n.Name, n.Kind)
	}
	return c, nil
}
