// Package inventory implements the hierarchical container allocation engine.
//
// A tree is built from two entity kinds:
//
//   - Object: count identical units, each consuming Capacity space.
//   - Container: a named node with its own capacity, a reserved size
//     (tare), and an ordered set of children.
//
// On top of that data model the package provides the allocator
// operations, all defined on *Container and all operating on the subtree
// rooted at the receiver:
//
//   - Distribute places an entity into the first containers with room,
//     preferring the current level and children tagged "main".
//   - Remove takes up to N units of matching entities out of the tree.
//   - Rename renames matching entities in place.
//   - Query collects matching entities without mutating anything.
//   - FreeSlots counts how many units of a given size still fit.
//
// Every mutating or query operation returns a Result, an immutable value
// recording how many units were affected and where. Results combine with
// Add.
//
// The tree owns its entities exclusively. Inserts store deep clones and
// results carry deep clones, so a caller never aliases a node of the tree
// through a Result. Entities obtained through Container.Get are live; use
// Container.Update to change them so the parent's capacity is re-checked.
//
// The engine is single-threaded by design. Callers that share a tree
// between goroutines must hold one lock per root around every call.
package inventory
