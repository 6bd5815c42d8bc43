package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stowage/internal/model"
)

// newTestShip builds a small tree used across tests:
//
//	ship (100, reserved 20)
//	├── hold (50, reserved 0)
//	│   └── locker (10, reserved 0)
//	└── stateroom (10, reserved 2, tagged main)
//
// Used space in ship: 20 + 50 + 10 = 80, free 20.
func newTestShip(t *testing.T) *Container {
	t.Helper()

	ship := MustNewContainer("ship", 100, 20)
	hold := MustNewContainer("hold", 50, 0, WithContainerTags("cargo"))
	locker := MustNewContainer("locker", 10, 0)
	stateroom := MustNewContainer("stateroom", 10, 2, WithContainerTags(TagMain, "stateroom"))

	require.NoError(t, hold.Insert(locker))
	require.NoError(t, ship.Insert(hold))
	require.NoError(t, ship.Insert(stateroom))
	return ship
}

// child returns the live sub-container at the given path of names.
func child(t *testing.T, root *Container, path ...string) *Container {
	t.Helper()

	cur := root
	for _, name := range path {
		e, err := cur.Get(name)
		require.NoError(t, err)
		sub, ok := e.(*Container)
		require.True(t, ok, "%q is not a container", name)
		cur = sub
	}
	return cur
}

// requireCapacityInvariant checks UsedSpace <= Capacity on every
// container of the tree.
func requireCapacityInvariant(t *testing.T, root *Container) {
	t.Helper()

	root.walk(func(c *Container) {
		require.True(t, model.Fits(c.UsedSpace(), c.Capacity()),
			"container %q uses %s of %s", c.Name(), c.UsedSpace(), c.Capacity())
	})
}

func amount(v float64) model.Amount {
	return model.Amount(v)
}
