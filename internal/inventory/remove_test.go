package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stowage/internal/model"
)

// TestRemove_LastUnitDeletes decrements a stack, then deletes it when
// its final unit goes.
func TestRemove_LastUnitDeletes(t *testing.T) {
	box := MustNewContainer("box", 10, 0)
	require.NoError(t, box.Insert(MustNewObject("oo", 1, 2)))

	res, err := box.Remove("oo", RemoveOptions{Count: 1})
	require.NoError(t, err)
	assert.Equal(t, amount(1), res.Count())

	q, err := box.Query(QueryOptions{Name: "oo"})
	require.NoError(t, err)
	assert.Equal(t, amount(1), q.Count())

	res, err = box.Remove("oo", RemoveOptions{Count: 1})
	require.NoError(t, err)
	assert.Equal(t, amount(1), res.Count())
	assert.False(t, box.Has("oo"))
	assert.Equal(t, amount(10), box.FreeSpace())
}

// TestRemove_CurrentLevelFirst empties the current level before
// descending and stops once enough units are gone.
func TestRemove_CurrentLevelFirst(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Remove("ammo", RemoveOptions{Count: 5, Strict: StrictExact})
	require.NoError(t, err)
	assert.Equal(t, amount(5), res.Count())

	entries := res.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "ship", entries[0].Container.Name())
	assert.Equal(t, amount(4), entries[0].Entity.Count())
	assert.Equal(t, "hold", entries[1].Container.Name())
	assert.Equal(t, amount(1), entries[1].Entity.Count())

	assert.False(t, ship.Has("ammo"))
	left, err := child(t, ship, "hold").Get("ammo")
	require.NoError(t, err)
	assert.Equal(t, amount(5), left.Count())
	requireCapacityInvariant(t, ship)
}

// TestRemove_Insufficient removes what exists without an error.
func TestRemove_Insufficient(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Remove("blanket", RemoveOptions{Count: 10})
	require.NoError(t, err)
	assert.Equal(t, amount(2), res.Count())
	assert.False(t, child(t, ship, "stateroom").Has("blanket"))

	res, err = ship.Remove("laser", RemoveOptions{})
	require.NoError(t, err)
	assert.True(t, res.IsEmpty())
}

// TestRemove_All removes every match when no count is given.
func TestRemove_All(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Remove("", RemoveOptions{Tags: TagFilter{Any: NewTagSet("weapon")}})
	require.NoError(t, err)
	assert.Equal(t, amount(10), res.Count())
	assert.True(t, child(t, ship, "hold", "locker").Has("ammo box"), "untagged stacks stay")
}

// TestRemove_Container deletes a whole subtree and skips matches inside
// it.
func TestRemove_Container(t *testing.T) {
	ship := newStockedShip(t)
	require.NoError(t, child(t, ship, "hold", "locker").Insert(MustNewContainer("hold crate", 2, 0)))

	res, err := ship.Remove("hold", RemoveOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"hold"}, res.Names(), "the nested crate went with its parent")
	assert.False(t, ship.Has("hold"))
	assert.Equal(t, amount(66), ship.FreeSpace())

	removed, ok := res.Entries()[0].Entity.(*Container)
	require.True(t, ok)
	assert.True(t, removed.Has("ammo"), "the removed subtree is handed back intact")
}

// TestRemove_Unbounded removes units from an infinite stack.
func TestRemove_Unbounded(t *testing.T) {
	world := MustNewContainer("world", model.Unbounded, 0)
	require.NoError(t, world.Insert(MustNewObject("water", 1, model.Unbounded)))

	res, err := world.Remove("water", RemoveOptions{Count: 3})
	require.NoError(t, err)
	assert.Equal(t, amount(3), res.Count())

	left, err := world.Get("water")
	require.NoError(t, err)
	assert.True(t, left.Count().IsUnbounded())

	res, err = world.Remove("water", RemoveOptions{})
	require.NoError(t, err)
	assert.True(t, res.Count().IsUnbounded())
	assert.Equal(t, 0, world.Len())
}

// TestRemove_InvalidCount rejects fractional and negative counts.
func TestRemove_InvalidCount(t *testing.T) {
	box := MustNewContainer("box", 10, 0)
	require.NoError(t, box.Insert(MustNewObject("oo", 1, 2)))

	_, err := box.Remove("oo", RemoveOptions{Count: 0.5})
	assert.ErrorIs(t, err, model.ErrInvalidValue)

	_, err = box.Remove("oo", RemoveOptions{Count: -1})
	assert.ErrorIs(t, err, model.ErrInvalidValue)

	stored, err := box.Get("oo")
	require.NoError(t, err)
	assert.Equal(t, amount(2), stored.Count())
}
