package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stowage/internal/model"
)

func newStockedShip(t *testing.T) *Container {
	t.Helper()

	ship := newTestShip(t)
	require.NoError(t, ship.Insert(MustNewObject("ammo", 1, 4, WithTags("weapon"))))
	require.NoError(t, child(t, ship, "hold").Insert(MustNewObject("ammo", 1, 6, WithTags("weapon"))))
	require.NoError(t, child(t, ship, "hold", "locker").Insert(MustNewObject("ammo box", 2, 1)))
	require.NoError(t, child(t, ship, "stateroom").Insert(MustNewObject("blanket", 1, 2)))
	return ship
}

// TestQuery_Recursive verifies the per-level name tiers: a level with an
// exact match does not report substring matches, but deeper levels are
// matched on their own.
func TestQuery_Recursive(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Query(QueryOptions{Name: "ammo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ammo", "ammo", "ammo box"}, res.Names())
	assert.Equal(t, amount(11), res.Count())

	owners := make([]string, 0, res.Len())
	for _, e := range res.Entries() {
		owners = append(owners, e.Container.Name())
	}
	assert.Equal(t, []string{"ship", "hold", "locker"}, owners)
}

// TestQuery_Shallow verifies that only direct children are searched.
func TestQuery_Shallow(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Query(QueryOptions{Name: "ammo", Shallow: true})
	require.NoError(t, err)
	assert.Equal(t, amount(4), res.Count())
	assert.Equal(t, 1, res.Len())
}

// TestQuery_Filters combines tags, targets and the self candidate.
func TestQuery_Filters(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Query(QueryOptions{Tags: TagFilter{Any: NewTagSet("weapon")}})
	require.NoError(t, err)
	assert.Equal(t, amount(10), res.Count())

	res, err = ship.Query(QueryOptions{Name: "ammo", Target: Selector{Name: "hold"}})
	require.NoError(t, err)
	assert.Equal(t, amount(6), res.Count(), "only the hold's own children are candidates")

	res, err = ship.Query(QueryOptions{Name: "ship", SelfIncluded: true, Shallow: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Nil(t, res.Entries()[0].Container)
	assert.Equal(t, model.KindContainer, res.Entries()[0].Entity.Kind())
}

// TestQuery_OnlyOne verifies the cardinality check on aggregated matches.
func TestQuery_OnlyOne(t *testing.T) {
	ship := newStockedShip(t)

	res, err := ship.Query(QueryOptions{Name: "blanket", OnlyOne: true})
	require.NoError(t, err)
	assert.Equal(t, amount(2), res.Count())

	_, err = ship.Query(QueryOptions{Name: "ammo", OnlyOne: true})
	assert.ErrorIs(t, err, model.ErrAmbiguousSelection)

	var selErr *model.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Len(t, selErr.Candidates, 3)

	_, err = ship.Query(QueryOptions{Name: "laser", OnlyOne: true})
	assert.ErrorIs(t, err, model.ErrSelectionNotFound)
}

// TestQuery_Idempotent verifies that queries neither mutate the tree nor
// hand out live entities.
func TestQuery_Idempotent(t *testing.T) {
	ship := newStockedShip(t)
	before := Encode(ship)

	first, err := ship.Query(QueryOptions{Name: "ammo"})
	require.NoError(t, err)
	second, err := ship.Query(QueryOptions{Name: "ammo"})
	require.NoError(t, err)
	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, first.Count(), second.Count())

	require.NoError(t, first.Entries()[0].Entity.(*Object).SetCount(99))
	assert.Equal(t, before, Encode(ship))
}

// TestFreeSlots covers the recursive, shallow and targeted sums.
func TestFreeSlots(t *testing.T) {
	ship := newTestShip(t)

	// ship 20, hold 40, locker 10, stateroom 8.
	slots, err := ship.FreeSlots(1, SlotOptions{})
	require.NoError(t, err)
	assert.Equal(t, amount(78), slots)

	slots, err = ship.FreeSlots(3, SlotOptions{})
	require.NoError(t, err)
	assert.Equal(t, amount(6+13+3+2), slots)

	slots, err = ship.FreeSlots(1, SlotOptions{Shallow: true})
	require.NoError(t, err)
	assert.Equal(t, amount(20), slots)

	slots, err = ship.FreeSlots(1, SlotOptions{Target: Selector{Name: "locker"}})
	require.NoError(t, err)
	assert.Equal(t, amount(10), slots)

	slots, err = ship.FreeSlots(0, SlotOptions{})
	require.NoError(t, err)
	assert.True(t, slots.IsUnbounded(), "zero-capacity units always fit")

	_, err = ship.FreeSlots(-1, SlotOptions{})
	assert.ErrorIs(t, err, model.ErrInvalidValue)
}
