// list_test.go contains unit tests for the pure formatting
// functions used by the list command and other CLI output helpers.
//
// These tests verify data transformation logic without touching the
// filesystem.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

// TestFormatResult verifies the summary printed by mutating commands.
func TestFormatResult(t *testing.T) {
	ship := inventory.MustNewContainer("ship", 10, 0)
	hold := inventory.MustNewContainer("hold", 5, 0)
	fuel := func(n model.Amount) inventory.Entity { return inventory.MustNewObject("fuel", 1, n) }

	tests := []struct {
		name      string
		requested model.Amount
		res       inventory.Result
		want      string
	}{
		{
			name:      "everything placed",
			requested: 3,
			res:       inventory.NewResult(3, inventory.Entry{Entity: fuel(3), Container: ship}),
			want:      "placed 3 \"fuel\"\n  3 in ship\n",
		},
		{
			name:      "partial placement",
			requested: 5,
			res: inventory.NewResult(3,
				inventory.Entry{Entity: fuel(2), Container: ship},
				inventory.Entry{Entity: fuel(1), Container: hold}),
			want: "placed 3 of 5 \"fuel\"\n  2 in ship\n  1 in hold\n",
		},
		{
			name:      "nothing placed",
			requested: 2,
			res:       inventory.Empty(),
			want:      "placed 0 of 2 \"fuel\"\n",
		},
		{
			name:      "unbounded request",
			requested: model.Unbounded,
			res:       inventory.NewResult(10, inventory.Entry{Entity: fuel(10), Container: ship}),
			want:      "placed 10 of inf \"fuel\"\n  10 in ship\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResult("placed", "fuel", tt.requested, tt.res))
		})
	}
}

// TestFormatResult_OtherNames lists entity names that differ from the
// subject, as substring matches do.
func TestFormatResult_OtherNames(t *testing.T) {
	ship := inventory.MustNewContainer("ship", 10, 0)
	res := inventory.NewResult(2,
		inventory.Entry{Entity: inventory.MustNewObject("ammo box", 1, 2), Container: ship})

	assert.Equal(t, "removed 2 \"ammo\"\n  2 ammo box in ship\n", FormatResult("removed", "ammo", 0, res))
}

// TestFormatEntries verifies the flat match table.
func TestFormatEntries(t *testing.T) {
	ship := inventory.MustNewContainer("ship", 10, 0)
	hold := inventory.MustNewContainer("hold", 5, 0)
	res := inventory.NewResult(6,
		inventory.Entry{Entity: inventory.MustNewObject("fuel", 1, 4), Container: ship},
		inventory.Entry{Entity: inventory.MustNewObject("drum", 1, 2), Container: hold},
	)

	assert.Equal(t, "NAME  COUNT  IN\nfuel  4      ship\ndrum  2      hold\n", FormatEntries(res, 0, nil))
	assert.Equal(t, "NAME  COUNT  IN\ndrum  2      hold\nfuel  4      ship\n", FormatEntries(res, 0, inventory.ByName))
	assert.Equal(t, "No matching entities found.\n", FormatEntries(inventory.Empty(), 0, nil))

	detailed := FormatEntries(res, 1, nil)
	assert.Contains(t, detailed, "KIND    NAME  COUNT  CAPACITY  SIZE  FREE  TAGS  IN\n")
}

// TestParseSortKey verifies accepted keys and the error exit code.
func TestParseSortKey(t *testing.T) {
	for _, key := range []string{"", "name", "COUNT", " capacity "} {
		_, err := ParseSortKey(key)
		assert.NoError(t, err, key)
	}

	less, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Nil(t, less)

	_, err = ParseSortKey("weight")
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitInvalidValue, cliErr.Code)
}

// TestFormatTagFilter verifies the compact accept-filter rendering.
func TestFormatTagFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter inventory.TagFilter
		want   string
	}{
		{"zero filter", inventory.TagFilter{}, "*"},
		{"any", inventory.TagFilter{Any: inventory.NewTagSet("liquid", "gas")}, "any:gas,liquid"},
		{"none", inventory.TagFilter{None: inventory.NewTagSet("bulk", "personal")}, "!bulk !personal"},
		{
			"combined",
			inventory.TagFilter{All: inventory.NewTagSet("sealed"), None: inventory.NewTagSet("bulk")},
			"all:sealed !bulk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTagFilter(tt.filter))
		})
	}
}
