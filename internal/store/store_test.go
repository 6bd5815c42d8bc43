package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

func sampleTree(t *testing.T) *inventory.Container {
	t.Helper()

	ship := inventory.MustNewContainer("ship", 100, 20, inventory.WithContainerTags("vessel"))
	hold := inventory.MustNewContainer("hold", 50, 5,
		inventory.WithAccept(inventory.TagFilter{None: inventory.NewTagSet("personal")}))
	require.NoError(t, hold.Insert(inventory.MustNewObject("fuel", 2, 3, inventory.WithSize(1.5))))
	require.NoError(t, ship.Insert(hold))
	vault := inventory.MustNewContainer("vault", model.Unbounded, 0)
	require.NoError(t, vault.Insert(inventory.MustNewObject("credits", 0, model.Unbounded)))

	world := inventory.MustNewContainer("world", model.Unbounded, 0)
	require.NoError(t, world.Insert(ship))
	require.NoError(t, world.Insert(vault))
	return world
}

// requireStoreError asserts that err is a CLIError carrying ExitStoreError.
func requireStoreError(t *testing.T, err error) {
	t.Helper()

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected CLIError, got %v", err)
	assert.Equal(t, model.ExitStoreError, cliErr.Code)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"tree.yaml", "tree.yml", "tree.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			tree := sampleTree(t)

			require.NoError(t, Save(path, tree))
			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, inventory.Encode(tree), inventory.Encode(loaded))
			assert.True(t, loaded.FreeSpace().IsUnbounded())
		})
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	tree := sampleTree(t)
	require.NoError(t, Save(path, tree))

	_, err := tree.Remove("ship", inventory.RemoveOptions{})
	require.NoError(t, err)
	require.NoError(t, Save(path, tree))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vault"}, loaded.Names())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestLoad_JSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	doc := `{
  // hand-edited
  "version": 1,
  "root": {
    "kind": "container",
    "name": "crate",
    "capacity": "inf",
    "children": [
      {"kind": "object", "name": "nails", "capacity": 0.1, "count": 40, /* bulk */},
    ],
  },
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	root, err := Load(path)
	require.NoError(t, err)
	assert.True(t, root.Capacity().IsUnbounded())

	nails, err := root.Get("nails")
	require.NoError(t, err)
	assert.Equal(t, model.Amount(40), nails.Count())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml")},
		{"unknown extension", write("tree.txt", "")},
		{"malformed yaml", write("bad.yaml", "root: [\n")},
		{"newer format", write("future.yaml", "version: 99\nroot: {kind: container, name: x, capacity: 1}\n")},
		{"object root", write("leaf.yaml", "version: 1\nroot: {kind: object, name: x, capacity: 1, count: 1}\n")},
		{"overfull", write("full.yaml", `version: 1
root:
  kind: container
  name: box
  capacity: 1
  children:
    - {kind: object, name: brick, capacity: 1, count: 2}
`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			requireStoreError(t, err)
		})
	}
}

func TestLoad_OverfullKeepsCause(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
root: {kind: container, name: box, capacity: 1, children: [{kind: object, name: brick, capacity: 1, count: 2}]}
`), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrCapacityExceeded)
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	assert.False(t, Exists(path))
	require.NoError(t, Save(path, inventory.MustNewContainer("box", 1, 0)))
	assert.True(t, Exists(path))
}
