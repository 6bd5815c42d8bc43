package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/stowage/internal/model"
	"github.com/shinji-kodama/stowage/internal/store"
)

// run executes the CLI against the tree file at path and returns stdout.
func run(t *testing.T, path, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--file", path}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// mustRun is run that fails the test on error.
func mustRun(t *testing.T, path string, args ...string) string {
	t.Helper()

	out, err := run(t, path, "", args...)
	require.NoError(t, err, "stowage %s", strings.Join(args, " "))
	return out
}

// requireExitCode asserts that err maps to the given exit code.
func requireExitCode(t *testing.T, want model.ExitCode, err error) {
	t.Helper()

	require.Error(t, err)
	var buf bytes.Buffer
	assert.Equal(t, want, reportError(&buf, err), buf.String())
}

func newTreeFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestCommands_Workflow(t *testing.T) {
	path := newTreeFile(t, "ship.yaml")

	out := mustRun(t, path, "init", "ship", "--capacity", "10")
	assert.Contains(t, out, `root "ship" (capacity 10, free 10)`)

	out = mustRun(t, path, "add", "fuel", "--capacity", "2", "--count", "3")
	assert.Equal(t, "placed 3 \"fuel\"\n  3 in ship\n", out)

	out = mustRun(t, path, "list")
	assert.Equal(t, "NAME    COUNT\nship    1\n  fuel  3\n", out)

	out = mustRun(t, path, "add", "fuel", "--capacity", "2", "--count", "5")
	assert.Equal(t, "placed 2 of 5 \"fuel\"\n  2 in ship\n", out, "only two more units fit")

	out = mustRun(t, path, "remove", "fuel", "--count", "1")
	assert.Equal(t, "removed 1 \"fuel\"\n  1 in ship\n", out)

	out = mustRun(t, path, "slots", "1")
	assert.Equal(t, "2 units of capacity 1 fit\n", out)

	_, err := run(t, path, "", "set", "fuel", "count", "9")
	requireExitCode(t, model.ExitCapacityExceeded, err)

	out = mustRun(t, path, "set", "fuel", "count", "5")
	assert.Equal(t, "set count of \"fuel\" to 5\n", out)

	mustRun(t, path, "rename", "fuel", "diesel")
	out = mustRun(t, path, "list", "diesel")
	assert.Equal(t, "NAME    COUNT  IN\ndiesel  5      ship\n", out)

	root, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.Amount(0), root.FreeSpace())
}

func TestCommands_StowAndRemoveContainers(t *testing.T) {
	path := newTreeFile(t, "ship.json")

	mustRun(t, path, "init", "Dawn Treader", "--kind", "ship")
	out := mustRun(t, path, "stow", "quarters", "--kind", "stateroom")
	assert.Equal(t, "stowed 1 \"quarters\"\n  1 in Dawn Treader\n", out)

	_, err := run(t, path, "", "stow", "strongroom", "--kind", "vault")
	requireExitCode(t, model.ExitCapacityExceeded, err)

	out = mustRun(t, path, "add", "blanket", "--capacity", "1", "--count", "2", "--into", "quart")
	assert.Contains(t, out, "2 in quarters")

	_, err = run(t, path, "n\n", "remove", "quarters")
	requireExitCode(t, model.ExitUserCancelled, err)

	out, err = run(t, path, "yes\n", "remove", "quarters")
	require.NoError(t, err)
	assert.Contains(t, out, "quarters (1 entries)")
	assert.Contains(t, out, "removed 1 \"quarters\"")

	out = mustRun(t, path, "list", "--flat")
	assert.Equal(t, "No matching entities found.\n", out)
}

func TestCommands_JSONOutput(t *testing.T) {
	path := newTreeFile(t, "tree.yaml")

	mustRun(t, path, "init", "depot", "--capacity", "inf")
	out := mustRun(t, path, "--json", "add", "water", "--capacity", "1", "--count", "inf")

	var res resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "placed", res.Action)
	assert.True(t, res.Count.IsUnbounded())
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "depot", res.Entries[0].Container)

	out = mustRun(t, path, "--json", "slots", "5")
	assert.Contains(t, out, `"slots": "inf"`)
}

func TestCommands_Errors(t *testing.T) {
	path := newTreeFile(t, "tree.yaml")

	_, err := run(t, path, "", "list")
	requireExitCode(t, model.ExitStoreError, err)

	mustRun(t, path, "init", "box", "--capacity", "5")
	_, err = run(t, path, "", "init", "box", "--capacity", "5")
	requireExitCode(t, model.ExitGeneralError, err)
	mustRun(t, path, "init", "box", "--capacity", "5", "--force")

	_, err = run(t, path, "", "init", "box", "--force")
	requireExitCode(t, model.ExitInvalidValue, err)

	_, err = run(t, path, "", "add", "nut", "--capacity", "lots")
	requireExitCode(t, model.ExitInvalidValue, err)

	_, err = run(t, path, "", "add", "nut", "--capacity", "1", "--count", "1.5")
	requireExitCode(t, model.ExitInvalidValue, err)

	mustRun(t, path, "add", "nut", "--capacity", "1")
	mustRun(t, path, "add", "nut bag", "--capacity", "1")

	_, err = run(t, path, "", "rename", "u", "bolt")
	requireExitCode(t, model.ExitAmbiguous, err)

	_, err = run(t, path, "", "rename", "washer", "bolt")
	requireExitCode(t, model.ExitNotFound, err)

	_, err = run(t, path, "", "set", "nut", "weight", "3")
	requireExitCode(t, model.ExitInvalidValue, err)

	_, err = run(t, path, "", "list", "--sort", "weight")
	requireExitCode(t, model.ExitInvalidValue, err)

	_, err = run(t, path, "", "stow", "drawer", "--kind", "submarine")
	requireExitCode(t, model.ExitNotFound, err)
}

func TestCommands_Kinds(t *testing.T) {
	out := mustRun(t, newTreeFile(t, "unused.yaml"), "kinds")
	assert.True(t, strings.HasPrefix(out, "KIND "))
	assert.Contains(t, out, "backpack")
	assert.Contains(t, out, "!bulk")
}

func TestReportError_JSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	code := reportError(&buf, model.WrapCLIError(model.ExitStoreError, "failed to read x", assert.AnError))
	assert.Equal(t, model.ExitStoreError, code)

	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "failed to read x", payload["error"]["message"])
	assert.Equal(t, assert.AnError.Error(), payload["error"]["detail"])
}
