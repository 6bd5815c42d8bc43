package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
	"github.com/shinji-kodama/stowage/internal/store"
)

// loadTree reads the tree named by --file.
func loadTree() (*inventory.Container, error) {
	path := TreeFile()
	root, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	VerboseLog("Loaded tree %q from %s", root.Name(), path)
	return root, nil
}

// saveTree writes the tree back to --file.
func saveTree(root *inventory.Container) error {
	path := TreeFile()
	if err := store.Save(path, root); err != nil {
		return err
	}
	VerboseLog("Saved tree %q to %s", root.Name(), path)
	return nil
}

// parseAmountFlag parses an amount flag value, reporting the flag name on
// failure with ExitInvalidValue.
func parseAmountFlag(flag, value string) (model.Amount, error) {
	a, err := model.ParseAmount(value)
	if err != nil {
		return 0, model.WrapCLIError(model.ExitInvalidValue, fmt.Sprintf("invalid --%s value %q", flag, value), err)
	}
	return a, nil
}

// selectorFlags are the flags that pick target containers.
type selectorFlags struct {
	name string
	tags []string
}

// bind registers the selector flags under the given flag name, e.g.
// --into and --into-tag.
func (s *selectorFlags) bind(cmd *cobra.Command, flag, usage string) {
	cmd.Flags().StringVar(&s.name, flag, "", usage)
	cmd.Flags().StringSliceVar(&s.tags, flag+"-tag", nil,
		fmt.Sprintf("Restrict --%s to containers carrying all of these tags", flag))
}

func (s *selectorFlags) selector(strict inventory.Strictness) inventory.Selector {
	return inventory.Selector{
		Name:   s.name,
		Strict: strict,
		Tags:   inventory.TagFilter{All: inventory.NewTagSet(s.tags...)},
	}
}

// parseMatchFlag converts --match into a Strictness.
func parseMatchFlag(value string) (inventory.Strictness, error) {
	strict, err := inventory.ParseStrictness(value)
	if err != nil {
		return strict, model.WrapCLIError(model.ExitInvalidValue, fmt.Sprintf("invalid --match value %q", value), err)
	}
	return strict, nil
}

// entryJSON is the JSON form of one Result entry.
type entryJSON struct {
	Kind      string       `json:"kind"`
	Name      string       `json:"name"`
	Count     model.Amount `json:"count"`
	Container string       `json:"container,omitempty"`
}

// resultJSON is the JSON output of every mutating command.
type resultJSON struct {
	Action    string       `json:"action"`
	Requested model.Amount `json:"requested,omitempty"`
	Count     model.Amount `json:"count"`
	Entries   []entryJSON  `json:"entries"`
}

func toResultJSON(action string, requested model.Amount, res inventory.Result) resultJSON {
	out := resultJSON{
		Action:    action,
		Requested: requested,
		Count:     res.Count(),
		// An empty slice keeps JSON output at [] rather than null.
		Entries: make([]entryJSON, 0, res.Len()),
	}
	for _, e := range res.Entries() {
		entry := entryJSON{
			Kind:  e.Entity.Kind().String(),
			Name:  e.Entity.Name(),
			Count: e.Entity.Count(),
		}
		if e.Container != nil {
			entry.Container = e.Container.Name()
		}
		out.Entries = append(out.Entries, entry)
	}
	return out
}

// printResult reports the outcome of a mutating command. A zero
// requested amount means the request had no fixed size.
//
// Text form:
//
//	placed 3 of 5 "fuel"
//	  2 in ship
//	  1 in hold
func printResult(w io.Writer, action, subject string, requested model.Amount, res inventory.Result) {
	if IsJSONOutput() {
		printJSON(w, toResultJSON(action, requested, res))
		return
	}
	fmt.Fprint(w, FormatResult(action, subject, requested, res))
}

// FormatResult renders a Result as the text summary printed by mutating
// commands.
func FormatResult(action, subject string, requested model.Amount, res inventory.Result) string {
	var b strings.Builder
	if requested.IsZero() || requested == res.Count() {
		fmt.Fprintf(&b, "%s %s %q\n", action, res.Count(), subject)
	} else {
		fmt.Fprintf(&b, "%s %s of %s %q\n", action, res.Count(), requested, subject)
	}
	for _, e := range res.Entries() {
		where := "(root)"
		if e.Container != nil {
			where = e.Container.Name()
		}
		if e.Entity.Name() != subject {
			fmt.Fprintf(&b, "  %s %s in %s\n", e.Entity.Count(), e.Entity.Name(), where)
			continue
		}
		fmt.Fprintf(&b, "  %s in %s\n", e.Entity.Count(), where)
	}
	return b.String()
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
