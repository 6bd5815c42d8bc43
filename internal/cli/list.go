package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

// listFlags holds the flag values for the list command.
type listFlags struct {
	// detail selects the columns: 0 shows name and count, 1 or more adds
	// kind, capacity, size, free space and tags.
	detail int

	// sortKey orders siblings: "", "name", "count" or "capacity".
	sortKey string

	tags    []string
	match   string
	flat    bool
	shallow bool
	in      selectorFlags
}

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list [name]",
		Short: "Show the tree or the entities matching a name",
		Long: `Without arguments, show the whole tree as an indented table.

With a name, tags or --flat, show the matching entities as a flat table
with the container holding each one.

Examples:
  stowage list
  stowage list --detail 1 --sort capacity
  stowage list fuel
  stowage list --tag main --flat
  stowage list --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runList(cmd.OutOrStdout(), name, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.detail, "detail", "d", 0, "Detail level: 0 for name and count, 1 for every column")
	cmd.Flags().StringVar(&flags.sortKey, "sort", "", "Sort siblings by name, count or capacity (default: insertion order)")
	cmd.Flags().StringSliceVar(&flags.tags, "tag", nil, "Only show entities carrying all of these tags")
	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching: auto, exact, substring")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "Show matches as a flat table")
	cmd.Flags().BoolVar(&flags.shallow, "shallow", false, "Only search the root's direct children")
	flags.in.bind(cmd, "in", "Only search inside containers matching this name")

	return cmd
}

// ParseSortKey converts a --sort value into an ordering. The empty key
// keeps insertion order and returns nil.
func ParseSortKey(key string) (inventory.Less, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "":
		return nil, nil
	case "name":
		return inventory.ByName, nil
	case "count":
		return inventory.ByCount, nil
	case "capacity":
		return inventory.ByCapacity, nil
	default:
		return nil, model.NewCLIError(model.ExitInvalidValue,
			fmt.Sprintf("invalid --sort value %q: valid values are name, count, capacity", key))
	}
}

func runList(w io.Writer, name string, flags *listFlags) error {
	// Step 1: Validate flags.
	less, err := ParseSortKey(flags.sortKey)
	if err != nil {
		return err
	}
	strict, err := parseMatchFlag(flags.match)
	if err != nil {
		return err
	}

	root, err := loadTree()
	if err != nil {
		return err
	}

	// Step 2: Whole-tree view.
	filtered := name != "" || len(flags.tags) > 0 || flags.flat || flags.shallow ||
		flags.in.name != "" || len(flags.in.tags) > 0
	if !filtered {
		if IsJSONOutput() {
			printJSON(w, inventory.Encode(root))
			return nil
		}
		fmt.Fprint(w, inventory.FormatTable(root.Header(flags.detail), root.Rows(flags.detail, less)))
		return nil
	}

	// Step 3: Flat view of the matches.
	res, err := root.Query(inventory.QueryOptions{
		Name:    name,
		Strict:  strict,
		Tags:    inventory.TagFilter{All: inventory.NewTagSet(flags.tags...)},
		Target:  flags.in.selector(strict),
		Shallow: flags.shallow,
	})
	if err != nil {
		return model.WrapEngineError(fmt.Sprintf("failed to list %q", name), err)
	}
	VerboseLog("Found %d matching entities", res.Len())

	if IsJSONOutput() {
		printJSON(w, toResultJSON("list", 0, res))
		return nil
	}
	fmt.Fprint(w, FormatEntries(res, flags.detail, less))
	return nil
}

// FormatEntries renders query matches as a flat table with an extra IN
// column naming the holding container. Entries are ordered by less, or
// kept in match order when less is nil.
//
// Example (detail 0):
//
//	NAME  COUNT  IN
//	fuel  4      ship
//	fuel  2      hold
func FormatEntries(res inventory.Result, detail int, less inventory.Less) string {
	entries := res.Entries()
	if len(entries) == 0 {
		return "No matching entities found.\n"
	}
	if less != nil {
		sort.SliceStable(entries, func(i, j int) bool { return less(entries[i].Entity, entries[j].Entity) })
	}

	header := append(entries[0].Entity.Header(detail), "IN")
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		where := "-"
		if e.Container != nil {
			where = e.Container.Name()
		}
		rows = append(rows, append(e.Entity.Row(detail), where))
	}
	return inventory.FormatTable(header, rows)
}
