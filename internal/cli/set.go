package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

type setFlags struct {
	match string
	in    selectorFlags
}

// NewSetCommand creates the "set" cobra command.
func NewSetCommand() *cobra.Command {
	flags := &setFlags{}

	cmd := &cobra.Command{
		Use:   "set <name> <field> <value>",
		Short: "Change one field of an object or container",
		Long: `Change one field of the single entity matching <name>. The root
container itself can be changed too.

Fields:
  objects:    name, tags, count, capacity, size
  containers: name, tags, capacity, reserved

Tags are given as a comma-separated list. A change that would overfill a
container is rejected and leaves the tree unchanged.

Examples:
  stowage set fuel count 12
  stowage set "hold A" capacity 250
  stowage set rations tags food,main --in galley`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1], args[2], flags)
		},
	}

	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching: auto, exact, substring")
	flags.in.bind(cmd, "in", "Only search inside containers matching this name")

	return cmd
}

func runSet(cmd *cobra.Command, name, fieldArg, value string, flags *setFlags) error {
	field, err := inventory.ParseField(fieldArg)
	if err != nil {
		return model.WrapEngineError("invalid field", err)
	}
	strict, err := parseMatchFlag(flags.match)
	if err != nil {
		return err
	}

	root, err := loadTree()
	if err != nil {
		return err
	}

	// Step 1: Resolve exactly one entity, the root included.
	found, err := root.Query(inventory.QueryOptions{
		Name:         name,
		Strict:       strict,
		Target:       flags.in.selector(strict),
		SelfIncluded: flags.in.name == "" && len(flags.in.tags) == 0,
		OnlyOne:      true,
	})
	if err != nil {
		return model.WrapEngineError(fmt.Sprintf("cannot select %q", name), err)
	}
	entry := found.Entries()[0]

	// Step 2: Apply the change. Children go through their container so
	// the capacity of the parent is re-checked.
	var res inventory.Result
	if entry.Container == nil {
		if err := inventory.SetField(root, field, value); err != nil {
			return model.WrapEngineError(fmt.Sprintf("failed to set %s of %q", field, root.Name()), err)
		}
		res = inventory.NewResult(root.Count(), inventory.Entry{Entity: root.Clone()})
	} else {
		res, err = entry.Container.Update(entry.Entity.Name(), field, value)
		if err != nil {
			return model.WrapEngineError(fmt.Sprintf("failed to set %s of %q", field, entry.Entity.Name()), err)
		}
	}
	VerboseLog("Set %s of %q to %q", field, entry.Entity.Name(), value)

	if err := saveTree(root); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if IsJSONOutput() {
		printJSON(w, toResultJSON("set", 0, res))
		return nil
	}
	fmt.Fprintf(w, "set %s of %q to %s\n", field, entry.Entity.Name(), value)
	return nil
}
