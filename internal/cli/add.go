package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

// addFlags holds the flag values for the add command.
type addFlags struct {
	capacity    string
	count       string
	size        string
	tags        []string
	match       string
	unbreakable bool
	into        selectorFlags
}

// NewAddCommand creates the "add" cobra command.
func NewAddCommand() *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Distribute a stack of objects into the tree",
		Long: `Distribute count units of an object into the tree.

Units fill the root first, then flow into child containers, "main"-tagged
containers first, until every unit is placed or no container has room.
Units join an existing stack of the same name and per-unit capacity.
Placing fewer units than requested is reported but is not an error.

Examples:
  stowage add fuel --capacity 2 --count 10
  stowage add rations --capacity 0.5 --count 20 --into galley
  stowage add "medical kit" --capacity 3 --count 4 --unbreakable --tag main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.capacity, "capacity", "", "Capacity of one unit (a number or inf)")
	cmd.Flags().StringVar(&flags.count, "count", "1", "Number of units (a whole number or inf)")
	cmd.Flags().StringVar(&flags.size, "size", "", "Size of one unit (defaults to the capacity)")
	cmd.Flags().StringSliceVar(&flags.tags, "tag", nil, "Object tags")
	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching for --into: auto, exact, substring")
	cmd.Flags().BoolVar(&flags.unbreakable, "unbreakable", false, "Place every unit or none")
	flags.into.bind(cmd, "into", "Only place units in containers matching this name")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func runAdd(cmd *cobra.Command, name string, flags *addFlags) error {
	// Step 1: Build the object from the flags.
	obj, err := flags.object(name)
	if err != nil {
		return err
	}
	strict, err := parseMatchFlag(flags.match)
	if err != nil {
		return err
	}

	// Step 2: Load the tree and distribute.
	root, err := loadTree()
	if err != nil {
		return err
	}

	res, err := root.Distribute(obj, inventory.DistributeOptions{
		Target:      flags.into.selector(strict),
		Unbreakable: flags.unbreakable,
	})
	if err != nil {
		return model.WrapEngineError(fmt.Sprintf("failed to add %q", name), err)
	}
	VerboseLog("Placed %s of %s units in %d containers", res.Count(), obj.Count(), res.Len())

	// Step 3: Persist only when something changed.
	if !res.IsEmpty() {
		if err := saveTree(root); err != nil {
			return err
		}
	}

	printResult(cmd.OutOrStdout(), "placed", name, obj.Count(), res)
	return nil
}

func (f *addFlags) object(name string) (*inventory.Object, error) {
	capacity, err := parseAmountFlag("capacity", f.capacity)
	if err != nil {
		return nil, err
	}
	count, err := parseAmountFlag("count", f.count)
	if err != nil {
		return nil, err
	}

	opts := []inventory.ObjectOption{inventory.WithTags(f.tags...)}
	if f.size != "" {
		size, err := parseAmountFlag("size", f.size)
		if err != nil {
			return nil, err
		}
		opts = append(opts, inventory.WithSize(size))
	}

	obj, err := inventory.NewObject(name, capacity, count, opts...)
	if err != nil {
		return nil, model.WrapEngineError(fmt.Sprintf("invalid object %q", name), err)
	}
	return obj, nil
}
