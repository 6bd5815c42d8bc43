package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

type slotsFlags struct {
	shallow bool
	match   string
	in      selectorFlags
}

// NewSlotsCommand creates the "slots" cobra command.
func NewSlotsCommand() *cobra.Command {
	flags := &slotsFlags{}

	cmd := &cobra.Command{
		Use:   "slots <capacity>",
		Short: "Count how many units of a given capacity still fit",
		Long: `Count how many more units of the given per-unit capacity fit in the
tree, summing the whole units that fit in each container's free space.

Examples:
  stowage slots 2
  stowage slots 0.5 --in galley --shallow`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlots(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.shallow, "shallow", false, "Only count the root container")
	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching for --in: auto, exact, substring")
	flags.in.bind(cmd, "in", "Only count containers matching this name")

	return cmd
}

func runSlots(cmd *cobra.Command, capacityArg string, flags *slotsFlags) error {
	perUnit, err := parseAmountFlag("capacity", capacityArg)
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

	slots, err := root.FreeSlots(perUnit, inventory.SlotOptions{
		Target:  flags.in.selector(strict),
		Shallow: flags.shallow,
	})
	if err != nil {
		return model.WrapEngineError("failed to count free slots", err)
	}

	w := cmd.OutOrStdout()
	if IsJSONOutput() {
		printJSON(w, map[string]model.Amount{"capacity": perUnit, "slots": slots})
		return nil
	}
	fmt.Fprintf(w, "%s units of capacity %s fit\n", slots, perUnit)
	return nil
}
