package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

type stowFlags struct {
	containerFlags
	match string
	into  selectorFlags
}

// NewStowCommand creates the "stow" cobra command.
func NewStowCommand() *cobra.Command {
	flags := &stowFlags{}

	cmd := &cobra.Command{
		Use:   "stow <name>",
		Short: "Place a new empty container into the tree",
		Long: `Place a new empty container into the first container with room for it.

A container is never split: it takes its whole capacity in the container
that receives it.

Examples:
  stowage stow "hold A" --kind cargo-hold
  stowage stow "kit bag" --kind backpack --into quarters
  stowage stow drawer --capacity 4 --tag main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStow(cmd, args[0], flags)
		},
	}

	flags.containerFlags.bind(cmd)
	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching for --into: auto, exact, substring")
	flags.into.bind(cmd, "into", "Only place the container inside containers matching this name")

	return cmd
}

func runStow(cmd *cobra.Command, name string, flags *stowFlags) error {
	sub, err := flags.containerFlags.build(cmd, name)
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

	res, err := root.Distribute(sub, inventory.DistributeOptions{Target: flags.into.selector(strict)})
	if err != nil {
		return model.WrapEngineError(fmt.Sprintf("failed to stow %q", name), err)
	}
	if res.IsEmpty() {
		return model.NewCLIError(model.ExitCapacityExceeded,
			fmt.Sprintf("no selected container can take %q: it needs %s free and an unused name", name, sub.Capacity()))
	}

	if err := saveTree(root); err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), "stowed", name, 0, res)
	return nil
}
