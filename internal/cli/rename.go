package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

type renameFlags struct {
	match string
	all   bool
	in    selectorFlags
}

// NewRenameCommand creates the "rename" cobra command.
func NewRenameCommand() *cobra.Command {
	flags := &renameFlags{}

	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename an object or container in place",
		Long: `Rename the entity matching <old>. Exactly one entity must match unless
--all is given; an ambiguous name lists every candidate.

With --all, each container renames its first match and only searches its
children when it had none.

Examples:
  stowage rename fuel "jet fuel"
  stowage rename ammo rounds --in armory
  stowage rename crate box --all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching: auto, exact, substring")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Rename the first match of every container")
	flags.in.bind(cmd, "in", "Only rename inside containers matching this name")

	return cmd
}

func runRename(cmd *cobra.Command, oldName, newName string, flags *renameFlags) error {
	strict, err := parseMatchFlag(flags.match)
	if err != nil {
		return err
	}

	root, err := loadTree()
	if err != nil {
		return err
	}

	res, err := root.Rename(oldName, newName, inventory.RenameOptions{
		Strict: strict,
		Target: flags.in.selector(strict),
		All:    flags.all,
	})
	if err != nil {
		return model.WrapEngineError(fmt.Sprintf("failed to rename %q", oldName), err)
	}
	VerboseLog("Renamed %d entities", res.Len())

	if !res.IsEmpty() {
		if err := saveTree(root); err != nil {
			return err
		}
	}

	printResult(cmd.OutOrStdout(), "renamed", newName, 0, res)
	return nil
}
