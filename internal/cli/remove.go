package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	// count is the number of units to remove; empty removes every match.
	count string

	tags  []string
	match string
	from  selectorFlags

	// yes skips the confirmation asked before whole containers are removed.
	yes bool
}

// NewRemoveCommand creates the "remove" cobra command.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove units or containers from the tree",
		Long: `Remove up to --count units of the entities matching a name.

Each container is emptied before its children are searched, and removal
stops once enough units are gone. Removing fewer units than requested is
reported but is not an error. Without --count every match is removed.

Matching containers are removed with everything inside them; unless --yes
is given, the command asks for confirmation first.

Examples:
  stowage remove fuel --count 3
  stowage remove rations --from galley
  stowage remove "hold B" --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.count, "count", "", "Number of units to remove (default: all)")
	cmd.Flags().StringSliceVar(&flags.tags, "tag", nil, "Only remove entities carrying all of these tags")
	cmd.Flags().StringVar(&flags.match, "match", "auto", "Name matching: auto, exact, substring")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Remove containers without confirmation")
	flags.from.bind(cmd, "from", "Only remove from containers matching this name")

	return cmd
}

func runRemove(cmd *cobra.Command, name string, flags *removeFlags) error {
	// Step 1: Validate flags.
	var count model.Amount
	if flags.count != "" {
		n, err := parseAmountFlag("count", flags.count)
		if err != nil {
			return err
		}
		count = n
	}
	strict, err := parseMatchFlag(flags.match)
	if err != nil {
		return err
	}
	opts := inventory.RemoveOptions{
		Count:  count,
		Strict: strict,
		Tags:   inventory.TagFilter{All: inventory.NewTagSet(flags.tags...)},
		Target: flags.from.selector(strict),
	}

	root, err := loadTree()
	if err != nil {
		return err
	}

	// Step 2: Ask before dropping whole subtrees.
	if !flags.yes {
		containers, err := matchingContainers(root, name, opts)
		if err != nil {
			return err
		}
		if len(containers) > 0 {
			confirmed, err := promptConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), containers)
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
			}
			if !confirmed {
				return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
			}
		}
	}

	// Step 3: Remove and persist.
	res, err := root.Remove(name, opts)
	if err != nil {
		return model.WrapEngineError(fmt.Sprintf("failed to remove %q", name), err)
	}
	VerboseLog("Removed %s units from %d containers", res.Count(), res.Len())

	if !res.IsEmpty() {
		if err := saveTree(root); err != nil {
			return err
		}
	}

	printResult(cmd.OutOrStdout(), "removed", name, count, res)
	return nil
}

// matchingContainers lists the containers a removal may delete, with the
// number of entities inside each.
func matchingContainers(root *inventory.Container, name string, opts inventory.RemoveOptions) ([]string, error) {
	res, err := root.Query(inventory.QueryOptions{
		Name:   name,
		Strict: opts.Strict,
		Tags:   opts.Tags,
		Target: opts.Target,
	})
	if err != nil {
		return nil, model.WrapEngineError(fmt.Sprintf("failed to look up %q", name), err)
	}

	var out []string
	for _, e := range res.Entries() {
		if c, ok := e.Entity.(*inventory.Container); ok {
			out = append(out, fmt.Sprintf("%s (%d entries)", c.Name(), c.Len()))
		}
	}
	return out, nil
}

// promptConfirmation asks the user to confirm removing containers.
// It reads a single line from in and checks for "y" or "yes".
func promptConfirmation(in io.Reader, out io.Writer, containers []string) (bool, error) {
	fmt.Fprintln(out, "About to remove these containers and everything inside them:")
	for _, c := range containers {
		fmt.Fprintf(out, "  - %s\n", c)
	}
	fmt.Fprint(out, "\nContinue? [y/N] ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}

	// A closed stdin counts as "no".
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}
