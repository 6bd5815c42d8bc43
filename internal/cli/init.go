package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/catalog"
	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
	"github.com/shinji-kodama/stowage/internal/store"
)

// containerFlags describe a container either by catalog kind or by
// explicit dimensions. Shared by init and stow.
type containerFlags struct {
	kind     string
	capacity string
	reserved string
	tags     []string
	accept   []string
	reject   []string
}

func (f *containerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "Build from a catalog kind (see `stowage kinds`)")
	cmd.Flags().StringVar(&f.capacity, "capacity", "", "Capacity (a number or inf)")
	cmd.Flags().StringVar(&f.reserved, "reserved", "0", "Space taken by the container itself")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Container tags")
	cmd.Flags().StringSliceVar(&f.accept, "accept", nil, "Only store objects carrying one of these tags")
	cmd.Flags().StringSliceVar(&f.reject, "reject", nil, "Never store objects carrying one of these tags")
}

// build creates the container. --kind supplies defaults that explicit
// flags may override.
func (f *containerFlags) build(cmd *cobra.Command, name string) (*inventory.Container, error) {
	var (
		c   *inventory.Container
		err error
	)

	switch {
	case f.kind != "":
		kind, lookupErr := catalog.Lookup(f.kind)
		if lookupErr != nil {
			return nil, model.WrapEngineError("unknown container kind", lookupErr)
		}
		VerboseLog("Using catalog kind %q (capacity %s, reserved %s)", kind.Name, kind.Capacity, kind.Reserved)
		c, err = kind.New(name)
	case f.capacity != "":
		capacity, parseErr := parseAmountFlag("capacity", f.capacity)
		if parseErr != nil {
			return nil, parseErr
		}
		c, err = inventory.NewContainer(name, capacity, 0)
	default:
		return nil, model.NewCLIError(model.ExitInvalidValue, "either --kind or --capacity is required")
	}
	if err != nil {
		return nil, model.WrapEngineError(fmt.Sprintf("cannot create container %q", name), err)
	}

	if f.kind != "" && cmd.Flags().Changed("capacity") {
		capacity, err := parseAmountFlag("capacity", f.capacity)
		if err != nil {
			return nil, err
		}
		if err := c.SetCapacity(capacity); err != nil {
			return nil, model.WrapEngineError(fmt.Sprintf("cannot create container %q", name), err)
		}
	}
	if f.kind == "" || cmd.Flags().Changed("reserved") {
		reserved, err := parseAmountFlag("reserved", f.reserved)
		if err != nil {
			return nil, err
		}
		if err := c.SetReserved(reserved); err != nil {
			return nil, model.WrapEngineError(fmt.Sprintf("cannot create container %q", name), err)
		}
	}
	if cmd.Flags().Changed("tag") {
		inventory.SetTags(c, f.tags...)
	}
	if cmd.Flags().Changed("accept") || cmd.Flags().Changed("reject") {
		c.SetAccept(inventory.TagFilter{
			Any:  inventory.NewTagSet(f.accept...),
			None: inventory.NewTagSet(f.reject...),
		})
	}
	return c, nil
}

type initFlags struct {
	containerFlags
	force bool
}

// NewInitCommand creates the "init" cobra command.
func NewInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new tree file with an empty root container",
		Long: `Create a new tree file whose root is an empty container.

The root is built from a catalog kind or from explicit dimensions.

Examples:
  stowage init "Dawn Treader" --kind ship
  stowage init warehouse --capacity inf
  stowage init crate --capacity 10 --reserved 1 -f crate.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], flags)
		},
	}

	flags.containerFlags.bind(cmd)
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing tree file")

	return cmd
}

func runInit(cmd *cobra.Command, name string, flags *initFlags) error {
	path := TreeFile()
	if store.Exists(path) && !flags.force {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s already exists (use --force to overwrite)", path))
	}

	root, err := flags.containerFlags.build(cmd, name)
	if err != nil {
		return err
	}
	if err := saveTree(root); err != nil {
		return err
	}

	printInit(cmd.OutOrStdout(), path, root)
	return nil
}

func printInit(w io.Writer, path string, root *inventory.Container) {
	if IsJSONOutput() {
		printJSON(w, map[string]interface{}{
			"file": path,
			"root": inventory.Encode(root),
		})
		return
	}
	fmt.Fprintf(w, "created %s with root %q (capacity %s, free %s)\n",
		path, root.Name(), root.Capacity(), root.FreeSpace())
}
