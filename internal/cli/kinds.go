package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/catalog"
	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

// NewKindsCommand creates the "kinds" cobra command.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the built-in container kinds",
		Long: `List the container kinds usable with init --kind and stow --kind.

Examples:
  stowage kinds
  stowage kinds --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := catalog.Kinds()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to load the built-in catalog", err)
			}
			printKinds(cmd.OutOrStdout(), kinds)
			return nil
		},
	}
}

// kindJSON is the JSON form of a catalog kind.
type kindJSON struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Capacity    model.Amount        `json:"capacity"`
	Reserved    model.Amount        `json:"reserved"`
	Tags        []string            `json:"tags"`
	Accept      inventory.TagFilter `json:"accept"`
}

func printKinds(w io.Writer, kinds []catalog.Kind) {
	if IsJSONOutput() {
		out := make([]kindJSON, 0, len(kinds))
		for _, k := range kinds {
			out = append(out, kindJSON(k))
		}
		printJSON(w, map[string]interface{}{"kinds": out})
		return
	}

	rows := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		rows = append(rows, []string{
			k.Name,
			k.Capacity.String(),
			k.Reserved.String(),
			inventory.NewTagSet(k.Tags...).String(),
			FormatTagFilter(k.Accept),
			k.Description,
		})
	}
	fmt.Fprint(w, inventory.FormatTable(
		[]string{"KIND", "CAPACITY", "RESERVED", "TAGS", "ACCEPTS", "DESCRIPTION"}, rows))
}

// FormatTagFilter renders an accept filter compactly, e.g.
// "any:liquid !bulk". The zero filter renders as "*".
func FormatTagFilter(f inventory.TagFilter) string {
	if f.IsZero() {
		return "*"
	}
	var parts []string
	if len(f.Any) > 0 {
		parts = append(parts, "any:"+strings.Join(f.Any, ","))
	}
	if len(f.All) > 0 {
		parts = append(parts, "all:"+strings.Join(f.All, ","))
	}
	for _, tag := range f.None {
		parts = append(parts, "!"+tag)
	}
	return strings.Join(parts, " ")
}
