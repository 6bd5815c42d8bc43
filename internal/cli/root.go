// Package cli implements the cobra-based CLI commands for stowage.
//
// Each subcommand (init, add, stow, remove, rename, list, slots, set,
// kinds) is defined in its own file within this package. This file defines
// the root command that serves as the parent for all subcommands and
// handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stowage/internal/model"
)

// DefaultTreeFile is the tree file used when --file is not given.
const DefaultTreeFile = "stowage.yaml"

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables detailed logging output on stderr.
	verbose bool

	// treeFile is the path of the tree the command operates on. The
	// extension selects YAML or JSON.
	treeFile string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text and global flags; subcommands do the work.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stowage",
		Short: "Capacity-aware inventory of nested containers",
		Long: `stowage tracks stacks of objects stored in nested containers, each with
a fixed capacity. Objects are distributed across the container tree
("main"-tagged containers first), removed, renamed and queried by name
and tag, while no container ever holds more than its capacity.

The tree lives in a single YAML or JSON file (default: stowage.yaml).
Use "inf" for unbounded capacities or counts.`,

		// Errors are printed by Execute in text or JSON form.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVarP(&treeFile, "file", "f", DefaultTreeFile, "Tree file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewAddCommand())
	rootCmd.AddCommand(NewStowCommand())
	rootCmd.AddCommand(NewRemoveCommand())
	rootCmd.AddCommand(NewRenameCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewSlotsCommand())
	rootCmd.AddCommand(NewSetCommand())
	rootCmd.AddCommand(NewKindsCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIErrors carry their own exit code. Any other error is classified by
// its engine error kind (model.ExitCodeFor), defaulting to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(reportError(os.Stderr, err)))
	}
}

// reportError prints err and returns the exit code it maps to.
func reportError(w io.Writer, err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitCodeFor(err)
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// TreeFile returns the path given by --file.
func TreeFile() string {
	return treeFile
}
