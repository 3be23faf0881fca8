// Package commands wires the CLI surface of the availability engine.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "backlog" command and registers all
// subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "backlog",
		Short: "Backlog stock availability engine",
	}

	root.AddCommand(
		newRunCmd(),
		newGenerateCmd(),
	)

	return root
}
