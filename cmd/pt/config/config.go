package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent "config" command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Export and import the repository configuration",
	Long: `Manage the portree configuration.

Runtime configuration lives in the line-oriented config file at the
primary worktree root. Export/import uses TOML as the interchange format
for moving a configuration between repositories.`,
}

func init() {
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(importCmd)
}
