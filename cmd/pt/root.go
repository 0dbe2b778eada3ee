package main

import (
	"fmt"
	"os"

	"github.com/portree-dev/portree/cmd/pt/config"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Command group IDs
const (
	groupWorktree = "worktree"
	groupConfig   = "config"
)

var rootCmd = &cobra.Command{
	Use:     "pt",
	Short:   "portree - isolated git worktrees with offset ports, containers, and tmux sessions",
	Version: version,
}

var showRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Show the primary worktree directory path",
	Long: `Show the primary worktree directory of the current repository.

The portree configuration file lives there.

Examples:
  pt root
  cd $(pt root)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		repoRoot, err := repository.FindRoot(cwd)
		if err != nil {
			return err
		}
		fmt.Println(repoRoot)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("portree %s\n  commit: %s\n  built:  %s\n", version, commit, date))

	rootCmd.AddGroup(
		&cobra.Group{ID: groupWorktree, Title: "Worktree Environments:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
	)

	addCmd.GroupID = groupWorktree
	removeCmd.GroupID = groupWorktree
	listCmd.GroupID = groupWorktree
	envCmd.GroupID = groupWorktree
	attachCmd.GroupID = groupWorktree
	showRootCmd.GroupID = groupWorktree
	initCmd.GroupID = groupConfig
	config.Cmd.GroupID = groupConfig

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(showRootCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(config.Cmd)
}
