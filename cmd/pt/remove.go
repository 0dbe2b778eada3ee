package main

import (
	"fmt"
	"os"

	"github.com/portree-dev/portree/internal/docker"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/tmux"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/portree-dev/portree/internal/worktree"
	"github.com/spf13/cobra"
)

var (
	removeForce          bool
	removeKeepContainers bool
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Tear down a worktree environment",
	Long: `Remove a worktree together with its tmux session and container stack.

The tmux session is killed first, then the compose stack is brought down
(volumes are removed with --force), then the worktree itself is removed.

Examples:
  pt remove feature-auth
  pt rm feature-auth --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Force removal even with uncommitted changes; also removes volumes")
	removeCmd.Flags().BoolVar(&removeKeepContainers, "keep-containers", false, "Leave the container stack running")
}

func runRemove(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repoRoot, err := repository.FindRoot(cwd)
	if err != nil {
		return err
	}
	cfg, diags, err := repository.LoadConfig(repoRoot)
	if err != nil {
		return err
	}
	for _, d := range diags {
		ui.Warning("config: %s", d)
	}

	mgr := worktree.NewManager(repoRoot, cfg)
	wt, err := mgr.Resolve(args[0])
	if err != nil {
		return err
	}
	if wt.IsPrimary {
		return fmt.Errorf("refusing to remove the primary worktree")
	}
	name := worktree.NameOf(wt)

	if tmux.Available() == nil {
		if err := tmux.KillSession(name); err != nil {
			ui.Warning("%v", err)
		}
	}

	if !removeKeepContainers && docker.Available() == nil {
		fmt.Println("Stopping container stack...")
		compose := &docker.Compose{Dir: wt.Path, Project: name}
		if err := compose.Down(removeForce); err != nil {
			ui.Warning("%v", err)
		}
	}

	if err := mgr.Remove(wt.Path, removeForce); err != nil {
		return err
	}

	ui.Success("worktree '%s' removed", name)
	return nil
}
