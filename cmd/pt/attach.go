package main

import (
	"fmt"
	"os"

	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/tmux"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/portree-dev/portree/internal/worktree"
	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <name>",
	Short: "Attach to a worktree's tmux session",
	Long: `Attach to the tmux session of a worktree, creating it first if needed.

Inside an existing tmux client this switches the client instead of nesting.

Examples:
  pt attach feature-auth`,
	Args: cobra.ExactArgs(1),
	RunE: runAttach,
}

func runAttach(cmd *cobra.Command, args []string) error {
	if err := tmux.Available(); err != nil {
		return err
	}

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

	name := worktree.NameOf(wt)
	if !tmux.HasSession(name) {
		if err := tmux.NewSession(name, wt.Path); err != nil {
			return err
		}
	}
	return tmux.Attach(name)
}
