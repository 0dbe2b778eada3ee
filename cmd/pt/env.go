package main

import (
	"fmt"
	"os"

	"github.com/portree-dev/portree/internal/env"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/portree-dev/portree/internal/worktree"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env <name>",
	Short: "Re-apply the environment configuration to a worktree",
	Long: `Re-run the environment update for an existing worktree.

Recomputes the worktree's port offset from its creation index, re-applies
every configured file-update rule, and re-upserts all port and
container-name variables into the primary environment file. Safe to run
repeatedly: identical inputs leave the files byte-identical.

Examples:
  pt env feature-auth`,
	Args: cobra.ExactArgs(1),
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
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
	result, err := env.Apply(name, wt.Path, cfg, mgr)
	if err != nil {
		return err
	}
	reportEnvResult(result)

	ui.Success("environment updated for '%s' (index %d, port offset %d)",
		name, result.Context.Index, result.Context.Offset)
	return nil
}
