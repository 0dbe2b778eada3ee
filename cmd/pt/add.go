package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/portree-dev/portree/internal/docker"
	"github.com/portree-dev/portree/internal/env"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/tmux"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/portree-dev/portree/internal/worktree"
	"github.com/spf13/cobra"
)

var (
	addNewBranch    bool
	addBaseBranch   string
	addNoContainers bool
	addNoTmux       bool
	addRun          string
	addCloneVolumes []string
)

var addCmd = &cobra.Command{
	Use:   "add <branch-name>",
	Short: "Create a worktree with its own ports, containers, and tmux session",
	Long: `Create a new git worktree and set up its isolated environment.

The worktree gets a stable creation index. Every configured port variable
is written into the worktree's environment file as base port + index *
PORT_OFFSET_INCREMENT, container names are rendered per worktree, and all
configured file-update rules run against the new directory. Then the
container stack is started and a tmux session is created, unless disabled.

Examples:
  pt add -b feature/auth            # new branch, new environment
  pt add existing-branch            # worktree for an existing branch
  pt add -b hotfix --base main      # branch off main
  pt add -b feature/x --run "npm run dev"
  pt add -b feature/x --no-containers --no-tmux`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addNewBranch, "branch", "b", false, "Create new branch")
	addCmd.Flags().StringVar(&addBaseBranch, "base", "", "Base branch for new branch (default: HEAD)")
	addCmd.Flags().BoolVar(&addNoContainers, "no-containers", false, "Skip starting the container stack")
	addCmd.Flags().BoolVar(&addNoTmux, "no-tmux", false, "Skip creating a tmux session")
	addCmd.Flags().StringVar(&addRun, "run", "", "Command to run inside the tmux session")
	addCmd.Flags().StringArrayVar(&addCloneVolumes, "clone-volume", nil,
		"Clone a docker volume into the new stack, as src:dst (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	branch := args[0]

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

	if !addNewBranch && !mgr.Executor.BranchExists(branch) {
		return fmt.Errorf("branch '%s' not found\nUse 'pt add -b %s' to create a new branch", branch, branch)
	}

	fmt.Printf("Creating worktree for branch '%s'...\n", branch)
	name, path, err := mgr.Add(branch, worktree.AddOptions{
		NewBranch:  addNewBranch,
		BaseBranch: addBaseBranch,
	})
	if err != nil {
		var existsErr *worktree.ErrWorktreeAlreadyExists
		if errors.As(err, &existsErr) {
			fmt.Printf("Worktree '%s' already exists at:\n  %s\n", existsErr.Name, existsErr.Path)
			return nil
		}
		return err
	}

	copied, err := mgr.SeedEnvFiles(path)
	if err != nil {
		return fmt.Errorf("failed to seed env files: %w", err)
	}
	for _, rel := range copied {
		fmt.Printf("  seeded %s\n", rel)
	}

	result, err := env.Apply(name, path, cfg, mgr)
	if err != nil {
		return err
	}
	reportEnvResult(result)

	if cfg.StartContainers && !addNoContainers {
		if err := docker.Available(); err != nil {
			ui.Warning("%v, skipping containers", err)
		} else {
			for _, pair := range addCloneVolumes {
				src, dst, ok := strings.Cut(pair, ":")
				if !ok || src == "" || dst == "" {
					return fmt.Errorf("invalid --clone-volume %q, expected src:dst", pair)
				}
				fmt.Printf("Cloning volume %s -> %s...\n", src, dst)
				if err := docker.CloneVolume(src, dst); err != nil {
					return err
				}
			}
			fmt.Println("Starting container stack...")
			compose := &docker.Compose{Dir: path, Project: name}
			if err := compose.Up(); err != nil {
				return err
			}
		}
	}

	if !addNoTmux {
		if err := tmux.Available(); err != nil {
			ui.Warning("%v, skipping session", err)
		} else if err := startSession(name, path); err != nil {
			return err
		}
	}

	ui.Success("worktree '%s' ready at %s (index %d, port offset %d)",
		name, path, result.Context.Index, result.Context.Offset)
	fmt.Printf("\nNext steps:\n  pt attach %s\n", name)
	return nil
}

func startSession(name, dir string) error {
	if tmux.HasSession(name) {
		return nil
	}
	if err := tmux.NewSession(name, dir); err != nil {
		return err
	}
	if addRun != "" {
		return tmux.SendKeys(name, addRun)
	}
	return nil
}

func reportEnvResult(result *env.Result) {
	for _, f := range result.Failures {
		ui.Warning("env update: %s", f)
	}
}
