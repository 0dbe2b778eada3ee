package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/portree-dev/portree/internal/env"
	"github.com/portree-dev/portree/internal/repository"
	"github.com/portree-dev/portree/internal/ui"
	"github.com/portree-dev/portree/internal/worktree"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List worktrees with their indexes and port offsets",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
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
	worktrees, err := mgr.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBRANCH\tINDEX\tOFFSET\tPATH")
	next := 1
	for _, wt := range worktrees {
		index := 0
		name := worktree.NameOf(wt)
		if wt.IsPrimary {
			name += " *"
		} else {
			index = next
			next++
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			name, wt.Branch, index, env.Offset(index, cfg.PortOffsetIncrement), wt.Path)
	}
	return w.Flush()
}
