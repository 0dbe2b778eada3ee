package repository

import (
	"fmt"
	"path/filepath"

	"github.com/portree-dev/portree/internal/config"
	"github.com/portree-dev/portree/internal/git"
)

// FindRoot locates the primary worktree of the repository containing
// startPath. It works from inside any worktree: the porcelain listing
// always reports the primary worktree first.
func FindRoot(startPath string) (string, error) {
	executor := git.NewExecutor(startPath)
	output, err := executor.Execute("worktree", "list", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	for _, wt := range git.ParseWorktreeList(output) {
		if wt.IsPrimary {
			return wt.Path, nil
		}
	}
	return "", fmt.Errorf("primary worktree not found")
}

// ConfigPath returns the repository's portree configuration file path.
func ConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, config.FileName)
}

// LoadConfig loads the repository configuration layered over defaults.
// A missing config file yields the defaults.
func LoadConfig(repoRoot string) (*config.Config, []string, error) {
	return config.Load(ConfigPath(repoRoot))
}
