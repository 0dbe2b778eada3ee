package worktree

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/portree-dev/portree/internal/config"
	"github.com/portree-dev/portree/internal/git"
)

// Manager handles worktree operations for one repository. RepoRoot is the
// primary worktree; new worktrees are created as sibling directories named
// <repo>-<worktree-name>.
type Manager struct {
	RepoRoot string
	Config   *config.Config
	Executor *git.Executor
}

// NewManager creates a new worktree manager
func NewManager(repoRoot string, cfg *config.Config) *Manager {
	return &Manager{
		RepoRoot: repoRoot,
		Config:   cfg,
		Executor: git.NewExecutor(repoRoot),
	}
}

// ErrWorktreeAlreadyExists is returned when a worktree with the same name
// or branch already exists
type ErrWorktreeAlreadyExists struct {
	Name string
	Path string
}

func (e *ErrWorktreeAlreadyExists) Error() string {
	return fmt.Sprintf("worktree '%s' already exists at '%s'", e.Name, e.Path)
}

// ErrWorktreeNotFound is returned when no worktree matches a given name
type ErrWorktreeNotFound struct {
	Name string
}

func (e *ErrWorktreeNotFound) Error() string {
	return fmt.Sprintf("worktree not found: %s", e.Name)
}

// AddOptions contains options for adding a worktree
type AddOptions struct {
	NewBranch  bool   // Create a new branch
	BaseBranch string // Base branch for new branch
}

// SanitizeName converts a branch name to a worktree name: slashes become
// dashes so the name is safe as a directory name and tmux session name.
func SanitizeName(branch string) string {
	return strings.ReplaceAll(branch, "/", "-")
}

// NameOf returns a worktree's canonical name: the sanitized branch name,
// falling back to the directory name for detached worktrees.
func NameOf(wt git.Worktree) string {
	if wt.Branch != "" && wt.Branch != "detached" {
		return SanitizeName(wt.Branch)
	}
	return wt.Name()
}

// PathFor returns the directory a worktree with the given name lives in.
func (m *Manager) PathFor(name string) string {
	repoName := filepath.Base(m.RepoRoot)
	return filepath.Join(filepath.Dir(m.RepoRoot), repoName+"-"+name)
}

// Add creates a new worktree for the branch and returns its name and path.
func (m *Manager) Add(branch string, opts AddOptions) (name, path string, err error) {
	name = SanitizeName(branch)
	path = m.PathFor(name)

	worktrees, err := m.List()
	if err != nil {
		return "", "", err
	}
	for _, wt := range worktrees {
		if NameOf(wt) == name || wt.Branch == branch {
			return "", "", &ErrWorktreeAlreadyExists{Name: name, Path: wt.Path}
		}
	}

	args := []string{"worktree", "add"}
	if opts.NewBranch {
		args = append(args, "-b", branch)
	}
	args = append(args, path)
	if opts.NewBranch {
		if opts.BaseBranch != "" {
			args = append(args, opts.BaseBranch)
		}
	} else {
		args = append(args, branch)
	}

	if _, err := m.Executor.Execute(args...); err != nil {
		return "", "", fmt.Errorf("failed to add worktree: %w", err)
	}
	return name, path, nil
}

// Remove removes a worktree
func (m *Manager) Remove(path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	if _, err := m.Executor.Execute(args...); err != nil {
		return fmt.Errorf("failed to remove worktree: %w", err)
	}
	return nil
}

// List returns all worktrees in creation order, excluding bare entries.
func (m *Manager) List() ([]git.Worktree, error) {
	output, err := m.Executor.Execute("worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}

	var worktrees []git.Worktree
	for _, wt := range git.ParseWorktreeList(output) {
		if wt.IsBare {
			continue
		}
		worktrees = append(worktrees, wt)
	}
	return worktrees, nil
}

// Resolve finds a worktree by name, branch, or path.
func (m *Manager) Resolve(name string) (git.Worktree, error) {
	worktrees, err := m.List()
	if err != nil {
		return git.Worktree{}, err
	}
	return resolve(worktrees, name)
}

func resolve(worktrees []git.Worktree, name string) (git.Worktree, error) {
	for _, wt := range worktrees {
		if matches(wt, name) {
			return wt, nil
		}
	}
	return git.Worktree{}, &ErrWorktreeNotFound{Name: name}
}

func matches(wt git.Worktree, name string) bool {
	return NameOf(wt) == name || wt.Name() == name || wt.Branch == name || wt.Path == name
}

// Index resolves a worktree's stable creation-order index: 0 for the
// primary worktree, then 1-based positions in listing order. The value is
// stable as long as worktree membership is unchanged.
func (m *Manager) Index(name string) (int, error) {
	worktrees, err := m.List()
	if err != nil {
		return 0, err
	}
	return indexOf(worktrees, name)
}

func indexOf(worktrees []git.Worktree, name string) (int, error) {
	next := 1
	for _, wt := range worktrees {
		if wt.IsPrimary {
			if matches(wt, name) {
				return 0, nil
			}
			continue
		}
		if matches(wt, name) {
			return next, nil
		}
		next++
	}
	return 0, &ErrWorktreeNotFound{Name: name}
}

// PrimaryPath returns the primary worktree's path.
func (m *Manager) PrimaryPath() (string, error) {
	worktrees, err := m.List()
	if err != nil {
		return "", err
	}
	for _, wt := range worktrees {
		if wt.IsPrimary {
			return wt.Path, nil
		}
	}
	return "", fmt.Errorf("primary worktree not found")
}
