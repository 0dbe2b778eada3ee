package git

import (
	"strings"
)

// Worktree represents one entry of "git worktree list --porcelain".
// Entries are listed in creation order with the primary worktree first.
type Worktree struct {
	Path      string
	Head      string
	Branch    string
	IsPrimary bool
	IsBare    bool
}

// Name returns the worktree's directory name.
func (w Worktree) Name() string {
	if i := strings.LastIndexByte(w.Path, '/'); i >= 0 {
		return w.Path[i+1:]
	}
	return w.Path
}

// ParseWorktreeList parses the output of "git worktree list --porcelain"
func ParseWorktreeList(output string) []Worktree {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	var worktrees []Worktree
	var current Worktree
	primarySet := false

	// The first non-bare entry is the primary worktree.
	flush := func() {
		if current.Path == "" {
			return
		}
		if !primarySet && !current.IsBare {
			current.IsPrimary = true
			primarySet = true
		}
		worktrees = append(worktrees, current)
		current = Worktree{}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" {
			// Empty line marks end of worktree entry
			flush()
			continue
		}

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			branch := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(branch, "refs/heads/")
		case line == "detached":
			current.Branch = "detached"
		case line == "bare":
			current.IsBare = true
		}
	}
	flush()

	return worktrees
}
