package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Executor executes git commands
type Executor struct {
	workDir string
}

// NewExecutor creates a new git command executor
func NewExecutor(workDir string) *Executor {
	return &Executor{workDir: workDir}
}

// Execute runs a git command and returns the output
func (e *Executor) Execute(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w\nstderr: %s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// BranchExists checks whether a local branch exists
func (e *Executor) BranchExists(branch string) bool {
	_, err := e.Execute("show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// TopLevel returns the root directory of the worktree containing workDir
func (e *Executor) TopLevel() (string, error) {
	out, err := e.Execute("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return out, nil
}
