package docker

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Compose wraps "docker compose" for one worktree's container stack.
// Project isolates the stack from other worktrees sharing the same
// compose file.
type Compose struct {
	Dir     string // worktree directory containing the compose file
	Project string // compose project name, unique per worktree
}

// Available checks that the docker CLI is on PATH.
func Available() error {
	if _, err := exec.LookPath("docker"); err != nil {
		return fmt.Errorf("docker is required but not found on PATH")
	}
	return nil
}

// Up starts the stack detached. The worktree's rewritten env file supplies
// the shifted ports and container names.
func (c *Compose) Up() error {
	return c.run("compose", "-p", c.Project, "up", "-d")
}

// Down stops and removes the stack. With removeVolumes the stack's named
// volumes are removed as well.
func (c *Compose) Down(removeVolumes bool) error {
	args := []string{"compose", "-p", c.Project, "down", "--remove-orphans"}
	if removeVolumes {
		args = append(args, "--volumes")
	}
	return c.run(args...)
}

func (c *Compose) run(args ...string) error {
	cmd := exec.Command("docker", args...)
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker %s failed: %w\n%s", shellquote.Join(args...), err, stderr.String())
	}
	return nil
}

// CloneVolume copies the contents of one named volume into a new one,
// used to give a worktree its own copy of the primary stack's data.
func CloneVolume(src, dst string) error {
	if err := runDocker("volume", "create", dst); err != nil {
		return err
	}
	return runDocker("run", "--rm",
		"-v", src+":/from:ro",
		"-v", dst+":/to",
		"alpine", "sh", "-c", "cd /from && cp -a . /to")
}

func runDocker(args ...string) error {
	cmd := exec.Command("docker", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker %s failed: %w\n%s", shellquote.Join(args...), err, stderr.String())
	}
	return nil
}
