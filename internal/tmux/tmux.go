package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Available checks that tmux is installed and on PATH.
func Available() error {
	if _, err := exec.LookPath("tmux"); err != nil {
		return fmt.Errorf("tmux is required but not found on PATH")
	}
	return nil
}

// HasSession reports whether a session with the given name exists.
func HasSession(name string) bool {
	return exec.Command("tmux", "has-session", "-t", "="+name).Run() == nil
}

// NewSession creates a detached session rooted in dir.
func NewSession(name, dir string) error {
	out, err := run("new-session", "-d", "-s", name, "-c", dir)
	if err != nil {
		return fmt.Errorf("tmux new-session failed: %w\n%s", err, out)
	}
	return nil
}

// SendKeys types a command into the session's active pane and presses
// enter.
func SendKeys(name, command string) error {
	out, err := run("send-keys", "-t", "="+name, command, "Enter")
	if err != nil {
		return fmt.Errorf("tmux send-keys failed: %w\n%s", err, out)
	}
	return nil
}

// KillSession terminates the session. A missing session is not an error.
func KillSession(name string) error {
	if !HasSession(name) {
		return nil
	}
	out, err := run("kill-session", "-t", "="+name)
	if err != nil {
		return fmt.Errorf("tmux kill-session failed: %w\n%s", err, out)
	}
	return nil
}

// Attach replaces stdio with an attached client, or switches the current
// client when already inside tmux.
func Attach(name string) error {
	args := []string{"attach-session", "-t", "=" + name}
	if os.Getenv("TMUX") != "" {
		args = []string{"switch-client", "-t", "=" + name}
	}
	cmd := exec.Command("tmux", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func run(args ...string) (string, error) {
	out, err := exec.Command("tmux", args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
