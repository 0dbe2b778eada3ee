package worktree

import (
	"io"
	"os"
	"path/filepath"
)

// SeedEnvFiles copies each configured ENV_FILES entry from the primary
// worktree into a freshly created worktree. Files missing at the source
// are skipped, and existing destination files are never overwritten (they
// may already be checked in). Returns the relative paths actually copied.
func (m *Manager) SeedEnvFiles(worktreeDir string) ([]string, error) {
	primary, err := m.PrimaryPath()
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, rel := range m.Config.EnvFiles {
		src := filepath.Join(primary, rel)
		dst := filepath.Join(worktreeDir, rel)

		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if _, err := os.Lstat(dst); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return copied, err
		}
		if err := copyFile(src, dst); err != nil {
			return copied, err
		}
		copied = append(copied, rel)
	}
	return copied, nil
}

// copyFile copies a file from src to dst, preserving permissions
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, sourceInfo.Mode())
}
